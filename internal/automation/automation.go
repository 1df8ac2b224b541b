package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/eulercauchy/internal/dynamo"
	"github.com/san-kum/eulercauchy/internal/experiment"
)

// Scenario defines a scripted sequence of integrations
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single integration in a scenario
type ScenarioStep struct {
	Model  string             `yaml:"model"`
	Params map[string]float64 `yaml:"params"`
	T0     float64            `yaml:"t0"`
	H      float64            `yaml:"h"`
	TFinal float64            `yaml:"tfinal"`
	Y0     float64            `yaml:"y0"`
	SaveAs string             `yaml:"save_as"`
}

func (s ScenarioStep) Problem() dynamo.Problem {
	return dynamo.Problem{T0: s.T0, H: s.H, TFinal: s.TFinal, Y0: s.Y0}
}

// StepResult pairs a scenario step with its outcome
type StepResult struct {
	Step   ScenarioStep
	Params map[string]float64
	Result *dynamo.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no steps", dynamo.ErrInvalidArgument, scenario.Name)
	}

	return &scenario, nil
}

// RunScenario executes all steps in order. It stops at the first failing
// step and returns the results completed so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		model, err := registry.GetModel(step.Model, step.Params)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(experiment.Config{
			Model:   step.Model,
			Params:  step.Params,
			Problem: step.Problem(),
		})
		if err := exp.Setup(model); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run()
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Params: exp.Params(), Result: result})
	}

	return results, nil
}

// ParameterSweep runs one problem across evenly spaced values of a
// single model parameter
type ParameterSweep struct {
	Model     string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Problem   dynamo.Problem
}

// SweepResult holds the outcome for one parameter value
type SweepResult struct {
	ParamValue float64
	Final      float64
	Min        float64
	Max        float64
	Diverged   bool
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", dynamo.ErrInvalidArgument)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		paramVal := sweep.ParamMin + float64(i)*paramStep
		model, err := registry.GetModel(sweep.Model, map[string]float64{sweep.ParamName: paramVal})
		if err != nil {
			return nil, err
		}

		exp := experiment.New(experiment.Config{Model: sweep.Model, Problem: sweep.Problem})
		if err := exp.Setup(model); err != nil {
			return nil, err
		}

		result, err := exp.Run()
		if err != nil {
			return nil, err
		}

		sr := SweepResult{
			ParamValue: paramVal,
			Final:      result.Final(),
			Min:        result.Values[0],
			Max:        result.Values[0],
			Diverged:   !result.IsValid(),
		}
		for _, v := range result.Values {
			if v < sr.Min {
				sr.Min = v
			}
			if v > sr.Max {
				sr.Max = v
			}
		}

		results = append(results, sr)
	}

	return results, nil
}

package experiment

import (
	"fmt"

	"github.com/san-kum/eulercauchy/internal/dynamo"
	"github.com/san-kum/eulercauchy/internal/integrators"
)

type Config struct {
	Model   string
	Params  map[string]float64
	Problem dynamo.Problem
}

type Experiment struct {
	cfg   Config
	model dynamo.Model
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(model dynamo.Model) error {
	if model == nil {
		return fmt.Errorf("%w: nil model", dynamo.ErrInvalidArgument)
	}
	e.model = model
	return nil
}

func (e *Experiment) Run() (*dynamo.Result, error) {
	if e.model == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return integrators.Solve(e.model.Derive, e.cfg.Problem)
}

// Params returns the effective model parameters after Setup.
func (e *Experiment) Params() map[string]float64 {
	if c, ok := e.model.(dynamo.Configurable); ok {
		return c.GetParams()
	}
	return map[string]float64{}
}

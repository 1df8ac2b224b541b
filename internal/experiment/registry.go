package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/eulercauchy/internal/dynamo"
	"github.com/san-kum/eulercauchy/internal/models"
)

type entry struct {
	describe string
	build    func() dynamo.Model
}

type Registry struct {
	models map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]entry),
	}

	r.models["zero"] = entry{"F(y) = 0", func() dynamo.Model { return models.NewZero() }}
	r.models["constant"] = entry{"F(y) = c", func() dynamo.Model { return models.NewConstant(1.0) }}
	r.models["growth"] = entry{"F(y) = y", func() dynamo.Model { return models.NewGrowth() }}
	r.models["decay"] = entry{"F(y) = -y", func() dynamo.Model { return models.NewDecay() }}
	r.models["linear"] = entry{"F(y) = k*y", func() dynamo.Model { return models.NewLinear(1.0) }}
	r.models["logistic"] = entry{"F(y) = r*y*(1 - y/K)", func() dynamo.Model { return models.NewLogistic() }}

	return r
}

// GetModel builds the named model and applies params to it.
func (r *Registry) GetModel(name string, params map[string]float64) (dynamo.Model, error) {
	e, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown model: %s", dynamo.ErrInvalidArgument, name)
	}

	m := e.build()
	if len(params) == 0 {
		return m, nil
	}

	cfg, ok := m.(dynamo.Configurable)
	if !ok {
		return nil, fmt.Errorf("%w: model %s takes no params", dynamo.ErrInvalidArgument, name)
	}
	// Apply in a fixed order so errors are reproducible.
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := cfg.SetParam(k, params[k]); err != nil {
			return nil, fmt.Errorf("model %s: %w", name, err)
		}
	}
	return m, nil
}

func (r *Registry) Describe(name string) (string, bool) {
	e, ok := r.models[name]
	return e.describe, ok
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

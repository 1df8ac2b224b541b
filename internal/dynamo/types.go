package dynamo

import (
	"math"
)

// MaxGridPoints bounds the number of grid points a single call may allocate.
const MaxGridPoints = 1 << 27

// Func is the right-hand side of dy/dt = F(y). Time is not passed.
type Func func(y float64) float64

type Problem struct {
	T0     float64 `json:"t0" yaml:"t0"`
	H      float64 `json:"h" yaml:"h"`
	TFinal float64 `json:"tfinal" yaml:"tfinal"`
	Y0     float64 `json:"y0" yaml:"y0"`
}

// Points returns the grid length for p. It mirrors a half-open range over
// [T0, TFinal+H) with step H.
func (p Problem) Points() (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	n := math.Ceil((p.TFinal + p.H - p.T0) / p.H)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, invalid(ErrInvalidStep, "h", p.H, "grid size is not finite")
	}
	if n < 1 {
		return 0, invalid(ErrInvalidArgument, "tfinal", p.TFinal, "empty time grid")
	}
	if n > MaxGridPoints {
		return 0, invalid(ErrInvalidStep, "h", p.H, "grid size unbounded")
	}
	return int(n), nil
}

// Validate checks every field for finiteness and the step for non-zero.
func (p Problem) Validate() error {
	if p.H == 0 || !finite(p.H) {
		return invalid(ErrInvalidStep, "h", p.H, "")
	}
	if !finite(p.T0) {
		return invalid(ErrInvalidArgument, "t0", p.T0, "not finite")
	}
	if !finite(p.TFinal) {
		return invalid(ErrInvalidArgument, "tfinal", p.TFinal, "not finite")
	}
	if !finite(p.Y0) {
		return invalid(ErrInvalidArgument, "y0", p.Y0, "not finite")
	}
	return nil
}

type Result struct {
	Times       []float64
	Values      []float64
	Evaluations int
}

// Final returns the last solution value.
func (r *Result) Final() float64 {
	if r == nil || len(r.Values) == 0 {
		return math.NaN()
	}
	return r.Values[len(r.Values)-1]
}

// IsValid reports whether every solution value is finite.
func (r *Result) IsValid() bool {
	for _, v := range r.Values {
		if !finite(v) {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Model is a named scalar right-hand side.
type Model interface {
	Derive(y float64) float64
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

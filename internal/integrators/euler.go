package integrators

import (
	"github.com/san-kum/eulercauchy/internal/dynamo"
)

// Euler is the explicit first-order stepper.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

// Step advances y by one step of size h.
func (e *Euler) Step(f dynamo.Func, y, h float64) float64 {
	s1 := f(y)
	return y + s1*h
}

// Grid returns t0, t0+h, t0+2h, ... over the half-open range [t0, tfinal+h).
func Grid(t0, h, tfinal float64) ([]float64, error) {
	p := dynamo.Problem{T0: t0, H: h, TFinal: tfinal}
	n, err := p.Points()
	if err != nil {
		return nil, err
	}
	return grid(p, n), nil
}

func grid(p dynamo.Problem, n int) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = p.T0 + float64(i)*p.H
	}
	return t
}

// Solve integrates dy/dt = f(y) over the grid of p.
func Solve(f dynamo.Func, p dynamo.Problem) (*dynamo.Result, error) {
	if f == nil {
		return nil, &dynamo.ProblemError{Field: "f", Reason: "nil right-hand side", Wrapped: dynamo.ErrInvalidArgument}
	}
	n, err := p.Points()
	if err != nil {
		return nil, err
	}

	stepper := NewEuler()
	y := make([]float64, n)
	y[0] = p.Y0
	for i := 1; i < n; i++ {
		y[i] = stepper.Step(f, y[i-1], p.H)
	}

	return &dynamo.Result{
		Times:       grid(p, n),
		Values:      y,
		Evaluations: n - 1,
	}, nil
}

// EulerCauchy returns the forward Euler solution of dy/dt = f(y) on the
// grid t0, t0+h, ... described by Grid, starting from y0.
func EulerCauchy(f dynamo.Func, t0, h, tfinal, y0 float64) ([]float64, error) {
	res, err := Solve(f, dynamo.Problem{T0: t0, H: h, TFinal: tfinal, Y0: y0})
	if err != nil {
		return nil, err
	}
	return res.Values, nil
}

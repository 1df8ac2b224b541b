// Package dynamo provides the core types for scalar fixed-step integration.
//
// The package defines the shared vocabulary of the module:
//
//   - [Func]: unary right-hand side of dy/dt = F(y)
//   - [Problem]: start time, step size, end time and initial value
//   - [Result]: time grid, solution sequence and evaluation count
//   - [ErrInvalidStep], [ErrInvalidArgument]: the error taxonomy
//
// # Example
//
//	f := func(y float64) float64 { return y }
//	res, err := integrators.Solve(f, dynamo.Problem{T0: 0, H: 0.5, TFinal: 1, Y0: 2})
//
// # Thread Safety
//
// Nothing in this package holds mutable state. A [Result] is owned by the
// caller once returned.
package dynamo

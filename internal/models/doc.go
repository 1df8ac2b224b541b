// Package models provides scalar right-hand sides for dy/dt = F(y).
//
// Every model implements [dynamo.Model] and [dynamo.Configurable]; its
// Derive method is passed to the integrator as a [dynamo.Func].
package models

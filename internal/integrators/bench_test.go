package integrators

import (
	"testing"

	"github.com/san-kum/eulercauchy/internal/dynamo"
)

func BenchmarkEulerStep(b *testing.B) {
	integrator := NewEuler()
	f := func(y float64) float64 { return -y }
	y := 1.0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y = integrator.Step(f, y, 0.01)
	}
}

func BenchmarkEulerCauchy_1k(b *testing.B) {
	f := func(y float64) float64 { return -y }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EulerCauchy(f, 0, 0.001, 1, 1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolve_1M(b *testing.B) {
	f := func(y float64) float64 { return y * (1 - y) }
	p := dynamo.Problem{T0: 0, H: 1e-5, TFinal: 10, Y0: 0.1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Solve(f, p); err != nil {
			b.Fatal(err)
		}
	}
}

package models

import "fmt"

// Linear is F(y) = k*y.
type Linear struct {
	Rate float64
}

func NewLinear(rate float64) *Linear {
	return &Linear{Rate: rate}
}

// NewGrowth returns F(y) = y.
func NewGrowth() *Linear { return NewLinear(1.0) }

// NewDecay returns F(y) = -y.
func NewDecay() *Linear { return NewLinear(-1.0) }

func (l *Linear) Derive(y float64) float64 {
	return l.Rate * y
}

func (l *Linear) GetParams() map[string]float64 {
	return map[string]float64{"k": l.Rate}
}

func (l *Linear) SetParam(name string, value float64) error {
	switch name {
	case "k":
		l.Rate = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

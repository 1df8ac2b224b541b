package models

import (
	"fmt"

	"github.com/san-kum/eulercauchy/internal/dynamo"
)

// Logistic is F(y) = r*y*(1 - y/K).
type Logistic struct {
	Rate     float64
	Capacity float64
}

func NewLogistic() *Logistic {
	return &Logistic{
		Rate:     1.0,
		Capacity: 1.0,
	}
}

func (l *Logistic) Derive(y float64) float64 {
	return l.Rate * y * (1 - y/l.Capacity)
}

func (l *Logistic) GetParams() map[string]float64 {
	return map[string]float64{
		"r": l.Rate,
		"K": l.Capacity,
	}
}

func (l *Logistic) SetParam(name string, value float64) error {
	switch name {
	case "r":
		l.Rate = value
	case "K":
		if value == 0 {
			return fmt.Errorf("%w: capacity K must be non-zero", dynamo.ErrInvalidArgument)
		}
		l.Capacity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

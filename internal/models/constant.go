package models

import "fmt"

// Constant is F(y) = c. With c = 0 the solution stays at y0.
type Constant struct {
	Value float64
}

func NewConstant(c float64) *Constant {
	return &Constant{Value: c}
}

func NewZero() *Constant { return NewConstant(0) }

func (c *Constant) Derive(_ float64) float64 {
	return c.Value
}

func (c *Constant) GetParams() map[string]float64 {
	return map[string]float64{"c": c.Value}
}

func (c *Constant) SetParam(name string, value float64) error {
	switch name {
	case "c":
		c.Value = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/eulercauchy/internal/dynamo"
)

const (
	DefaultModel  = "growth"
	DefaultT0     = 0.0
	DefaultH      = 0.1
	DefaultTFinal = 1.0
	DefaultY0     = 1.0
)

type Config struct {
	Model  string             `yaml:"model"`
	Params map[string]float64 `yaml:"params,omitempty"`
	T0     float64            `yaml:"t0"`
	H      float64            `yaml:"h"`
	TFinal float64            `yaml:"tfinal"`
	Y0     float64            `yaml:"y0"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:  DefaultModel,
		T0:     DefaultT0,
		H:      DefaultH,
		TFinal: DefaultTFinal,
		Y0:     DefaultY0,
	}
}

func Load(path string) (*Config, error) {
	return LoadWithBase(path, DefaultConfig())
}

// LoadWithBase decodes the file at path over a copy of base; keys absent
// from the file keep the base values.
func LoadWithBase(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Problem() dynamo.Problem {
	return dynamo.Problem{
		T0:     c.T0,
		H:      c.H,
		TFinal: c.TFinal,
		Y0:     c.Y0,
	}
}

// Clone returns a deep copy so presets stay untouched.
func (c *Config) Clone() *Config {
	out := *c
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}

package config

import "sort"

var Presets = map[string]map[string]*Config{
	"growth": {
		"unit": {
			Model: "growth", T0: 0, H: 1, TFinal: 3, Y0: 1,
		},
		"fine": {
			Model: "growth", T0: 0, H: 0.001, TFinal: 1, Y0: 1,
		},
	},
	"decay": {
		"halflife": {
			Model: "decay", T0: 0, H: 0.01, TFinal: 5, Y0: 1,
		},
		"unstable": {
			Model: "decay", T0: 0, H: 2.5, TFinal: 25, Y0: 1,
		},
	},
	"zero": {
		"still": {
			Model: "zero", T0: 0, H: 0.5, TFinal: 1, Y0: 2,
		},
	},
	"logistic": {
		"population": {
			Model: "logistic", Params: map[string]float64{"r": 0.8, "K": 100},
			T0: 0, H: 0.1, TFinal: 20, Y0: 5,
		},
		"chaotic": {
			Model: "logistic", Params: map[string]float64{"r": 2.8, "K": 1},
			T0: 0, H: 1, TFinal: 60, Y0: 0.1,
		},
	},
	"linear": {
		"slow": {
			Model: "linear", Params: map[string]float64{"k": 0.1},
			T0: 0, H: 0.5, TFinal: 30, Y0: 1,
		},
	},
}

// GetPreset returns a copy of the named preset or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package config

import "math"

// Presets map model name to named configurations. The double pendulum
// "classic" preset reproduces the published animation.
var Presets = map[string]map[string]*Config{
	"pendulum": {
		"small": {
			Model: "pendulum", Integrator: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: InitState{Theta1: 0.2},
		},
		"large": {
			Model: "pendulum", Integrator: "rk4", Dt: 0.01, Duration: 20.0,
			InitState: InitState{Theta1: 2.5},
		},
		"spinning": {
			Model: "pendulum", Integrator: "rk4", Dt: 0.01, Duration: 30.0,
			InitState: InitState{Theta1: 0.1, Omega1: 8.0},
		},
	},
	"double_pendulum": {
		"classic": {
			Model: "double_pendulum", Integrator: "rk4", Dt: 0.01, Duration: 30.0,
			InitState: InitState{Theta1: 3 * math.Pi / 7, Theta2: 3 * math.Pi / 4},
		},
		"chaos": {
			Model: "double_pendulum", Integrator: "rk4", Dt: 0.005, Duration: 60.0,
			InitState: InitState{Theta1: 3.0, Theta2: 3.0},
		},
		"gentle": {
			Model: "double_pendulum", Integrator: "rk4", Dt: 0.01, Duration: 30.0,
			InitState: InitState{Theta1: 0.3, Theta2: 0.3},
		},
	},
	"qho": {
		"first_excited": {
			Model: "qho", Duration: 2 * math.Pi, Dt: 0.01,
			Quantum: QuantumConfig{States: []int{1, 2}, GridMin: -5, GridMax: 5, GridN: 512},
		},
		"breathing": {
			Model: "qho", Duration: math.Pi, Dt: 0.01,
			Quantum: QuantumConfig{States: []int{0, 2}, GridMin: -5, GridMax: 5, GridN: 512},
		},
		"ladder": {
			Model: "qho", Duration: 2 * math.Pi, Dt: 0.01,
			Quantum: QuantumConfig{States: []int{0, 1, 2, 3}, GridMin: -6, GridMax: 6, GridN: 768},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
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
	return names
}

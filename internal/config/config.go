package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 30.0
	DefaultFPS      = 30
	DefaultTrailSec = 0.5
	DefaultGridMin  = -5.0
	DefaultGridMax  = 5.0
	DefaultGridN    = 512
)

type Config struct {
	Model      string        `yaml:"model"`
	Integrator string        `yaml:"integrator"`
	Dt         float64       `yaml:"dt"`
	Duration   float64       `yaml:"duration"`
	InitState  InitState     `yaml:"init_state"`
	Quantum    QuantumConfig `yaml:"quantum"`
	Render     RenderConfig  `yaml:"render"`
}

type InitState struct {
	Theta1 float64 `yaml:"theta1"`
	Omega1 float64 `yaml:"omega1"`
	Theta2 float64 `yaml:"theta2"`
	Omega2 float64 `yaml:"omega2"`
}

type QuantumConfig struct {
	// States lists quantum numbers; all listed states get equal weight.
	States  []int   `yaml:"states"`
	GridMin float64 `yaml:"grid_min"`
	GridMax float64 `yaml:"grid_max"`
	GridN   int     `yaml:"grid_n"`
}

type RenderConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	FPS      int     `yaml:"fps"`
	TrailSec float64 `yaml:"trail_seconds"`
	Output   string  `yaml:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "double_pendulum",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		InitState: InitState{
			Theta1: 3 * math.Pi / 7,
			Theta2: 3 * math.Pi / 4,
		},
		Quantum: QuantumConfig{
			States:  []int{1, 2},
			GridMin: DefaultGridMin,
			GridMax: DefaultGridMax,
			GridN:   DefaultGridN,
		},
		Render: RenderConfig{
			Width:    480,
			Height:   480,
			FPS:      DefaultFPS,
			TrailSec: DefaultTrailSec,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Render.FPS)
	}
	for _, n := range c.Quantum.States {
		if n < 0 {
			return fmt.Errorf("quantum numbers must be non-negative, got %d", n)
		}
	}
	if c.Quantum.GridN < 2 {
		return fmt.Errorf("grid needs at least 2 points, got %d", c.Quantum.GridN)
	}
	return nil
}

// GetInitState returns the classical initial state vector for the
// configured model.
func (c *Config) GetInitState() []float64 {
	switch c.Model {
	case "double_pendulum":
		return []float64{c.InitState.Theta1, c.InitState.Omega1, c.InitState.Theta2, c.InitState.Omega2}
	default:
		return []float64{c.InitState.Theta1, c.InitState.Omega1}
	}
}

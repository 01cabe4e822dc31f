package config

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "double_pendulum", cfg.Model)
	assert.InDelta(t, 3*math.Pi/7, cfg.InitState.Theta1, 1e-12)
	assert.InDelta(t, 3*math.Pi/4, cfg.InitState.Theta2, 1e-12)
	assert.NoError(t, cfg.Validate())
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physim.yaml")

	cfg := DefaultConfig()
	cfg.Model = "qho"
	cfg.Quantum.States = []int{0, 3}
	cfg.Render.Output = "qho.gif"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "qho", loaded.Model)
	assert.Equal(t, []int{0, 3}, loaded.Quantum.States)
	assert.Equal(t, "qho.gif", loaded.Render.Output)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")

	cfg := DefaultConfig()
	cfg.Dt = -1
	require.NoError(t, Save(path, cfg))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative dt", func(c *Config) { c.Dt = -0.1 }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"zero fps", func(c *Config) { c.Render.FPS = 0 }},
		{"negative quantum number", func(c *Config) { c.Quantum.States = []int{-1} }},
		{"degenerate grid", func(c *Config) { c.Quantum.GridN = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("double_pendulum", "classic")
	require.NotNil(t, cfg)
	assert.InDelta(t, 3*math.Pi/7, cfg.InitState.Theta1, 1e-12)
	assert.Equal(t, 30.0, cfg.Duration)

	assert.Nil(t, GetPreset("double_pendulum", "nope"))
	assert.Nil(t, GetPreset("nope", "classic"))
}

func TestListPresets(t *testing.T) {
	assert.NotEmpty(t, ListPresets("qho"))
	assert.Nil(t, ListPresets("nonexistent"))
}

func TestGetInitState(t *testing.T) {
	cfg := DefaultConfig()
	assert.Len(t, cfg.GetInitState(), 4)

	cfg.Model = "pendulum"
	assert.Len(t, cfg.GetInitState(), 2)
}

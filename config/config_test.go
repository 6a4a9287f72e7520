package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 10*time.Second, cfg.Recorder.MaxRecordingTime)
	assert.Equal(t, 2.0, cfg.Recorder.PositionThreshold)
	assert.Equal(t, 10*time.Second, cfg.Clones.SpawnInterval)
	assert.Equal(t, 15, cfg.Clones.MaxClones)
	assert.Equal(t, 50.0, cfg.Clones.SpawnRadius)
	assert.Equal(t, 3.0, cfg.Clones.CompressionThreshold)
	assert.True(t, cfg.Clones.SpawningEnabled)
	assert.Equal(t, 30*time.Second, cfg.Degradation.Start)
	assert.Equal(t, 60*time.Second, cfg.Degradation.Full)
	assert.Equal(t, 5.0, cfg.Clone.InterpolationSpeed)
	assert.Equal(t, 120*time.Second, cfg.Game.Duration)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.True(t, cfg.Audio.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero recording time", func(c *Config) { c.Recorder.MaxRecordingTime = 0 }},
		{"negative threshold", func(c *Config) { c.Recorder.PositionThreshold = -1 }},
		{"zero spawn interval", func(c *Config) { c.Clones.SpawnInterval = 0 }},
		{"no clones", func(c *Config) { c.Clones.MaxClones = 0 }},
		{"inverted degradation", func(c *Config) { c.Degradation.Full = c.Degradation.Start }},
		{"zero interpolation", func(c *Config) { c.Clone.InterpolationSpeed = 0 }},
		{"zero duration", func(c *Config) { c.Game.Duration = 0 }},
		{"empty arena", func(c *Config) { c.Game.ArenaWidth = 0 }},
		{"zero player speed", func(c *Config) { c.Player.Speed = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestNewConfigFromViperOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("clones.max_clones", 4)
	v.Set("clones.spawn_interval", "5s")
	v.Set("degradation.full", "90s")

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Clones.MaxClones)
	assert.Equal(t, 5*time.Second, cfg.Clones.SpawnInterval)
	assert.Equal(t, 90*time.Second, cfg.Degradation.Full)

	v.Set("clones.max_clones", 0)
	_, err = NewConfigFromViper(v)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clone-chaos.yaml")
	data := []byte("clones:\n  max_clones: 7\ngame:\n  duration: 90s\n  seed: 42\naudio:\n  enabled: false\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("CLONECHAOS_CLONES_SPAWN_RADIUS", "80")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Clones.MaxClones)
	assert.Equal(t, 90*time.Second, cfg.Game.Duration)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 80.0, cfg.Clones.SpawnRadius)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

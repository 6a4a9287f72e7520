// Package config loads runtime settings through viper with defaults and validation
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/clone-chaos/constants"
)

// EnvPrefix namespaces environment overrides, e.g. CLONECHAOS_CLONES_MAX_CLONES
const EnvPrefix = "CLONECHAOS"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full runtime configuration
type Config struct {
	Logger      LoggerConfig      `mapstructure:"logger" yaml:"logger"`
	Recorder    RecorderConfig    `mapstructure:"recorder" yaml:"recorder"`
	Clones      ClonesConfig      `mapstructure:"clones" yaml:"clones"`
	Degradation DegradationConfig `mapstructure:"degradation" yaml:"degradation"`
	Clone       CloneConfig       `mapstructure:"clone" yaml:"clone"`
	Game        GameConfig        `mapstructure:"game" yaml:"game"`
	Player      PlayerConfig      `mapstructure:"player" yaml:"player"`
	Audio       AudioConfig       `mapstructure:"audio" yaml:"audio"`
}

// LoggerConfig holds all the configuration for the logger
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// RecorderConfig bounds recording sessions
type RecorderConfig struct {
	MaxRecordingTime  time.Duration `mapstructure:"max_recording_time" yaml:"max_recording_time"`
	PositionThreshold float64       `mapstructure:"position_threshold" yaml:"position_threshold"`
}

// ClonesConfig drives the spawn scheduler
type ClonesConfig struct {
	SpawnInterval        time.Duration `mapstructure:"spawn_interval" yaml:"spawn_interval"`
	MaxClones            int           `mapstructure:"max_clones" yaml:"max_clones"`
	SpawnRadius          float64       `mapstructure:"spawn_radius" yaml:"spawn_radius"`
	CompressionThreshold float64       `mapstructure:"compression_threshold" yaml:"compression_threshold"`
	CleanupGrace         time.Duration `mapstructure:"cleanup_grace" yaml:"cleanup_grace"`
	SpawningEnabled      bool          `mapstructure:"spawning_enabled" yaml:"spawning_enabled"`
}

// DegradationConfig is the age window over which clones lose fidelity
type DegradationConfig struct {
	Start time.Duration `mapstructure:"start" yaml:"start"`
	Full  time.Duration `mapstructure:"full" yaml:"full"`
}

// CloneConfig tunes clone bodies
type CloneConfig struct {
	InterpolationSpeed float64 `mapstructure:"interpolation_speed" yaml:"interpolation_speed"`
	Size               float64 `mapstructure:"size" yaml:"size"`
}

// GameConfig covers the round and arena
type GameConfig struct {
	Duration    time.Duration `mapstructure:"duration" yaml:"duration"`
	ArenaWidth  float64       `mapstructure:"arena_width" yaml:"arena_width"`
	ArenaHeight float64       `mapstructure:"arena_height" yaml:"arena_height"`
	// Seed fixes clone randomness; 0 picks a random seed
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
}

// PlayerConfig tunes the live agent
type PlayerConfig struct {
	Speed          float64       `mapstructure:"speed" yaml:"speed"`
	Size           float64       `mapstructure:"size" yaml:"size"`
	RecordInterval time.Duration `mapstructure:"record_interval" yaml:"record_interval"`
	RecordDistance float64       `mapstructure:"record_distance" yaml:"record_distance"`
}

// AudioConfig toggles sound
type AudioConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// NewDefaultConfig creates a new configuration struct populated with default values
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for every key
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "clone-chaos")
	v.SetDefault("logger.log_file", "clone-chaos.log")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	// -- Recorder --
	v.SetDefault("recorder.max_recording_time", constants.MaxRecordingTime)
	v.SetDefault("recorder.position_threshold", constants.RecorderCompressionThreshold)

	// -- Clones --
	v.SetDefault("clones.spawn_interval", constants.SpawnInterval)
	v.SetDefault("clones.max_clones", constants.MaxClones)
	v.SetDefault("clones.spawn_radius", constants.SpawnRadius)
	v.SetDefault("clones.compression_threshold", constants.SpawnCompressionThreshold)
	v.SetDefault("clones.cleanup_grace", constants.CleanupGrace)
	v.SetDefault("clones.spawning_enabled", true)

	// -- Degradation --
	v.SetDefault("degradation.start", constants.DegradationStart)
	v.SetDefault("degradation.full", constants.DegradationFull)

	// -- Clone --
	v.SetDefault("clone.interpolation_speed", constants.InterpolationSpeed)
	v.SetDefault("clone.size", constants.CloneSize)

	// -- Game --
	v.SetDefault("game.duration", constants.GameDuration)
	v.SetDefault("game.arena_width", constants.ArenaWidth)
	v.SetDefault("game.arena_height", constants.ArenaHeight)
	v.SetDefault("game.seed", 0)

	// -- Player --
	v.SetDefault("player.speed", constants.PlayerSpeed)
	v.SetDefault("player.size", constants.PlayerSize)
	v.SetDefault("player.record_interval", constants.PlayerRecordInterval)
	v.SetDefault("player.record_distance", constants.PlayerRecordDistance)

	// -- Audio --
	v.SetDefault("audio.enabled", true)
}

// BindEnv wires CLONECHAOS_* environment overrides into v
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewConfigFromViper unmarshals and validates v
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads an optional config file, applies env overrides and validates
// An empty path looks for config.yaml in the working directory
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return NewConfigFromViper(v)
}

// Validate checks the configuration for sane values
func (c *Config) Validate() error {
	switch {
	case c.Recorder.MaxRecordingTime <= 0:
		return fmt.Errorf("%w: recorder.max_recording_time must be positive", ErrInvalidConfig)
	case c.Recorder.PositionThreshold < 0:
		return fmt.Errorf("%w: recorder.position_threshold must not be negative", ErrInvalidConfig)
	case c.Clones.SpawnInterval <= 0:
		return fmt.Errorf("%w: clones.spawn_interval must be positive", ErrInvalidConfig)
	case c.Clones.MaxClones < 1:
		return fmt.Errorf("%w: clones.max_clones must be at least 1", ErrInvalidConfig)
	case c.Clones.CompressionThreshold < 0:
		return fmt.Errorf("%w: clones.compression_threshold must not be negative", ErrInvalidConfig)
	case c.Clones.CleanupGrace < 0:
		return fmt.Errorf("%w: clones.cleanup_grace must not be negative", ErrInvalidConfig)
	case c.Degradation.Start < 0:
		return fmt.Errorf("%w: degradation.start must not be negative", ErrInvalidConfig)
	case c.Degradation.Full <= c.Degradation.Start:
		return fmt.Errorf("%w: degradation.full must be greater than degradation.start", ErrInvalidConfig)
	case c.Clone.InterpolationSpeed <= 0:
		return fmt.Errorf("%w: clone.interpolation_speed must be positive", ErrInvalidConfig)
	case c.Game.Duration <= 0:
		return fmt.Errorf("%w: game.duration must be positive", ErrInvalidConfig)
	case c.Game.ArenaWidth <= 0 || c.Game.ArenaHeight <= 0:
		return fmt.Errorf("%w: game arena dimensions must be positive", ErrInvalidConfig)
	case c.Player.Speed <= 0:
		return fmt.Errorf("%w: player.speed must be positive", ErrInvalidConfig)
	case c.Player.RecordInterval <= 0:
		return fmt.Errorf("%w: player.record_interval must be positive", ErrInvalidConfig)
	}
	return nil
}

package game

import (
	"github.com/lixenwraith/clone-chaos/clone"
	"github.com/lixenwraith/clone-chaos/config"
	"github.com/lixenwraith/clone-chaos/player"
	"github.com/lixenwraith/clone-chaos/recording"
	"github.com/lixenwraith/clone-chaos/timer"
)

// RecorderConfig maps the recorder section onto recording.Config
func RecorderConfig(cfg *config.Config) recording.Config {
	return recording.Config{
		MaxRecordingTime:     cfg.Recorder.MaxRecordingTime,
		CompressionThreshold: cfg.Recorder.PositionThreshold,
	}
}

// ManagerConfig maps the clones, degradation and clone sections onto clone.ManagerConfig
func ManagerConfig(cfg *config.Config) clone.ManagerConfig {
	return clone.ManagerConfig{
		SpawnInterval:        cfg.Clones.SpawnInterval,
		MaxClones:            cfg.Clones.MaxClones,
		SpawnRadius:          cfg.Clones.SpawnRadius,
		CompressionThreshold: cfg.Clones.CompressionThreshold,
		CleanupGrace:         cfg.Clones.CleanupGrace,
		SpawningEnabled:      cfg.Clones.SpawningEnabled,
		Clone: clone.Config{
			DegradationStart:   cfg.Degradation.Start,
			DegradationFull:    cfg.Degradation.Full,
			InterpolationSpeed: cfg.Clone.InterpolationSpeed,
			Size:               cfg.Clone.Size,
		},
	}
}

// PlayerConfig maps the player and arena settings onto player.Config
func PlayerConfig(cfg *config.Config) player.Config {
	return player.Config{
		Speed:          cfg.Player.Speed,
		Size:           cfg.Player.Size,
		RecordInterval: cfg.Player.RecordInterval,
		RecordDistance: cfg.Player.RecordDistance,
		ArenaWidth:     cfg.Game.ArenaWidth,
		ArenaHeight:    cfg.Game.ArenaHeight,
	}
}

// TimerConfig maps the round duration onto timer.Config
func TimerConfig(cfg *config.Config) timer.Config {
	tc := timer.DefaultConfig()
	tc.Duration = cfg.Game.Duration
	return tc
}

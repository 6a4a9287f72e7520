// Package timer implements the round countdown and the time-pressure effects derived from it
package timer

import (
	"fmt"
	"math"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/clone-chaos/constants"
	"github.com/lixenwraith/clone-chaos/events"
)

// Config tunes a GameTimer
type Config struct {
	Duration time.Duration
	// WarningThresholds in whole seconds remaining
	WarningThresholds []int
}

// DefaultConfig returns the stock round length and warnings
func DefaultConfig() Config {
	return Config{
		Duration:          constants.GameDuration,
		WarningThresholds: slices.Clone(constants.WarningThresholds),
	}
}

// Effects are environmental intensities scaled by danger level
type Effects struct {
	ScreenShake       float64 // cells of jitter
	RedTint           float64 // blend factor
	ParticleIntensity float64
	SoundDistortion   float64
}

// DebugInfo is a diagnostic snapshot of the countdown
type DebugInfo struct {
	Remaining         time.Duration
	RemainingSeconds  int
	Formatted         string
	Running           bool
	Paused            bool
	DangerLevel       float64
	Flashing          bool
	TimeRatio         float64
	TriggeredWarnings []int
}

// GameTimer counts the round down by accumulated tick deltas
// Warnings, danger changes and time-up are pushed to the sink, each at most once per round
type GameTimer struct {
	cfg    Config
	sink   events.Sink
	logger *zap.Logger

	remaining time.Duration
	running   bool
	paused    bool
	expired   bool

	triggered map[int]bool
	danger    float64

	flashing   bool
	flashTimer time.Duration
}

// New creates a stopped timer holding the full duration
func New(cfg Config, sink events.Sink, logger *zap.Logger) *GameTimer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameTimer{
		cfg:       cfg,
		sink:      sink,
		logger:    logger.Named("timer"),
		remaining: cfg.Duration,
		triggered: make(map[int]bool),
	}
}

// Start begins counting; no-op when already running
func (t *GameTimer) Start() {
	if t.running {
		return
	}
	t.running = true
	t.paused = false
	t.logger.Info("Game timer started", zap.Duration("remaining", t.remaining))
}

// Pause freezes the countdown
func (t *GameTimer) Pause() {
	if t.running && !t.paused {
		t.paused = true
		t.logger.Debug("Game timer paused")
	}
}

// Resume continues a paused countdown
func (t *GameTimer) Resume() {
	if t.running && t.paused {
		t.paused = false
		t.logger.Debug("Game timer resumed")
	}
}

// Stop halts counting without resetting remaining time
func (t *GameTimer) Stop() {
	t.running = false
	t.paused = false
}

// Reset stops the timer and restores the full duration; d > 0 replaces the duration
func (t *GameTimer) Reset(d time.Duration) {
	t.Stop()
	if d > 0 {
		t.cfg.Duration = d
	}
	t.remaining = t.cfg.Duration
	t.expired = false
	clear(t.triggered)
	t.danger = 0
	t.flashing = false
	t.flashTimer = 0
	t.logger.Debug("Game timer reset", zap.Duration("duration", t.cfg.Duration))
}

// Update advances the countdown by dt
func (t *GameTimer) Update(dt time.Duration, now time.Time) {
	if !t.running || t.paused {
		return
	}

	t.remaining = max(0, t.remaining-dt)

	t.updateDangerLevel(now)
	t.checkWarnings(now)
	t.updateFlash(dt)

	if t.remaining == 0 && !t.expired {
		t.expired = true
		t.running = false
		t.logger.Info("Time is up")
		t.emit(events.EventTimeUp, nil, now)
	}
}

func (t *GameTimer) updateDangerLevel(now time.Time) {
	ratio := t.TimeRatio()

	level := 0.0
	switch {
	case ratio <= 0.1:
		level = 1
	case ratio <= 0.25:
		level = 0.7
	case ratio <= 0.5:
		level = 0.3
	}

	if level != t.danger {
		t.danger = level
		t.emit(events.EventDangerLevelChange, &events.DangerLevelPayload{Level: level}, now)
	}
	t.flashing = t.danger >= 0.7
}

func (t *GameTimer) checkWarnings(now time.Time) {
	secs := t.RemainingSeconds()
	for _, threshold := range t.cfg.WarningThresholds {
		if secs <= threshold && !t.triggered[threshold] {
			t.triggered[threshold] = true
			t.logger.Info("Time warning", zap.Int("seconds", threshold))
			t.emit(events.EventTimerWarning, &events.TimerWarningPayload{Seconds: threshold}, now)
		}
	}
}

func (t *GameTimer) flashPeriod() time.Duration {
	return time.Duration((0.5 - t.danger*0.3) * float64(time.Second))
}

func (t *GameTimer) updateFlash(dt time.Duration) {
	if !t.flashing {
		return
	}
	t.flashTimer += dt
	if t.flashTimer >= t.flashPeriod() {
		t.flashTimer = 0
	}
}

func (t *GameTimer) emit(et events.EventType, payload any, now time.Time) {
	if t.sink == nil {
		return
	}
	t.sink.Push(events.GameEvent{Type: et, Payload: payload, Timestamp: now})
}

// AddTime extends the round, never beyond its full duration
func (t *GameTimer) AddTime(d time.Duration) {
	t.remaining = min(t.cfg.Duration, t.remaining+d)
	t.logger.Debug("Added time", zap.Duration("amount", d))
}

// RemoveTime shortens the round, never below zero
func (t *GameTimer) RemoveTime(d time.Duration) {
	t.remaining = max(0, t.remaining-d)
	t.logger.Debug("Removed time", zap.Duration("amount", d))
}

// Remaining returns the time left
func (t *GameTimer) Remaining() time.Duration { return t.remaining }

// RemainingSeconds rounds the time left up to whole seconds
func (t *GameTimer) RemainingSeconds() int {
	return int(math.Ceil(t.remaining.Seconds()))
}

// Formatted renders the time left as M:SS
func (t *GameTimer) Formatted() string {
	secs := t.RemainingSeconds()
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// TimeRatio is remaining over duration, 1 when full
func (t *GameTimer) TimeRatio() float64 {
	if t.cfg.Duration <= 0 {
		return 0
	}
	return float64(t.remaining) / float64(t.cfg.Duration)
}

func (t *GameTimer) IsRunning() bool { return t.running }
func (t *GameTimer) IsPaused() bool { return t.paused }
func (t *GameTimer) IsExpired() bool { return t.expired }
func (t *GameTimer) DangerLevel() float64 { return t.danger }
func (t *GameTimer) IsCritical() bool { return t.danger >= 0.7 }
func (t *GameTimer) IsFlashing() bool { return t.flashing }
func (t *GameTimer) Duration() time.Duration { return t.cfg.Duration }

// FlashVisible reports the lit half of the flash cycle
func (t *GameTimer) FlashVisible() bool {
	if !t.flashing {
		return false
	}
	return float64(t.flashTimer)/float64(t.flashPeriod()) < 0.5
}

// Effects scales environmental intensities by the current danger level
func (t *GameTimer) Effects() Effects {
	d := t.danger
	return Effects{
		ScreenShake:       d * 2,
		RedTint:           d * 0.3,
		ParticleIntensity: d * 10,
		SoundDistortion:   d * 0.5,
	}
}

// DebugInfo snapshots countdown state
func (t *GameTimer) DebugInfo() DebugInfo {
	warned := make([]int, 0, len(t.triggered))
	for s := range t.triggered {
		warned = append(warned, s)
	}
	slices.Sort(warned)
	slices.Reverse(warned)

	return DebugInfo{
		Remaining:         t.remaining,
		RemainingSeconds:  t.RemainingSeconds(),
		Formatted:         t.Formatted(),
		Running:           t.running,
		Paused:            t.paused,
		DangerLevel:       t.danger,
		Flashing:          t.flashing,
		TimeRatio:         t.TimeRatio(),
		TriggeredWarnings: warned,
	}
}

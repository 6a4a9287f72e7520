// Package recording captures the live player's actions into bounded sessions
package recording

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/clone-chaos/constants"
	"github.com/lixenwraith/clone-chaos/engine"
	"github.com/lixenwraith/clone-chaos/vmath"
)

// Session is a bounded recording buffer
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time
	Actions   []Action
	Active    bool
}

// Config tunes a Recorder
type Config struct {
	MaxRecordingTime     time.Duration
	CompressionThreshold float64
}

// DefaultConfig returns the stock recording parameters
func DefaultConfig() Config {
	return Config{
		MaxRecordingTime:     constants.MaxRecordingTime,
		CompressionThreshold: constants.RecorderCompressionThreshold,
	}
}

// Recorder owns the current recording session
// Not safe for concurrent use; driven from the game loop only
type Recorder struct {
	cfg    Config
	clock  engine.TimeProvider
	logger *zap.Logger

	session Session
}

// NewRecorder creates an idle recorder; a nil logger is replaced by a no-op logger
func NewRecorder(cfg Config, clock engine.TimeProvider, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		cfg:    cfg,
		clock:  clock,
		logger: logger.Named("recorder"),
	}
}

// Start discards any prior buffer and opens a new session at the current time
func (r *Recorder) Start() {
	r.session = Session{
		ID:        uuid.New(),
		StartedAt: r.clock.Now(),
		Active:    true,
	}
	r.logger.Debug("Started recording actions", zap.Stringer("session", r.session.ID))
}

// Stop closes the session and returns an independently owned copy of its actions
// The closed buffer remains readable until the next Start or Clear
func (r *Recorder) Stop() []Action {
	r.session.Active = false
	out := CloneActions(r.session.Actions)
	r.logger.Debug("Stopped recording",
		zap.Stringer("session", r.session.ID),
		zap.Int("actions", len(out)),
	)
	return out
}

// Record stamps and appends a deep copy of a
// No-op when idle. When the session cap is reached the session stops and a is discarded.
// Returns true when the action was appended.
func (r *Recorder) Record(a Action) bool {
	if !r.session.Active {
		return false
	}

	elapsed := r.clock.Now().Sub(r.session.StartedAt)
	if elapsed >= r.cfg.MaxRecordingTime {
		r.Stop()
		return false
	}
	// Clock regressions must not break timestamp ordering
	if n := len(r.session.Actions); n > 0 && elapsed < r.session.Actions[n-1].Timestamp {
		elapsed = r.session.Actions[n-1].Timestamp
	}
	if elapsed < 0 {
		elapsed = 0
	}

	stored := a.Clone()
	stored.Timestamp = elapsed
	r.session.Actions = append(r.session.Actions, stored)
	return true
}

// RecordMovement records a movement waypoint
func (r *Recorder) RecordMovement(position, velocity vmath.Vec2) bool {
	return r.Record(NewMove(position, velocity))
}

// RecordInteraction records an interaction; targetID may be empty and position nil
func (r *Recorder) RecordInteraction(kind, targetID string, position *vmath.Vec2) bool {
	return r.Record(NewInteract(kind, targetID, position))
}

// RecordStateChange records a diagnostic state transition
func (r *Recorder) RecordStateChange(kind string, oldValue, newValue any) bool {
	return r.Record(NewStateChange(kind, oldValue, newValue))
}

// Clear drops the buffer and leaves the recorder idle
func (r *Recorder) Clear() {
	r.session = Session{}
}

// IsRecording reports whether a session is open
func (r *Recorder) IsRecording() bool {
	return r.session.Active
}

// SessionID identifies the current (or last closed) session
func (r *Recorder) SessionID() uuid.UUID {
	return r.session.ID
}

// StartedAt returns the current session's start time
func (r *Recorder) StartedAt() time.Time {
	return r.session.StartedAt
}

// Len returns the number of buffered actions
func (r *Recorder) Len() int {
	return len(r.session.Actions)
}

// Actions returns a deep copy of the buffer
func (r *Recorder) Actions() []Action {
	return CloneActions(r.session.Actions)
}

// ActionsInRange returns copies of buffered actions with from <= timestamp <= to
func (r *Recorder) ActionsInRange(from, to time.Duration) []Action {
	var out []Action
	for _, a := range r.session.Actions {
		if a.Timestamp >= from && a.Timestamp <= to {
			out = append(out, a.Clone())
		}
	}
	return out
}

// TotalDuration is the timestamp of the last buffered action, 0 when empty
func (r *Recorder) TotalDuration() time.Duration {
	n := len(r.session.Actions)
	if n == 0 {
		return 0
	}
	return r.session.Actions[n-1].Timestamp
}

// Compress returns the buffer with redundant moves removed at the recorder's own threshold
func (r *Recorder) Compress() []Action {
	return Compress(r.session.Actions, r.cfg.CompressionThreshold)
}

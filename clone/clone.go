// Package clone replays harvested recording sessions as degrading time-echo entities
// and schedules their spawning from the live recorder.
package clone

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/clone-chaos/constants"
	"github.com/lixenwraith/clone-chaos/engine"
	"github.com/lixenwraith/clone-chaos/events"
	"github.com/lixenwraith/clone-chaos/recording"
	"github.com/lixenwraith/clone-chaos/vmath"
)

// Config tunes playback and degradation of a single clone
type Config struct {
	DegradationStart   time.Duration
	DegradationFull    time.Duration
	InterpolationSpeed float64
	Size               float64
}

// DefaultConfig returns the stock clone parameters
func DefaultConfig() Config {
	return Config{
		DegradationStart:   constants.DegradationStart,
		DegradationFull:    constants.DegradationFull,
		InterpolationSpeed: constants.InterpolationSpeed,
		Size:               constants.CloneSize,
	}
}

// RGB is an 8-bit color
type RGB struct {
	R, G, B uint8
}

// BaseColor is the color of an undegraded clone
var BaseColor = RGB{R: 255, G: 170, B: 0}

// Phase is the degradation phase derived from the level
type Phase uint8

const (
	PhaseFresh Phase = iota
	PhaseDegrading
	PhaseCritical
)

func (p Phase) String() string {
	switch p {
	case PhaseFresh:
		return "fresh"
	case PhaseDegrading:
		return "degrading"
	default:
		return "critical"
	}
}

// CloneDebugInfo is a per-clone diagnostic row
type CloneDebugInfo struct {
	ID          int
	Session     string
	Position    vmath.Vec2
	Target      vmath.Vec2
	Degradation float64
	Phase       Phase
	Cursor      int
	Actions     int
	Finished    bool
	Active      bool
	Age         time.Duration
}

// Clone replays a frozen action sequence with age-driven loss of fidelity
//
// Lifecycle: Fresh+Playing -> (Degrading|Critical) x (Playing|Finished) -> Inactive
// Finished clones stay active and renderable until deactivated or evicted
type Clone struct {
	id      int
	session uuid.UUID
	cfg     Config

	actions []recording.Action
	cursor  int

	spawnPosition vmath.Vec2
	spawnTime     time.Time
	playbackStart time.Time

	position       vmath.Vec2
	velocity       vmath.Vec2
	target         vmath.Vec2
	lastActionTime time.Time

	degradation float64
	active      bool
	finished    bool

	// Visual state, consumed by the renderer
	color        RGB
	glow         float64
	flickering   bool
	flickerTimer time.Duration

	rng    engine.RandomSource
	sink   events.Sink
	logger *zap.Logger
}

// New creates a clone that owns a deep copy of actions
// sink may be nil when nothing consumes interactions
func New(id int, session uuid.UUID, actions []recording.Action, spawnPosition vmath.Vec2, spawnTime time.Time,
	cfg Config, rng engine.RandomSource, sink events.Sink, logger *zap.Logger) *Clone {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Clone{
		id:            id,
		session:       session,
		cfg:           cfg,
		actions:       recording.CloneActions(actions),
		spawnPosition: spawnPosition,
		spawnTime:     spawnTime,
		playbackStart: spawnTime,
		position:      spawnPosition,
		target:        spawnPosition,
		active:        true,
		color:         BaseColor,
		glow:          1.0,
		rng:           rng,
		sink:          sink,
		logger:        logger.With(zap.Int("clone", id)),
	}
}

// DegradationAt maps clone age to a level in [0, 1]
// Zero up to start, linear to 1 at full, clamped
func DegradationAt(age, start, full time.Duration) float64 {
	if age <= start {
		return 0
	}
	if full <= start {
		return 1
	}
	return vmath.Clamp01(float64(age-start) / float64(full-start))
}

// Update advances degradation, playback and interpolation by one tick
// No-op once inactive
func (c *Clone) Update(dt time.Duration, now time.Time) {
	if !c.active {
		return
	}

	c.updateDegradation(now)
	c.processActions(now)
	c.updateVisualEffects(dt)
	c.interpolatePosition(dt)
}

func (c *Clone) updateDegradation(now time.Time) {
	age := now.Sub(c.spawnTime)
	if age <= c.cfg.DegradationStart {
		return
	}

	c.degradation = DegradationAt(age, c.cfg.DegradationStart, c.cfg.DegradationFull)

	d := c.degradation
	c.color = RGB{
		R: uint8(255 * (1 - d*0.5)),
		G: uint8(170 * (1 - d)),
		B: uint8(100 * d),
	}
	c.flickering = d > constants.FlickerLevel
}

// processActions executes every action whose jittered timestamp has passed
// Jitter is redrawn on each evaluation until the action fires
func (c *Clone) processActions(now time.Time) {
	elapsed := now.Sub(c.playbackStart)

	for c.cursor < len(c.actions) {
		action := &c.actions[c.cursor]

		due := action.Timestamp
		if c.degradation > 0 {
			window := float64(constants.MaxTimingJitter) * c.degradation
			due += time.Duration((c.rng.Float64() - 0.5) * window)
		}
		if elapsed < due {
			break
		}

		c.execute(action, now)
		c.cursor++
	}

	if c.cursor >= len(c.actions) && !c.finished {
		c.finished = true
		c.logger.Debug("Clone finished playback", zap.Int("actions", len(c.actions)))
		c.emit(events.EventCloneFinished, &events.CloneFinishedPayload{CloneID: c.id}, now)
	}
}

func (c *Clone) execute(action *recording.Action, now time.Time) {
	switch action.Kind {
	case recording.KindMove:
		c.executeMovement(action, now)
	case recording.KindInteract:
		c.executeInteraction(action, now)
	case recording.KindStateChange:
		// Diagnostic only
	}
}

func (c *Clone) executeMovement(action *recording.Action, now time.Time) {
	target := action.Move.Position

	if c.degradation > 0 {
		maxErr := constants.MaxPositionError * c.degradation
		errX := (c.rng.Float64() - 0.5) * maxErr
		errY := (c.rng.Float64() - 0.5) * maxErr
		target = target.Add(vmath.V2(errX, errY))

		if c.rng.Float64() < c.degradation*constants.MoveSkipFactor {
			return
		}
	}

	c.target = target
	c.velocity = action.Move.Velocity
	c.lastActionTime = now
}

func (c *Clone) executeInteraction(action *recording.Action, now time.Time) {
	if c.degradation > constants.InteractFailMinLevel &&
		c.rng.Float64() < c.degradation*constants.InteractFailFactor {
		return
	}

	c.logger.Debug("Clone interaction", zap.String("kind", action.Interact.Kind))
	c.emit(events.EventCloneInteraction, &events.InteractionPayload{
		Source:      events.SourceClone,
		CloneID:     c.id,
		Kind:        action.Interact.Kind,
		TargetID:    action.Interact.TargetID,
		Position:    c.position,
		HasPosition: true,
	}, now)
}

func (c *Clone) updateVisualEffects(dt time.Duration) {
	c.glow = 1.0 - c.degradation*0.7

	if !c.flickering {
		return
	}
	c.flickerTimer += dt
	if c.flickerTimer > constants.FlickerPeriod {
		if c.rng.Float64() <= 0.5 {
			c.glow *= 0.3
		}
		c.flickerTimer = 0
	}
}

// interpolatePosition steps toward the target at a fixed per-frame speed
// Recorded velocity is stored but not integrated
func (c *Clone) interpolatePosition(dt time.Duration) {
	distance := c.position.Distance(c.target)
	if distance <= constants.SnapDistance {
		return
	}
	step := c.cfg.InterpolationSpeed * dt.Seconds() * constants.InterpolationFrameScale
	c.position = c.position.MoveToward(c.target, min(distance, step))
}

func (c *Clone) emit(t events.EventType, payload any, now time.Time) {
	if c.sink == nil {
		return
	}
	c.sink.Push(events.GameEvent{Type: t, Payload: payload, Timestamp: now})
}

// Deactivate stops ticking; the manager evicts the clone on its next cleanup
func (c *Clone) Deactivate() {
	if !c.active {
		return
	}
	c.active = false
	c.logger.Debug("Clone deactivated")
}

// CanInteract reports whether puzzle elements should respond to this clone
func (c *Clone) CanInteract() bool {
	return c.active && c.degradation < constants.InteractLevelLimit
}

// Reliability is 1 - degradation
func (c *Clone) Reliability() float64 {
	return 1 - c.degradation
}

// Phase derives the degradation phase
func (c *Clone) Phase() Phase {
	switch {
	case c.degradation >= constants.FlickerLevel:
		return PhaseCritical
	case c.degradation > 0:
		return PhaseDegrading
	default:
		return PhaseFresh
	}
}

func (c *Clone) ID() int { return c.id }
func (c *Clone) Session() uuid.UUID { return c.session }
func (c *Clone) Position() vmath.Vec2 { return c.position }
func (c *Clone) Velocity() vmath.Vec2 { return c.velocity }
func (c *Clone) Target() vmath.Vec2 { return c.target }
func (c *Clone) SpawnPosition() vmath.Vec2 { return c.spawnPosition }
func (c *Clone) SpawnTime() time.Time { return c.spawnTime }
func (c *Clone) Size() float64 { return c.cfg.Size }
func (c *Clone) IsActive() bool { return c.active }
func (c *Clone) HasFinishedPlayback() bool { return c.finished }
func (c *Clone) DegradationLevel() float64 { return c.degradation }
func (c *Clone) Cursor() int { return c.cursor }
func (c *Clone) ActionCount() int { return len(c.actions) }
func (c *Clone) LastActionTime() time.Time { return c.lastActionTime }

// Age returns time since spawn at now
func (c *Clone) Age(now time.Time) time.Duration {
	return now.Sub(c.spawnTime)
}

// Actions returns a deep copy of the frozen sequence
func (c *Clone) Actions() []recording.Action {
	return recording.CloneActions(c.actions)
}

// Color is the degradation-mapped body color
func (c *Clone) Color() RGB { return c.color }

// GlowIntensity is in (0, 1]; dips on flicker frames
func (c *Clone) GlowIntensity() float64 { return c.glow }

// IsFlickering reports the critical flicker state
func (c *Clone) IsFlickering() bool { return c.flickering }

// Alpha is the body opacity
func (c *Clone) Alpha() float64 { return 0.8 - c.degradation*0.3 }

// ShowID reports whether the id label is still legible
func (c *Clone) ShowID() bool { return c.degradation < constants.InteractLevelLimit }

// ShowDegradationRing reports whether the warning ring is drawn
func (c *Clone) ShowDegradationRing() bool { return c.degradation > constants.DegradedThreshold }

// DebugInfo snapshots playback state at now
func (c *Clone) DebugInfo(now time.Time) CloneDebugInfo {
	return CloneDebugInfo{
		ID:          c.id,
		Session:     c.session.String(),
		Position:    c.position,
		Target:      c.target,
		Degradation: c.degradation,
		Phase:       c.Phase(),
		Cursor:      c.cursor,
		Actions:     len(c.actions),
		Finished:    c.finished,
		Active:      c.active,
		Age:         now.Sub(c.spawnTime),
	}
}

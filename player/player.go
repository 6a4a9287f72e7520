// Package player implements the live, input-driven agent whose actions feed the recorder
package player

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/clone-chaos/constants"
	"github.com/lixenwraith/clone-chaos/events"
	"github.com/lixenwraith/clone-chaos/recording"
	"github.com/lixenwraith/clone-chaos/vmath"
)

// Intent is the set of held movement directions
type Intent struct {
	Up, Down, Left, Right bool
}

// Vector returns the unit movement direction, zero when idle or cancelled out
func (i Intent) Vector() vmath.Vec2 {
	var v vmath.Vec2
	if i.Up {
		v.Y--
	}
	if i.Down {
		v.Y++
	}
	if i.Left {
		v.X--
	}
	if i.Right {
		v.X++
	}
	return v.Normalize()
}

// Config tunes player movement and recording cadence
type Config struct {
	Speed          float64
	Size           float64
	RecordInterval time.Duration
	RecordDistance float64
	ArenaWidth     float64
	ArenaHeight    float64
}

// DefaultConfig returns the stock player parameters
func DefaultConfig() Config {
	return Config{
		Speed:          constants.PlayerSpeed,
		Size:           constants.PlayerSize,
		RecordInterval: constants.PlayerRecordInterval,
		RecordDistance: constants.PlayerRecordDistance,
		ArenaWidth:     constants.ArenaWidth,
		ArenaHeight:    constants.ArenaHeight,
	}
}

// Player moves by held intents and samples its path into the recorder
type Player struct {
	cfg      Config
	recorder *recording.Recorder
	sink     events.Sink
	logger   *zap.Logger

	position vmath.Vec2
	velocity vmath.Vec2
	intent   Intent
	moving   bool

	lastRecordPos  vmath.Vec2
	lastRecordTime time.Time
}

// New places a player at start; recorder, sink and logger may be nil
func New(cfg Config, start vmath.Vec2, rec *recording.Recorder, sink events.Sink, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{
		cfg:           cfg,
		recorder:      rec,
		sink:          sink,
		logger:        logger.Named("player"),
		position:      start,
		lastRecordPos: start,
	}
}

// SetIntent replaces the held directions
func (p *Player) SetIntent(i Intent) {
	p.intent = i
}

// Update integrates movement, clamps to the arena and samples the recorder
func (p *Player) Update(dt time.Duration, now time.Time) {
	dir := p.intent.Vector()
	p.moving = !dir.IsZero()

	p.velocity = dir.Scale(p.cfg.Speed)
	p.position = p.position.Add(p.velocity.Scale(dt.Seconds()))
	p.position = p.position.Clamp(
		vmath.V2(p.cfg.Size, p.cfg.Size),
		vmath.V2(p.cfg.ArenaWidth-p.cfg.Size, p.cfg.ArenaHeight-p.cfg.Size),
	)

	p.recordMovement(now)
}

// recordMovement samples on a fixed cadence or after a large jump
func (p *Player) recordMovement(now time.Time) {
	if now.Sub(p.lastRecordTime) < p.cfg.RecordInterval &&
		p.position.Distance(p.lastRecordPos) <= p.cfg.RecordDistance {
		return
	}
	if p.recorder != nil {
		p.recorder.RecordMovement(p.position, p.velocity)
	}
	p.lastRecordPos = p.position
	p.lastRecordTime = now
}

// Interact records an activation at the current position and publishes it to puzzle logic
func (p *Player) Interact(now time.Time) events.InteractionPayload {
	pos := p.position
	if p.recorder != nil {
		p.recorder.RecordInteraction(constants.InteractionActivate, "", &pos)
	}

	payload := events.InteractionPayload{
		Source:      events.SourcePlayer,
		Kind:        constants.InteractionActivate,
		Position:    pos,
		HasPosition: true,
	}
	if p.sink != nil {
		ev := payload
		p.sink.Push(events.GameEvent{Type: events.EventPlayerInteract, Payload: &ev, Timestamp: now})
	}
	p.logger.Debug("Player interaction", zap.Stringer("position", pos))
	return payload
}

// Reset moves the player to pos and clears motion and sampling state
func (p *Player) Reset(pos vmath.Vec2) {
	p.position = pos
	p.velocity = vmath.Vec2{}
	p.intent = Intent{}
	p.moving = false
	p.lastRecordPos = pos
	p.lastRecordTime = time.Time{}
}

func (p *Player) Position() vmath.Vec2 { return p.position }
func (p *Player) Velocity() vmath.Vec2 { return p.velocity }
func (p *Player) Size() float64 { return p.cfg.Size }
func (p *Player) IsMoving() bool { return p.moving }
func (p *Player) Intent() Intent { return p.intent }

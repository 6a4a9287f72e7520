// Package puzzle evaluates room elements against the player and the clone population
package puzzle

import (
	"math"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/clone-chaos/clone"
	"github.com/lixenwraith/clone-chaos/constants"
	"github.com/lixenwraith/clone-chaos/events"
	"github.com/lixenwraith/clone-chaos/vmath"
)

// Body is anything that occupies space in the arena
type Body interface {
	Position() vmath.Vec2
	Size() float64
}

// CloneIndex resolves clone ids carried by interaction events
type CloneIndex interface {
	Get(id int) (*clone.Clone, bool)
}

// System owns puzzle element state for one room
type System struct {
	layout Layout
	clones CloneIndex
	sink   events.Sink
	logger *zap.Logger

	plates    []PressurePlate
	switches  []TimedSwitch
	platforms []MovingPlatform
	lasers    []LaserBarrier

	solved   int
	exitOpen bool
}

// NewSystem builds a system from layout; clones, sink and logger may be nil
func NewSystem(layout Layout, clones CloneIndex, sink events.Sink, logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &System{
		layout: layout,
		clones: clones,
		sink:   sink,
		logger: logger.Named("puzzle"),
	}
	s.Reset()
	s.logger.Debug("Created puzzle elements",
		zap.Int("plates", len(s.plates)),
		zap.Int("switches", len(s.switches)),
		zap.Int("platforms", len(s.platforms)),
		zap.Int("lasers", len(s.lasers)),
	)
	return s
}

// Reset restores every element to its layout state
func (s *System) Reset() {
	s.plates = slices.Clone(s.layout.Plates)
	s.switches = slices.Clone(s.layout.Switches)
	s.platforms = slices.Clone(s.layout.Platforms)
	s.lasers = slices.Clone(s.layout.Lasers)
	s.solved = 0
	s.exitOpen = false
}

// Update evaluates presence, timers and motion for one tick
// Only active clones occupy plates and block lasers; only interact-capable clones hold switches
func (s *System) Update(dt time.Duration, now time.Time, player Body, clones []*clone.Clone) {
	for i := range s.plates {
		s.updatePlate(&s.plates[i], player, clones)
	}
	for i := range s.switches {
		s.updateSwitch(&s.switches[i], dt, player, clones)
	}
	for i := range s.platforms {
		s.platforms[i].tick(dt)
	}
	for i := range s.lasers {
		s.updateLaser(&s.lasers[i], player, clones)
	}

	s.checkWinCondition(now)
}

func (s *System) updatePlate(p *PressurePlate, player Body, clones []*clone.Clone) {
	n := 0
	if player.Position().Distance(p.Position) <= p.Radius {
		n++
	}
	for _, c := range clones {
		if c.IsActive() && c.Position().Distance(p.Position) <= p.Radius {
			n++
		}
	}
	p.Occupants = n
	p.Activated = n >= p.Required
}

func (s *System) updateSwitch(sw *TimedSwitch, dt time.Duration, player Body, clones []*clone.Clone) {
	held := player.Position().Distance(sw.Position) <= constants.SwitchRadius
	if !held {
		for _, c := range clones {
			if c.CanInteract() && c.Position().Distance(sw.Position) <= constants.SwitchRadius {
				held = true
				break
			}
		}
	}
	if held && sw.press() {
		s.logger.Debug("Timed switch activated", zap.String("switch", sw.ID))
	}
	sw.tick(dt)
}

func (s *System) updateLaser(l *LaserBarrier, player Body, clones []*clone.Clone) {
	blocked := 0
	if l.blocks(player.Position(), player.Size()) {
		blocked++
	}
	for _, c := range clones {
		if c.IsActive() && l.blocks(c.Position(), c.Size()) {
			blocked++
		}
	}
	l.BlockedBy = blocked
	l.Active = blocked == 0
}

func (s *System) checkWinCondition(now time.Time) {
	solved := 0
	for i := range s.plates {
		if s.plates[i].Activated {
			solved++
		}
	}
	for i := range s.switches {
		if s.switches[i].Activated {
			solved++
		}
	}
	s.solved = solved

	total := len(s.plates) + len(s.switches)
	open := total > 0 && solved >= int(math.Ceil(float64(total)*constants.ExitSolveRatio))
	if open != s.exitOpen {
		s.exitOpen = open
		s.logger.Info("Exit state changed", zap.Bool("open", open), zap.Int("solved", solved))
		if s.sink != nil {
			s.sink.Push(events.GameEvent{
				Type:      events.EventExitChanged,
				Payload:   &events.ExitChangedPayload{Open: open},
				Timestamp: now,
			})
		}
	}

	unlocked := solved >= constants.PlatformsUnlockAt
	for i := range s.platforms {
		s.platforms[i].Activated = unlocked
	}
}

// PressNearestSwitch latches the closest timed switch within reach of pos
func (s *System) PressNearestSwitch(pos vmath.Vec2) (string, bool) {
	best := -1
	bestDist := math.MaxFloat64
	for i := range s.switches {
		d := s.switches[i].Position.Distance(pos)
		if d <= constants.SwitchRadius && d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return "", false
	}
	sw := &s.switches[best]
	if !sw.press() {
		return sw.ID, false
	}
	s.logger.Debug("Timed switch activated by interaction", zap.String("switch", sw.ID))
	return sw.ID, true
}

// HandleEvent implements events.Handler
func (s *System) HandleEvent(ev events.GameEvent) {
	p, ok := ev.Payload.(*events.InteractionPayload)
	if !ok || !p.HasPosition || p.Kind != constants.InteractionActivate {
		return
	}
	if ev.Type == events.EventCloneInteraction && s.clones != nil {
		c, found := s.clones.Get(p.CloneID)
		if !found || !c.CanInteract() {
			return
		}
	}
	s.PressNearestSwitch(p.Position)
}

// EventTypes implements events.Handler
func (s *System) EventTypes() []events.EventType {
	return []events.EventType{events.EventPlayerInteract, events.EventCloneInteraction}
}

// PlayerAtExit reports whether pos is inside an open exit
func (s *System) PlayerAtExit(pos vmath.Vec2) bool {
	return s.exitOpen && pos.Distance(s.layout.Exit) <= s.layout.ExitSize
}

func (s *System) ExitOpen() bool { return s.exitOpen }
func (s *System) Solved() int { return s.solved }
func (s *System) Total() int { return len(s.plates) + len(s.switches) }
func (s *System) Exit() (vmath.Vec2, float64) { return s.layout.Exit, s.layout.ExitSize }
func (s *System) Plates() []PressurePlate { return s.plates }
func (s *System) Switches() []TimedSwitch { return s.switches }
func (s *System) Platforms() []MovingPlatform { return s.platforms }
func (s *System) Lasers() []LaserBarrier { return s.lasers }

package puzzle

import (
	"time"

	"github.com/lixenwraith/clone-chaos/constants"
	"github.com/lixenwraith/clone-chaos/vmath"
)

// PressurePlate activates while enough bodies stand on it
type PressurePlate struct {
	ID       string
	Position vmath.Vec2
	Size     float64
	Radius   float64
	Required int

	Occupants int
	Activated bool
}

// TimedSwitch latches on press and stays activated for Duration
type TimedSwitch struct {
	ID       string
	Position vmath.Vec2
	Size     float64
	Duration time.Duration

	Remaining time.Duration
	Pressed   bool
	Activated bool
}

// press starts the countdown unless already latched
func (s *TimedSwitch) press() bool {
	if s.Pressed {
		return false
	}
	s.Pressed = true
	s.Remaining = s.Duration
	return true
}

func (s *TimedSwitch) tick(dt time.Duration) {
	if s.Remaining > 0 {
		s.Remaining -= dt
		s.Activated = true
		return
	}
	s.Activated = false
	s.Pressed = false
}

// MovingPlatform oscillates along Movement once unlocked
type MovingPlatform struct {
	ID       string
	Start    vmath.Vec2
	Position vmath.Vec2
	Extent   vmath.Vec2
	Movement vmath.Vec2 // px per second
	Dir      float64

	Activated bool
}

func (p *MovingPlatform) tick(dt time.Duration) {
	if !p.Activated {
		return
	}
	step := p.Movement.Scale(p.Dir * dt.Seconds() * constants.PlatformSpeedFactor)
	p.Position = p.Position.Add(step)
	if p.Position.Distance(p.Start) >= constants.PlatformMaxTravel {
		p.Dir = -p.Dir
	}
}

// LaserBarrier is live unless a body intersects its segment
type LaserBarrier struct {
	ID    string
	Start vmath.Vec2
	End   vmath.Vec2

	Active    bool
	BlockedBy int
}

// blocks reports whether a circle of radius size at pos intersects the beam
func (l *LaserBarrier) blocks(pos vmath.Vec2, size float64) bool {
	dist, within := vmath.SegmentDistance(pos, l.Start, l.End)
	return within && dist <= size
}

// Layout places puzzle elements in the arena
type Layout struct {
	Plates    []PressurePlate
	Switches  []TimedSwitch
	Platforms []MovingPlatform
	Lasers    []LaserBarrier
	Exit      vmath.Vec2
	ExitSize  float64
}

func plate(id string, x, y float64, required int) PressurePlate {
	return PressurePlate{
		ID:       id,
		Position: vmath.V2(x, y),
		Size:     constants.PlateSize,
		Radius:   constants.PlateActivationRadius,
		Required: required,
	}
}

func timedSwitch(id string, x, y float64, d time.Duration) TimedSwitch {
	return TimedSwitch{ID: id, Position: vmath.V2(x, y), Size: constants.SwitchSize, Duration: d}
}

func platform(id string, x, y, mx, my float64) MovingPlatform {
	return MovingPlatform{
		ID:       id,
		Start:    vmath.V2(x, y),
		Position: vmath.V2(x, y),
		Extent:   vmath.V2(80, 20),
		Movement: vmath.V2(mx, my),
		Dir:      1,
	}
}

func laser(id string, x1, y1, x2, y2 float64) LaserBarrier {
	return LaserBarrier{ID: id, Start: vmath.V2(x1, y1), End: vmath.V2(x2, y2), Active: true}
}

// DefaultLayout is the single-room arrangement
func DefaultLayout() Layout {
	return Layout{
		Plates: []PressurePlate{
			plate("plate1", 200, 150, 2),
			plate("plate2", 600, 200, 3),
			plate("plate3", 400, 400, 1),
		},
		Switches: []TimedSwitch{
			timedSwitch("switch1", 150, 300, 5*time.Second),
			timedSwitch("switch2", 650, 350, 3*time.Second),
		},
		Platforms: []MovingPlatform{
			platform("platform1", 300, 250, 100, 0),
			platform("platform2", 500, 100, 0, 80),
		},
		Lasers: []LaserBarrier{
			laser("laser1", 250, 50, 250, 150),
			laser("laser2", 450, 300, 550, 300),
		},
		Exit:     vmath.V2(constants.ExitX, constants.ExitY),
		ExitSize: constants.ExitSize,
	}
}

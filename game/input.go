package game

import (
	"time"

	"github.com/lixenwraith/clone-chaos/player"
)

// Direction indexes a held movement key
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	dirCount
)

// DefaultHoldWindow keeps a direction held between terminal key repeats
const DefaultHoldWindow = 150 * time.Millisecond

// HeldKeys turns discrete key presses into held directions
// Terminals deliver no key-release events, so a direction stays held
// until its last press is older than the hold window
type HeldKeys struct {
	window time.Duration
	until  [dirCount]time.Time
}

// NewHeldKeys creates a tracker; window <= 0 uses DefaultHoldWindow
func NewHeldKeys(window time.Duration) *HeldKeys {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HeldKeys{window: window}
}

// Press marks d held from now for one window
// Pressing the opposite direction releases the current one immediately
func (h *HeldKeys) Press(d Direction, now time.Time) {
	if d >= dirCount {
		return
	}
	h.until[d] = now.Add(h.window)
	h.until[opposite(d)] = time.Time{}
}

// Release drops every held direction
func (h *HeldKeys) Release() {
	h.until = [dirCount]time.Time{}
}

// Intent returns the directions still held at now
func (h *HeldKeys) Intent(now time.Time) player.Intent {
	return player.Intent{
		Up:    now.Before(h.until[DirUp]),
		Down:  now.Before(h.until[DirDown]),
		Left:  now.Before(h.until[DirLeft]),
		Right: now.Before(h.until[DirRight]),
	}
}

func opposite(d Direction) Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

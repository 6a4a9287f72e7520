package recording

import (
	"time"

	"github.com/lixenwraith/clone-chaos/vmath"
)

// ActionKind discriminates recorded actions
type ActionKind uint8

const (
	KindMove ActionKind = iota
	KindInteract
	KindStateChange
)

func (k ActionKind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindInteract:
		return "interact"
	case KindStateChange:
		return "stateChange"
	default:
		return "unknown"
	}
}

// MovePayload is a movement waypoint
type MovePayload struct {
	Position vmath.Vec2
	Velocity vmath.Vec2
}

// InteractPayload is a player interaction
// TargetID is empty when absent; Position is meaningful only when HasPosition is set
type InteractPayload struct {
	Kind        string
	TargetID    string
	Position    vmath.Vec2
	HasPosition bool
}

// StateChangePayload is diagnostic only and never replayed
type StateChangePayload struct {
	Kind     string
	OldValue any
	NewValue any
}

// Action is an immutable timestamped record
// Only the payload matching Kind is meaningful
type Action struct {
	Kind      ActionKind
	Timestamp time.Duration // Relative to the owning session's start

	Move     MovePayload
	Interact InteractPayload
	State    StateChangePayload
}

// Clone returns an independently owned copy
// Vectors are value types; state-change values are opaque and shared by reference
func (a Action) Clone() Action {
	c := a
	c.Move = MovePayload{
		Position: vmath.V2(a.Move.Position.X, a.Move.Position.Y),
		Velocity: vmath.V2(a.Move.Velocity.X, a.Move.Velocity.Y),
	}
	c.Interact.Position = vmath.V2(a.Interact.Position.X, a.Interact.Position.Y)
	return c
}

// CloneActions deep-copies a sequence into a fresh backing array
// Returns nil for an empty input
func CloneActions(src []Action) []Action {
	if len(src) == 0 {
		return nil
	}
	dst := make([]Action, len(src))
	for i := range src {
		dst[i] = src[i].Clone()
	}
	return dst
}

// NewMove builds a move action with the timestamp left for the recorder to stamp
func NewMove(position, velocity vmath.Vec2) Action {
	return Action{
		Kind: KindMove,
		Move: MovePayload{Position: position, Velocity: velocity},
	}
}

// NewInteract builds an interaction action; position may be nil
func NewInteract(kind, targetID string, position *vmath.Vec2) Action {
	a := Action{
		Kind:     KindInteract,
		Interact: InteractPayload{Kind: kind, TargetID: targetID},
	}
	if position != nil {
		a.Interact.Position = *position
		a.Interact.HasPosition = true
	}
	return a
}

// NewStateChange builds a diagnostic state change action
func NewStateChange(kind string, oldValue, newValue any) Action {
	return Action{
		Kind:  KindStateChange,
		State: StateChangePayload{Kind: kind, OldValue: oldValue, NewValue: newValue},
	}
}

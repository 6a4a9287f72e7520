package events

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/clone-chaos/vmath"
)

// Source identifies who performed an interaction
type Source uint8

const (
	SourcePlayer Source = iota
	SourceClone
)

// CloneSpawnedPayload describes a freshly spawned clone
type CloneSpawnedPayload struct {
	CloneID  int
	Session  uuid.UUID
	Position vmath.Vec2
	Actions  int
}

// InteractionPayload carries an interaction to puzzle logic
// CloneID is zero for the live player
type InteractionPayload struct {
	Source      Source
	CloneID     int
	Kind        string
	TargetID    string
	Position    vmath.Vec2
	HasPosition bool
}

// CloneFinishedPayload identifies a clone that reached the end of its actions
type CloneFinishedPayload struct {
	CloneID int
}

// ClonesCleanedPayload reports a cleanup sweep
type ClonesCleanedPayload struct {
	Removed   int
	Remaining int
}

// TimerWarningPayload carries the crossed threshold in seconds
type TimerWarningPayload struct {
	Seconds int
}

// DangerLevelPayload carries the new danger level in [0, 1]
type DangerLevelPayload struct {
	Level float64
}

// ExitChangedPayload reports exit availability
type ExitChangedPayload struct {
	Open bool
}

// SpawnChangePayload toggles clone spawning
type SpawnChangePayload struct {
	Enabled bool
}

package events

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventCloneSpawned signals a clone was created from a harvested session
	// Trigger: clone.Manager spawn procedure
	// Consumer: SoundManager (spawn chirp), Renderer (flash) | Payload: *CloneSpawnedPayload
	EventCloneSpawned EventType = iota + 1

	// EventCloneInteraction delivers a replayed interaction to puzzle logic
	// Trigger: Clone executing an interact action that did not fail
	// Consumer: puzzle.System | Payload: *InteractionPayload
	EventCloneInteraction

	// EventCloneFinished signals a clone consumed its last action
	// Trigger: Clone finish detection (once per clone) | Payload: *CloneFinishedPayload
	EventCloneFinished

	// EventClonesCleaned signals inactive clones were removed from the live set
	// Trigger: clone.Manager cleanup | Payload: *ClonesCleanedPayload
	EventClonesCleaned

	// EventPlayerInteract delivers the live player's interaction to puzzle logic
	// Trigger: player.Player.Interact | Consumer: puzzle.System | Payload: *InteractionPayload
	EventPlayerInteract

	// EventTimerWarning signals a remaining-time threshold was crossed
	// Trigger: timer.GameTimer | Consumer: SoundManager, Game status | Payload: *TimerWarningPayload
	EventTimerWarning

	// EventTimeUp signals the countdown reached zero
	// Trigger: timer.GameTimer | Consumer: Game (defeat) | Payload: nil
	EventTimeUp

	// EventDangerLevelChange signals a new danger level
	// Trigger: timer.GameTimer | Consumer: Game status | Payload: *DangerLevelPayload
	EventDangerLevelChange

	// EventExitChanged signals the exit opened or closed
	// Trigger: puzzle.System | Consumer: SoundManager | Payload: *ExitChangedPayload
	EventExitChanged

	// EventSpawnChange signals spawning was enabled or disabled
	// Trigger: Game input | Consumer: clone.Manager | Payload: *SpawnChangePayload
	EventSpawnChange

	// EventGameReset signals a request to reset the game state
	// Trigger: restart key | Consumer: Game | Payload: nil
	EventGameReset
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}

// String returns the registered event name
func (t EventType) String() string {
	return GetEventName(t)
}

package constants

import "time"

// Arena
const (
	ArenaWidth  = 800.0
	ArenaHeight = 600.0
)

// Player
const (
	// PlayerSpeed is movement speed in pixels per second
	PlayerSpeed = 150.0

	// PlayerSize is the player radius in pixels
	PlayerSize = 20.0

	// PlayerStartX, PlayerStartY is the spawn point on start and restart
	PlayerStartX = 100.0
	PlayerStartY = 100.0

	// PlayerRecordInterval throttles movement recording
	PlayerRecordInterval = 50 * time.Millisecond

	// PlayerRecordDistance forces a record when the player moved further than this since the last one
	PlayerRecordDistance = 5.0

	// InteractionActivate is the interaction kind produced by the interact key
	InteractionActivate = "activate"
)

// Countdown Timer
const (
	// GameDuration is the default countdown length
	GameDuration = 120 * time.Second
)

// WarningThresholds are remaining-second marks that fire a warning once each
var WarningThresholds = []int{30, 15, 10, 5}

// Puzzle
const (
	// PlateActivationRadius is the pressure plate detection radius
	PlateActivationRadius = 25.0

	// PlateSize is the pressure plate drawn radius
	PlateSize = 30.0

	// SwitchRadius is the timed switch press radius
	SwitchRadius = 25.0

	// SwitchSize is the timed switch half-extent
	SwitchSize = 20.0

	// PlatformSpeedFactor scales platform movement vectors per second
	PlatformSpeedFactor = 1.0

	// PlatformMaxTravel reverses platform direction past this distance from start
	PlatformMaxTravel = 100.0

	// PlatformsUnlockAt is the number of solved puzzles that starts moving platforms
	PlatformsUnlockAt = 2

	// ExitSolveRatio is the fraction of plates and switches required to open the exit
	ExitSolveRatio = 0.7

	// ExitSize is the exit detection radius
	ExitSize = 40.0

	// ExitX, ExitY places the exit near the bottom-right corner
	ExitX = 750.0
	ExitY = 550.0
)

package constants

import (
	"math"
	"time"
)

// Recording
const (
	// MaxRecordingTime caps a single recording session; appends at or past it stop the session
	MaxRecordingTime = 10 * time.Second

	// RecorderCompressionThreshold is the recorder's own redundant-move distance in pixels
	RecorderCompressionThreshold = 2.0
)

// Clone Spawning
const (
	// SpawnInterval is the cadence at which the recorder is harvested into a clone
	SpawnInterval = 10 * time.Second

	// MaxClones is the live clone capacity; spawns are refused at capacity
	MaxClones = 15

	// SpawnRadius is the base distance from the player for spiral placement
	SpawnRadius = 50.0

	// SpawnRadiusStep is added per (id mod SpawnRadiusBands)
	SpawnRadiusStep = 10.0

	// SpawnRadiusBands is the number of radius rings in the spiral
	SpawnRadiusBands = 3

	// SpawnCompressionThreshold is the harvest-time redundant-move distance in pixels
	SpawnCompressionThreshold = 3.0

	// CleanupGrace keeps finished clones visible while younger than this age
	CleanupGrace = 5 * time.Second

	// SpawnPreviewLead is how long before a spawn the preview indicator shows
	SpawnPreviewLead = 2 * time.Second
)

// GoldenAngle is the spiral step in radians (0.618 turns)
const GoldenAngle = 0.618 * 2 * math.Pi

// Degradation
const (
	// DegradationStart is the clone age at which fidelity starts decaying
	DegradationStart = 30 * time.Second

	// DegradationFull is the clone age at which degradation reaches 1
	DegradationFull = 60 * time.Second

	// MaxTimingJitter is the full jitter window at degradation 1 (±half of it)
	MaxTimingJitter = 500 * time.Millisecond

	// MaxPositionError is the full positional error window in pixels at degradation 1
	MaxPositionError = 10.0

	// MoveSkipFactor scales degradation into the dropped-move probability
	MoveSkipFactor = 0.3

	// InteractFailFactor scales degradation into the failed-interaction probability
	InteractFailFactor = 0.4

	// InteractFailMinLevel is the degradation above which interactions may fail
	InteractFailMinLevel = 0.5

	// FlickerLevel is the degradation above which clones flicker
	FlickerLevel = 0.7

	// InteractLevelLimit is the degradation at or above which clones cannot interact
	InteractLevelLimit = 0.8

	// FlickerPeriod is how often a flickering clone re-rolls its glow
	FlickerPeriod = 100 * time.Millisecond
)

// Reliability buckets for stats
const (
	ReliableThreshold = 0.8
	DegradedThreshold = 0.3
)

// Clone Body
const (
	// CloneSize is the clone radius in pixels
	CloneSize = 18.0

	// InterpolationSpeed is pixels per 60 FPS frame toward the target waypoint
	InterpolationSpeed = 5.0

	// SnapDistance is the distance under which interpolation stops
	SnapDistance = 1.0
)

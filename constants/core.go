package constants

import "time"

// Game Loop Timing
const (
	// FrameUpdateInterval is the render and simulation interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps dt after stalls (window drag, debugger) so interpolation cannot overshoot wildly
	MaxFrameDelta = 100 * time.Millisecond

	// InterpolationFrameScale converts dt seconds to 60 FPS frame units for clone interpolation
	InterpolationFrameScale = 60.0
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

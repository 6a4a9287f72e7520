package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/clone-chaos/clone"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbGridDot    = tcell.NewRGBColor(60, 62, 80)    // Faint grid
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)       // Dark text for status

	RgbPlayer        = tcell.NewRGBColor(100, 200, 255) // Sky blue
	RgbSpawnPreview  = tcell.NewRGBColor(255, 170, 0)   // Clone base orange
	RgbDegradeRing   = tcell.NewRGBColor(255, 80, 80)   // Red ring around decaying clones
	RgbPlateIdle     = tcell.NewRGBColor(120, 120, 120) // Gray
	RgbPlateActive   = tcell.NewRGBColor(50, 255, 50)   // Bright green
	RgbSwitchIdle    = tcell.NewRGBColor(140, 120, 40)  // Dim gold
	RgbSwitchActive  = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
	RgbPlatformIdle  = tcell.NewRGBColor(90, 90, 110)   // Slate
	RgbPlatformLive  = tcell.NewRGBColor(140, 190, 255) // Bright blue
	RgbLaserActive   = tcell.NewRGBColor(255, 0, 0)     // Red beam
	RgbLaserBlocked  = tcell.NewRGBColor(80, 30, 30)    // Dark red
	RgbExitOpen      = tcell.NewRGBColor(0, 255, 120)   // Green
	RgbExitClosed    = tcell.NewRGBColor(100, 40, 40)   // Dark red
	RgbTimerNormal   = tcell.NewRGBColor(255, 255, 255) // White
	RgbTimerCritical = tcell.NewRGBColor(255, 60, 60)   // Red
	RgbReliable      = tcell.NewRGBColor(50, 255, 50)   // Green
	RgbDegraded      = tcell.NewRGBColor(255, 200, 0)   // Amber
	RgbCritical      = tcell.NewRGBColor(255, 80, 80)   // Red
)

// scale multiplies each channel by f in [0, 1]
func scale(c clone.RGB, f float64) tcell.Color {
	f = max(0, min(1, f))
	return tcell.NewRGBColor(int32(float64(c.R)*f), int32(float64(c.G)*f), int32(float64(c.B)*f))
}

// CloneColor returns the degradation color dimmed by glow and opacity
func CloneColor(c *clone.Clone) tcell.Color {
	// Opacity floors at 0.5 so degraded clones stay visible on a dark background
	return scale(c.Color(), c.GlowIntensity()*(0.5+c.Alpha()/1.6))
}

// BackgroundColor tints the base background toward red by tint in [0, 1]
func BackgroundColor(tint float64) tcell.Color {
	tint = max(0, min(1, tint))
	r := 26 + (255-26)*tint*0.5
	g := 27 * (1 - tint)
	b := 38 * (1 - tint)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Package render draws the arena, clone population and HUD onto a tcell screen
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/clone-chaos/clone"
	"github.com/lixenwraith/clone-chaos/game"
	"github.com/lixenwraith/clone-chaos/vmath"
)

// gridSpacing is the arena distance between background dots
const gridSpacing = 50.0

// TerminalRenderer handles all terminal rendering
// Row 0 is the HUD, the last row is the status bar, the arena fills the rest
type TerminalRenderer struct {
	screen        tcell.Screen
	width, height int
	arenaW        float64
	arenaH        float64
}

// NewTerminalRenderer creates a renderer for an arena of the given size in pixels
func NewTerminalRenderer(screen tcell.Screen, arenaWidth, arenaHeight float64) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{screen: screen, width: w, height: h, arenaW: arenaWidth, arenaH: arenaHeight}
}

// Resize updates the terminal dimensions
func (r *TerminalRenderer) Resize() {
	r.width, r.height = r.screen.Size()
}

// ToCell maps an arena position to a terminal cell
func (r *TerminalRenderer) ToCell(p vmath.Vec2) (int, int) {
	areaH := max(r.height-2, 1)
	x := int(p.X / r.arenaW * float64(r.width))
	y := 1 + int(p.Y/r.arenaH*float64(areaH))
	x = max(0, min(r.width-1, x))
	y = max(1, min(areaH, y))
	return x, y
}

// cellSpan converts an arena distance on the x axis to a cell count, at least 1
func (r *TerminalRenderer) cellSpan(d float64) int {
	return max(1, int(math.Round(d/r.arenaW*float64(r.width))))
}

// RenderFrame renders the entire game frame
func (r *TerminalRenderer) RenderFrame(g *game.Game) {
	r.screen.Clear()
	if r.width < 10 || r.height < 5 {
		r.screen.Show()
		return
	}

	effects := g.Timer().Effects()
	bg := tcell.StyleDefault.Background(BackgroundColor(effects.RedTint))
	r.fill(bg)
	r.drawGrid(bg)
	r.drawPuzzles(g, bg)
	r.drawSpawnPreview(g, bg)
	r.drawClones(g, bg)
	r.drawPlayer(g, bg)
	r.drawHUD(g, bg)
	r.drawStatusBar(g)

	r.screen.Show()
}

func (r *TerminalRenderer) fill(style tcell.Style) {
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (r *TerminalRenderer) drawGrid(bg tcell.Style) {
	style := bg.Foreground(RgbGridDot)
	for y := gridSpacing; y < r.arenaH; y += gridSpacing {
		for x := gridSpacing; x < r.arenaW; x += gridSpacing {
			cx, cy := r.ToCell(vmath.V2(x, y))
			r.screen.SetContent(cx, cy, '·', nil, style)
		}
	}
}

func (r *TerminalRenderer) drawPuzzles(g *game.Game, bg tcell.Style) {
	p := g.Puzzles()

	for _, l := range p.Lasers() {
		color := RgbLaserBlocked
		if l.Active {
			color = RgbLaserActive
		}
		ch := '|'
		if math.Abs(l.End.X-l.Start.X) > math.Abs(l.End.Y-l.Start.Y) {
			ch = '-'
		}
		r.drawSegment(l.Start, l.End, ch, bg.Foreground(color))
	}

	for _, pl := range p.Platforms() {
		color := RgbPlatformIdle
		if pl.Activated {
			color = RgbPlatformLive
		}
		cx, cy := r.ToCell(pl.Position)
		span := r.cellSpan(pl.Extent.X)
		for i := 0; i < span; i++ {
			r.set(cx-span/2+i, cy, '=', bg.Foreground(color))
		}
	}

	for _, pp := range p.Plates() {
		color := RgbPlateIdle
		if pp.Activated {
			color = RgbPlateActive
		}
		cx, cy := r.ToCell(pp.Position)
		style := bg.Foreground(color)
		r.set(cx-1, cy, '[', style)
		r.set(cx, cy, rune('0'+min(pp.Required, 9)), style)
		r.set(cx+1, cy, ']', style)
	}

	for _, sw := range p.Switches() {
		color := RgbSwitchIdle
		if sw.Activated {
			color = RgbSwitchActive
		}
		cx, cy := r.ToCell(sw.Position)
		r.set(cx, cy, 'S', bg.Foreground(color).Bold(sw.Activated))
	}

	exit, _ := p.Exit()
	color := RgbExitClosed
	if p.ExitOpen() {
		color = RgbExitOpen
	}
	cx, cy := r.ToCell(exit)
	r.set(cx, cy, 'E', bg.Foreground(color).Bold(true))
}

// drawSegment walks the segment in cell space
func (r *TerminalRenderer) drawSegment(a, b vmath.Vec2, ch rune, style tcell.Style) {
	x0, y0 := r.ToCell(a)
	x1, y1 := r.ToCell(b)
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		r.set(x0, y0, ch, style)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(float64(x1-x0)*t))
		y := y0 + int(math.Round(float64(y1-y0)*t))
		r.set(x, y, ch, style)
	}
}

func (r *TerminalRenderer) drawSpawnPreview(g *game.Game, bg tcell.Style) {
	now := g.Now()
	m := g.Clones()
	if !m.SpawnPreviewActive(now) {
		return
	}
	// Blink at 4 Hz
	if (m.TimeUntilNextSpawn(now).Milliseconds()/125)%2 == 1 {
		return
	}
	pos := g.Player().Position().Add(clone.SpawnOffset(m.NextID(), g.Config().Clones.SpawnRadius))
	cx, cy := r.ToCell(pos)
	r.set(cx, cy, '+', bg.Foreground(RgbSpawnPreview))
}

// drawClones draws oldest first so newer clones overlap older ones
func (r *TerminalRenderer) drawClones(g *game.Game, bg tcell.Style) {
	for _, c := range g.Clones().Clones() {
		if !c.IsActive() {
			continue
		}
		cx, cy := r.ToCell(c.Position())

		if c.ShowDegradationRing() {
			ring := bg.Foreground(RgbDegradeRing)
			r.set(cx-1, cy, '(', ring)
			r.set(cx+1, cy, ')', ring)
		}

		ch := '&'
		if c.ShowID() {
			ch = rune('0' + c.ID()%10)
		}
		r.set(cx, cy, ch, bg.Foreground(CloneColor(c)).Bold(c.CanInteract()))
	}
}

func (r *TerminalRenderer) drawPlayer(g *game.Game, bg tcell.Style) {
	cx, cy := r.ToCell(g.Player().Position())
	r.set(cx, cy, '@', bg.Foreground(RgbPlayer).Bold(true))
}

func (r *TerminalRenderer) drawHUD(g *game.Game, bg tcell.Style) {
	now := g.Now()
	t := g.Timer()
	m := g.Clones()
	stats := m.Stats()

	x := 0
	timerColor := RgbTimerNormal
	if t.IsCritical() {
		timerColor = RgbTimerCritical
	}
	timeText := fmt.Sprintf(" TIME %s ", t.Formatted())
	if t.IsFlashing() && !t.FlashVisible() {
		timeText = " TIME      "
	}
	x = r.text(x, 0, timeText, bg.Foreground(timerColor).Bold(true))

	x = r.text(x, 0, fmt.Sprintf(" CLONES %d/%d ", stats.Active, g.Config().Clones.MaxClones), bg.Foreground(RgbStatusBar))
	x = r.text(x, 0, fmt.Sprintf("R%d ", stats.Reliable), bg.Foreground(RgbReliable))
	x = r.text(x, 0, fmt.Sprintf("D%d ", stats.Degraded), bg.Foreground(RgbDegraded))
	x = r.text(x, 0, fmt.Sprintf("C%d ", stats.Critical), bg.Foreground(RgbCritical))

	p := g.Puzzles()
	x = r.text(x, 0, fmt.Sprintf(" SOLVED %d/%d ", p.Solved(), p.Total()), bg.Foreground(RgbStatusBar))

	if m.SpawningEnabled() {
		next := m.TimeUntilNextSpawn(now)
		r.text(x, 0, fmt.Sprintf(" NEXT %.1fs ", next.Seconds()), bg.Foreground(RgbSpawnPreview))
	} else {
		r.text(x, 0, " SPAWN OFF ", bg.Foreground(RgbPlateIdle))
	}
}

func (r *TerminalRenderer) drawStatusBar(g *game.Game) {
	y := r.height - 1
	style := tcell.StyleDefault.Background(RgbStatusBar).Foreground(RgbStatusText)
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}

	var msg string
	switch g.State() {
	case game.StateMenu:
		msg = "CLONE CHAOS - Enter to start, q to quit"
	case game.StatePaused:
		msg = "PAUSED - p to resume"
	case game.StateGameOver:
		msg = "TIME UP - r to restart, q to quit"
	case game.StateVictory:
		msg = "ESCAPED - r to play again, q to quit"
	default:
		msg = g.Status()
		if msg == "" {
			msg = "arrows/hjkl move  space interact  f force clone  c spawning  p pause  r restart"
		}
	}
	r.text(1, y, msg, style.Bold(true))
}

// text writes s from x and returns the next free column
func (r *TerminalRenderer) text(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.set(x, y, ch, style)
		x++
	}
	return x
}

func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Package game wires the recorder, clone population, player, puzzles and countdown into one frame loop
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/clone-chaos/audio"
	"github.com/lixenwraith/clone-chaos/clone"
	"github.com/lixenwraith/clone-chaos/config"
	"github.com/lixenwraith/clone-chaos/constants"
	"github.com/lixenwraith/clone-chaos/engine"
	"github.com/lixenwraith/clone-chaos/events"
	"github.com/lixenwraith/clone-chaos/player"
	"github.com/lixenwraith/clone-chaos/puzzle"
	"github.com/lixenwraith/clone-chaos/recording"
	"github.com/lixenwraith/clone-chaos/timer"
	"github.com/lixenwraith/clone-chaos/vmath"
)

// statusDuration is how long a status message stays on the HUD
const statusDuration = 2 * time.Second

// Game owns every simulation component and drives them in a fixed order
// Not safe for concurrent use; the frame loop and input handling run on one goroutine
type Game struct {
	cfg    *config.Config
	clock  *engine.PausableClock
	logger *zap.Logger

	queue  *events.EventQueue
	router *events.Router

	recorder *recording.Recorder
	clones   *clone.Manager
	player   *player.Player
	puzzles  *puzzle.System
	timer    *timer.GameTimer
	sound    *audio.SoundManager

	state      State
	lastUpdate time.Time
	frame      int64

	status      string
	statusUntil time.Time
}

// New builds a game in the menu state
// rng nil seeds from cfg.Game.Seed; sound nil runs silent
func New(cfg *config.Config, clock *engine.PausableClock, rng engine.RandomSource, sound *audio.SoundManager, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = engine.NewSeededRandom(cfg.Game.Seed)
	}

	queue := events.NewEventQueue()
	rec := recording.NewRecorder(RecorderConfig(cfg), clock, logger)
	clones := clone.NewManager(ManagerConfig(cfg), rec, clock, rng, queue, logger)

	g := &Game{
		cfg:      cfg,
		clock:    clock,
		logger:   logger.Named("game"),
		queue:    queue,
		router:   events.NewRouter(queue),
		recorder: rec,
		clones:   clones,
		player:   player.New(PlayerConfig(cfg), startPosition(), rec, queue, logger),
		puzzles:  puzzle.NewSystem(puzzle.DefaultLayout(), clones, queue, logger),
		timer:    timer.New(TimerConfig(cfg), queue, logger),
		sound:    sound,
		state:    StateMenu,
	}

	g.router.Register(g.clones)
	g.router.Register(g.puzzles)
	if sound != nil {
		g.router.Register(sound)
	}
	g.router.Register(events.HandlerFunc{
		Types: []events.EventType{
			events.EventTimeUp,
			events.EventGameReset,
			events.EventTimerWarning,
			events.EventCloneSpawned,
			events.EventExitChanged,
		},
		Fn: g.handleEvent,
	})

	return g
}

func startPosition() vmath.Vec2 {
	return vmath.V2(constants.PlayerStartX, constants.PlayerStartY)
}

// Start leaves the menu and begins the round
func (g *Game) Start() bool {
	if !g.transition(StatePlaying) {
		return false
	}
	now := g.clock.Now()
	g.lastUpdate = now
	g.timer.Start()
	g.clones.Start(now)
	g.logger.Info("Game started", zap.Duration("duration", g.timer.Duration()))
	return true
}

// Update advances one frame
// Order: timer, player, clone manager, puzzles, event dispatch, win check
func (g *Game) Update() {
	now := g.clock.Now()
	dt := now.Sub(g.lastUpdate)
	g.lastUpdate = now

	if g.state != StatePlaying {
		// Input handlers may still have queued events such as a reset request
		g.router.DispatchAll()
		return
	}

	if dt < 0 {
		dt = 0
	}
	if dt > constants.MaxFrameDelta {
		dt = constants.MaxFrameDelta
	}
	g.frame++

	g.timer.Update(dt, now)
	g.player.Update(dt, now)
	g.clones.Update(dt, now, g.player.Position())
	g.puzzles.Update(dt, now, g.player, g.clones.Clones())
	g.router.DispatchAll()

	if g.state == StatePlaying && g.puzzles.PlayerAtExit(g.player.Position()) {
		g.transition(StateVictory)
		g.timer.Stop()
		g.logger.Info("Victory",
			zap.Int("clones", g.clones.Len()),
			zap.Duration("remaining", g.timer.Remaining()),
		)
	}
}

// TogglePause freezes or resumes game time
func (g *Game) TogglePause() {
	switch g.state {
	case StatePlaying:
		g.transition(StatePaused)
		g.clock.Pause()
		g.timer.Pause()
		g.player.SetIntent(player.Intent{})
	case StatePaused:
		g.clock.Resume()
		g.timer.Resume()
		g.transition(StatePlaying)
		g.lastUpdate = g.clock.Now()
	}
}

// Restart resets every component and starts a fresh round
func (g *Game) Restart() {
	if g.clock.IsPaused() {
		g.clock.Resume()
	}
	now := g.clock.Now()

	g.player.Reset(startPosition())
	g.clones.ClearAll()
	g.recorder.Clear()
	g.puzzles.Reset()
	g.timer.Reset(0)
	g.timer.Start()
	g.clones.Start(now)

	g.state = StatePlaying
	g.lastUpdate = now
	g.frame = 0
	g.status = ""
	g.logger.Info("Game restarted")
}

// RequestRestart queues a reset for the next dispatch
func (g *Game) RequestRestart() {
	g.queue.Push(events.GameEvent{Type: events.EventGameReset, Timestamp: g.clock.Now()})
}

// SetIntent forwards held directions to the player while playing
func (g *Game) SetIntent(i player.Intent) {
	if g.state != StatePlaying {
		i = player.Intent{}
	}
	g.player.SetIntent(i)
}

// Interact performs a player interaction while playing
func (g *Game) Interact() {
	if g.state != StatePlaying {
		return
	}
	g.player.Interact(g.clock.Now())
}

// ToggleSpawning flips automatic clone spawning through the event queue
func (g *Game) ToggleSpawning() {
	enabled := !g.clones.SpawningEnabled()
	g.queue.Push(events.GameEvent{
		Type:      events.EventSpawnChange,
		Payload:   &events.SpawnChangePayload{Enabled: enabled},
		Timestamp: g.clock.Now(),
	})
	if enabled {
		g.setStatus("Clone spawning on", g.clock.Now())
	} else {
		g.setStatus("Clone spawning off", g.clock.Now())
	}
}

// ForceSpawn harvests the recorder into a clone immediately
func (g *Game) ForceSpawn() bool {
	if g.state != StatePlaying {
		return false
	}
	_, ok := g.clones.ForceSpawn(g.player.Position())
	if !ok {
		g.setStatus("No clone spawned", g.clock.Now())
	}
	return ok
}

func (g *Game) handleEvent(ev events.GameEvent) {
	now := g.clock.Now()
	switch ev.Type {
	case events.EventTimeUp:
		if g.transition(StateGameOver) {
			g.player.SetIntent(player.Intent{})
			g.logger.Info("Time up", zap.Int("clones", g.clones.Len()), zap.Int("solved", g.puzzles.Solved()))
		}
	case events.EventGameReset:
		g.Restart()
	case events.EventTimerWarning:
		if p, ok := ev.Payload.(*events.TimerWarningPayload); ok {
			g.setStatus(fmt.Sprintf("%d seconds left!", p.Seconds), now)
		}
	case events.EventCloneSpawned:
		if p, ok := ev.Payload.(*events.CloneSpawnedPayload); ok {
			g.setStatus(fmt.Sprintf("Clone #%d spawned", p.CloneID), now)
		}
	case events.EventExitChanged:
		if p, ok := ev.Payload.(*events.ExitChangedPayload); ok && p.Open {
			g.setStatus("Exit open!", now)
		}
	}
}

func (g *Game) transition(to State) bool {
	if !CanTransition(g.state, to) {
		return false
	}
	g.logger.Debug("State transition", zap.Stringer("from", g.state), zap.Stringer("to", to))
	g.state = to
	return true
}

func (g *Game) setStatus(msg string, now time.Time) {
	g.status = msg
	g.statusUntil = now.Add(statusDuration)
}

// Status returns the current HUD message, empty once it expired
func (g *Game) Status() string {
	if g.status == "" || !g.clock.Now().Before(g.statusUntil) {
		return ""
	}
	return g.status
}

func (g *Game) State() State { return g.state }
func (g *Game) Now() time.Time { return g.clock.Now() }
func (g *Game) Frame() int64 { return g.frame }
func (g *Game) Player() *player.Player { return g.player }
func (g *Game) Clones() *clone.Manager { return g.clones }
func (g *Game) Puzzles() *puzzle.System { return g.puzzles }
func (g *Game) Timer() *timer.GameTimer { return g.timer }
func (g *Game) Recorder() *recording.Recorder { return g.recorder }
func (g *Game) Config() *config.Config { return g.cfg }

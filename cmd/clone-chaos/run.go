package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/clone-chaos/audio"
	"github.com/lixenwraith/clone-chaos/config"
	"github.com/lixenwraith/clone-chaos/constants"
	"github.com/lixenwraith/clone-chaos/engine"
	"github.com/lixenwraith/clone-chaos/game"
	"github.com/lixenwraith/clone-chaos/observability"
	"github.com/lixenwraith/clone-chaos/render"
)

// errQuit ends the frame loop on a quit key
var errQuit = errors.New("quit")

func run(ctx context.Context, cfg *config.Config) error {
	// The terminal is owned by tcell; logs go to the rotated file only
	observability.Initialize(cfg.Logger, nil)
	defer observability.Sync()
	logger := observability.GetLogger()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			handleCrash(screen, r)
		}
	}()

	var sound *audio.SoundManager
	if cfg.Audio.Enabled {
		sound = audio.NewSoundManager(logger)
		if err := sound.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			logger.Warn("Audio initialization failed", zap.Error(err))
		}
		defer sound.Cleanup()
	}

	g := game.New(cfg, engine.NewPausableClock(), nil, sound, logger)
	renderer := render.NewTerminalRenderer(screen, cfg.Game.ArenaWidth, cfg.Game.ArenaHeight)
	keys := game.NewHeldKeys(0)

	logger.Info("Starting clone-chaos", zap.String("version", Version), zap.Uint64("seed", cfg.Game.Seed))

	grp, gctx := errgroup.WithContext(ctx)
	eventCh := make(chan tcell.Event, 100)

	grp.Go(func() error {
		defer recoverIn(screen)
		// Closes eventCh when gctx is done
		screen.ChannelEvents(eventCh, gctx.Done())
		return nil
	})

	grp.Go(func() error {
		defer recoverIn(screen)
		ticker := time.NewTicker(constants.FrameUpdateInterval)
		defer ticker.Stop()

		renderer.RenderFrame(g)
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev, ok := <-eventCh:
				if !ok {
					return nil
				}
				if !handleEvent(ev, g, keys, renderer, time.Now()) {
					return errQuit
				}
			case <-ticker.C:
				g.SetIntent(keys.Intent(time.Now()))
				g.Update()
				renderer.RenderFrame(g)
			}
		}
	})

	err = grp.Wait()
	logger.Info("Shutting down",
		zap.Stringer("state", g.State()),
		zap.Int("clones", g.Clones().Len()),
		zap.Int64("frames", g.Frame()),
	)
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleEvent applies one terminal event; false means quit
func handleEvent(ev tcell.Event, g *game.Game, keys *game.HeldKeys, r *render.TerminalRenderer, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return handleKey(ev, g, keys, now)
	case *tcell.EventResize:
		r.Resize()
	}
	return true
}

func handleKey(ev *tcell.EventKey, g *game.Game, keys *game.HeldKeys, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		keys.Press(game.DirUp, now)
	case tcell.KeyDown:
		keys.Press(game.DirDown, now)
	case tcell.KeyLeft:
		keys.Press(game.DirLeft, now)
	case tcell.KeyRight:
		keys.Press(game.DirRight, now)
	case tcell.KeyEnter:
		if g.State() == game.StateMenu {
			g.Start()
		}
	case tcell.KeyRune:
		return handleRune(ev.Rune(), g, keys, now)
	}
	return true
}

func handleRune(ch rune, g *game.Game, keys *game.HeldKeys, now time.Time) bool {
	switch ch {
	case 'q':
		return false
	case 'k', 'w':
		keys.Press(game.DirUp, now)
	case 'j', 's':
		keys.Press(game.DirDown, now)
	case 'h', 'a':
		keys.Press(game.DirLeft, now)
	case 'l', 'd':
		keys.Press(game.DirRight, now)
	case ' ', 'e':
		g.Interact()
	case 'p':
		keys.Release()
		g.TogglePause()
	case 'r':
		keys.Release()
		g.RequestRestart()
	case 'f':
		g.ForceSpawn()
	case 'c':
		g.ToggleSpawning()
	}
	return true
}

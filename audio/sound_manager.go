// Package audio plays short synthesized cues for clone and countdown events
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/clone-chaos/events"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Cue identifies a sound effect
type Cue int

const (
	CueSpawn Cue = iota
	CueWarning
	CueTimeUp
	CueExitOpen
	cueCount
)

// SoundManager turns game events into audio cues
// Safe to use without Initialize: cues are counted but not played
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	cues        [cueCount]int
	logger      *zap.Logger
}

// NewSoundManager creates a silent sound manager; call Initialize to open the speaker
func NewSoundManager(logger *zap.Logger) *SoundManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		logger: logger.Named("audio"),
	}
}

// Initialize sets up the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Debug("Audio initialized", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	sm.mixer.Clear()
	sm.initialized = false
}

// play counts the cue and queues s on the mixer when the speaker is open
func (sm *SoundManager) play(cue Cue, s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.cues[cue]++
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlaySpawn plays a rising chirp for a new clone
func (sm *SoundManager) PlaySpawn() {
	sm.play(CueSpawn, NewChirpGenerator(sampleRate, 420, 940, 140*time.Millisecond))
}

// PlayWarning plays a beep that rises in pitch as time runs out
func (sm *SoundManager) PlayWarning(seconds int) {
	freq := 880.0
	switch {
	case seconds <= 5:
		freq = 1320
	case seconds <= 10:
		freq = 1100
	}
	sm.play(CueWarning, NewToneGenerator(sampleRate, freq, 180*time.Millisecond))
}

// PlayTimeUp plays a long low buzz
func (sm *SoundManager) PlayTimeUp() {
	sm.play(CueTimeUp, beep.Take(sampleRate.N(time.Millisecond*600), NewBuzzGenerator(sampleRate, 90)))
}

// PlayExitOpen plays a two-note chime
func (sm *SoundManager) PlayExitOpen() {
	sm.play(CueExitOpen, beep.Seq(
		NewToneGenerator(sampleRate, 660, 120*time.Millisecond),
		NewToneGenerator(sampleRate, 990, 220*time.Millisecond),
	))
}

// Played returns how many times cue was triggered
func (sm *SoundManager) Played(cue Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.cues[cue]
}

// HandleEvent implements events.Handler
func (sm *SoundManager) HandleEvent(ev events.GameEvent) {
	switch ev.Type {
	case events.EventCloneSpawned:
		sm.PlaySpawn()
	case events.EventTimerWarning:
		if p, ok := ev.Payload.(*events.TimerWarningPayload); ok {
			sm.PlayWarning(p.Seconds)
		}
	case events.EventTimeUp:
		sm.PlayTimeUp()
	case events.EventExitChanged:
		if p, ok := ev.Payload.(*events.ExitChangedPayload); ok && p.Open {
			sm.PlayExitOpen()
		}
	}
}

// EventTypes implements events.Handler
func (sm *SoundManager) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventCloneSpawned,
		events.EventTimerWarning,
		events.EventTimeUp,
		events.EventExitChanged,
	}
}

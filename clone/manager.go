package clone

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/clone-chaos/constants"
	"github.com/lixenwraith/clone-chaos/engine"
	"github.com/lixenwraith/clone-chaos/events"
	"github.com/lixenwraith/clone-chaos/recording"
	"github.com/lixenwraith/clone-chaos/vmath"
)

// ManagerConfig tunes spawning and lifecycle of the clone population
type ManagerConfig struct {
	SpawnInterval        time.Duration
	MaxClones            int
	SpawnRadius          float64
	CompressionThreshold float64
	CleanupGrace         time.Duration
	SpawningEnabled      bool
	Clone                Config
}

// DefaultManagerConfig returns the stock spawning parameters
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		SpawnInterval:        constants.SpawnInterval,
		MaxClones:            constants.MaxClones,
		SpawnRadius:          constants.SpawnRadius,
		CompressionThreshold: constants.SpawnCompressionThreshold,
		CleanupGrace:         constants.CleanupGrace,
		SpawningEnabled:      true,
		Clone:                DefaultConfig(),
	}
}

// Stats counts the live set; reliability buckets cover active clones only
type Stats struct {
	Total    int
	Active   int
	Reliable int
	Degraded int
	Critical int
}

// DebugInfo is a point-in-time diagnostic snapshot of the manager
type DebugInfo struct {
	Stats              Stats
	NextID             int
	SpawningEnabled    bool
	TimeUntilNextSpawn time.Duration
	Recording          bool
	RecordedActions    int
	Clones             []CloneDebugInfo
}

// Manager owns the live clone set and decides when to harvest the recorder
//
// The live set is an arena ordered by ascending id with an id index.
// Clones are ticked in id order and removed only in the end-of-tick compaction.
type Manager struct {
	cfg      ManagerConfig
	recorder *recording.Recorder
	clock    engine.TimeProvider
	rng      engine.RandomSource
	sink     events.Sink
	logger   *zap.Logger

	clones []*Clone
	index  map[int]int

	nextID          int
	lastSpawn       time.Time
	spawningEnabled bool
}

// NewManager creates a manager that harvests rec; sink and logger may be nil
func NewManager(cfg ManagerConfig, rec *recording.Recorder, clock engine.TimeProvider,
	rng engine.RandomSource, sink events.Sink, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		cfg:             cfg,
		recorder:        rec,
		clock:           clock,
		rng:             rng,
		sink:            sink,
		logger:          logger.Named("clones"),
		index:           make(map[int]int),
		nextID:          1,
		spawningEnabled: cfg.SpawningEnabled,
	}
}

// Start anchors the spawn timer at now and opens the first recording session
func (m *Manager) Start(now time.Time) {
	m.lastSpawn = now
	if m.spawningEnabled {
		m.recorder.Start()
	}
	m.logger.Info("Clone system started",
		zap.Duration("spawn_interval", m.cfg.SpawnInterval),
		zap.Int("max_clones", m.cfg.MaxClones),
	)
}

// Update runs one manager tick: spawn decision, clone advance, cleanup
func (m *Manager) Update(dt time.Duration, now time.Time, playerPos vmath.Vec2) {
	if m.shouldSpawn(now) {
		m.spawn(playerPos, now)
	}

	for _, c := range m.clones {
		if c.IsActive() {
			c.Update(dt, now)
		}
	}

	m.cleanup(now)
}

func (m *Manager) shouldSpawn(now time.Time) bool {
	return m.spawningEnabled &&
		now.Sub(m.lastSpawn) >= m.cfg.SpawnInterval &&
		len(m.clones) < m.cfg.MaxClones &&
		m.recorder.Len() > 0
}

// spawn harvests the recorder into a new clone placed on the golden-angle spiral
// An empty harvest restarts recording without resetting the spawn timer;
// reached only through ForceSpawn
func (m *Manager) spawn(playerPos vmath.Vec2, now time.Time) (*Clone, bool) {
	session := m.recorder.SessionID()
	actions := m.recorder.Stop()
	if len(actions) == 0 {
		m.logger.Info("No actions recorded, skipping clone spawn")
		m.recorder.Start()
		return nil, false
	}

	compressed := recording.Compress(actions, m.cfg.CompressionThreshold)
	pos := playerPos.Add(SpawnOffset(m.nextID, m.cfg.SpawnRadius))

	id := m.nextID
	c := New(id, session, compressed, pos, now, m.cfg.Clone, m.rng, m.sink, m.logger)
	m.nextID++

	m.index[id] = len(m.clones)
	m.clones = append(m.clones, c)
	m.lastSpawn = now

	m.recorder.Start()

	m.logger.Info("Spawned clone",
		zap.Int("id", id),
		zap.Int("actions", len(compressed)),
		zap.Int("recorded", len(actions)),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
	)
	if m.sink != nil {
		m.sink.Push(events.GameEvent{
			Type: events.EventCloneSpawned,
			Payload: &events.CloneSpawnedPayload{
				CloneID:  id,
				Session:  session,
				Position: pos,
				Actions:  len(compressed),
			},
			Timestamp: now,
		})
	}
	return c, true
}

// SpawnOffset places clone id on a golden-angle spiral around the player
func SpawnOffset(id int, baseRadius float64) vmath.Vec2 {
	angle := math.Mod(float64(id)*constants.GoldenAngle, vmath.TwoPi)
	radius := baseRadius + float64(id%constants.SpawnRadiusBands)*constants.SpawnRadiusStep
	return vmath.FromAngle(angle, radius)
}

// cleanup compacts the live set, keeping active clones and
// finished ones still inside the grace window
func (m *Manager) cleanup(now time.Time) {
	kept := m.clones[:0]
	removed := 0
	for _, c := range m.clones {
		keep := c.IsActive() || (c.HasFinishedPlayback() && c.Age(now) < m.cfg.CleanupGrace)
		if keep {
			kept = append(kept, c)
			continue
		}
		removed++
	}
	if removed == 0 {
		return
	}

	for i := len(kept); i < len(m.clones); i++ {
		m.clones[i] = nil
	}
	m.clones = kept
	m.reindex()

	m.logger.Debug("Cleaned up inactive clones", zap.Int("removed", removed), zap.Int("remaining", len(kept)))
	if m.sink != nil {
		m.sink.Push(events.GameEvent{
			Type:      events.EventClonesCleaned,
			Payload:   &events.ClonesCleanedPayload{Removed: removed, Remaining: len(kept)},
			Timestamp: now,
		})
	}
}

func (m *Manager) reindex() {
	clear(m.index)
	for i, c := range m.clones {
		m.index[c.ID()] = i
	}
}

// ForceSpawn bypasses the interval but not capacity or the empty-buffer check
func (m *Manager) ForceSpawn(playerPos vmath.Vec2) (*Clone, bool) {
	if len(m.clones) >= m.cfg.MaxClones {
		m.logger.Info("Clone capacity reached, force spawn refused", zap.Int("max_clones", m.cfg.MaxClones))
		return nil, false
	}
	now := m.clock.Now()
	m.lastSpawn = now.Add(-m.cfg.SpawnInterval)
	return m.spawn(playerPos, now)
}

// SetSpawningEnabled toggles automatic spawning and resumes recording when enabled
func (m *Manager) SetSpawningEnabled(enabled bool) {
	m.spawningEnabled = enabled
	if enabled && !m.recorder.IsRecording() {
		m.recorder.Start()
	}
	m.logger.Info("Clone spawning toggled", zap.Bool("enabled", enabled))
}

// SpawningEnabled reports whether automatic spawning is on
func (m *Manager) SpawningEnabled() bool {
	return m.spawningEnabled
}

// ClearAll drops every clone and resets the id counter and spawn timer
func (m *Manager) ClearAll() {
	for i := range m.clones {
		m.clones[i] = nil
	}
	m.clones = m.clones[:0]
	clear(m.index)
	m.nextID = 1
	m.lastSpawn = time.Time{}
	m.logger.Info("Cleared all clones")
}

// Clones returns the live set in id order; callers must not mutate it
func (m *Manager) Clones() []*Clone {
	return m.clones
}

// Len returns the live clone count
func (m *Manager) Len() int {
	return len(m.clones)
}

// Get looks up a live clone by id
func (m *Manager) Get(id int) (*Clone, bool) {
	i, ok := m.index[id]
	if !ok {
		return nil, false
	}
	return m.clones[i], true
}

// NextID is the id the next spawned clone will receive
func (m *Manager) NextID() int {
	return m.nextID
}

// ClonesNear returns active clones within radius of pos, in id order
func (m *Manager) ClonesNear(pos vmath.Vec2, radius float64) []*Clone {
	var out []*Clone
	for _, c := range m.clones {
		if c.IsActive() && c.Position().Distance(pos) <= radius {
			out = append(out, c)
		}
	}
	return out
}

// InteractableClones returns clones that puzzle elements should respond to
func (m *Manager) InteractableClones() []*Clone {
	var out []*Clone
	for _, c := range m.clones {
		if c.CanInteract() {
			out = append(out, c)
		}
	}
	return out
}

// Stats counts the live set and buckets active clones by reliability
func (m *Manager) Stats() Stats {
	s := Stats{Total: len(m.clones)}
	for _, c := range m.clones {
		if !c.IsActive() {
			continue
		}
		s.Active++
		switch r := c.Reliability(); {
		case r > constants.ReliableThreshold:
			s.Reliable++
		case r > constants.DegradedThreshold:
			s.Degraded++
		default:
			s.Critical++
		}
	}
	return s
}

// TimeUntilNextSpawn is the remaining interval, zero once due
func (m *Manager) TimeUntilNextSpawn(now time.Time) time.Duration {
	remaining := m.cfg.SpawnInterval - now.Sub(m.lastSpawn)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SpawnPreviewActive reports the short window before an automatic spawn
func (m *Manager) SpawnPreviewActive(now time.Time) bool {
	if !m.spawningEnabled || len(m.clones) >= m.cfg.MaxClones {
		return false
	}
	remaining := m.TimeUntilNextSpawn(now)
	return remaining > 0 && remaining <= constants.SpawnPreviewLead
}

// DebugInfo snapshots manager and clone state at now
func (m *Manager) DebugInfo(now time.Time) DebugInfo {
	info := DebugInfo{
		Stats:              m.Stats(),
		NextID:             m.nextID,
		SpawningEnabled:    m.spawningEnabled,
		TimeUntilNextSpawn: m.TimeUntilNextSpawn(now),
		Recording:          m.recorder.IsRecording(),
		RecordedActions:    m.recorder.Len(),
		Clones:             make([]CloneDebugInfo, 0, len(m.clones)),
	}
	for _, c := range m.clones {
		info.Clones = append(info.Clones, c.DebugInfo(now))
	}
	return info
}

// HandleEvent implements events.Handler
func (m *Manager) HandleEvent(ev events.GameEvent) {
	switch ev.Type {
	case events.EventSpawnChange:
		if p, ok := ev.Payload.(*events.SpawnChangePayload); ok {
			m.SetSpawningEnabled(p.Enabled)
		}
	}
}

// EventTypes implements events.Handler
func (m *Manager) EventTypes() []events.EventType {
	return []events.EventType{events.EventSpawnChange}
}

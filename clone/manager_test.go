package clone

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/clone-chaos/engine"
	"github.com/lixenwraith/clone-chaos/events"
	"github.com/lixenwraith/clone-chaos/recording"
	"github.com/lixenwraith/clone-chaos/vmath"
)

type managerFixture struct {
	clock *engine.MockTimeProvider
	rec   *recording.Recorder
	queue *events.EventQueue
	mgr   *Manager
}

func newManagerFixture(t *testing.T, mutate func(*ManagerConfig)) *managerFixture {
	t.Helper()
	cfg := DefaultManagerConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	clock := engine.NewMockTimeProvider(epoch)
	rec := recording.NewRecorder(recording.DefaultConfig(), clock, nil)
	q := events.NewEventQueue()
	mgr := NewManager(cfg, rec, clock, engine.NewSequenceRandom(0.5), q, nil)
	mgr.Start(clock.Now())
	return &managerFixture{clock: clock, rec: rec, queue: q, mgr: mgr}
}

// recordSome advances the clock while recording distinct moves
func (f *managerFixture) recordSome(n int) {
	for i := 0; i < n; i++ {
		f.clock.Advance(50 * time.Millisecond)
		f.rec.RecordMovement(vmath.V2(float64(i*10), 0), vmath.V2(1, 0))
	}
}

func TestManagerStartOpensRecording(t *testing.T) {
	f := newManagerFixture(t, nil)
	assert.True(t, f.rec.IsRecording())
	assert.Equal(t, 10*time.Second, f.mgr.TimeUntilNextSpawn(f.clock.Now()))
	assert.Equal(t, 1, f.mgr.NextID())
}

func TestManagerSpawnsOnInterval(t *testing.T) {
	f := newManagerFixture(t, nil)
	player := vmath.V2(400, 300)

	f.recordSome(5)
	f.mgr.Update(frame, f.clock.Now(), player)
	assert.Equal(t, 0, f.mgr.Len(), "interval not elapsed")

	now := f.clock.Advance(10 * time.Second)
	f.mgr.Update(frame, now, player)
	require.Equal(t, 1, f.mgr.Len())

	c := f.mgr.Clones()[0]
	assert.Equal(t, 1, c.ID())
	assert.Equal(t, 5, c.ActionCount())
	assert.Equal(t, now, c.SpawnTime())
	assert.InDelta(t, 60, c.SpawnPosition().Distance(player), 1e-9)

	// Recording restarted with a fresh session
	assert.True(t, f.rec.IsRecording())
	assert.Equal(t, 0, f.rec.Len())
	assert.NotEqual(t, c.Session(), f.rec.SessionID())

	spawned := drain(f.queue, events.EventCloneSpawned)
	require.Len(t, spawned, 1)
	p := spawned[0].Payload.(*events.CloneSpawnedPayload)
	assert.Equal(t, 1, p.CloneID)
	assert.Equal(t, c.Session(), p.Session)
}

// A due tick with an empty buffer leaves the recording session alone
func TestManagerUpdateWaitsForActions(t *testing.T) {
	f := newManagerFixture(t, func(c *ManagerConfig) { c.SpawnInterval = 2 * time.Second })

	before := f.rec.SessionID()
	started := f.rec.StartedAt()
	now := f.clock.Advance(2 * time.Second)
	f.mgr.Update(frame, now, vmath.V2(0, 0))
	f.mgr.Update(frame, f.clock.Advance(frame), vmath.V2(0, 0))

	assert.Equal(t, 0, f.mgr.Len())
	assert.True(t, f.rec.IsRecording())
	assert.Equal(t, before, f.rec.SessionID())
	assert.Equal(t, started, f.rec.StartedAt())
	assert.Equal(t, time.Duration(0), f.mgr.TimeUntilNextSpawn(f.clock.Now()))
	assert.Empty(t, drain(f.queue, events.EventCloneSpawned))

	// Still due: the first tick with actions spawns
	f.recordSome(2)
	f.mgr.Update(frame, f.clock.Now(), vmath.V2(0, 0))
	require.Equal(t, 1, f.mgr.Len())
	assert.Equal(t, before, f.mgr.Clones()[0].Session())
}

// A forced spawn over an empty buffer restarts recording without a clone
func TestManagerForceSpawnEmptyHarvestRestartsRecording(t *testing.T) {
	f := newManagerFixture(t, nil)

	before := f.rec.SessionID()
	now := f.clock.Advance(2 * time.Second)
	_, ok := f.mgr.ForceSpawn(vmath.V2(0, 0))
	require.False(t, ok)

	assert.Equal(t, 0, f.mgr.Len())
	assert.Equal(t, 1, f.mgr.NextID())
	assert.True(t, f.rec.IsRecording())
	assert.NotEqual(t, before, f.rec.SessionID())
	assert.Equal(t, now, f.rec.StartedAt())
	assert.Empty(t, drain(f.queue, events.EventCloneSpawned))

	// The rewound timer stays due for the next tick with actions
	assert.Equal(t, time.Duration(0), f.mgr.TimeUntilNextSpawn(now))
	f.recordSome(1)
	f.mgr.Update(frame, f.clock.Now(), vmath.V2(0, 0))
	assert.Equal(t, 1, f.mgr.Len())
}

func TestManagerCompressesHarvest(t *testing.T) {
	f := newManagerFixture(t, nil)

	for i := 0; i < 3; i++ {
		f.clock.Advance(50 * time.Millisecond)
		f.rec.RecordMovement(vmath.V2(50, 50), vmath.V2(0, 0))
	}

	c, ok := f.mgr.ForceSpawn(vmath.V2(0, 0))
	require.True(t, ok)
	assert.Equal(t, 1, c.ActionCount())
}

// Two forced spawns in one tick receive consecutive ids
func TestManagerForceSpawnSequentialIDs(t *testing.T) {
	f := newManagerFixture(t, nil)
	player := vmath.V2(200, 200)

	f.recordSome(3)
	first, ok := f.mgr.ForceSpawn(player)
	require.True(t, ok)

	f.recordSome(3)
	second, ok := f.mgr.ForceSpawn(player)
	require.True(t, ok)

	assert.Equal(t, 1, first.ID())
	assert.Equal(t, 2, second.ID())
	assert.Equal(t, 3, f.mgr.NextID())
	assert.NotEqual(t, first.SpawnPosition(), second.SpawnPosition())

	got, ok := f.mgr.Get(2)
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestManagerForceSpawnRequiresActions(t *testing.T) {
	f := newManagerFixture(t, nil)
	_, ok := f.mgr.ForceSpawn(vmath.V2(0, 0))
	assert.False(t, ok)
	assert.Equal(t, 0, f.mgr.Len())
}

func TestManagerCapacity(t *testing.T) {
	f := newManagerFixture(t, func(c *ManagerConfig) { c.MaxClones = 2 })

	for i := 0; i < 2; i++ {
		f.recordSome(2)
		_, ok := f.mgr.ForceSpawn(vmath.V2(0, 0))
		require.True(t, ok)
	}

	f.recordSome(2)
	_, ok := f.mgr.ForceSpawn(vmath.V2(0, 0))
	assert.False(t, ok)
	assert.Equal(t, 2, f.mgr.Len())

	// Automatic spawns are refused too and the buffer keeps growing
	now := f.clock.Advance(20 * time.Second)
	f.mgr.Update(frame, now, vmath.V2(0, 0))
	assert.Equal(t, 2, f.mgr.Len())
	assert.Equal(t, 2, f.rec.Len())
	assert.False(t, f.mgr.SpawnPreviewActive(now))
}

func TestManagerDefaultCapacity(t *testing.T) {
	f := newManagerFixture(t, nil)
	for i := 0; i < 20; i++ {
		f.recordSome(1)
		f.mgr.ForceSpawn(vmath.V2(0, 0))
	}
	assert.Equal(t, 15, f.mgr.Len())
	assert.Equal(t, 16, f.mgr.NextID())
}

func TestManagerSpawningDisabled(t *testing.T) {
	f := newManagerFixture(t, func(c *ManagerConfig) { c.SpawningEnabled = false })
	assert.False(t, f.rec.IsRecording())

	now := f.clock.Advance(30 * time.Second)
	f.mgr.Update(frame, now, vmath.V2(0, 0))
	assert.Equal(t, 0, f.mgr.Len())

	f.mgr.SetSpawningEnabled(true)
	assert.True(t, f.rec.IsRecording())
	assert.True(t, f.mgr.SpawningEnabled())
}

func TestManagerHandlesSpawnChangeEvent(t *testing.T) {
	f := newManagerFixture(t, nil)
	router := events.NewRouter(f.queue)
	router.Register(f.mgr)

	f.queue.Push(events.GameEvent{
		Type:    events.EventSpawnChange,
		Payload: &events.SpawnChangePayload{Enabled: false},
	})
	router.DispatchAll()
	assert.False(t, f.mgr.SpawningEnabled())
}

func TestManagerAdvancesClonesInIDOrder(t *testing.T) {
	f := newManagerFixture(t, nil)
	for i := 0; i < 3; i++ {
		f.clock.Advance(50 * time.Millisecond)
		f.rec.RecordInteraction("activate", "", nil)
		f.mgr.ForceSpawn(vmath.V2(0, 0))
	}
	f.queue.Consume()

	f.mgr.Update(frame, f.clock.Advance(time.Second), vmath.V2(0, 0))

	var order []int
	for _, ev := range f.queue.Consume() {
		if ev.Type == events.EventCloneInteraction {
			order = append(order, ev.Payload.(*events.InteractionPayload).CloneID)
		}
	}
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestManagerCleanup(t *testing.T) {
	f := newManagerFixture(t, nil)

	// Clone 1 finishes quickly; clone 2 has a long tail
	f.recordSome(1)
	c1, _ := f.mgr.ForceSpawn(vmath.V2(0, 0))
	f.clock.Advance(50 * time.Millisecond)
	f.rec.RecordMovement(vmath.V2(0, 0), vmath.V2(0, 0))
	f.clock.Advance(5 * time.Second)
	f.rec.RecordMovement(vmath.V2(90, 0), vmath.V2(0, 0))
	c2, _ := f.mgr.ForceSpawn(vmath.V2(0, 0))
	spawn2 := c2.SpawnTime()

	f.mgr.Update(frame, f.clock.Advance(frame), vmath.V2(0, 0))
	require.True(t, c1.HasFinishedPlayback())
	require.False(t, c2.HasFinishedPlayback())

	// Finished but active clones are kept past the grace window
	f.mgr.Update(frame, f.clock.Advance(3*time.Second), vmath.V2(0, 0))
	assert.Equal(t, 2, f.mgr.Len())
	assert.Greater(t, c1.Age(f.clock.Now()), 5*time.Second)
	require.False(t, c2.HasFinishedPlayback())

	// Deactivated unfinished clones go on the next cleanup
	c2.Deactivate()
	f.mgr.Update(frame, spawn2.Add(4*time.Second), vmath.V2(0, 0))
	require.Equal(t, 1, f.mgr.Len())
	_, ok := f.mgr.Get(2)
	assert.False(t, ok)

	got, ok := f.mgr.Get(1)
	require.True(t, ok)
	assert.Same(t, c1, got)

	cleaned := drain(f.queue, events.EventClonesCleaned)
	require.Len(t, cleaned, 1)
	assert.Equal(t, &events.ClonesCleanedPayload{Removed: 1, Remaining: 1}, cleaned[0].Payload)
}

func TestManagerCleanupGraceForFinished(t *testing.T) {
	f := newManagerFixture(t, func(c *ManagerConfig) { c.SpawningEnabled = false })
	f.rec.Start()
	f.recordSome(1)
	c, _ := f.mgr.ForceSpawn(vmath.V2(0, 0))
	spawn := c.SpawnTime()

	f.mgr.Update(frame, spawn.Add(100*time.Millisecond), vmath.V2(0, 0))
	require.True(t, c.HasFinishedPlayback())
	c.Deactivate()

	f.mgr.Update(frame, spawn.Add(4*time.Second), vmath.V2(0, 0))
	assert.Equal(t, 1, f.mgr.Len(), "finished clone within grace is kept")

	f.mgr.Update(frame, spawn.Add(5*time.Second), vmath.V2(0, 0))
	assert.Equal(t, 0, f.mgr.Len())
}

func TestManagerClearAll(t *testing.T) {
	f := newManagerFixture(t, nil)
	f.recordSome(1)
	f.mgr.ForceSpawn(vmath.V2(0, 0))
	f.recordSome(1)
	f.mgr.ForceSpawn(vmath.V2(0, 0))

	f.mgr.ClearAll()
	assert.Equal(t, 0, f.mgr.Len())
	assert.Equal(t, 1, f.mgr.NextID())
	_, ok := f.mgr.Get(1)
	assert.False(t, ok)

	f.recordSome(1)
	c, ok := f.mgr.ForceSpawn(vmath.V2(0, 0))
	require.True(t, ok)
	assert.Equal(t, 1, c.ID())
}

func TestSpawnOffsetSpiral(t *testing.T) {
	tests := []struct {
		id     int
		radius float64
	}{
		{1, 60}, {2, 70}, {3, 50}, {4, 60},
	}
	for _, tt := range tests {
		off := SpawnOffset(tt.id, 50)
		assert.InDelta(t, tt.radius, off.Magnitude(), 1e-9, "id %d", tt.id)

		angle := math.Mod(float64(tt.id)*0.618*2*math.Pi, 2*math.Pi)
		assert.InDelta(t, math.Cos(angle)*tt.radius, off.X, 1e-9)
		assert.InDelta(t, math.Sin(angle)*tt.radius, off.Y, 1e-9)
	}
}

func TestManagerStatsAndQueries(t *testing.T) {
	f := newManagerFixture(t, nil)
	player := vmath.V2(400, 300)

	ids := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		f.recordSome(1)
		c, ok := f.mgr.ForceSpawn(player)
		require.True(t, ok)
		ids = append(ids, c.ID())
		// Stagger spawns 15s apart
		if i < 2 {
			f.clock.Advance(15 * time.Second)
		}
	}
	assert.Equal(t, []int{1, 2, 3}, ids)

	// Ages at the tick: ~60s, ~45s and exactly 30s
	now := f.clock.Advance(30 * time.Second)
	f.mgr.Update(frame, now, player)

	s := f.mgr.Stats()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 3, s.Active)
	assert.Equal(t, 3, s.Reliable+s.Degraded+s.Critical)
	assert.Equal(t, 1, s.Reliable, "clone3 is fresh")

	near := f.mgr.ClonesNear(player, 100)
	assert.Len(t, near, 3)
	assert.Empty(t, f.mgr.ClonesNear(vmath.V2(0, 0), 10))

	for _, c := range f.mgr.InteractableClones() {
		assert.Less(t, c.DegradationLevel(), 0.8)
	}

	info := f.mgr.DebugInfo(now)
	assert.Equal(t, s, info.Stats)
	require.Len(t, info.Clones, 3)
	assert.Equal(t, 1, info.Clones[0].ID)
}

func TestManagerSpawnPreview(t *testing.T) {
	f := newManagerFixture(t, nil)
	start := f.clock.Now()

	assert.False(t, f.mgr.SpawnPreviewActive(start.Add(7*time.Second)))
	assert.True(t, f.mgr.SpawnPreviewActive(start.Add(8*time.Second)))
	assert.True(t, f.mgr.SpawnPreviewActive(start.Add(9500*time.Millisecond)))
	assert.False(t, f.mgr.SpawnPreviewActive(start.Add(10*time.Second)))
	assert.Equal(t, 3*time.Second, f.mgr.TimeUntilNextSpawn(start.Add(7*time.Second)))

	f.mgr.SetSpawningEnabled(false)
	assert.False(t, f.mgr.SpawnPreviewActive(start.Add(9*time.Second)))
}

// Inactive clones kept for the grace window are counted but not bucketed
func TestManagerStatsSkipInactive(t *testing.T) {
	f := newManagerFixture(t, func(c *ManagerConfig) { c.SpawningEnabled = false })
	f.rec.Start()
	f.recordSome(1)
	c, ok := f.mgr.ForceSpawn(vmath.V2(0, 0))
	require.True(t, ok)

	f.mgr.Update(frame, c.SpawnTime().Add(100*time.Millisecond), vmath.V2(0, 0))
	require.True(t, c.HasFinishedPlayback())
	assert.Equal(t, Stats{Total: 1, Active: 1, Reliable: 1}, f.mgr.Stats())

	c.Deactivate()
	f.mgr.Update(frame, c.SpawnTime().Add(time.Second), vmath.V2(0, 0))
	require.Equal(t, 1, f.mgr.Len())
	assert.Equal(t, Stats{Total: 1}, f.mgr.Stats())
}

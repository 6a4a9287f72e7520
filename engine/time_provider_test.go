package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := provider.Now()

	assert.True(t, t2.After(t1), "expected t2 after t1, got t1=%v t2=%v", t1, t2)
	assert.GreaterOrEqual(t, t2.Sub(t1), 5*time.Millisecond)
}

func TestMockTimeProvider(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	assert.True(t, mock.Now().Equal(startTime))

	newTime := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.SetTime(newTime)
	assert.True(t, mock.Now().Equal(newTime))

	got := mock.Advance(1 * time.Hour)
	assert.True(t, got.Equal(newTime.Add(time.Hour)))

	mock.Advance(30 * time.Minute)
	mock.Advance(15 * time.Minute)
	assert.True(t, mock.Now().Equal(newTime.Add(time.Hour+45*time.Minute)))

	back := mock.Rewind(45 * time.Minute)
	assert.True(t, back.Equal(newTime.Add(time.Hour)))
	assert.True(t, mock.Now().Equal(back))
}

func TestMockTimeProviderConcurrency(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_ = mock.Now()
			}
			done <- true
		}()
	}
	for i := 0; i < 5; i++ {
		go func() {
			for j := 0; j < 50; j++ {
				mock.Advance(time.Millisecond)
			}
			done <- true
		}()
	}
	for i := 0; i < 15; i++ {
		<-done
	}

	assert.True(t, mock.Now().Equal(startTime.Add(250*time.Millisecond)))
}

func TestPausableClock(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	base := NewMockTimeProvider(startTime)
	clock := NewPausableClockWith(base)

	base.Advance(time.Second)
	require.True(t, clock.Now().Equal(startTime.Add(time.Second)))

	clock.Pause()
	assert.True(t, clock.IsPaused())
	base.Advance(3 * time.Second)
	assert.True(t, clock.Now().Equal(startTime.Add(time.Second)), "game time frozen during pause")
	assert.Equal(t, 3*time.Second, clock.TotalPauseDuration())

	// Double pause is a no-op
	clock.Pause()
	clock.Resume()
	assert.False(t, clock.IsPaused())
	assert.True(t, clock.Now().Equal(startTime.Add(time.Second)))

	base.Advance(2 * time.Second)
	assert.True(t, clock.Now().Equal(startTime.Add(3*time.Second)))
	assert.True(t, clock.RealTime().Equal(startTime.Add(6*time.Second)))
}

func TestTimeProviderInterface(t *testing.T) {
	var _ TimeProvider = &MonotonicTimeProvider{}
	var _ TimeProvider = &MockTimeProvider{}
	var _ TimeProvider = &PausableClock{}
}

func TestSequenceRandom(t *testing.T) {
	r := NewSequenceRandom(0.1, 0.9)
	assert.Equal(t, 0.1, r.Float64())
	assert.Equal(t, 0.9, r.Float64())
	assert.Equal(t, 0.1, r.Float64())
	assert.Equal(t, 3, r.Calls())

	assert.Equal(t, 0.5, NewSequenceRandom().Float64())
}

func TestSeededRandomDeterministic(t *testing.T) {
	a := NewSeededRandom(42)
	b := NewSeededRandom(42)
	for i := 0; i < 10; i++ {
		va, vb := a.Float64(), b.Float64()
		require.Equal(t, va, vb)
		require.GreaterOrEqual(t, va, 0.0)
		require.Less(t, va, 1.0)
	}

	var _ RandomSource = NewSeededRandom(0)
}

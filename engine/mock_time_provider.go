package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a hand-driven clock for recorder, clone and timer tests
// Tests step it by frame deltas or jump it across spawn intervals and degradation windows
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a mock clock frozen at startTime until stepped
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime jumps to t, e.g. a clone's spawn time plus a target age
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance steps forward by d and returns the new time for passing straight to Update
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
	return m.currentTime
}

// Rewind steps backward by d, simulating a wall-clock regression mid-session
func (m *MockTimeProvider) Rewind(d time.Duration) time.Time {
	return m.Advance(-d)
}

package engine

import (
	"sync"
	"time"
)

// TimeSource supplies time readings; PausableClock layers game time over one
type TimeSource interface {
	Now() time.Time
}

// TimeProvider is the real monotonic wall clock
type TimeProvider struct{}

// NewTimeProvider creates a wall clock source
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a controllable time source for tests
type MockTimeProvider struct {
	mu     sync.RWMutex
	origin time.Time
	now    time.Time
}

// NewMockTimeProvider starts the mock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{origin: start, now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// SetTime jumps to an absolute time
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// SetElapsed jumps to origin + d
func (m *MockTimeProvider) SetElapsed(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.origin.Add(d)
}

// Advance moves time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

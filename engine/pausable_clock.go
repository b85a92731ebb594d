package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock is game time: wall time minus accumulated pauses
type PausableClock struct {
	mu sync.RWMutex

	source    TimeSource
	startTime time.Time

	isPaused        atomic.Bool
	pauseStartTime  time.Time
	totalPausedTime time.Duration
}

// NewPausableClock starts game time at source.Now()
func NewPausableClock(source TimeSource) *PausableClock {
	return &PausableClock{
		source:    source,
		startTime: source.Now(),
	}
}

// Now returns game time, frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.pauseStartTime.Add(-pc.totalPausedTime)
	}
	return pc.source.Now().Add(-pc.totalPausedTime)
}

// Elapsed returns game time since the clock started
func (pc *PausableClock) Elapsed() time.Duration {
	return pc.Now().Sub(pc.startTime)
}

// RealTime returns source time, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.source.Now()
}

// Pause stops game time advancement
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		pc.pauseStartTime = pc.source.Now()
		pc.mu.Unlock()
	}
}

// Resume continues game time advancement
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStartTime)
		pc.pauseStartTime = time.Time{}
		pc.mu.Unlock()
	}
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.isPaused.Load() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration includes the current pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		total += pc.source.Now().Sub(pc.pauseStartTime)
	}
	return total
}

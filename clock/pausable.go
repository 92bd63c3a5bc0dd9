package clock

import (
	"sync"
	"time"
)

// PausableClock measures presentation time, excluding paused intervals
// The frame loop reads Delta once per frame and feeds it to the Scheduler,
// so pausing freezes every timer and every whisper envelope at once
type PausableClock struct {
	mu sync.Mutex

	provider        TimeProvider
	start           time.Time
	paused          bool
	pauseStart      time.Time
	totalPausedTime time.Duration
	lastRead        time.Duration
}

// NewPausableClock creates a running clock; nil provider uses real time
func NewPausableClock(provider TimeProvider) *PausableClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		provider: provider,
		start:    provider.Now(),
	}
}

// Elapsed returns running time since creation, frozen while paused
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.elapsedLocked()
}

func (pc *PausableClock) elapsedLocked() time.Duration {
	ref := pc.provider.Now()
	if pc.paused {
		ref = pc.pauseStart
	}
	return ref.Sub(pc.start) - pc.totalPausedTime
}

// Delta returns running time since the previous Delta call
func (pc *PausableClock) Delta() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	now := pc.elapsedLocked()
	d := now - pc.lastRead
	pc.lastRead = now
	if d < 0 {
		return 0
	}
	return d
}

// Pause stops time advancement; no-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.provider.Now()
}

// Resume continues time advancement; no-op when running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.provider.Now().Sub(pc.pauseStart)
	pc.paused = false
	pc.pauseStart = time.Time{}
}

// Toggle flips the pause state and reports whether the clock is now paused
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time, including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	total := pc.totalPausedTime
	if pc.paused {
		total += pc.provider.Now().Sub(pc.pauseStart)
	}
	return total
}

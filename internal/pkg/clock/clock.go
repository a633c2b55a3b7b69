package clock

import (
	"sync"
	"time"
)

// Clock is the source of comment timestamps.
type Clock interface {
	Now() time.Time
}

// RealClock returns the real current time.
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// FakeClock is a controllable clock for tests. Safe for concurrent use since
// commands read it from their own goroutines.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake creates a FakeClock set to the given time (expected in UTC).
func NewFake(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

func (f *FakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *FakeClock) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// Advance moves the fake clock forward by duration d.
func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

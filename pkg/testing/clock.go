package testing

import (
	"sync"
	"time"
)

// FrameDuration is how far Step moves the clock, one 60Hz frame.
const FrameDuration = 16 * time.Millisecond

// FakeClock is an animation clock that only moves when told to. Install it
// with animation.SetClock; a SheetTester does this for you. It is safe for
// concurrent use so watchers and tickers in other goroutines can read it.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	frames int
}

// NewFakeClock returns a FakeClock at a fixed epoch with no frames stepped.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Step moves the clock forward one frame and returns the new time.
func (c *FakeClock) Step() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(FrameDuration)
	c.frames++
	return c.now
}

// Frames returns how many times Step has been called.
func (c *FakeClock) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Advance moves the clock forward by d without counting a frame, for gaps
// between gestures.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set jumps the clock to t.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

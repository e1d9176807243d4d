package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/modalsheet/pkg/animation"
	"github.com/go-drift/modalsheet/pkg/sheet"
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: sheet did not settle")

// SheetTester drives a sheet.State frame by frame against a fake clock.
type SheetTester struct {
	state      *sheet.State
	clock      *FakeClock
	prevClock  animation.Clock
	dispatches []func()
	frames     int
	recording  bool
	samples    []Sample
}

// Sample is the sheet's offset after a pumped frame.
type Sample struct {
	At     time.Time
	Offset float64
}

// NewSheetTester creates a tester for state and installs a fake animation
// clock. Call Cleanup() when done, or use NewSheetTesterWithT() instead.
func NewSheetTester(state *sheet.State) *SheetTester {
	clk := NewFakeClock()
	return &SheetTester{
		state:     state,
		clock:     clk,
		prevClock: animation.SetClock(clk),
	}
}

// NewSheetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewSheetTesterWithT(t *testing.T, state *sheet.State) *SheetTester {
	tester := NewSheetTester(state)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the animation clock.
func (t *SheetTester) Cleanup() {
	animation.SetClock(t.prevClock)
}

// Clock returns the fake clock for advancing time in tests.
func (t *SheetTester) Clock() *FakeClock {
	return t.clock
}

// State returns the state under test.
func (t *SheetTester) State() *sheet.State {
	return t.state
}

// Frames returns the number of frames pumped so far.
func (t *SheetTester) Frames() int {
	return t.frames
}

// Dispatch queues fn to run at the start of the next frame.
func (t *SheetTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// Pump runs a single frame at the current clock time: queued dispatches,
// then tickers.
func (t *SheetTester) Pump() {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	animation.StepTickers()
	t.frames++
	if t.recording {
		t.samples = append(t.samples, Sample{At: t.clock.Now(), Offset: t.state.Offset()})
	}
}

// PumpFrames steps the clock one frame and pumps, n times.
func (t *SheetTester) PumpFrames(n int) {
	for i := 0; i < n; i++ {
		t.clock.Step()
		t.Pump()
	}
}

// PumpAndSettle runs frames until no animation is running or the timeout
// is reached. Each frame steps the fake clock once.
// Returns ErrSettleTimeout if the sheet does not settle within timeout.
func (t *SheetTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		t.Pump()
		if !t.needsWork() {
			return nil
		}
		t.clock.Step()
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}

func (t *SheetTester) needsWork() bool {
	return animation.HasActiveTickers() || len(t.dispatches) > 0
}

// Drag simulates a user drag: StartDrag, then one delta per frame. The
// gesture is left open; finish it with Release or Fling.
func (t *SheetTester) Drag(deltas ...float64) {
	t.state.StartDrag()
	for _, d := range deltas {
		t.state.DragBy(d)
		t.PumpFrames(1)
	}
}

// Fling drags by deltas and releases with velocity.
func (t *SheetTester) Fling(velocity float64, deltas ...float64) *sheet.Motion {
	t.Drag(deltas...)
	return t.state.PerformFling(velocity)
}

// Release ends an open drag without velocity.
func (t *SheetTester) Release() *sheet.Motion {
	return t.state.PerformFling(0)
}

// RecordSamples starts recording the clock time and offset after every
// pumped frame. The returned function stops recording and returns the samples.
func (t *SheetTester) RecordSamples() (stop func() []Sample) {
	t.recording = true
	t.samples = nil
	return func() []Sample {
		t.recording = false
		samples := t.samples
		t.samples = nil
		return samples
	}
}

// RecordOffsets is RecordSamples without the times.
func (t *SheetTester) RecordOffsets() (stop func() []float64) {
	stopSamples := t.RecordSamples()
	return func() []float64 {
		samples := stopSamples()
		offsets := make([]float64, len(samples))
		for i, s := range samples {
			offsets[i] = s.Offset
		}
		return offsets
	}
}

// Package animation provides the frame loop and value animation engine used
// by the sheet motion core.
//
// # Core Components
//
//   - [Ticker]: a per-frame callback registered with the package frame loop.
//     The host calls [StepTickers] once per frame; nothing advances otherwise.
//
//   - [Animatable]: drives a single float64 from its current value toward a
//     target, emitting every intermediate value and reporting whether the run
//     finished or was interrupted.
//
//   - [Spec]: how a run moves. [SpringSpec] is physics based (stiffness and
//     damping ratio), [TweenSpec] is duration based with an easing curve.
//
//   - [Controller] and [Tween]: a direction-only 0 to 1 progress mapped onto
//     a range, for effects that follow the sheet such as a scrim fade.
//
// # Basic Usage
//
//	anim := animation.NewAnimatable(0)
//	anim.AnimateTo(300, animation.DefaultSpring(), func(v float64) {
//	    offset = v
//	}, func(reason animation.EndReason) {
//	    log.Printf("settled: %v", reason)
//	})
//
//	// once per frame, from the host loop:
//	animation.StepTickers()
package animation

import (
	"sync"
	"time"
)

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
)

// Frame describes one step of a running ticker.
type Frame struct {
	// Elapsed is the time since the ticker was started.
	Elapsed time.Duration
	// Delta is the time since the previous frame delivered to this ticker.
	Delta time.Duration
}

// Ticker calls a callback on each frame while active.
//
// Tickers are driven by the host's frame loop via [StepTickers]. The first
// frame after Start has a zero Delta.
type Ticker struct {
	callback func(Frame)
	isActive bool
	start    time.Time
	last     time.Duration
}

// NewTicker creates a new ticker with the given callback.
func NewTicker(callback func(Frame)) *Ticker {
	return &Ticker{
		callback: callback,
	}
}

// Start activates the ticker.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = Now()
	t.last = 0
	tickerMu.Lock()
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker. Frames already being delivered by
// StepTickers are not delivered to a stopped ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return Now().Sub(t.start)
}

func (t *Ticker) tick(now time.Time) {
	elapsed := now.Sub(t.start)
	delta := elapsed - t.last
	if delta < 0 {
		delta = 0
	}
	t.last = elapsed
	t.callback(Frame{Elapsed: elapsed, Delta: delta})
}

// StepTickers advances all active tickers.
// This should be called once per frame from the host loop.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return
	}
	// Copy to avoid holding the lock during callbacks; callbacks start and
	// stop tickers.
	tickers := make([]*Ticker, 0, len(activeTickers))
	for ticker := range activeTickers {
		tickers = append(tickers, ticker)
	}
	tickerMu.Unlock()

	now := Now()
	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			ticker.tick(now)
		}
	}
}

// HasActiveTickers returns true if any tickers are active.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0
}

package animation

import "fmt"

// EndReason reports how an Animatable run ended.
type EndReason int

const (
	// EndFinished means the run reached its target.
	EndFinished EndReason = iota
	// EndInterrupted means the run was stopped or replaced before reaching its target.
	EndInterrupted
)

func (r EndReason) String() string {
	switch r {
	case EndFinished:
		return "finished"
	case EndInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("EndReason(%d)", int(r))
	}
}

// Animatable animates a single float64 value. Each run is driven by a
// [Ticker] and so only progresses while the host calls [StepTickers].
//
// An Animatable runs at most one animation at a time; starting a new one
// interrupts the previous run, whose end callback fires with EndInterrupted
// before the new run begins.
type Animatable struct {
	value    float64
	velocity float64
	target   float64

	sim     Simulation
	ticker  *Ticker
	onFrame func(float64)
	onEnd   func(EndReason)
}

// NewAnimatable creates an idle Animatable holding initial.
func NewAnimatable(initial float64) *Animatable {
	return &Animatable{value: initial}
}

// Value returns the most recently produced value.
func (a *Animatable) Value() float64 {
	return a.value
}

// Velocity returns the current velocity in units per second.
func (a *Animatable) Velocity() float64 {
	return a.velocity
}

// IsRunning reports whether a run is in progress.
func (a *Animatable) IsRunning() bool {
	return a.sim != nil
}

// Target returns the target of the current run.
func (a *Animatable) Target() (float64, bool) {
	if a.sim == nil {
		return 0, false
	}
	return a.target, true
}

// AnimateTo starts a run toward target. onFrame receives every intermediate
// value, including the final one; onEnd is called exactly once when the run
// finishes or is interrupted. A nil spec uses DefaultSpring.
//
// The first value is produced on the next frame, never synchronously.
func (a *Animatable) AnimateTo(target float64, spec Spec, onFrame func(float64), onEnd func(EndReason)) {
	if a.sim != nil {
		a.finish(EndInterrupted)
	}
	if spec == nil {
		spec = DefaultSpring()
	}
	a.target = target
	a.sim = spec.Simulate(a.value, target, a.velocity)
	a.onFrame = onFrame
	a.onEnd = onEnd
	a.ticker = NewTicker(a.tick)
	a.ticker.Start()
}

// Stop interrupts the current run, leaving the value where it is.
func (a *Animatable) Stop() {
	if a.sim == nil {
		return
	}
	a.finish(EndInterrupted)
}

// SnapTo interrupts any run and jumps to value.
func (a *Animatable) SnapTo(value float64) {
	a.Stop()
	a.value = value
	a.velocity = 0
}

func (a *Animatable) tick(frame Frame) {
	sim := a.sim
	if sim == nil {
		return
	}
	value, done := sim.Step(frame.Delta)
	a.value = value
	a.velocity = sim.Velocity()
	if a.onFrame != nil {
		a.onFrame(value)
	}
	// onFrame may have interrupted this run and started another.
	if done && a.sim == sim {
		a.velocity = 0
		a.finish(EndFinished)
	}
}

func (a *Animatable) finish(reason EndReason) {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
	onEnd := a.onEnd
	a.sim = nil
	a.onFrame = nil
	a.onEnd = nil
	if onEnd != nil {
		onEnd(reason)
	}
}

package animation

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Spec describes how an [Animatable] moves from one value to another.
type Spec interface {
	// Simulate starts a run at from, moving with the given initial velocity
	// (units per second), toward to.
	Simulate(from, to, velocity float64) Simulation
}

// Simulation is a single run produced by a Spec.
type Simulation interface {
	// Step advances the run by dt and returns the new value. done reports
	// that the run has reached its target; the returned value is then exactly
	// the target.
	Step(dt time.Duration) (value float64, done bool)
	// Velocity is the current velocity in units per second.
	Velocity() float64
}

// Spring stiffness presets.
const (
	StiffnessHigh      = 10000.0
	StiffnessMedium    = 1500.0
	StiffnessMediumLow = 400.0
	StiffnessLow       = 200.0
	StiffnessVeryLow   = 50.0
)

// Spring damping ratio presets. 1 is critically damped (no overshoot).
const (
	DampingRatioHighBouncy   = 0.2
	DampingRatioMediumBouncy = 0.5
	DampingRatioLowBouncy    = 0.75
	DampingRatioNoBouncy     = 1.0
)

const (
	defaultDisplacementThreshold = 0.01
	defaultVelocityThreshold     = 1.0
	// Larger frame gaps are integrated in several sub-steps.
	maxSpringStep = 1.0 / 120
)

// SpringSpec animates with a damped spring of unit mass.
// Zero fields take defaults: StiffnessMedium, DampingRatioNoBouncy, and a
// 0.01 unit rest threshold.
type SpringSpec struct {
	Stiffness    float64
	DampingRatio float64
	// Threshold is the distance from the target under which the spring may
	// come to rest.
	Threshold float64
}

// DefaultSpring returns a critically damped medium stiffness spring.
func DefaultSpring() SpringSpec {
	return SpringSpec{Stiffness: StiffnessMedium, DampingRatio: DampingRatioNoBouncy}
}

func (s SpringSpec) normalized() SpringSpec {
	if s.Stiffness <= 0 {
		s.Stiffness = StiffnessMedium
	}
	if s.DampingRatio <= 0 {
		s.DampingRatio = DampingRatioNoBouncy
	}
	if s.Threshold <= 0 {
		s.Threshold = defaultDisplacementThreshold
	}
	return s
}

// Simulate implements Spec.
func (s SpringSpec) Simulate(from, to, velocity float64) Simulation {
	s = s.normalized()
	return &springSimulation{
		spec:      s,
		frequency: math.Sqrt(s.Stiffness),
		position:  from,
		velocity:  velocity,
		target:    to,
	}
}

type springSimulation struct {
	spec      SpringSpec
	frequency float64
	position  float64
	velocity  float64
	target    float64
}

func (s *springSimulation) atRest() bool {
	return math.Abs(s.position-s.target) < s.spec.Threshold &&
		math.Abs(s.velocity) < defaultVelocityThreshold
}

func (s *springSimulation) Step(dt time.Duration) (float64, bool) {
	remaining := dt.Seconds()
	for remaining > 0 && !s.atRest() {
		h := math.Min(remaining, maxSpringStep)
		spring := harmonica.NewSpring(h, s.frequency, s.spec.DampingRatio)
		s.position, s.velocity = spring.Update(s.position, s.velocity, s.target)
		remaining -= h
	}
	if s.atRest() {
		s.position = s.target
		s.velocity = 0
		return s.position, true
	}
	return s.position, false
}

func (s *springSimulation) Velocity() float64 {
	return s.velocity
}

// TweenSpec animates over a fixed duration along an easing curve. A nil
// Easing means EaseInOut; a non-positive Duration completes on the first frame.
type TweenSpec struct {
	Duration time.Duration
	Easing   Easing
}

// Simulate implements Spec. The initial velocity is ignored.
func (t TweenSpec) Simulate(from, to, _ float64) Simulation {
	easing := t.Easing
	if easing == nil {
		easing = EaseInOut
	}
	return &tweenSimulation{from: from, to: to, duration: t.Duration, easing: easing, position: from}
}

type tweenSimulation struct {
	from, to float64
	duration time.Duration
	easing   Easing
	elapsed  time.Duration
	position float64
	velocity float64
}

func (t *tweenSimulation) Step(dt time.Duration) (float64, bool) {
	t.elapsed += dt
	if t.duration <= 0 || t.elapsed >= t.duration {
		t.position = t.to
		t.velocity = 0
		return t.to, true
	}
	progress := float64(t.elapsed) / float64(t.duration)
	next := t.from + (t.to-t.from)*t.easing(progress)
	if dt > 0 {
		t.velocity = (next - t.position) / dt.Seconds()
	}
	t.position = next
	return next, false
}

func (t *tweenSimulation) Velocity() float64 {
	return t.velocity
}

package sheet

import (
	"log/slog"
	"math"

	"github.com/go-drift/modalsheet/pkg/animation"
	"github.com/go-drift/modalsheet/pkg/errors"
)

// settleTolerance is how close an animation must end to an anchor for the
// anchor's value to become current.
const settleTolerance = 2.0

// Config configures a State. The zero Config is usable.
type Config struct {
	// InitialValue is the value the first Initialize snaps to.
	InitialValue Value
	// InAnimation drives motions toward Expanded and Full. Nil means
	// animation.DefaultSpring.
	InAnimation animation.Spec
	// OutAnimation drives motions toward Hidden. Nil means InAnimation.
	OutAnimation animation.Spec
	// ConfirmStateChange may veto a fling's target. A vetoed fling rolls the
	// sheet back to its current value. Nil approves every change.
	ConfirmStateChange func(Value) bool
	// AfterStateChange is called once per AnimateTo, Show or Hide, after the
	// current value has been resolved, with the requested value.
	AfterStateChange func(Value)
	// Logger receives debug events. Nil means slog.Default.
	Logger *slog.Logger
}

// State is the motion state machine of a bottom sheet.
//
// A State is idle at its current value, follows a user drag, or settles
// toward a target with an animation. Anchor changes while in any of those
// retarget the sheet to the same value in the new anchors.
//
// State is not safe for concurrent use. All methods, and the host's calls to
// animation.StepTickers that drive its animations, must run on one goroutine.
type State struct {
	cfg    Config
	logger *slog.Logger
	drag   *DragCoordinator
	anim   *animation.Animatable

	anchors           AnchorMap
	thresholds        ThresholdFunc
	velocityThreshold float64

	currentValue       Value
	animationTarget    float64
	hasAnimationTarget bool
	animating          bool
	dragging           bool

	user       *DragScope
	generation int

	listeners    map[int]func()
	nextListener int
}

// NewState returns an uninitialized State. Call Initialize once the anchors
// are known.
func NewState(cfg Config) *State {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &State{
		cfg:          cfg,
		logger:       logger,
		drag:         NewDragCoordinator(),
		anim:         animation.NewAnimatable(0),
		thresholds:   Midpoint,
		currentValue: cfg.InitialValue,
	}
	s.drag.onChange = s.notify
	return s
}

// AddListener registers fn to be called after every change to the state.
// It returns a function that removes the listener.
func (s *State) AddListener(fn func()) (remove func()) {
	if s.listeners == nil {
		s.listeners = make(map[int]func())
	}
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *State) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// Initialize installs anchors. The first call snaps the sheet to the
// current value. Later calls with different anchors relax the bounds and
// animate the sheet to its in-flight value in the new anchors, snapping if
// that animation is interrupted; the bounds are restored once it settles.
//
// An empty anchor map is a precondition violation: Initialize reports and
// returns an error wrapping errors.ErrNoAnchors and leaves the state unchanged.
func (s *State) Initialize(anchors AnchorMap, thresholds ThresholdFunc, velocityThreshold float64) error {
	if anchors.IsEmpty() {
		err := errors.New("sheet.Initialize", errors.KindAnchors, errors.ErrNoAnchors)
		errors.Report(err)
		return err
	}
	if thresholds == nil {
		thresholds = Midpoint
	}
	old := s.anchors
	s.anchors = anchors
	s.thresholds = thresholds
	s.velocityThreshold = velocityThreshold

	if old.IsEmpty() {
		s.drag.SetBounds(anchors.Min(), anchors.Max())
		s.snapInternal(s.currentValue)
		return nil
	}
	if old.Equal(anchors) {
		s.notify()
		return nil
	}

	target, ok := s.inFlightValue(old)
	if !ok {
		s.logger.Debug("sheet offset not on an anchor, keeping current value",
			"offset", s.drag.Offset(), "value", s.currentValue)
	}
	s.generation++
	gen := s.generation
	s.drag.SetBounds(math.Inf(-1), math.Inf(1))
	s.logger.Debug("sheet anchors changed, retargeting", "value", target, "anchors", anchors.String())

	s.animateInternal(target, func(scope *DragScope) {
		if a, ok := s.anchors.resolve(target); ok {
			scope.DragTo(a.Offset)
		}
	}, func(finished bool) {
		if a, ok := s.anchors.resolve(target); ok {
			s.currentValue = a.Value
		}
		if s.generation == gen {
			s.drag.SetBounds(s.anchors.Min(), s.anchors.Max())
		}
		if !finished {
			s.logger.Debug("sheet anchor transition interrupted", "value", s.currentValue)
		}
		s.notify()
	})
	return nil
}

// inFlightValue returns the value the sheet is moving toward or resting at,
// looked up in the previous anchors.
func (s *State) inFlightValue(old AnchorMap) (Value, bool) {
	at := s.drag.Offset()
	if s.hasAnimationTarget {
		at = s.animationTarget
	}
	if v, ok := old.ValueAt(at); ok {
		return v, true
	}
	return s.currentValue, false
}

// SnapTo moves the sheet to v's anchor in one step and makes v current.
// If v has no anchor the nearest lower value that has one is used. Before
// the first Initialize it only selects the value Initialize will snap to.
func (s *State) SnapTo(v Value) {
	if s.anchors.IsEmpty() {
		s.currentValue = v
		s.notify()
		return
	}
	s.snapInternal(v)
}

func (s *State) snapInternal(v Value) {
	a, ok := s.anchors.resolve(v)
	if !ok {
		return
	}
	if a.Value != v {
		s.logger.Debug("sheet value has no anchor, using fallback", "value", v, "fallback", a.Value)
	}
	scope := s.drag.Begin(MotionProgrammatic, nil)
	if scope == nil {
		s.logger.Debug("sheet snap blocked by user drag", "value", v)
		return
	}
	s.anim.SnapTo(a.Offset)
	scope.DragTo(a.Offset)
	scope.Release()
	s.currentValue = a.Value
	s.notify()
}

// AnimateTo animates the sheet to v. When the motion ends, finished or
// interrupted, the current value becomes the anchor the sheet stopped on
// (if any) and AfterStateChange is called with v.
func (s *State) AnimateTo(v Value) *Motion {
	m := newMotion()
	s.animateInternal(v, nil, func(finished bool) {
		end := s.drag.AbsoluteOffset()
		if value, ok := s.anchors.Near(end, settleTolerance); ok {
			s.currentValue = value
		} else {
			s.logger.Debug("sheet stopped between anchors", "offset", end, "value", s.currentValue)
		}
		if !finished {
			s.logger.Debug("sheet motion interrupted", "target", v, "value", s.currentValue)
		}
		s.notify()
		s.afterStateChange(v)
		m.complete(s.currentValue, !finished)
	})
	return m
}

// Show animates the sheet to Expanded.
func (s *State) Show() *Motion {
	return s.AnimateTo(Expanded)
}

// Hide animates the sheet to Hidden.
func (s *State) Hide() *Motion {
	return s.AnimateTo(Hidden)
}

// animateInternal drives the offset to v's anchor with an animation under a
// programmatic drag session. If the session is preempted, onPreempt runs
// while the session still owns the offset. done is always called exactly once.
func (s *State) animateInternal(v Value, onPreempt func(*DragScope), done func(finished bool)) {
	a, ok := s.anchors.resolve(v)
	if !ok {
		done(false)
		return
	}
	scope := s.drag.Begin(MotionProgrammatic, s.anim.Stop)
	if scope == nil {
		s.logger.Debug("sheet motion blocked by user drag", "target", v)
		done(false)
		return
	}

	s.animationTarget = a.Offset
	s.hasAnimationTarget = true
	s.animating = true
	s.anim.SnapTo(s.drag.AbsoluteOffset())
	s.notify()

	s.anim.AnimateTo(a.Offset, s.specFor(a.Value), func(value float64) {
		scope.DragTo(value)
	}, func(reason animation.EndReason) {
		finished := reason == animation.EndFinished
		s.hasAnimationTarget = false
		s.animating = false
		if finished {
			s.currentValue = a.Value
		} else if onPreempt != nil && scope.Active() {
			onPreempt(scope)
		}
		scope.Release()
		s.notify()
		done(finished)
	})
}

func (s *State) specFor(v Value) animation.Spec {
	in := s.cfg.InAnimation
	if in == nil {
		in = animation.DefaultSpring()
	}
	if v == Hidden && s.cfg.OutAnimation != nil {
		return s.cfg.OutAnimation
	}
	return in
}

// SetAnimations replaces the in and out specs. Running motions keep the spec
// they started with.
func (s *State) SetAnimations(in, out animation.Spec) {
	s.cfg.InAnimation = in
	s.cfg.OutAnimation = out
}

// PerformFling ends a drag with the given release velocity and settles the
// sheet. The target is chosen by ComputeTarget from the current value's
// anchor. A new target approved by ConfirmStateChange is animated to as with
// AnimateTo; otherwise the sheet rolls back to its current value without
// calling AfterStateChange.
func (s *State) PerformFling(velocity float64) *Motion {
	s.dragging = false
	s.releaseUserDrag()

	last := s.currentValue
	lastOffset, ok := s.anchors.Offset(last)
	if !ok {
		if a, found := s.anchors.resolve(last); found {
			lastOffset = a.Offset
		}
	}
	target := ComputeTarget(s.drag.Offset(), lastOffset, s.anchors.Offsets(), s.thresholds, velocity, s.velocityThreshold)
	if value, ok := s.anchors.ValueAt(target); ok && value != last {
		if s.confirm(value) {
			return s.AnimateTo(value)
		}
		s.logger.Debug("sheet state change vetoed", "target", value, "value", last)
	}

	m := newMotion()
	s.animateInternal(last, nil, func(finished bool) {
		m.complete(s.currentValue, !finished)
	})
	return m
}

func (s *State) confirm(v Value) (ok bool) {
	if s.cfg.ConfirmStateChange == nil {
		return true
	}
	defer errors.RecoverWithCallback("sheet.ConfirmStateChange", func(any) { ok = false })
	return s.cfg.ConfirmStateChange(v)
}

func (s *State) afterStateChange(v Value) {
	if s.cfg.AfterStateChange == nil {
		return
	}
	defer errors.Recover("sheet.AfterStateChange")
	s.cfg.AfterStateChange(v)
}

// StartDrag marks the start of a user gesture. Any running animation is
// interrupted.
func (s *State) StartDrag() {
	s.beginUserDrag()
	s.dragging = true
	s.notify()
}

// DragBy applies a raw gesture delta. Deltas beyond the bounds accumulate as
// Overflow.
func (s *State) DragBy(delta float64) {
	if !s.beginUserDrag() {
		return
	}
	s.dragging = true
	s.user.DragBy(delta)
}

// PerformDrag applies as much of delta as the bounds allow and returns the
// consumed part, leaving the rest to the caller.
func (s *State) PerformDrag(delta float64) float64 {
	consumed := s.drag.Consumable(delta)
	if math.Abs(consumed) > 0 {
		if !s.beginUserDrag() {
			return 0
		}
		s.dragging = true
		s.user.DragBy(consumed)
	}
	return consumed
}

// EndDrag ends a user gesture without settling the sheet. Gestures normally
// end with PerformFling instead.
func (s *State) EndDrag() {
	s.dragging = false
	s.releaseUserDrag()
	s.notify()
}

func (s *State) beginUserDrag() bool {
	if s.user.Active() {
		return true
	}
	s.user = s.drag.Begin(MotionUser, func() { s.dragging = false })
	return s.user != nil
}

func (s *State) releaseUserDrag() {
	s.user.Release()
	s.user = nil
}

// CurrentValue returns the last settled value.
func (s *State) CurrentValue() Value { return s.currentValue }

// Offset returns the rendered offset, always within the current bounds.
func (s *State) Offset() float64 { return s.drag.Offset() }

// Overflow returns how far a drag went beyond the bounds.
func (s *State) Overflow() float64 { return s.drag.Overflow() }

// IsAnimationRunning reports whether an animation drives the offset.
func (s *State) IsAnimationRunning() bool { return s.animating }

// IsDragging reports whether a user gesture is in progress.
func (s *State) IsDragging() bool { return s.dragging }

// IsExpanded reports whether the current value is Expanded.
func (s *State) IsExpanded() bool { return s.currentValue == Expanded }

// IsFull reports whether the current value is Full.
func (s *State) IsFull() bool { return s.currentValue == Full }

// IsHidden reports whether the current value is Hidden.
func (s *State) IsHidden() bool { return s.currentValue == Hidden }

// IsShow reports whether the sheet is more than one unit above its Hidden
// anchor.
func (s *State) IsShow() bool {
	hidden, ok := s.anchors.Offset(Hidden)
	if !ok {
		return !s.anchors.IsEmpty()
	}
	return hidden-s.drag.Offset() > 1
}

// AnimationTarget returns the offset being animated toward.
func (s *State) AnimationTarget() (float64, bool) {
	return s.animationTarget, s.hasAnimationTarget
}

// TargetValue returns where the sheet would settle now: the animation's
// target while animating, otherwise the threshold-only resolution of the
// current offset.
func (s *State) TargetValue() Value {
	if s.hasAnimationTarget {
		if v, ok := s.anchors.ValueAt(s.animationTarget); ok {
			return v
		}
		return s.currentValue
	}
	last, ok := s.anchors.Offset(s.currentValue)
	if !ok {
		return s.currentValue
	}
	target := ComputeTarget(s.drag.Offset(), last, s.anchors.Offsets(), s.thresholds, 0, math.Inf(1))
	if v, ok := s.anchors.ValueAt(target); ok {
		return v
	}
	return s.currentValue
}

// Direction is the sign of the offset relative to the current value's
// anchor: 1 toward Hidden, -1 toward Full, 0 on the anchor.
func (s *State) Direction() float64 {
	anchor, ok := s.anchors.Offset(s.currentValue)
	if !ok {
		return 0
	}
	d := s.drag.Offset() - anchor
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}
	return 0
}

// Anchors returns the installed anchors.
func (s *State) Anchors() AnchorMap { return s.anchors }

// VelocityThreshold returns the installed fling velocity threshold.
func (s *State) VelocityThreshold() float64 { return s.velocityThreshold }

// Bounds returns the current clamp bounds. They are infinite while an anchor
// transition is settling.
func (s *State) Bounds() (min, max float64) { return s.drag.Bounds() }

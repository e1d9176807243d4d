package sheet

import "math"

// MotionKind is the priority of a drag session. A session may preempt an
// active session of the same or lower priority.
type MotionKind int

const (
	// MotionProgrammatic is used by snaps and animations.
	MotionProgrammatic MotionKind = iota
	// MotionUser is used by gesture driven drags.
	MotionUser
)

func (k MotionKind) String() string {
	if k == MotionUser {
		return "user"
	}
	return "programmatic"
}

// DragCoordinator owns the continuous offset of a sheet. Every position write
// goes through ApplyDelta, which keeps the unclamped absolute offset and
// derives the clamped offset and overflow from it:
//
//	offset   == clamp(absolute, min, max)
//	overflow == absolute - offset
//
// At most one DragScope is active at a time; see Begin.
type DragCoordinator struct {
	absolute float64
	offset   float64
	overflow float64
	min, max float64

	active   *DragScope
	onChange func()
}

// NewDragCoordinator returns a coordinator at offset 0 with unbounded limits.
func NewDragCoordinator() *DragCoordinator {
	return &DragCoordinator{min: math.Inf(-1), max: math.Inf(1)}
}

// Offset returns the clamped offset.
func (c *DragCoordinator) Offset() float64 { return c.offset }

// Overflow returns how far the last drags went beyond the bounds.
func (c *DragCoordinator) Overflow() float64 { return c.overflow }

// AbsoluteOffset returns the unclamped offset.
func (c *DragCoordinator) AbsoluteOffset() float64 { return c.absolute }

// Bounds returns the clamp bounds.
func (c *DragCoordinator) Bounds() (min, max float64) { return c.min, c.max }

// SetBounds replaces the clamp bounds and re-derives offset and overflow.
func (c *DragCoordinator) SetBounds(min, max float64) {
	if min > max {
		min, max = max, min
	}
	c.min, c.max = min, max
	c.commit(c.absolute)
}

// ApplyDelta moves the absolute offset by delta.
func (c *DragCoordinator) ApplyDelta(delta float64) {
	c.commit(c.absolute + delta)
}

// Consumable returns the part of delta that can be applied before the offset
// reaches a bound.
func (c *DragCoordinator) Consumable(delta float64) float64 {
	return clamp(c.absolute+delta, c.min, c.max) - c.absolute
}

func (c *DragCoordinator) commit(absolute float64) {
	clamped := clamp(absolute, c.min, c.max)
	c.offset = clamped
	c.overflow = absolute - clamped
	c.absolute = absolute
	if c.onChange != nil {
		c.onChange()
	}
}

// Active returns the session currently owning the offset, or nil.
func (c *DragCoordinator) Active() *DragScope {
	return c.active
}

// Begin acquires the offset for a new session of the given kind.
//
// If a session of the same or lower priority is active it is preempted: its
// onCancel runs while it still owns the offset, so it can leave the offset at
// a known-good position, and it is then released. If a higher priority
// session is active Begin fails and returns nil.
func (c *DragCoordinator) Begin(kind MotionKind, onCancel func()) *DragScope {
	if prev := c.active; prev != nil {
		if prev.kind > kind {
			return nil
		}
		prev.cancel()
	}
	// onCancel of the previous session may have started another one.
	if c.active != nil {
		return nil
	}
	scope := &DragScope{c: c, kind: kind, onCancel: onCancel}
	c.active = scope
	return scope
}

// DragScope is an exclusive session on a DragCoordinator. It must be
// released on every exit path.
type DragScope struct {
	c        *DragCoordinator
	kind     MotionKind
	onCancel func()
	released bool
}

// Kind returns the session priority.
func (s *DragScope) Kind() MotionKind { return s.kind }

// Active reports whether the session still owns the offset.
func (s *DragScope) Active() bool {
	return s != nil && !s.released && s.c.active == s
}

// DragBy applies delta if the session is active.
func (s *DragScope) DragBy(delta float64) bool {
	if !s.Active() {
		return false
	}
	s.c.ApplyDelta(delta)
	return true
}

// DragTo moves the absolute offset to offset if the session is active. It is
// DragBy(offset - AbsoluteOffset()) without the rounding error.
func (s *DragScope) DragTo(offset float64) bool {
	if !s.Active() {
		return false
	}
	s.c.commit(offset)
	return true
}

// Release gives up the offset. It is safe to call more than once.
func (s *DragScope) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	s.onCancel = nil
	if s.c.active == s {
		s.c.active = nil
	}
}

func (s *DragScope) cancel() {
	onCancel := s.onCancel
	s.onCancel = nil
	if onCancel != nil {
		onCancel()
	}
	s.Release()
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

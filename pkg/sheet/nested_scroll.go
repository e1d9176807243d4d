package sheet

// Vector is a two dimensional scroll delta or fling velocity. Only Y moves
// the sheet.
type Vector struct {
	X, Y float64
}

// ScrollSource identifies what produced a nested scroll delta.
type ScrollSource int

const (
	// ScrollSourceDrag is a delta from a finger or pointer drag.
	ScrollSourceDrag ScrollSource = iota
	// ScrollSourceFling is a delta from a decelerating fling.
	ScrollSourceFling
	// ScrollSourceWheel is a delta from a mouse wheel.
	ScrollSourceWheel
)

func (s ScrollSource) String() string {
	switch s {
	case ScrollSourceDrag:
		return "drag"
	case ScrollSourceFling:
		return "fling"
	case ScrollSourceWheel:
		return "wheel"
	}
	return "unknown"
}

// NestedScrollBridge lets scrollable content inside the sheet share its
// scroll deltas and fling velocities with the sheet. The content offers each
// delta to PreScroll before consuming it, and the remainder to PostScroll
// afterwards; each method returns the part the sheet consumed.
type NestedScrollBridge struct {
	state *State
}

// NestedScroll returns the bridge for s.
func (s *State) NestedScroll() *NestedScrollBridge {
	return &NestedScrollBridge{state: s}
}

// PreScroll lets the sheet pull itself up before the content scrolls.
func (b *NestedScrollBridge) PreScroll(available Vector, source ScrollSource) Vector {
	if available.Y < 0 && source == ScrollSourceDrag {
		return Vector{Y: b.state.PerformDrag(available.Y)}
	}
	return Vector{}
}

// PostScroll lets the sheet take whatever the content did not consume, such
// as a downward drag once the content is scrolled to its top.
func (b *NestedScrollBridge) PostScroll(consumed, available Vector, source ScrollSource) Vector {
	if source == ScrollSourceDrag {
		return Vector{Y: b.state.PerformDrag(available.Y)}
	}
	return Vector{}
}

// PreFling settles the sheet on an upward fling while it is below its
// highest anchor, consuming the whole velocity.
func (b *NestedScrollBridge) PreFling(available Vector) (Vector, *Motion) {
	s := b.state
	s.dragging = false
	s.releaseUserDrag()
	min, _ := s.drag.Bounds()
	if available.Y < 0 && s.Offset() > min {
		return available, s.PerformFling(available.Y)
	}
	s.notify()
	return Vector{}, nil
}

// PostFling settles the sheet with whatever velocity the content left,
// consuming all of it.
func (b *NestedScrollBridge) PostFling(consumed, available Vector) (Vector, *Motion) {
	return available, b.state.PerformFling(available.Y)
}

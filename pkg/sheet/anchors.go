package sheet

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/go-drift/modalsheet/pkg/errors"
)

// Anchor binds a logical Value to an offset in pixels from the top of the
// container. Larger offsets are lower on screen.
type Anchor struct {
	Offset float64
	Value  Value
}

// AnchorMap is an immutable set of anchors with exactly one offset per value.
// Offsets are strictly ordered so that Hidden > Expanded > Full.
//
// Maps are rebuilt, never mutated, whenever the container or content size
// changes. The zero AnchorMap is empty.
type AnchorMap struct {
	// sorted by ascending offset
	anchors []Anchor
}

// NewAnchorMap validates anchors and returns them as a map. It fails with
// ErrNoAnchors when anchors is empty and ErrInvalidAnchors when an offset is
// not finite, an offset or value repeats, or the offsets are not ordered
// Hidden > Expanded > Full.
func NewAnchorMap(anchors ...Anchor) (AnchorMap, error) {
	const op = "sheet.NewAnchorMap"
	if len(anchors) == 0 {
		return AnchorMap{}, errors.New(op, errors.KindAnchors, errors.ErrNoAnchors)
	}
	sorted := slices.Clone(anchors)
	slices.SortFunc(sorted, func(a, b Anchor) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	})
	for i, a := range sorted {
		if math.IsNaN(a.Offset) || math.IsInf(a.Offset, 0) {
			return AnchorMap{}, errors.Newf(op, errors.KindAnchors, "offset %v for %v: %w", a.Offset, a.Value, errors.ErrInvalidAnchors)
		}
		if a.Value < Hidden || a.Value > Full {
			return AnchorMap{}, errors.Newf(op, errors.KindAnchors, "unknown value %v: %w", a.Value, errors.ErrInvalidAnchors)
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if prev.Offset == a.Offset {
			return AnchorMap{}, errors.Newf(op, errors.KindAnchors, "%v and %v share offset %v: %w", prev.Value, a.Value, a.Offset, errors.ErrInvalidAnchors)
		}
		if prev.Value <= a.Value {
			return AnchorMap{}, errors.Newf(op, errors.KindAnchors, "%v at %v is above %v at %v: %w", prev.Value, prev.Offset, a.Value, a.Offset, errors.ErrInvalidAnchors)
		}
	}
	return AnchorMap{anchors: sorted}, nil
}

// BuildAnchors derives the anchors for a sheet of measured height sheetHeight
// inside a container of height containerHeight.
//
// When the sheet leaves more than reserveHeight of the container uncovered
// there are two anchors: Hidden at the container bottom and Expanded at the
// sheet's content height. Otherwise a Full anchor at the content height is
// added and Expanded drops by reserveHeight, leaving that much of the
// container uncovered until the sheet is pulled up. The three anchor form is
// only used while it keeps Hidden > Expanded > Full; a sheet no taller than
// the reserve stays two anchored. A sheet with no height yields a Hidden-only
// map.
func BuildAnchors(containerHeight, sheetHeight, reserveHeight float64) (AnchorMap, error) {
	if !(containerHeight > 0) || math.IsInf(containerHeight, 0) {
		return AnchorMap{}, errors.Newf("sheet.BuildAnchors", errors.KindAnchors,
			"container height %v: %w", containerHeight, errors.ErrInvalidMeasurement)
	}
	h := containerHeight
	s := clamp(sheetHeight, 0, h)
	if math.IsNaN(s) {
		s = 0
	}
	r := math.Max(reserveHeight, 0)

	switch {
	case s <= 0:
		return NewAnchorMap(Anchor{Offset: h, Value: Hidden})
	case h-s > r, r <= 0 || s <= r:
		return NewAnchorMap(
			Anchor{Offset: h, Value: Hidden},
			Anchor{Offset: h - s, Value: Expanded},
		)
	default:
		return NewAnchorMap(
			Anchor{Offset: h, Value: Hidden},
			Anchor{Offset: h + r - s, Value: Expanded},
			Anchor{Offset: h - s, Value: Full},
		)
	}
}

// Len returns the number of anchors.
func (m AnchorMap) Len() int {
	return len(m.anchors)
}

// IsEmpty reports whether the map has no anchors.
func (m AnchorMap) IsEmpty() bool {
	return len(m.anchors) == 0
}

// Anchors returns a copy of the anchors in ascending offset order.
func (m AnchorMap) Anchors() []Anchor {
	return slices.Clone(m.anchors)
}

// Offsets returns the anchor offsets in ascending order.
func (m AnchorMap) Offsets() []float64 {
	offsets := make([]float64, len(m.anchors))
	for i, a := range m.anchors {
		offsets[i] = a.Offset
	}
	return offsets
}

// Offset returns the offset bound to v.
func (m AnchorMap) Offset(v Value) (float64, bool) {
	for _, a := range m.anchors {
		if a.Value == v {
			return a.Offset, true
		}
	}
	return 0, false
}

// ValueAt returns the value whose anchor is exactly offset.
func (m AnchorMap) ValueAt(offset float64) (Value, bool) {
	for _, a := range m.anchors {
		if a.Offset == offset {
			return a.Value, true
		}
	}
	return Hidden, false
}

// Near returns the value whose anchor is closest to offset, provided it is
// strictly within tolerance.
func (m AnchorMap) Near(offset, tolerance float64) (Value, bool) {
	best := math.Inf(1)
	var value Value
	found := false
	for _, a := range m.anchors {
		d := math.Abs(a.Offset - offset)
		if d < tolerance && d < best {
			best, value, found = d, a.Value, true
		}
	}
	return value, found
}

// resolve returns the anchor for v, falling back to the nearest lower value
// that is present (Full to Expanded to Hidden) and then to higher ones.
func (m AnchorMap) resolve(v Value) (Anchor, bool) {
	if off, ok := m.Offset(v); ok {
		return Anchor{Offset: off, Value: v}, true
	}
	for candidate := v - 1; candidate >= Hidden; candidate-- {
		if off, ok := m.Offset(candidate); ok {
			return Anchor{Offset: off, Value: candidate}, true
		}
	}
	for candidate := v + 1; candidate <= Full; candidate++ {
		if off, ok := m.Offset(candidate); ok {
			return Anchor{Offset: off, Value: candidate}, true
		}
	}
	return Anchor{}, false
}

// Min returns the smallest (highest on screen) anchor offset.
func (m AnchorMap) Min() float64 {
	if len(m.anchors) == 0 {
		return math.Inf(-1)
	}
	return m.anchors[0].Offset
}

// Max returns the largest (lowest on screen) anchor offset.
func (m AnchorMap) Max() float64 {
	if len(m.anchors) == 0 {
		return math.Inf(1)
	}
	return m.anchors[len(m.anchors)-1].Offset
}

// Equal reports whether both maps bind the same values to the same offsets.
func (m AnchorMap) Equal(other AnchorMap) bool {
	return slices.Equal(m.anchors, other.anchors)
}

func (m AnchorMap) String() string {
	parts := make([]string, len(m.anchors))
	for i, a := range m.anchors {
		parts[i] = fmt.Sprintf("%g:%v", a.Offset, a.Value)
	}
	return "{" + strings.Join(parts, " ") + "}"
}

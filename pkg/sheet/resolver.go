package sheet

import "math"

// boundsEpsilon absorbs rounding error when matching an offset to an anchor.
const boundsEpsilon = 0.001

// ThresholdFunc returns the offset at which a slow release moving from the
// anchor at from toward the anchor at to commits to to.
type ThresholdFunc func(from, to float64) float64

// Midpoint is the default ThresholdFunc: halfway between the two anchors.
func Midpoint(from, to float64) float64 {
	return from + (to-from)/2
}

// Fraction returns a ThresholdFunc that commits once the sheet has travelled
// fraction of the distance between two anchors. Fraction(0.5) is Midpoint.
func Fraction(fraction float64) ThresholdFunc {
	return func(from, to float64) float64 {
		return from + (to-from)*fraction
	}
}

// FindBounds returns the anchors around offset:
//
//   - none if anchors is empty,
//   - the single anchor offset coincides with, within a small rounding error,
//   - the minimum anchor if offset is below it,
//   - the maximum anchor if offset is above it,
//   - otherwise the closest pair a < offset < b.
func FindBounds(offset float64, anchors []float64) []float64 {
	a, b := math.Inf(-1), math.Inf(1)
	hasA, hasB := false, false
	for _, anchor := range anchors {
		if anchor <= offset+boundsEpsilon && (!hasA || anchor > a) {
			a, hasA = anchor, true
		}
		if anchor >= offset-boundsEpsilon && (!hasB || anchor < b) {
			b, hasB = anchor, true
		}
	}
	switch {
	case !hasA && !hasB:
		return nil
	case !hasA:
		return []float64{b}
	case !hasB:
		return []float64{a}
	case a == b:
		return []float64{a}
	default:
		return []float64{a, b}
	}
}

// ComputeTarget picks the anchor a release at offset should settle on.
// lastValue is the offset of the last settled anchor; it decides the
// direction of travel. A velocity at or beyond velocityThreshold in the
// direction of travel commits to the next anchor that way; slower releases
// commit by comparing offset against thresholds. With no anchors lastValue
// is returned.
//
// When lastValue equals offset the release is treated as travelling toward
// the larger offset.
func ComputeTarget(offset, lastValue float64, anchors []float64, thresholds ThresholdFunc, velocity, velocityThreshold float64) float64 {
	if thresholds == nil {
		thresholds = Midpoint
	}
	bounds := FindBounds(offset, anchors)
	switch len(bounds) {
	case 0:
		return lastValue
	case 1:
		return bounds[0]
	}
	lower, upper := bounds[0], bounds[1]
	if lastValue <= offset {
		if velocity >= velocityThreshold {
			return upper
		}
		if offset < thresholds(lower, upper) {
			return lower
		}
		return upper
	}
	if velocity <= -velocityThreshold {
		return lower
	}
	if offset > thresholds(upper, lower) {
		return upper
	}
	return lower
}

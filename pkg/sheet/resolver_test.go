package sheet

import (
	"math"
	"math/rand"
	"slices"
	"testing"
)

func TestFindBounds(t *testing.T) {
	anchors := []float64{1000, 0, 300}
	tests := []struct {
		offset float64
		want   []float64
	}{
		{offset: -50, want: []float64{0}},
		{offset: 0, want: []float64{0}},
		{offset: 0.0004, want: []float64{0}},
		{offset: 150, want: []float64{0, 300}},
		{offset: 299.9995, want: []float64{300}},
		{offset: 301, want: []float64{300, 1000}},
		{offset: 1000, want: []float64{1000}},
		{offset: 1200, want: []float64{1000}},
	}
	for _, tt := range tests {
		if got := FindBounds(tt.offset, anchors); !slices.Equal(got, tt.want) {
			t.Errorf("FindBounds(%v) = %v, want %v", tt.offset, got, tt.want)
		}
	}
	if got := FindBounds(10, nil); len(got) != 0 {
		t.Errorf("FindBounds(10, nil) = %v, want empty", got)
	}
}

func TestFindBounds_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		anchors := make([]float64, rng.Intn(4))
		for j := range anchors {
			anchors[j] = float64(rng.Intn(1000))
		}
		x := rng.Float64()*1200 - 100
		if i%5 == 0 && len(anchors) > 0 {
			x = anchors[rng.Intn(len(anchors))]
		}
		got := FindBounds(x, anchors)

		switch len(got) {
		case 0:
			if len(anchors) != 0 {
				t.Fatalf("FindBounds(%v, %v) = [], want at least one bound", x, anchors)
			}
		case 1:
			b := got[0]
			onAnchor := math.Abs(b-x) <= boundsEpsilon
			if !onAnchor && b != slices.Min(anchors) && b != slices.Max(anchors) {
				t.Fatalf("FindBounds(%v, %v) = %v: single bound must be an extreme or coincide with x", x, anchors, got)
			}
		case 2:
			a, b := got[0], got[1]
			if !(a < x && x < b) {
				t.Fatalf("FindBounds(%v, %v) = %v, want a < x < b", x, anchors, got)
			}
			for _, lo := range anchors {
				for _, hi := range anchors {
					if lo < x && x < hi && hi-lo < b-a {
						t.Fatalf("FindBounds(%v, %v) = %v, tighter pair [%v %v] exists", x, anchors, got, lo, hi)
					}
				}
			}
		default:
			t.Fatalf("FindBounds(%v, %v) = %v, want at most two bounds", x, anchors, got)
		}
	}
}

func TestComputeTarget_MidpointTieBreak(t *testing.T) {
	anchors := []float64{100, 0}
	tests := []struct {
		offset float64
		want   float64
	}{
		{offset: 49, want: 0},
		{offset: 50, want: 0},
		{offset: 51, want: 100},
	}
	for _, tt := range tests {
		got := ComputeTarget(tt.offset, 100, anchors, Midpoint, 0, 1000)
		if got != tt.want {
			t.Errorf("ComputeTarget(%v, last=100) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestComputeTarget_MovingDown(t *testing.T) {
	anchors := []float64{100, 0}
	tests := []struct {
		offset, velocity float64
		want             float64
	}{
		{offset: 49, velocity: 0, want: 0},
		{offset: 50, velocity: 0, want: 100},
		{offset: 10, velocity: 1000, want: 100},
		// velocity against the direction of travel does not force a target
		{offset: 90, velocity: -5000, want: 100},
	}
	for _, tt := range tests {
		got := ComputeTarget(tt.offset, 0, anchors, Midpoint, tt.velocity, 1000)
		if got != tt.want {
			t.Errorf("ComputeTarget(%v, last=0, v=%v) = %v, want %v", tt.offset, tt.velocity, got, tt.want)
		}
	}
}

func TestComputeTarget_EqualLastValueTravelsDown(t *testing.T) {
	// lastValue == offset takes the toward-larger-offset branch.
	got := ComputeTarget(50, 50, []float64{0, 100}, Midpoint, 1000, 1000)
	if got != 100 {
		t.Errorf("ComputeTarget(50, last=50, v=1000) = %v, want 100", got)
	}
}

func TestComputeTarget_FastFlingFollowsDirection(t *testing.T) {
	anchors := []float64{0, 300, 1000}
	// thresholds that would always pick the anchor behind the gesture
	stubborn := func(from, to float64) float64 { return to }
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		offset := 301 + rng.Float64()*698
		if got := ComputeTarget(offset, 300, anchors, stubborn, 1000+rng.Float64()*5000, 1000); got != 1000 {
			t.Fatalf("fling down from %v = %v, want 1000", offset, got)
		}
		if got := ComputeTarget(offset, 1000, anchors, stubborn, -1000-rng.Float64()*5000, 1000); got != 300 {
			t.Fatalf("fling up from %v = %v, want 300", offset, got)
		}
	}
}

func TestComputeTarget_Degenerate(t *testing.T) {
	if got := ComputeTarget(42, 7, nil, Midpoint, 0, 10); got != 7 {
		t.Errorf("ComputeTarget with no anchors = %v, want lastValue 7", got)
	}
	if got := ComputeTarget(-20, 0, []float64{0, 100}, nil, 0, 10); got != 0 {
		t.Errorf("ComputeTarget below min = %v, want 0", got)
	}
}

func TestFraction(t *testing.T) {
	th := Fraction(0.25)
	if got := th(0, 100); got != 25 {
		t.Errorf("Fraction(0.25)(0, 100) = %v, want 25", got)
	}
	if got := th(100, 0); got != 75 {
		t.Errorf("Fraction(0.25)(100, 0) = %v, want 75", got)
	}
	if Fraction(0.5)(10, 30) != Midpoint(10, 30) {
		t.Error("Fraction(0.5) should equal Midpoint")
	}
}

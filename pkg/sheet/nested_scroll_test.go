package sheet_test

import (
	"testing"

	"github.com/go-drift/modalsheet/pkg/sheet"
)

func TestNestedScroll_PreScrollPullsSheetUp(t *testing.T) {
	_, state := newSheet(t, sheet.Config{InitialValue: sheet.Expanded}, 1000, 900, 200)
	bridge := state.NestedScroll()

	got := bridge.PreScroll(sheet.Vector{X: 3, Y: -50}, sheet.ScrollSourceDrag)
	if got != (sheet.Vector{Y: -50}) {
		t.Errorf("PreScroll() = %v, want {0 -50}", got)
	}
	if state.Offset() != 250 || !state.IsDragging() {
		t.Errorf("offset=%v dragging=%v, want 250 true", state.Offset(), state.IsDragging())
	}

	// only the part above the highest anchor is left to the content
	got = bridge.PreScroll(sheet.Vector{Y: -400}, sheet.ScrollSourceDrag)
	if got.Y != -150 || state.Offset() != 100 {
		t.Errorf("PreScroll(-400) = %v at %v, want -150 at 100", got, state.Offset())
	}
}

func TestNestedScroll_PreScrollIgnores(t *testing.T) {
	_, state := newSheet(t, sheet.Config{InitialValue: sheet.Expanded}, 1000, 900, 200)
	bridge := state.NestedScroll()

	tests := []struct {
		name      string
		available sheet.Vector
		source    sheet.ScrollSource
	}{
		{name: "downward drag", available: sheet.Vector{Y: 40}, source: sheet.ScrollSourceDrag},
		{name: "fling source", available: sheet.Vector{Y: -40}, source: sheet.ScrollSourceFling},
		{name: "wheel source", available: sheet.Vector{Y: -40}, source: sheet.ScrollSourceWheel},
	}
	for _, tt := range tests {
		if got := bridge.PreScroll(tt.available, tt.source); got != (sheet.Vector{}) {
			t.Errorf("%s: PreScroll() = %v, want zero", tt.name, got)
		}
	}
	if state.Offset() != 300 || state.IsDragging() {
		t.Errorf("ignored scrolls moved the sheet: offset=%v dragging=%v", state.Offset(), state.IsDragging())
	}
}

func TestNestedScroll_PostScrollThenPostFling(t *testing.T) {
	tester, state := newSheet(t, sheet.Config{InitialValue: sheet.Expanded}, 1000, 900, 200)
	bridge := state.NestedScroll()

	if got := bridge.PostScroll(sheet.Vector{}, sheet.Vector{Y: 80}, sheet.ScrollSourceFling); got != (sheet.Vector{}) {
		t.Errorf("PostScroll(fling) = %v, want zero", got)
	}
	got := bridge.PostScroll(sheet.Vector{Y: 20}, sheet.Vector{Y: 80}, sheet.ScrollSourceDrag)
	if got.Y != 80 || state.Offset() != 380 {
		t.Errorf("PostScroll(drag) = %v at %v, want 80 at 380", got, state.Offset())
	}

	left := sheet.Vector{X: 1, Y: 0}
	consumed, motion := bridge.PostFling(sheet.Vector{}, left)
	if consumed != left || motion == nil {
		t.Fatalf("PostFling() = %v, %v, want all velocity consumed", consumed, motion)
	}
	settle(t, tester)
	if state.Offset() != 300 || !state.IsExpanded() || state.IsDragging() {
		t.Errorf("after PostFling: %v at %v dragging=%v", state.CurrentValue(), state.Offset(), state.IsDragging())
	}
}

func TestNestedScroll_PreFlingUpSettlesSheet(t *testing.T) {
	tester, state := newSheet(t, sheet.Config{InitialValue: sheet.Expanded}, 1000, 900, 200)
	bridge := state.NestedScroll()

	bridge.PreScroll(sheet.Vector{Y: -50}, sheet.ScrollSourceDrag)
	available := sheet.Vector{Y: -4000}
	consumed, motion := bridge.PreFling(available)
	if consumed != available || motion == nil {
		t.Fatalf("PreFling() = %v, %v, want all velocity consumed", consumed, motion)
	}
	if state.IsDragging() {
		t.Error("PreFling must clear IsDragging")
	}
	settle(t, tester)
	if motion.Value() != sheet.Full || state.Offset() != 100 {
		t.Errorf("fling up settled on %v at %v, want full at 100", motion.Value(), state.Offset())
	}
}

func TestNestedScroll_PreFlingAtTopLeavesVelocity(t *testing.T) {
	_, state := newSheet(t, sheet.Config{InitialValue: sheet.Full}, 1000, 900, 200)
	bridge := state.NestedScroll()

	consumed, motion := bridge.PreFling(sheet.Vector{Y: -4000})
	if consumed != (sheet.Vector{}) || motion != nil {
		t.Errorf("PreFling() at the top = %v, %v, want zero and no motion", consumed, motion)
	}
	consumed, motion = bridge.PreFling(sheet.Vector{Y: 4000})
	if consumed != (sheet.Vector{}) || motion != nil {
		t.Errorf("PreFling() downward = %v, %v, want zero and no motion", consumed, motion)
	}
}

func TestNestedScroll_DeclinedPreFlingReleasesDrag(t *testing.T) {
	tester, state := newSheet(t, sheet.Config{InitialValue: sheet.Expanded}, 1000, 300, 200)
	bridge := state.NestedScroll()
	expanded, _ := state.Anchors().Offset(sheet.Expanded)

	bridge.PostScroll(sheet.Vector{}, sheet.Vector{Y: 50}, sheet.ScrollSourceDrag)
	if state.Offset() != expanded+50 || !state.IsDragging() {
		t.Fatalf("after PostScroll: offset=%v dragging=%v, want %v true", state.Offset(), state.IsDragging(), expanded+50)
	}
	consumed, motion := bridge.PreFling(sheet.Vector{Y: 10})
	if consumed != (sheet.Vector{}) || motion != nil {
		t.Fatalf("PreFling(down) = %v, %v, want zero and no motion", consumed, motion)
	}

	show := state.Show()
	settle(t, tester)
	if show.Interrupted() {
		t.Error("Show() after a declined PreFling was interrupted")
	}
	if expanded != 700 || state.Offset() != 700 || !state.IsExpanded() {
		t.Errorf("after Show: %v at %v, want expanded at 700", state.CurrentValue(), state.Offset())
	}
}

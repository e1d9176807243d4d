package testing

import (
	"testing"
	"time"

	"github.com/go-drift/modalsheet/pkg/animation"
	"github.com/go-drift/modalsheet/pkg/sheet"
)

func TestSheetTester_InstallsClock(t *testing.T) {
	tester := NewSheetTesterWithT(t, sheet.NewState(sheet.Config{}))
	clk := tester.Clock()

	start := animation.Now()
	clk.Advance(500 * time.Millisecond)
	if animation.Now().Sub(start) != 500*time.Millisecond {
		t.Error("clock advancement not reflected in animation.Now")
	}
}

func TestSheetTester_CleanupRestoresClock(t *testing.T) {
	tester := NewSheetTester(sheet.NewState(sheet.Config{}))
	tester.Clock().Set(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	tester.Cleanup()

	if animation.Now().Year() == 2000 {
		t.Error("expected real clock after Cleanup")
	}
}

func newInitialized(t *testing.T, cfg sheet.Config) (*SheetTester, *sheet.State) {
	t.Helper()
	state := sheet.NewState(cfg)
	tester := NewSheetTesterWithT(t, state)
	anchors, err := sheet.BuildAnchors(1000, 400, 200)
	if err != nil {
		t.Fatal(err)
	}
	if err := state.Initialize(anchors, sheet.Midpoint, 500); err != nil {
		t.Fatal(err)
	}
	return tester, state
}

func TestPumpAndSettle_Show(t *testing.T) {
	tester, state := newInitialized(t, sheet.Config{})

	motion := state.Show()
	if err := tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatalf("PumpAndSettle() = %v", err)
	}
	if !motion.Settled() {
		t.Fatal("expected motion to be settled")
	}
	if state.Offset() != 600 || !state.IsExpanded() {
		t.Errorf("offset = %v value = %v, want 600 expanded", state.Offset(), state.CurrentValue())
	}
	if tester.Frames() < 2 {
		t.Errorf("expected several frames, got %d", tester.Frames())
	}
}

func TestPumpAndSettle_Timeout(t *testing.T) {
	tester, state := newInitialized(t, sheet.Config{
		InAnimation: animation.TweenSpec{Duration: time.Second},
	})

	state.Show()
	if err := tester.PumpAndSettle(100 * time.Millisecond); err != ErrSettleTimeout {
		t.Errorf("PumpAndSettle() = %v, want ErrSettleTimeout", err)
	}
	state.SnapTo(sheet.Expanded)
	if animation.HasActiveTickers() {
		t.Error("SnapTo should stop the running animation")
	}
}

func TestDispatch_RunsOnNextPump(t *testing.T) {
	tester := NewSheetTesterWithT(t, sheet.NewState(sheet.Config{}))
	ran := false
	tester.Dispatch(func() { ran = true })
	if ran {
		t.Fatal("dispatch ran before Pump")
	}
	tester.Pump()
	if !ran {
		t.Error("dispatch did not run on Pump")
	}
}

func TestRecordOffsets(t *testing.T) {
	tester, state := newInitialized(t, sheet.Config{
		InitialValue: sheet.Expanded,
	})

	stop := tester.RecordOffsets()
	state.Hide()
	if err := tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	offsets := stop()

	if len(offsets) == 0 {
		t.Fatal("expected recorded offsets")
	}
	if last := offsets[len(offsets)-1]; last != 1000 {
		t.Errorf("last recorded offset = %v, want 1000", last)
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			t.Errorf("hide moved up at frame %d: %v", i, offsets)
			break
		}
	}
}

func TestRecordSamples(t *testing.T) {
	tester, state := newInitialized(t, sheet.Config{InitialValue: sheet.Expanded})
	start := tester.Clock().Now()

	stop := tester.RecordSamples()
	tester.PumpFrames(3)
	samples := stop()

	if len(samples) != 3 {
		t.Fatalf("recorded %d samples, want 3", len(samples))
	}
	for i, s := range samples {
		want := start.Add(time.Duration(i+1) * FrameDuration)
		if !s.At.Equal(want) || s.Offset != state.Offset() {
			t.Errorf("sample %d = %v, want %v at offset %v", i, s, want, state.Offset())
		}
	}
	tester.PumpFrames(1)
	if got := stop(); len(got) != 0 {
		t.Errorf("stop() after stopping = %v, want nothing", got)
	}
}

func TestDrag_MovesSheet(t *testing.T) {
	tester, state := newInitialized(t, sheet.Config{InitialValue: sheet.Expanded})

	tester.Drag(10, 10, 10)
	if !state.IsDragging() {
		t.Error("expected IsDragging during an open drag")
	}
	if state.Offset() != 630 {
		t.Errorf("offset = %v, want 630", state.Offset())
	}

	tester.Release()
	if state.IsDragging() {
		t.Error("expected IsDragging false after release")
	}
	if err := tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if state.Offset() != 600 || !state.IsExpanded() {
		t.Errorf("offset = %v value = %v, want 600 expanded", state.Offset(), state.CurrentValue())
	}
}

func TestSheetTester_PumpFramesSteps(t *testing.T) {
	tester := NewSheetTesterWithT(t, sheet.NewState(sheet.Config{}))
	tester.PumpFrames(5)
	if got := tester.Clock().Frames(); got != 5 {
		t.Errorf("Frames() after PumpFrames(5) = %d, want 5", got)
	}
}

package testing

import (
	"testing"
	"time"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestFakeClock_StepCountsFrames(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	for i := 1; i <= 3; i++ {
		if got := clk.Step(); got != start.Add(time.Duration(i)*FrameDuration) {
			t.Errorf("Step() #%d = %v, want %v", i, got, start.Add(time.Duration(i)*FrameDuration))
		}
	}
	clk.Advance(time.Second)
	if clk.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", clk.Frames())
	}
}

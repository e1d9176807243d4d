package tui

import (
	"testing"
	"time"
)

func TestGestureVelocity(t *testing.T) {
	start := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	at := func(ms int) time.Time { return start.Add(time.Duration(ms) * time.Millisecond) }

	tests := []struct {
		name  string
		moves []struct{ y, ms int }
		want  float64
	}{
		{name: "single sample", want: 0},
		{name: "steady drag down", moves: []struct{ y, ms int }{{12, 20}, {14, 40}}, want: 100},
		{name: "drag up", moves: []struct{ y, ms int }{{5, 50}}, want: -100},
		{name: "old samples dropped", moves: []struct{ y, ms int }{{30, 20}, {30, 300}, {32, 320}}, want: 100},
		{name: "same instant", moves: []struct{ y, ms int }{{40, 0}}, want: 0},
	}
	for _, tt := range tests {
		var g gesture
		g.start(10, at(0))
		for _, mv := range tt.moves {
			g.move(mv.y, at(mv.ms))
		}
		if got := g.finish(); got != tt.want {
			t.Errorf("%s: velocity = %v, want %v", tt.name, got, tt.want)
		}
		if g.active {
			t.Errorf("%s: finish must end the gesture", tt.name)
		}
	}
}

func TestGestureMoveReturnsDelta(t *testing.T) {
	var g gesture
	now := time.Now()
	g.start(10, now)
	if d := g.move(13, now); d != 3 {
		t.Errorf("move(13) = %d, want 3", d)
	}
	if d := g.move(11, now); d != -2 {
		t.Errorf("move(11) = %d, want -2", d)
	}
}

func TestHitMap(t *testing.T) {
	h := NewHitMap()
	h.AddRect(regionScrim, 0, 0, 80, 10)
	h.AddRect(regionHandle, 0, 10, 80, 1)
	h.AddRect(regionContent, 0, 11, 80, 0)

	tests := []struct {
		x, y int
		want string
	}{
		{0, 0, regionScrim},
		{79, 9, regionScrim},
		{40, 10, regionHandle},
		{40, 11, ""},
		{80, 5, ""},
	}
	for _, tt := range tests {
		got := ""
		if r := h.Test(tt.x, tt.y); r != nil {
			got = r.ID
		}
		if got != tt.want {
			t.Errorf("Test(%d, %d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}

	h.Clear()
	if h.Test(0, 0) != nil {
		t.Error("Clear() left regions behind")
	}
}

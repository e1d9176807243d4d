package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-drift/modalsheet/pkg/animation"
	"github.com/go-drift/modalsheet/pkg/errors"
	"github.com/go-drift/modalsheet/pkg/sheet"
)

func TestResolveMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if r.Path != filepath.Join(dir, FileName) {
		t.Errorf("Path = %q, want %q", r.Path, filepath.Join(dir, FileName))
	}
	if r.InitialValue != sheet.Hidden {
		t.Errorf("InitialValue = %v, want hidden", r.InitialValue)
	}
	if r.ReserveHeight != DefaultReserveHeight || r.VelocityThreshold != DefaultVelocityThreshold {
		t.Errorf("reserve=%v velocity=%v, want defaults", r.ReserveHeight, r.VelocityThreshold)
	}
	if r.ContentLines != DefaultContentLines {
		t.Errorf("ContentLines = %d, want %d", r.ContentLines, DefaultContentLines)
	}
	if got := r.Thresholds(0, 10); got != 5 {
		t.Errorf("Thresholds(0, 10) = %v, want 5", got)
	}
	in, ok := r.In.(animation.SpringSpec)
	if !ok || in.Stiffness != DefaultInStiffness || in.DampingRatio != 1 {
		t.Errorf("In = %#v, want spring with stiffness %v", r.In, DefaultInStiffness)
	}
	out, ok := r.Out.(animation.SpringSpec)
	if !ok || out.Stiffness != DefaultOutStiffness {
		t.Errorf("Out = %#v, want spring with stiffness %v", r.Out, DefaultOutStiffness)
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	data := `version: v1.2.0
sheet:
  initial_value: expanded
  reserve_height: 0
  velocity_threshold: 45
  threshold_fraction: 0.25
animation:
  in:
    type: tween
    duration: 250ms
    easing: ease-out
  out:
    stiffness: 400
    damping_ratio: 0.75
demo:
  content_lines: 60
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if r.InitialValue != sheet.Expanded {
		t.Errorf("InitialValue = %v, want expanded", r.InitialValue)
	}
	if r.ReserveHeight != 0 {
		t.Errorf("ReserveHeight = %v, want explicit 0", r.ReserveHeight)
	}
	if r.VelocityThreshold != 45 || r.ContentLines != 60 {
		t.Errorf("velocity=%v lines=%d, want 45 60", r.VelocityThreshold, r.ContentLines)
	}
	if got := r.Thresholds(0, 100); got != 25 {
		t.Errorf("Thresholds(0, 100) = %v, want 25", got)
	}
	in, ok := r.In.(animation.TweenSpec)
	if !ok || in.Duration != 250*time.Millisecond || in.Easing == nil {
		t.Errorf("In = %#v, want 250ms tween", r.In)
	}
	out, ok := r.Out.(animation.SpringSpec)
	if !ok || out.Stiffness != 400 || out.DampingRatio != 0.75 {
		t.Errorf("Out = %#v, want spring 400/0.75", r.Out)
	}
}

func TestResolveRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "newer major version", yaml: "version: v2.0.0\n"},
		{name: "malformed version", yaml: "version: one\n"},
		{name: "unknown initial value", yaml: "sheet:\n  initial_value: sideways\n"},
		{name: "negative reserve", yaml: "sheet:\n  reserve_height: -1\n"},
		{name: "negative velocity threshold", yaml: "sheet:\n  velocity_threshold: -5\n"},
		{name: "fraction out of range", yaml: "sheet:\n  threshold_fraction: 1.5\n"},
		{name: "unknown animation type", yaml: "animation:\n  in:\n    type: bounce\n"},
		{name: "unknown easing", yaml: "animation:\n  out:\n    type: tween\n    easing: wobble\n"},
		{name: "negative content lines", yaml: "demo:\n  content_lines: -3\n"},
		{name: "not yaml", yaml: "sheet: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if err == nil {
				_, err = cfg.Resolve()
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.KindOf(err); got != errors.KindConfig {
				t.Errorf("KindOf(%v) = %v, want config", err, got)
			}
		})
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"", true},
		{"v1", true},
		{"1.4.2", true},
		{"v0.9.0", true},
		{"v1.0.0-rc1", true},
		{"v2", false},
		{"3.0.0", false},
		{"latest", false},
	}
	for _, tt := range tests {
		err := checkVersion(tt.version)
		if (err == nil) != tt.ok {
			t.Errorf("checkVersion(%q) = %v, want ok=%v", tt.version, err, tt.ok)
		}
	}
}

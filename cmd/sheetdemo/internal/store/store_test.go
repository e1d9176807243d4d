package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/modalsheet/pkg/errors"
	"github.com/go-drift/modalsheet/pkg/sheet"
)

func TestPathPriority(t *testing.T) {
	t.Setenv(EnvVar, "/tmp/env-state.yaml")

	got, err := Path("/tmp/flag-state.yaml")
	if err != nil || got != "/tmp/flag-state.yaml" {
		t.Errorf("Path(flag) = %q, %v, want the flag", got, err)
	}
	got, err = Path("")
	if err != nil || got != "/tmp/env-state.yaml" {
		t.Errorf("Path(\"\") = %q, %v, want the env override", got, err)
	}

	t.Setenv(EnvVar, "")
	t.Setenv("HOME", "/home/sheet")
	got, err = Path("")
	if err != nil || got != filepath.Join("/home/sheet", ".sheetdemo", "state.yaml") {
		t.Errorf("Path(\"\") = %q, %v, want the home default", got, err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")

	if _, ok, err := Load(path); ok || err != nil {
		t.Fatalf("Load(missing) = ok %v, err %v, want not ok and no error", ok, err)
	}
	if err := Save(path, sheet.SavedState{Value: sheet.Full}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "value: full" {
		t.Errorf("saved file = %q, want %q", data, "value: full")
	}

	saved, ok, err := Load(path)
	if err != nil || !ok || saved.Value != sheet.Full {
		t.Errorf("Load() = %v, %v, %v, want full", saved, ok, err)
	}
}

func TestLoadRejectsCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	if err := os.WriteFile(path, []byte("value: sideways\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, ok, err := Load(path)
	if err == nil || ok {
		t.Fatalf("Load() = ok %v, err %v, want an error", ok, err)
	}
	if got := errors.KindOf(err); got != errors.KindPersistence {
		t.Errorf("KindOf(%v) = %v, want persistence", err, got)
	}
}

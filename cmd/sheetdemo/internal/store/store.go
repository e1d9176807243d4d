// Package store persists the demo sheet's saved state between runs.
//
// Priority order: --state flag > SHEETDEMO_STATE env > ~/.sheetdemo/state.yaml.
package store

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/modalsheet/pkg/errors"
	"github.com/go-drift/modalsheet/pkg/sheet"
)

// EnvVar overrides the default state file location.
const EnvVar = "SHEETDEMO_STATE"

// Path returns the state file to use. flag is the --state value, empty if
// unset.
func Path(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	if env := os.Getenv(EnvVar); env != "" {
		return env, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, ".sheetdemo", "state.yaml"), nil
}

// Load reads the saved state at path. ok is false when no state was saved.
func Load(path string) (saved sheet.SavedState, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return sheet.SavedState{}, false, nil
		}
		return sheet.SavedState{}, false, errors.New("store.Load", errors.KindPersistence, err)
	}
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return sheet.SavedState{}, false, errors.New("store.Load", errors.KindPersistence, fmt.Errorf("%s: %w", path, err))
	}
	return saved, true, nil
}

// Save writes saved to path, creating its directory.
func Save(path string, saved sheet.SavedState) error {
	data, err := yaml.Marshal(saved)
	if err != nil {
		return errors.New("store.Save", errors.KindPersistence, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.New("store.Save", errors.KindPersistence, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("store.Save", errors.KindPersistence, err)
	}
	return nil
}

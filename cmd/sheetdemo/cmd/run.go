package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/modalsheet/cmd/sheetdemo/internal/config"
	"github.com/go-drift/modalsheet/cmd/sheetdemo/internal/store"
	"github.com/go-drift/modalsheet/cmd/sheetdemo/internal/tui"
	"github.com/go-drift/modalsheet/cmd/sheetdemo/internal/watch"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Open the sheet in the terminal",
		Long: `Open a bottom sheet in a full-screen terminal program.

The terminal is the container; the sheet's content decides its height.
The sheet settles on Hidden, Expanded and, for tall content, Full.

Keys:
  s / h      Show or hide the sheet
  f / e      Snap to Full or Expanded
  l          Toggle the hide lock (flings toward Hidden are vetoed)
  + / -      Grow or shrink the content
  y          Copy a state summary to the clipboard
  q          Save the sheet's value and quit

Mouse:
  Drag the handle and release to fling. Scroll over the content to pull the
  sheet up before the content scrolls. Click above the sheet to dismiss it.

Flags:
  --config DIR   Directory holding sheet.yaml (default: current directory).
                 The file is watched and reloaded while running.
  --state FILE   State file (default: ~/.sheetdemo/state.yaml)`,
		Usage: "sheetdemo run [--config DIR] [--state FILE]",
		Run:   runRun,
	})
}

type runOptions struct {
	configDir string
	stateFile string
}

func runRun(args []string) error {
	opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(opts.configDir)
	if err != nil {
		return err
	}

	statePath, err := store.Path(opts.stateFile)
	if err != nil {
		return err
	}
	saved, ok, err := store.Load(statePath)
	if err != nil {
		// A broken state file must not keep the demo from starting.
		logger.Warn("ignoring saved state", "path", statePath, "err", err)
		ok = false
	}

	modelOpts := tui.Options{
		Config: cfg,
		Reload: func() (*config.Resolved, error) { return config.Resolve(opts.configDir) },
		Logger: logger,
	}
	if ok {
		modelOpts.Saved = &saved
	}

	watcher, err := watch.New(cfg.Path)
	if err != nil {
		logger.Warn("config reload disabled", "path", cfg.Path, "err", err)
	} else {
		modelOpts.Events = watcher.Start()
		defer watcher.Stop()
	}

	model, err := tui.New(modelOpts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running sheetdemo: %w", err)
	}

	if err := store.Save(statePath, model.Saved()); err != nil {
		return err
	}
	logger.Debug("saved sheet state", "path", statePath, "value", model.Saved().Value)
	return nil
}

func parseRunArgs(args []string) (runOptions, error) {
	opts := runOptions{configDir: "."}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--config":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--config requires a directory path")
			}
			opts.configDir = args[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			opts.configDir = strings.TrimPrefix(arg, "--config=")
		case arg == "--state":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--state requires a file path")
			}
			opts.stateFile = args[i+1]
			i++
		case strings.HasPrefix(arg, "--state="):
			opts.stateFile = strings.TrimPrefix(arg, "--state=")
		default:
			return opts, fmt.Errorf("unknown argument %q\n\nUsage: sheetdemo run [--config DIR] [--state FILE]", arg)
		}
	}
	dir, err := filepath.Abs(opts.configDir)
	if err != nil {
		return opts, err
	}
	opts.configDir = dir
	return opts, nil
}

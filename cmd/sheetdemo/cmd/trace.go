package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-drift/modalsheet/cmd/sheetdemo/internal/config"
	"github.com/go-drift/modalsheet/cmd/sheetdemo/internal/trace"
)

func init() {
	RegisterCommand(&Command{
		Name:  "trace",
		Short: "Replay a scripted motion and plot it",
		Long: `Replay a scripted motion against a fake clock, print the sheet's
offset on every frame, and optionally plot it with its anchors as PNG.

Scenarios:
` + scenarioHelp() + `
Flags:
  --scenario NAME   Scenario to run (default: show)
  --config DIR      Directory holding sheet.yaml (default: current directory)
  -o FILE           Write an offset/time plot to FILE as PNG`,
		Usage: "sheetdemo trace [--scenario NAME] [--config DIR] [-o out.png]",
		Run:   runTrace,
	})
}

func scenarioHelp() string {
	var b strings.Builder
	for _, name := range trace.Scenarios() {
		fmt.Fprintf(&b, "  %-10s %s\n", name, trace.Describe(name))
	}
	return b.String()
}

type traceOptions struct {
	scenario  string
	configDir string
	output    string
}

func runTrace(args []string) error {
	opts, err := parseTraceArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(opts.configDir)
	if err != nil {
		return err
	}

	tr, err := trace.Run(opts.scenario, cfg)
	if err != nil {
		return err
	}
	if err := tr.WriteText(os.Stdout); err != nil {
		return err
	}

	if opts.output == "" {
		return nil
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.output, err)
	}
	if err := tr.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", opts.output)
	return nil
}

func parseTraceArgs(args []string) (traceOptions, error) {
	opts := traceOptions{scenario: "show", configDir: "."}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		next := func(flag string) (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", flag)
			}
			i++
			return args[i], nil
		}
		var err error
		switch {
		case arg == "--scenario":
			opts.scenario, err = next(arg)
		case strings.HasPrefix(arg, "--scenario="):
			opts.scenario = strings.TrimPrefix(arg, "--scenario=")
		case arg == "--config":
			opts.configDir, err = next(arg)
		case strings.HasPrefix(arg, "--config="):
			opts.configDir = strings.TrimPrefix(arg, "--config=")
		case arg == "-o", arg == "--output":
			opts.output, err = next(arg)
		case strings.HasPrefix(arg, "--output="):
			opts.output = strings.TrimPrefix(arg, "--output=")
		default:
			err = fmt.Errorf("unknown argument %q\n\nUsage: sheetdemo trace [--scenario NAME] [-o out.png]", arg)
		}
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

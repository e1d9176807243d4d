// Package config loads the optional sheet.yaml that tunes the demo sheet.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/modalsheet/pkg/animation"
	"github.com/go-drift/modalsheet/pkg/errors"
	"github.com/go-drift/modalsheet/pkg/sheet"
)

// FileName is the config file looked up in the config directory.
const FileName = "sheet.yaml"

// SupportedMajor is the newest config major version this build understands.
const SupportedMajor = "v1"

// Defaults, in terminal rows.
const (
	DefaultReserveHeight     = 8.0
	DefaultVelocityThreshold = 30.0
	DefaultContentLines      = 24
	DefaultInStiffness       = 1000.0
	DefaultOutStiffness      = animation.StiffnessMedium
)

// Config represents the optional sheet.yaml configuration.
type Config struct {
	Version   string          `yaml:"version,omitempty"`
	Sheet     SheetConfig     `yaml:"sheet"`
	Animation AnimationConfig `yaml:"animation"`
	Demo      DemoConfig      `yaml:"demo"`
}

// SheetConfig contains the sheet's anchor and release settings.
type SheetConfig struct {
	InitialValue      string   `yaml:"initial_value,omitempty"`
	ReserveHeight     *float64 `yaml:"reserve_height,omitempty"`
	VelocityThreshold float64  `yaml:"velocity_threshold,omitempty"`
	ThresholdFraction float64  `yaml:"threshold_fraction,omitempty"`
}

// AnimationConfig holds the in and out motion specs.
type AnimationConfig struct {
	In  SpecConfig `yaml:"in"`
	Out SpecConfig `yaml:"out"`
}

// SpecConfig describes a spring or a tween.
type SpecConfig struct {
	Type         string        `yaml:"type,omitempty"`
	Stiffness    float64       `yaml:"stiffness,omitempty"`
	DampingRatio float64       `yaml:"damping_ratio,omitempty"`
	Duration     time.Duration `yaml:"duration,omitempty"`
	Easing       string        `yaml:"easing,omitempty"`
}

// DemoConfig contains settings for the demo content.
type DemoConfig struct {
	ContentLines int `yaml:"content_lines,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	// Path is the config file, whether or not it exists.
	Path              string
	InitialValue      sheet.Value
	ReserveHeight     float64
	VelocityThreshold float64
	ThresholdFraction float64
	Thresholds        sheet.ThresholdFunc
	In                animation.Spec
	Out               animation.Spec
	ContentLines      int
}

// LoadOptional reads sheet.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Parse decodes a sheet.yaml document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.New("config.Parse", errors.KindConfig, fmt.Errorf("failed to parse %s: %w", FileName, err))
	}
	return &cfg, nil
}

// Resolve loads sheet.yaml from dir (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	resolved, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	resolved.Path = filepath.Join(dir, FileName)
	return resolved, nil
}

// Resolve validates c and fills defaults.
func (c *Config) Resolve() (*Resolved, error) {
	if err := checkVersion(c.Version); err != nil {
		return nil, err
	}

	r := &Resolved{
		InitialValue:      sheet.Hidden,
		ReserveHeight:     DefaultReserveHeight,
		VelocityThreshold: DefaultVelocityThreshold,
		ThresholdFraction: 0.5,
		ContentLines:      DefaultContentLines,
	}

	if v := strings.TrimSpace(c.Sheet.InitialValue); v != "" {
		value, err := sheet.ParseValue(v)
		if err != nil {
			return nil, invalid("sheet.initial_value", err)
		}
		r.InitialValue = value
	}
	if c.Sheet.ReserveHeight != nil {
		if *c.Sheet.ReserveHeight < 0 {
			return nil, invalid("sheet.reserve_height", fmt.Errorf("must not be negative, got %g", *c.Sheet.ReserveHeight))
		}
		r.ReserveHeight = *c.Sheet.ReserveHeight
	}
	if vt := c.Sheet.VelocityThreshold; vt != 0 {
		if vt < 0 {
			return nil, invalid("sheet.velocity_threshold", fmt.Errorf("must be positive, got %g", vt))
		}
		r.VelocityThreshold = vt
	}
	if f := c.Sheet.ThresholdFraction; f != 0 {
		if f <= 0 || f >= 1 {
			return nil, invalid("sheet.threshold_fraction", fmt.Errorf("must be in (0, 1), got %g", f))
		}
		r.ThresholdFraction = f
	}
	r.Thresholds = sheet.Fraction(r.ThresholdFraction)

	var err error
	if r.In, err = c.Animation.In.spec("animation.in", DefaultInStiffness); err != nil {
		return nil, err
	}
	if r.Out, err = c.Animation.Out.spec("animation.out", DefaultOutStiffness); err != nil {
		return nil, err
	}

	if n := c.Demo.ContentLines; n != 0 {
		if n < 0 {
			return nil, invalid("demo.content_lines", fmt.Errorf("must be positive, got %d", n))
		}
		r.ContentLines = n
	}
	return r, nil
}

func (s SpecConfig) spec(field string, stiffness float64) (animation.Spec, error) {
	switch strings.ToLower(strings.TrimSpace(s.Type)) {
	case "", "spring":
		if s.Stiffness < 0 || s.DampingRatio < 0 {
			return nil, invalid(field, fmt.Errorf("spring stiffness and damping_ratio must not be negative"))
		}
		spring := animation.SpringSpec{Stiffness: stiffness, DampingRatio: animation.DampingRatioNoBouncy}
		if s.Stiffness > 0 {
			spring.Stiffness = s.Stiffness
		}
		if s.DampingRatio > 0 {
			spring.DampingRatio = s.DampingRatio
		}
		return spring, nil
	case "tween":
		if s.Duration < 0 {
			return nil, invalid(field, fmt.Errorf("tween duration must not be negative, got %v", s.Duration))
		}
		easing, err := animation.ParseEasing(s.Easing)
		if err != nil {
			return nil, invalid(field, err)
		}
		return animation.TweenSpec{Duration: s.Duration, Easing: easing}, nil
	default:
		return nil, invalid(field, fmt.Errorf("unknown animation type %q (want spring or tween)", s.Type))
	}
}

// checkVersion rejects malformed versions and configs written for a newer
// major version.
func checkVersion(version string) error {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return invalid("version", fmt.Errorf("%q is not a semantic version", version))
	}
	if semver.Compare(semver.Major(version), SupportedMajor) > 0 {
		return invalid("version", fmt.Errorf("%s is newer than supported %s", version, SupportedMajor))
	}
	return nil
}

func invalid(field string, err error) *errors.SheetError {
	return errors.New("config.Resolve", errors.KindConfig, fmt.Errorf("%s: %w", field, err))
}

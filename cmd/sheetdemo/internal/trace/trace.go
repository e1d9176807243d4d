// Package trace runs scripted sheet scenarios against a fake clock and
// records the offset on every frame.
package trace

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/go-drift/modalsheet/cmd/sheetdemo/internal/config"
	"github.com/go-drift/modalsheet/pkg/errors"
	"github.com/go-drift/modalsheet/pkg/sheet"
	sheettest "github.com/go-drift/modalsheet/pkg/testing"
)

// Scenario geometry, in offset units.
const (
	containerHeight = 1000.0
	tallContent     = 900.0
	shortContent    = 500.0
	reserveHeight   = 200.0

	settleTimeout = 10 * time.Second
)

// Point is the sheet's offset at a frame.
type Point struct {
	At     time.Duration
	Offset float64
}

// Trace is the recorded run of a scenario.
type Trace struct {
	Scenario string
	// Anchors are the anchors in effect when the run ended.
	Anchors sheet.AnchorMap
	Points  []Point
	// Final is the settled value.
	Final sheet.Value
}

type scenario struct {
	describe string
	run      func(r *runner) error
}

var scenarios = map[string]scenario{
	"show": {
		describe: "show a hidden sheet",
		run: func(r *runner) error {
			if err := r.init(sheet.Hidden, tallContent); err != nil {
				return err
			}
			r.record()
			r.state.Show()
			return r.settle()
		},
	},
	"fling": {
		describe: "drag an expanded sheet up and fling it to full",
		run: func(r *runner) error {
			if err := r.init(sheet.Expanded, tallContent); err != nil {
				return err
			}
			r.record()
			r.tester.Fling(-3000, -40, -40, -40)
			return r.settle()
		},
	},
	"veto": {
		describe: "fling toward hidden while hiding is vetoed",
		run: func(r *runner) error {
			r.confirm = func(v sheet.Value) bool { return v != sheet.Hidden }
			if err := r.init(sheet.Expanded, tallContent); err != nil {
				return err
			}
			r.record()
			r.tester.Fling(3000, 60, 60, 60)
			return r.settle()
		},
	},
	"resize": {
		describe: "shrink the content while the sheet is showing",
		run: func(r *runner) error {
			if err := r.init(sheet.Hidden, tallContent); err != nil {
				return err
			}
			r.record()
			r.state.Show()
			r.tester.PumpFrames(6)
			if err := r.layout(shortContent); err != nil {
				return err
			}
			return r.settle()
		},
	},
}

// Scenarios returns the scenario names, sorted.
func Scenarios() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line description of a scenario.
func Describe(name string) string {
	return scenarios[name].describe
}

// Run plays the named scenario with the animation and threshold settings of
// cfg.
func Run(name string, cfg *config.Resolved) (*Trace, error) {
	sc, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (want one of %v)", name, Scenarios())
	}
	r := &runner{cfg: cfg, trace: &Trace{Scenario: name}}
	defer r.cleanup()
	if err := sc.run(r); err != nil {
		return nil, err
	}
	r.trace.Anchors = r.state.Anchors()
	r.trace.Final = r.state.CurrentValue()
	return r.trace, nil
}

type runner struct {
	cfg     *config.Resolved
	confirm func(sheet.Value) bool
	state   *sheet.State
	tester  *sheettest.SheetTester
	stop    func() []sheettest.Sample
	origin  time.Time
	trace   *Trace
}

func (r *runner) init(initial sheet.Value, content float64) error {
	r.state = sheet.NewState(sheet.Config{
		InitialValue:       initial,
		InAnimation:        r.cfg.In,
		OutAnimation:       r.cfg.Out,
		ConfirmStateChange: r.confirm,
	})
	r.tester = sheettest.NewSheetTester(r.state)
	return r.layout(content)
}

func (r *runner) layout(content float64) error {
	anchors, err := sheet.BuildAnchors(containerHeight, content, reserveHeight)
	if err != nil {
		return err
	}
	return r.state.Initialize(anchors, r.cfg.Thresholds, r.cfg.VelocityThreshold)
}

// record starts sampling with the current offset as the first point.
func (r *runner) record() {
	r.trace.Points = append(r.trace.Points, Point{Offset: r.state.Offset()})
	r.origin = r.tester.Clock().Now()
	r.stop = r.tester.RecordSamples()
}

func (r *runner) settle() error {
	err := r.tester.PumpAndSettle(settleTimeout)
	for _, s := range r.stop() {
		r.trace.Points = append(r.trace.Points, Point{At: s.At.Sub(r.origin), Offset: s.Offset})
	}
	if err != nil {
		return errors.New("trace.Run", errors.KindUnknown, fmt.Errorf("scenario %s: %w", r.trace.Scenario, err))
	}
	return nil
}

func (r *runner) cleanup() {
	if r.tester != nil {
		r.tester.Cleanup()
	}
}

// WriteText prints one line per recorded frame.
func (t *Trace) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "scenario %s, anchors %v\n", t.Scenario, t.Anchors)
	fmt.Fprintln(tw, "frame\tms\toffset")
	for i, p := range t.Points {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\n", i, p.At.Milliseconds(), p.Offset)
	}
	fmt.Fprintf(tw, "settled on %v\n", t.Final)
	return tw.Flush()
}

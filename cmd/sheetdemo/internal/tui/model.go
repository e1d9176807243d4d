// Package tui hosts a sheet.State in a full-screen terminal program.
//
// The terminal is the container: one row is one offset unit, the sheet's
// height is its handle row plus its content lines, and anchors are rebuilt
// whenever the window, the content or the config changes.
package tui

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/modalsheet/cmd/sheetdemo/internal/config"
	"github.com/go-drift/modalsheet/cmd/sheetdemo/internal/watch"
	"github.com/go-drift/modalsheet/pkg/animation"
	"github.com/go-drift/modalsheet/pkg/sheet"
)

const (
	// FrameInterval is the frame rate of the host.
	FrameInterval = 16 * time.Millisecond

	handleRows = 1
	// wheelStep is how many rows one wheel notch scrolls.
	wheelStep = 3.0
	// wheelSettleDelay is how long after the last wheel notch the sheet
	// settles.
	wheelSettleDelay = 150 * time.Millisecond
	contentStep      = 4

	scrimAlpha    = 0.4
	scrimDuration = 200 * time.Millisecond
)

const (
	regionScrim   = "scrim"
	regionHandle  = "handle"
	regionContent = "content"
)

type frameMsg time.Time

type wheelSettleMsg struct {
	seq int
}

func frame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Options configures a Model.
type Options struct {
	Config *config.Resolved
	// Saved restores a previous run's value. Nil starts at the configured
	// initial value.
	Saved *sheet.SavedState
	// Events delivers watch.ConfigChangedMsg values.
	Events <-chan tea.Msg
	// Reload re-reads the config after a change.
	Reload func() (*config.Resolved, error)
	Logger *slog.Logger
}

// Model is the bubbletea model of the demo.
type Model struct {
	cfg    *config.Resolved
	reload func() (*config.Resolved, error)
	events <-chan tea.Msg
	logger *slog.Logger
	copy   func(string) error

	state   *sheet.State
	bridge  *sheet.NestedScrollBridge
	content viewport.Model
	lines   int

	width, height int
	ready         bool

	scrim     *animation.Controller
	scrimFade animation.Tween[float64]

	hits     *HitMap
	gesture  gesture
	wheelSeq int
	locked   bool
	status   string
}

// New creates a Model. The sheet gets its anchors on the first window size.
func New(opts Options) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{
		cfg:       opts.Config,
		reload:    opts.Reload,
		events:    opts.Events,
		logger:    logger,
		copy:      clipboard.WriteAll,
		content:   viewport.New(0, 0),
		lines:     opts.Config.ContentLines,
		scrim:     animation.NewController(scrimDuration, animation.EaseOut),
		scrimFade: animation.TweenFloat64(0, scrimAlpha),
		hits:      NewHitMap(),
	}

	cfg := sheet.Config{
		InitialValue:       opts.Config.InitialValue,
		InAnimation:        opts.Config.In,
		OutAnimation:       opts.Config.Out,
		ConfirmStateChange: m.confirm,
		AfterStateChange: func(v sheet.Value) {
			m.status = fmt.Sprintf("settled on %v", m.state.CurrentValue())
		},
		Logger: logger,
	}
	if opts.Saved != nil {
		state, err := sheet.Restore(*opts.Saved, cfg)
		if err != nil {
			return nil, err
		}
		m.state = state
	} else {
		m.state = sheet.NewState(cfg)
	}
	m.bridge = m.state.NestedScroll()
	m.content.SetContent(renderContent(m.lines))
	return m, nil
}

// State returns the hosted sheet state.
func (m *Model) State() *sheet.State {
	return m.state
}

// Saved returns the state to persist on exit.
func (m *Model) Saved() sheet.SavedState {
	return m.state.Save()
}

func (m *Model) confirm(v sheet.Value) bool {
	if m.locked && v == sheet.Hidden {
		m.status = "locked: hide vetoed"
		return false
	}
	return true
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frame()}
	if m.events != nil {
		cmds = append(cmds, watch.Listen(m.events))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		animation.StepTickers()
		m.updateScrim()
		return m, frame()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case wheelSettleMsg:
		if msg.seq == m.wheelSeq && m.state.IsDragging() {
			m.settleNested()
		}
		return m, nil

	case watch.ConfigChangedMsg:
		m.reloadConfig()
		if m.events == nil {
			return m, nil
		}
		return m, watch.Listen(m.events)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "s":
		m.state.Show()
	case "h":
		m.state.Hide()
	case "f":
		m.state.SnapTo(sheet.Full)
	case "e":
		m.state.SnapTo(sheet.Expanded)
	case "l":
		m.locked = !m.locked
		m.status = fmt.Sprintf("hide lock %v", onOff(m.locked))
	case "+":
		m.setContentLines(m.lines + contentStep)
	case "-":
		m.setContentLines(m.lines - contentStep)
	case "y":
		m.yank()
	}
	m.updateScrim()
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.ready {
		return nil
	}
	now := animation.Now()
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.wheel(msg.X, msg.Y, wheelStep)
		case tea.MouseButtonWheelDown:
			return m.wheel(msg.X, msg.Y, -wheelStep)
		case tea.MouseButtonLeft:
			region := m.hitTest(msg.X, msg.Y)
			if region == nil || !m.state.IsShow() {
				return nil
			}
			switch region.ID {
			case regionScrim:
				m.state.Hide()
			case regionHandle:
				m.state.StartDrag()
				m.gesture.start(msg.Y, now)
			}
		}

	case tea.MouseActionMotion:
		if m.gesture.active {
			if delta := m.gesture.move(msg.Y, now); delta != 0 {
				m.state.DragBy(float64(delta))
			}
		}

	case tea.MouseActionRelease:
		if m.gesture.active {
			if delta := m.gesture.move(msg.Y, now); delta != 0 {
				m.state.DragBy(float64(delta))
			}
			velocity := m.gesture.finish()
			m.logger.Debug("sheetdemo: release", "offset", m.state.Offset(), "velocity", velocity)
			m.state.PerformFling(velocity)
		}
	}
	return nil
}

// wheel routes a wheel notch through the nested scroll bridge. A negative
// delta scrolls the content forward, pulling the sheet up first.
func (m *Model) wheel(x, y int, delta float64) tea.Cmd {
	if m.gesture.active || !m.state.IsShow() {
		return nil
	}
	region := m.hitTest(x, y)
	if region == nil || region.ID == regionScrim {
		return nil
	}
	m.nestedScroll(delta)

	m.wheelSeq++
	seq := m.wheelSeq
	return tea.Tick(wheelSettleDelay, func(time.Time) tea.Msg {
		return wheelSettleMsg{seq: seq}
	})
}

func (m *Model) nestedScroll(delta float64) {
	pre := m.bridge.PreScroll(sheet.Vector{Y: delta}, sheet.ScrollSourceDrag)
	left := delta - pre.Y
	consumed := m.scrollContent(left)
	m.bridge.PostScroll(sheet.Vector{Y: consumed}, sheet.Vector{Y: left - consumed}, sheet.ScrollSourceDrag)
}

// scrollContent scrolls the viewport by up to delta rows and returns the
// part it consumed.
func (m *Model) scrollContent(delta float64) float64 {
	rows := int(math.Round(math.Abs(delta)))
	if rows == 0 {
		return 0
	}
	before := m.content.YOffset
	if delta < 0 {
		m.content.SetYOffset(before + rows)
		return -float64(m.content.YOffset - before)
	}
	m.content.SetYOffset(before - rows)
	return float64(before - m.content.YOffset)
}

// settleNested ends a wheel gesture the way a nested fling would.
func (m *Model) settleNested() {
	if _, motion := m.bridge.PreFling(sheet.Vector{}); motion != nil {
		return
	}
	m.bridge.PostFling(sheet.Vector{}, sheet.Vector{})
}

func (m *Model) hitTest(x, y int) *Region {
	top := m.sheetTop()
	m.hits.Clear()
	m.hits.AddRect(regionScrim, 0, 0, m.width, top)
	m.hits.AddRect(regionHandle, 0, top, m.width, handleRows)
	m.hits.AddRect(regionContent, 0, top+handleRows, m.width, m.height-top-handleRows)
	return m.hits.Test(x, y)
}

// sheetTop is the first terminal row covered by the sheet.
func (m *Model) sheetTop() int {
	top := int(math.Round(m.state.Offset()))
	if math.IsInf(m.state.Offset(), 0) || math.IsNaN(m.state.Offset()) {
		return m.height
	}
	return max(0, min(top, m.height))
}

// layout rebuilds the anchors for the current window and content.
func (m *Model) layout() {
	if !m.ready || m.height <= 0 {
		return
	}
	sheetRows := min(m.lines+handleRows, m.height)
	m.content.Width = m.width
	m.content.Height = max(sheetRows-handleRows, 0)
	m.content.SetContent(renderContent(m.lines))

	anchors, err := sheet.BuildAnchors(float64(m.height), float64(sheetRows), m.cfg.ReserveHeight)
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.state.Initialize(anchors, m.cfg.Thresholds, m.cfg.VelocityThreshold); err != nil {
		m.status = err.Error()
		return
	}
	m.updateScrim()
}

func (m *Model) setContentLines(n int) {
	if n < 0 {
		n = 0
	}
	m.lines = n
	m.status = fmt.Sprintf("%d content lines", n)
	m.layout()
}

func (m *Model) reloadConfig() {
	if m.reload == nil {
		return
	}
	cfg, err := m.reload()
	if err != nil {
		m.status = fmt.Sprintf("config: %v", err)
		m.logger.Warn("sheetdemo: config reload failed", "err", err)
		return
	}
	linesChanged := cfg.ContentLines != m.cfg.ContentLines
	m.cfg = cfg
	m.state.SetAnimations(cfg.In, cfg.Out)
	if linesChanged {
		m.lines = cfg.ContentLines
	}
	m.status = "config reloaded"
	m.logger.Debug("sheetdemo: config reloaded", "path", cfg.Path)
	m.layout()
}

func (m *Model) updateScrim() {
	if m.state.IsShow() {
		m.scrim.Forward()
	} else {
		m.scrim.Reverse()
	}
}

// scrimLevel is the scrim's current alpha.
func (m *Model) scrimLevel() float64 {
	return m.scrimFade.Transform(m.scrim)
}

func (m *Model) yank() {
	summary := m.Summary()
	if err := m.copy(summary); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.status = "copied state"
}

// Summary describes the sheet's state on one line.
func (m *Model) Summary() string {
	return fmt.Sprintf("value=%v target=%v offset=%.1f overflow=%.1f anchors=%v",
		m.state.CurrentValue(), m.state.TargetValue(), m.state.Offset(), m.state.Overflow(), m.state.Anchors())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

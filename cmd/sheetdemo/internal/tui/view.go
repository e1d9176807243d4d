package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	sheetStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	handleStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("244"))
	activeStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("212")).Bold(true)
)

var filler = []string{
	"Drag the handle to move the sheet.",
	"Release fast to fling it to the next anchor.",
	"Scroll the content: the sheet rises before the list moves.",
	"Scroll back at the top of the list to pull the sheet down.",
	"Click above the sheet to dismiss it.",
	"Press + or - to change how tall the content is.",
}

func renderContent(lines int) string {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, " %3d  %s", i+1, filler[i%len(filler)])
	}
	return b.String()
}

func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	top := m.sheetTop()
	rows := make([]string, 0, m.height)

	backdrop := m.backdropStyle()
	header := []string{
		titleStyle.Render("sheetdemo") + "  " + m.Summary(),
		"s show  h hide  f full  e expanded  l lock  +/- content  y copy  q quit",
		m.status,
	}
	for y := 0; y < top; y++ {
		line := ""
		if y < len(header) {
			line = header[y]
		}
		rows = append(rows, backdrop.Render(line))
	}

	if top < m.height {
		style := handleStyle
		if m.state.IsDragging() {
			style = activeStyle
		}
		rows = append(rows, style.Width(m.width).MaxHeight(1).Align(lipgloss.Center).Render("━━━━━━"))
	}

	visible := m.height - top - handleRows
	if visible > 0 {
		content := strings.Split(m.content.View(), "\n")
		for i := 0; i < visible; i++ {
			line := ""
			if i < len(content) {
				line = content[i]
			}
			rows = append(rows, sheetStyle.Width(m.width).MaxHeight(1).Render(line))
		}
	}
	return strings.Join(rows, "\n")
}

// backdropStyle dims the area above the sheet by the scrim's alpha.
func (m *Model) backdropStyle() lipgloss.Style {
	level := m.scrimLevel() / scrimAlpha
	level = max(0, min(level, 1))
	fg := 252 - int(level*12)
	return lipgloss.NewStyle().Width(m.width).MaxHeight(1).Foreground(lipgloss.Color(strconv.Itoa(fg)))
}

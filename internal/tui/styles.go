// Package tui provides the terminal user interface for dulcinea.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/dulcinea/internal/tui/theme"
)

// Column width for one resource on the grid.
const colWidth = 14

// Width of the leading time-label column.
const timeColWidth = 6

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg        lipgloss.Color
	colorHighlight lipgloss.Color
	colorSelection lipgloss.Color
	colorFg        lipgloss.Color
	colorFgMuted   lipgloss.Color
	colorAccent    lipgloss.Color
	colorBusy      lipgloss.Color
	colorTentative lipgloss.Color
	colorFree      lipgloss.Color
	colorWarning   lipgloss.Color

	// Title bar
	TitleStyle lipgloss.Style

	// Column headers
	HeaderStyle lipgloss.Style

	// Time column
	TimeColumnStyle lipgloss.Style

	// Grid cells
	CellBusyStyle      lipgloss.Style
	CellTentativeStyle lipgloss.Style
	CellFreeStyle      lipgloss.Style

	// Footer
	FooterStyle lipgloss.Style
	PagerStyle  lipgloss.Style

	// Status / warnings
	StatusStyle  lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	// Help text
	HelpStyle lipgloss.Style

	// Spinner
	SpinnerStyle lipgloss.Style
}

// NewStyles derives the style set from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{
		colorBg:        theme.Color(t.Bg),
		colorHighlight: theme.Color(t.BgHighlight),
		colorSelection: theme.Color(t.BgSelection),
		colorFg:        theme.Color(t.Fg),
		colorFgMuted:   theme.Color(t.FgMuted),
		colorAccent:    theme.Color(t.Accent),
		colorBusy:      theme.Color(t.Busy),
		colorTentative: theme.Color(t.Tentative),
		colorFree:      theme.Color(t.Free),
		colorWarning:   theme.Color(t.Warning),
	}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent)

	s.HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorFg).
		Background(s.colorHighlight).
		Width(colWidth).
		Align(lipgloss.Center)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Width(timeColWidth)

	s.CellBusyStyle = lipgloss.NewStyle().
		Foreground(s.colorBusy).
		Width(colWidth).
		Align(lipgloss.Center)

	s.CellTentativeStyle = lipgloss.NewStyle().
		Foreground(s.colorTentative).
		Width(colWidth).
		Align(lipgloss.Center)

	s.CellFreeStyle = lipgloss.NewStyle().
		Foreground(s.colorFree).
		Width(colWidth).
		Align(lipgloss.Center)

	s.FooterStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	s.PagerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorFg)

	s.WarningStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning)

	s.ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorBusy)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	s.SpinnerStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent)

	return s
}

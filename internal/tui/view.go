package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/dulcinea/internal/avail"
)

// Cell labels. Single words keep the clipboard copy readable.
const (
	cellBusyLabel      = "busy"
	cellTentativeLabel = "hold"
	cellFreeLabel      = "free"
)

// View renders the board.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.TitleStyle.Render("dulcinea"))
	b.WriteString("  ")
	b.WriteString(m.styles.FooterStyle.Render(m.nowFunc().Format("Monday, January 2")))
	b.WriteString("\n\n")

	if err := m.board.Err(); err != nil {
		b.WriteString(m.styles.ErrorStyle.Render(fmt.Sprintf("No data: %v", err)))
		b.WriteString("\n\n")
		b.WriteString(m.renderFooter())
		return b.String()
	}

	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderGrid() string {
	page := m.board.PageResources()
	slots := m.board.SlotLabels()

	if len(page) == 0 {
		return m.styles.FooterStyle.Render("No resources on the board.") + "\n"
	}

	var b strings.Builder

	// Header row
	cells := make([]string, 0, len(page)+1)
	cells = append(cells, m.styles.TimeColumnStyle.Render(""))
	for _, r := range page {
		cells = append(cells, m.styles.HeaderStyle.Render(truncate(r.ResourceID, colWidth-2)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n")

	// One row per slot
	for _, slot := range slots {
		cells = cells[:0]
		cells = append(cells, m.styles.TimeColumnStyle.Render(slot))
		for _, r := range page {
			cells = append(cells, m.renderCell(r.ResourceID, slot))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderCell(resourceID, slot string) string {
	switch m.board.State(resourceID, slot) {
	case avail.CellBusy:
		return m.styles.CellBusyStyle.Render(cellBusyLabel)
	case avail.CellTentative:
		return m.styles.CellTentativeStyle.Render(cellTentativeLabel)
	default:
		return m.styles.CellFreeStyle.Render(cellFreeLabel)
	}
}

func (m Model) renderFooter() string {
	var parts []string

	pager := m.board.Pager()
	total := pager.TotalPages()
	if total < 1 {
		total = 1
	}
	parts = append(parts, m.styles.PagerStyle.Render(fmt.Sprintf("page %d/%d", pager.Page(), total)))

	parts = append(parts, m.styles.FooterStyle.Render(m.windowLabel()))

	if m.autoAdvance {
		parts = append(parts, m.styles.FooterStyle.Render("auto"))
	}
	if !m.board.LastRefresh().IsZero() {
		parts = append(parts, m.styles.FooterStyle.Render("refreshed "+m.board.LastRefresh().Format("15:04:05")))
	}
	if m.loading {
		parts = append(parts, m.spinner.View())
	}

	var b strings.Builder
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n")

	if m.warning != "" {
		b.WriteString(m.styles.WarningStyle.Render(m.warning))
		b.WriteString("\n")
	}
	if m.statusMsg != "" {
		b.WriteString(m.styles.StatusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.HelpStyle.Render("h/l page  g+digit jump  u window  a auto  r refresh  y copy  q quit"))
	return b.String()
}

func (m Model) windowLabel() string {
	if m.board.WindowPolicy().Mode() == avail.ModeUpcoming {
		return "next 3h"
	}
	return "full day"
}

// renderPlainPage renders the visible page without styling, for the
// clipboard.
func (m Model) renderPlainPage() string {
	page := m.board.PageResources()
	slots := m.board.SlotLabels()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s", timeColWidth, ""))
	for _, r := range page {
		b.WriteString(fmt.Sprintf("%-*s", colWidth, truncate(r.ResourceID, colWidth-2)))
	}
	b.WriteString("\n")

	for _, slot := range slots {
		b.WriteString(fmt.Sprintf("%-*s", timeColWidth, slot))
		for _, r := range page {
			label := cellFreeLabel
			switch m.board.State(r.ResourceID, slot) {
			case avail.CellBusy:
				label = cellBusyLabel
			case avail.CellTentative:
				label = cellTentativeLabel
			}
			b.WriteString(fmt.Sprintf("%-*s", colWidth, label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max < 1 || len(s) <= max {
		return s
	}
	if max == 1 {
		return s[:1]
	}
	return s[:max-1] + "…"
}

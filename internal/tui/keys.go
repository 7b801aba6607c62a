package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/dulcinea/internal/avail"
	"github.com/javiermolinar/dulcinea/internal/prefs"
	"github.com/javiermolinar/dulcinea/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// A pending 'g' consumes the next digit as a page number.
	if m.jumpPending {
		m.jumpPending = false
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.board.Pager().Jump(int(key[0] - '0'))
		}
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit

	// Page navigation
	case "h", "left":
		m.board.Pager().Previous()
	case "l", "right":
		m.board.Pager().Next()
	case "g":
		m.jumpPending = true

	// Window mode
	case "u":
		mode := m.board.WindowPolicy().Toggle()
		m.board.Pager().Clamp()
		return m, commands.SavePref(m.store, prefs.KeyUpcomingWindow, mode == avail.ModeUpcoming)

	// Auto-advance
	case "a":
		m.autoAdvance = !m.autoAdvance
		m.advanceGen++
		cmds := []tea.Cmd{commands.SavePref(m.store, prefs.KeyAutoAdvance, m.autoAdvance)}
		if m.autoAdvance {
			cmds = append(cmds, m.advanceTickCmd())
		}
		return m, tea.Batch(cmds...)

	// Manual refresh
	case "r":
		m.loading = true
		return m, tea.Batch(m.fetchCmd(), m.spinner.Tick)

	// Copy the visible page as plain text
	case "y":
		text := m.renderPlainPage()
		if err := clipboard.WriteAll(text); err != nil {
			return m, func() tea.Msg {
				return commands.StatusMsg{Msg: fmt.Sprintf("Copy failed: %v", err)}
			}
		}
		return m, func() tea.Msg {
			return commands.StatusMsg{Msg: "Copied page to clipboard"}
		}
	}

	return m, nil
}

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/dulcinea/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case commands.SnapshotMsg:
		// The window slides with the clock in upcoming mode; re-derive
		// it on every data commit so the axis and the data agree.
		m.board.WindowPolicy().Recompute()
		m.board.SetSnapshot(msg.Snapshot.Resources, msg.Snapshot.FetchedAt)
		m.loading = false
		m.warning = degradedNotice(msg.Snapshot.RosterErr, msg.Snapshot.AvailErr)
		LogSnapshot(len(msg.Snapshot.Resources), msg.Snapshot.FetchedAt, m.warning)
		return m, nil

	case commands.ErrMsg:
		m.board.SetError(msg.Err)
		m.loading = false
		LogError("fetch", msg.Err)
		return m, nil

	case commands.RefreshTickMsg:
		m.loading = true
		return m, tea.Batch(m.fetchCmd(), m.refreshTickCmd(), m.spinner.Tick)

	case commands.AdvanceTickMsg:
		// A tick from a chain superseded by a later toggle.
		if !m.autoAdvance || msg.Generation != m.advanceGen {
			return m, nil
		}
		m.board.Pager().Advance()
		LogPage(m.board.Pager().Page(), "auto-advance")
		return m, m.advanceTickCmd()

	case commands.PrefSavedMsg:
		return m, nil

	case commands.PrefSaveErrMsg:
		// The toggle already happened in memory; only persistence
		// failed, so the board stays up.
		LogError("pref save", msg.Err)
		return m.setStatus(fmt.Sprintf("Preference not saved: %v", msg.Err))

	case commands.StatusMsg:
		return m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

// setStatus shows a temporary status message and schedules its clear.
func (m Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.statusMsg = text
	m.statusTime = time.Now().Add(3 * time.Second)
	return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

func (m Model) fetchCmd() tea.Cmd {
	return commands.FetchSnapshot(m.roster, m.availability, m.nowFunc)
}

func (m Model) refreshTickCmd() tea.Cmd {
	return commands.RefreshTick(m.refreshInterval())
}

func (m Model) advanceTickCmd() tea.Cmd {
	return commands.AdvanceTick(advanceInterval, m.advanceGen)
}

// degradedNotice summarizes partial fetch failures for the footer.
func degradedNotice(rosterErr, availErr error) string {
	switch {
	case rosterErr != nil:
		return fmt.Sprintf("roster unavailable: %v", rosterErr)
	case availErr != nil:
		return fmt.Sprintf("calendars unavailable: %v", availErr)
	default:
		return ""
	}
}

// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/dulcinea/internal/prefs"
	"github.com/javiermolinar/dulcinea/internal/source"
)

// SnapshotMsg is sent when a fetch-reconcile cycle completes.
type SnapshotMsg struct {
	Snapshot source.Snapshot
}

// ErrMsg is sent when a fetch cycle fails entirely.
type ErrMsg struct {
	Err error
}

// RefreshTickMsg is sent by the periodic refresh timer.
type RefreshTickMsg struct{}

// AdvanceTickMsg is sent by the auto-advance timer. Generation tags the
// timer chain it belongs to; ticks from a superseded chain are dropped.
type AdvanceTickMsg struct {
	Generation int
}

// PrefSavedMsg is sent when a preference write completes.
type PrefSavedMsg struct {
	Key   string
	Value bool
}

// PrefSaveErrMsg is sent when a preference write fails. The toggle has
// already taken effect in memory; only the persistence failed, so the
// board keeps rendering.
type PrefSaveErrMsg struct {
	Key string
	Err error
}

// StatusMsg is sent for temporary status messages.
type StatusMsg struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// FetchSnapshot runs one fetch-reconcile cycle against both sources.
func FetchSnapshot(roster source.RosterSource, availability source.AvailabilitySource, now func() time.Time) tea.Cmd {
	return func() tea.Msg {
		snap, err := source.FetchSnapshot(context.Background(), roster, availability, now)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SnapshotMsg{Snapshot: snap}
	}
}

// RefreshTick schedules the next periodic refresh.
func RefreshTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return RefreshTickMsg{}
	})
}

// AdvanceTick schedules the next auto-advance page flip for the given
// timer generation.
func AdvanceTick(interval time.Duration, generation int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return AdvanceTickMsg{Generation: generation}
	})
}

// SavePref persists a boolean preference.
func SavePref(store prefs.Store, key string, value bool) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return PrefSavedMsg{Key: key, Value: value}
		}
		if err := store.SetBool(context.Background(), key, value); err != nil {
			return PrefSaveErrMsg{Key: key, Err: err}
		}
		return PrefSavedMsg{Key: key, Value: value}
	}
}

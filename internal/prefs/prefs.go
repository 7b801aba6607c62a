// Package prefs persists user preferences across sessions in a simple
// key-value store.
package prefs

import "context"

// Preference keys.
const (
	// KeyUpcomingWindow selects the "next few hours" window instead of
	// the full day. Default true.
	KeyUpcomingWindow = "upcoming_window"
	// KeyAutoAdvance enables automatic page rotation. Default false.
	KeyAutoAdvance = "auto_advance"
)

// Defaults applied when a key has never been written.
const (
	DefaultUpcomingWindow = true
	DefaultAutoAdvance    = false
)

// Store reads and writes persisted preferences. Values are read once
// at startup with their defaults and written on every explicit toggle.
type Store interface {
	// Bool returns the stored value for key, or def when absent.
	Bool(ctx context.Context, key string, def bool) (bool, error)

	// SetBool stores the value for key, replacing any previous value.
	SetBool(ctx context.Context, key string, value bool) error

	// Close releases any resources held by the store.
	Close() error
}

package avail

import "time"

// UpcomingSpan is the length of the display window in upcoming mode.
// It is a policy constant, not user-configurable.
const UpcomingSpan = 3 * time.Hour

// WindowMode selects how the display window is derived.
type WindowMode int

const (
	// ModeFullDay anchors the configured day-start and day-end hours
	// to today.
	ModeFullDay WindowMode = iota
	// ModeUpcoming shows the next few hours starting from the current
	// hour.
	ModeUpcoming
)

// Window is the half-open display interval the grid covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowPolicy derives the display window from the current mode and
// the clock. Selecting a mode always recomputes the window, so a
// toggle never leaves a stale window behind; re-selecting the current
// mode is an idempotent refresh (used by the periodic tick while in
// upcoming mode).
type WindowPolicy struct {
	dayStartHour int
	dayEndHour   int
	now          func() time.Time

	mode   WindowMode
	window Window
}

// NewWindowPolicy creates a policy anchored to the configured day
// hours. now is injectable for testing; nil means time.Now.
func NewWindowPolicy(dayStartHour, dayEndHour int, now func() time.Time) *WindowPolicy {
	if now == nil {
		now = time.Now
	}
	p := &WindowPolicy{
		dayStartHour: dayStartHour,
		dayEndHour:   dayEndHour,
		now:          now,
	}
	p.SetMode(ModeFullDay)
	return p
}

// SetMode selects the window mode and recomputes the window.
func (p *WindowPolicy) SetMode(mode WindowMode) {
	p.mode = mode
	p.Recompute()
}

// Toggle switches between full-day and upcoming mode and returns the
// new mode.
func (p *WindowPolicy) Toggle() WindowMode {
	if p.mode == ModeFullDay {
		p.SetMode(ModeUpcoming)
	} else {
		p.SetMode(ModeFullDay)
	}
	return p.mode
}

// Recompute re-derives the window for the current mode. In upcoming
// mode this slides the window forward as the clock advances; in
// full-day mode it re-anchors to today after a date change.
func (p *WindowPolicy) Recompute() {
	now := p.now()
	switch p.mode {
	case ModeUpcoming:
		start := atHour(now, now.Hour())
		p.window = Window{Start: start, End: start.Add(UpcomingSpan)}
	default:
		p.window = Window{
			Start: atHour(now, p.dayStartHour),
			End:   atHour(now, p.dayEndHour),
		}
	}
}

// Mode returns the current window mode.
func (p *WindowPolicy) Mode() WindowMode {
	return p.mode
}

// Window returns the current display window.
func (p *WindowPolicy) Window() Window {
	return p.window
}

// atHour returns the given day at hour:00 local.
func atHour(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

package avail

import "time"

// CellState is the rendered state of one grid cell.
type CellState int

const (
	CellFree CellState = iota
	CellBusy
	CellTentative
)

// BusyAt reports whether any event with BusyType busy covers the slot.
// The slot label is interpreted as a time of day on the given date, and
// events cover the half-open interval [start, end): a slot equal to an
// event's end is not busy. Comparison is at minute granularity; seconds
// are ignored. Free and tentative events never mark a slot busy.
func BusyAt(events []CalendarEvent, day time.Time, slot string) bool {
	at, ok := slotInstant(day, slot)
	if !ok {
		return false
	}
	for _, ev := range events {
		if ev.BusyType != BusyTypeBusy {
			continue
		}
		if covers(ev, at) {
			return true
		}
	}
	return false
}

// StateAt returns the cell state for the slot. Busy wins over
// tentative; tentative events show through only when no busy event
// covers the slot. This is a display refinement on top of BusyAt: the
// grid contract remains busy-or-free.
func StateAt(events []CalendarEvent, day time.Time, slot string) CellState {
	at, ok := slotInstant(day, slot)
	if !ok {
		return CellFree
	}
	state := CellFree
	for _, ev := range events {
		if !covers(ev, at) {
			continue
		}
		switch ev.BusyType {
		case BusyTypeBusy:
			return CellBusy
		case BusyTypeTentative:
			state = CellTentative
		}
	}
	return state
}

// covers reports whether at falls in [ev.Start, ev.End) at minute
// granularity.
func covers(ev CalendarEvent, at time.Time) bool {
	start := ev.Start.Truncate(time.Minute)
	end := ev.End.Truncate(time.Minute)
	return !at.Before(start) && at.Before(end)
}

// slotInstant anchors an "HH:MM" label to the given calendar date.
func slotInstant(day time.Time, slot string) (time.Time, bool) {
	parsed, err := time.Parse("15:04", slot)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), true
}

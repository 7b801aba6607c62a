// Package avail implements the availability grid engine: time slots,
// busy/free classification, roster reconciliation, the display window
// policy and pagination over resource columns.
package avail

import "time"

// BusyType describes how a calendar event blocks time.
type BusyType string

const (
	BusyTypeBusy      BusyType = "busy"
	BusyTypeFree      BusyType = "free"
	BusyTypeTentative BusyType = "tentative"
)

// CalendarEvent is a single fetched event. Events are immutable once
// fetched and are owned by their resource record.
type CalendarEvent struct {
	Summary  string
	Start    time.Time
	End      time.Time
	BusyType BusyType
}

// ResourceAvailability holds the fetched events for one resource
// (a person or a room), keyed by its identifier.
type ResourceAvailability struct {
	ResourceID string
	Events     []CalendarEvent
}

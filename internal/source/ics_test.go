package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/javiermolinar/dulcinea/internal/avail"
)

// Noon UTC keeps the test day unambiguous regardless of the host zone.
func utcNow() time.Time {
	return time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
}

func dayBounds() (time.Time, time.Time) {
	start := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

const feedPayload = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:busy-1
DTSTART:20250312T090000Z
DTEND:20250312T093000Z
SUMMARY:Standup
END:VEVENT
BEGIN:VEVENT
UID:transparent-1
DTSTART:20250312T100000Z
DTEND:20250312T110000Z
TRANSP:TRANSPARENT
SUMMARY:Focus block
END:VEVENT
BEGIN:VEVENT
UID:tentative-1
DTSTART:20250312T110000Z
DTEND:20250312T120000Z
STATUS:TENTATIVE
SUMMARY:Maybe sync
END:VEVENT
BEGIN:VEVENT
UID:cancelled-1
DTSTART:20250312T130000Z
DTEND:20250312T140000Z
STATUS:CANCELLED
SUMMARY:Dropped
END:VEVENT
BEGIN:VEVENT
UID:yesterday-1
DTSTART:20250311T090000Z
DTEND:20250311T093000Z
SUMMARY:Out of range
END:VEVENT
END:VCALENDAR
`

func TestParseEvents_BusyTypeMapping(t *testing.T) {
	start, end := dayBounds()

	events, err := parseEvents([]byte(feedPayload), start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byType := make(map[avail.BusyType]int)
	for _, ev := range events {
		byType[ev.BusyType]++
	}

	if byType[avail.BusyTypeBusy] != 1 {
		t.Errorf("got %d busy events, want 1 (cancelled and out-of-range dropped)", byType[avail.BusyTypeBusy])
	}
	if byType[avail.BusyTypeFree] != 1 {
		t.Errorf("got %d free events, want 1 (TRANSP:TRANSPARENT)", byType[avail.BusyTypeFree])
	}
	if byType[avail.BusyTypeTentative] != 1 {
		t.Errorf("got %d tentative events, want 1 (STATUS:TENTATIVE)", byType[avail.BusyTypeTentative])
	}
	if len(events) != 3 {
		t.Errorf("got %d events, want 3", len(events))
	}
}

func TestParseEvents_RecurringWeekly(t *testing.T) {
	// Weekly event started five weeks before the test day, same weekday.
	payload := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:weekly-1
DTSTART:20250205T090000Z
DTEND:20250205T100000Z
RRULE:FREQ=WEEKLY;BYDAY=WE
SUMMARY:Team weekly
END:VEVENT
END:VCALENDAR
`
	start, end := dayBounds()

	events, err := parseEvents([]byte(payload), start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 occurrence for the current day", len(events))
	}

	occ := events[0]
	wantStart := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	if !occ.Start.Equal(wantStart) {
		t.Errorf("got start %v, want %v", occ.Start, wantStart)
	}
	if !occ.End.Equal(wantStart.Add(time.Hour)) {
		t.Errorf("got end %v, want start+1h (duration preserved)", occ.End)
	}
	if occ.BusyType != avail.BusyTypeBusy {
		t.Errorf("got busy type %q, want busy", occ.BusyType)
	}
}

func TestParseEvents_MissingDTEND(t *testing.T) {
	payload := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:open-ended
DTSTART:20250312T090000Z
SUMMARY:No end
END:VEVENT
END:VCALENDAR
`
	start, end := dayBounds()

	events, err := parseEvents([]byte(payload), start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if got := events[0].End.Sub(events[0].Start); got != avail.SlotDuration {
		t.Errorf("got duration %v, want one slot", got)
	}
}

func TestParseEvents_Errors(t *testing.T) {
	start, end := dayBounds()

	if _, err := parseEvents(nil, start, end); !errors.Is(err, ErrFetch) {
		t.Errorf("empty body: got %v, want ErrFetch", err)
	}
	if _, err := parseEvents([]byte("not an ics file"), start, end); err == nil {
		t.Error("garbage body: expected an error")
	}
}

func TestICS_FetchAvailability_PartialFailure(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(feedPayload))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer bad.Close()

	s := NewICS([]Feed{
		{ResourceID: "room1@example.com", URL: good.URL},
		{ResourceID: "room2@example.com", URL: bad.URL},
	}, utcNow)

	got, err := s.FetchAvailability(context.Background())
	if err != nil {
		t.Fatalf("partial failure should not fail the fetch: %v", err)
	}
	if len(got) != 1 || got[0].ResourceID != "room1@example.com" {
		t.Fatalf("got %v, want only the healthy feed", got)
	}
	if len(got[0].Events) != 3 {
		t.Errorf("got %d events, want 3", len(got[0].Events))
	}
}

func TestICS_FetchAvailability_AllFail(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer bad.Close()

	s := NewICS([]Feed{
		{ResourceID: "room1@example.com", URL: bad.URL},
		{ResourceID: "room2@example.com", URL: bad.URL},
	}, utcNow)

	_, err := s.FetchAvailability(context.Background())
	if !errors.Is(err, ErrFetch) {
		t.Errorf("got %v, want ErrFetch when every feed fails", err)
	}
}

func TestICS_FetchAvailability_NoFeeds(t *testing.T) {
	s := NewICS(nil, utcNow)
	got, err := s.FetchAvailability(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

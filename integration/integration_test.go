package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/dulcinea/internal/avail"
	"github.com/javiermolinar/dulcinea/internal/prefs"
	"github.com/javiermolinar/dulcinea/internal/source"
)

// fixedNow pins the test day so the feed payload below always falls on
// "today".
func fixedNow() time.Time {
	return time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
}

func icsPayload(day time.Time) string {
	return fmt.Sprintf(`BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:standup
DTSTART:%sT090000Z
DTEND:%sT093000Z
SUMMARY:Standup
END:VEVENT
BEGIN:VEVENT
UID:focus
DTSTART:%sT100000Z
DTEND:%sT110000Z
TRANSP:TRANSPARENT
SUMMARY:Focus block
END:VEVENT
END:VCALENDAR
`, day.Format("20060102"), day.Format("20060102"), day.Format("20060102"), day.Format("20060102"))
}

// TestFetchToBoard walks the whole pipeline: fetch a live ICS feed and
// a roster, reconcile the two, and classify cells on the board.
func TestFetchToBoard(t *testing.T) {
	day := fixedNow()

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(icsPayload(day)))
	}))
	defer feed.Close()

	roster := source.NewRoster([]string{"bob@example.com", "alice@example.com"}, "")
	availability := source.NewICS([]source.Feed{
		{ResourceID: "alice@example.com", URL: feed.URL},
	}, fixedNow)

	snap, err := source.FetchSnapshot(context.Background(), roster, availability, fixedNow)
	if err != nil {
		t.Fatalf("fetching snapshot: %v", err)
	}

	// Reconciliation: fetched alice plus roster-only bob, sorted.
	if len(snap.Resources) != 2 {
		t.Fatalf("got %d resources, want 2", len(snap.Resources))
	}
	if snap.Resources[0].ResourceID != "alice@example.com" || snap.Resources[1].ResourceID != "bob@example.com" {
		t.Fatalf("unexpected order: %v", snap.Resources)
	}

	policy := avail.NewWindowPolicy(9, 12, fixedNow)
	board := avail.NewBoard(policy, avail.NewPager(10), fixedNow)
	board.SetSnapshot(snap.Resources, snap.FetchedAt)

	if !board.Busy("alice@example.com", "09:00") {
		t.Error("alice should be busy at 09:00")
	}
	if board.Busy("alice@example.com", "09:30") {
		t.Error("alice should be free at 09:30, event end is exclusive")
	}
	if got := board.State("alice@example.com", "10:00"); got != avail.CellFree {
		t.Errorf("transparent event should leave 10:00 free, got %v", got)
	}
	if board.Busy("bob@example.com", "09:00") {
		t.Error("roster-only bob should be free everywhere")
	}
}

// TestFeedOutageDegrades exercises the partial-failure path end to end:
// the roster stays up while the only feed is down.
func TestFeedOutageDegrades(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer feed.Close()

	roster := source.NewRoster([]string{"alice@example.com"}, "")
	availability := source.NewICS([]source.Feed{
		{ResourceID: "alice@example.com", URL: feed.URL},
	}, fixedNow)

	snap, err := source.FetchSnapshot(context.Background(), roster, availability, fixedNow)
	if err != nil {
		t.Fatalf("one healthy source should be enough: %v", err)
	}
	if snap.AvailErr == nil {
		t.Error("the feed outage should be recorded")
	}
	if len(snap.Resources) != 1 || len(snap.Resources[0].Events) != 0 {
		t.Fatalf("got %v, want alice with no events", snap.Resources)
	}
}

// TestPreferencesSurviveRestart checks the stored toggles across two
// store lifetimes, the way a TUI restart sees them.
func TestPreferencesSurviveRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dulcinea.db")
	ctx := context.Background()

	store, err := prefs.NewSQLite(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	if err := store.SetBool(ctx, prefs.KeyAutoAdvance, true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.SetBool(ctx, prefs.KeyUpcomingWindow, false); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	store2, err := prefs.NewSQLite(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer func() { _ = store2.Close() }()

	auto, _ := store2.Bool(ctx, prefs.KeyAutoAdvance, prefs.DefaultAutoAdvance)
	if !auto {
		t.Error("auto-advance toggle should survive a restart")
	}
	upcoming, _ := store2.Bool(ctx, prefs.KeyUpcomingWindow, prefs.DefaultUpcomingWindow)
	if upcoming {
		t.Error("window toggle should survive a restart")
	}
}

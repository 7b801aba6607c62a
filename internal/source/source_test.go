package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/dulcinea/internal/avail"
)

type stubRoster struct {
	ids []string
	err error
}

func (s stubRoster) FetchRoster(context.Context) ([]string, error) {
	return s.ids, s.err
}

type stubAvailability struct {
	resources []avail.ResourceAvailability
	err       error
}

func (s stubAvailability) FetchAvailability(context.Context) ([]avail.ResourceAvailability, error) {
	return s.resources, s.err
}

func TestFetchSnapshot_BothSucceed(t *testing.T) {
	roster := stubRoster{ids: []string{"bob@example.com", "alice@example.com"}}
	availability := stubAvailability{resources: []avail.ResourceAvailability{
		{ResourceID: "alice@example.com"},
	}}

	snap, err := FetchSnapshot(context.Background(), roster, availability, utcNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.RosterErr != nil || snap.AvailErr != nil {
		t.Errorf("unexpected per-source errors: %v, %v", snap.RosterErr, snap.AvailErr)
	}
	if !snap.FetchedAt.Equal(utcNow()) {
		t.Errorf("got FetchedAt %v, want injected now", snap.FetchedAt)
	}

	want := []string{"alice@example.com", "bob@example.com"}
	if len(snap.Resources) != len(want) {
		t.Fatalf("got %d resources, want %d", len(snap.Resources), len(want))
	}
	for i, id := range want {
		if snap.Resources[i].ResourceID != id {
			t.Errorf("resource %d: got %q, want %q", i, snap.Resources[i].ResourceID, id)
		}
	}
}

// Roster endpoint down, calendar feeds up: the board still renders
// from the fetched resources alone.
func TestFetchSnapshot_RosterFailureDegrades(t *testing.T) {
	roster := stubRoster{err: ErrFetch}
	availability := stubAvailability{resources: []avail.ResourceAvailability{
		{
			ResourceID: "room1@example.com",
			Events: []avail.CalendarEvent{{
				Summary:  "Standup",
				Start:    time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
				End:      time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC),
				BusyType: avail.BusyTypeBusy,
			}},
		},
	}}

	snap, err := FetchSnapshot(context.Background(), roster, availability, utcNow)
	if err != nil {
		t.Fatalf("roster failure alone should not fail the snapshot: %v", err)
	}
	if !errors.Is(snap.RosterErr, ErrFetch) {
		t.Errorf("got RosterErr %v, want ErrFetch recorded", snap.RosterErr)
	}
	if len(snap.Resources) != 1 || snap.Resources[0].ResourceID != "room1@example.com" {
		t.Fatalf("got %v, want the fetched resource", snap.Resources)
	}

	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	events := snap.Resources[0].Events
	if !avail.BusyAt(events, day, "09:00") {
		t.Error("09:00 should be busy")
	}
	if avail.BusyAt(events, day, "09:30") {
		t.Error("09:30 should be free, event end is exclusive")
	}
}

func TestFetchSnapshot_AvailabilityFailureDegrades(t *testing.T) {
	roster := stubRoster{ids: []string{"alice@example.com"}}
	availability := stubAvailability{err: ErrFetch}

	snap, err := FetchSnapshot(context.Background(), roster, availability, nil)
	if err != nil {
		t.Fatalf("availability failure alone should not fail the snapshot: %v", err)
	}
	if !errors.Is(snap.AvailErr, ErrFetch) {
		t.Errorf("got AvailErr %v, want ErrFetch recorded", snap.AvailErr)
	}
	if len(snap.Resources) != 1 || snap.Resources[0].ResourceID != "alice@example.com" {
		t.Fatalf("got %v, want the roster resource with no events", snap.Resources)
	}
	if len(snap.Resources[0].Events) != 0 {
		t.Errorf("roster-only resource should carry no events, got %d", len(snap.Resources[0].Events))
	}
}

func TestFetchSnapshot_BothFail(t *testing.T) {
	roster := stubRoster{err: errors.New("dns")}
	availability := stubAvailability{err: errors.New("timeout")}

	_, err := FetchSnapshot(context.Background(), roster, availability, nil)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("got %v, want ErrNoData when both sources fail", err)
	}
}

func TestFetchSnapshot_NilSources(t *testing.T) {
	snap, err := FetchSnapshot(context.Background(), nil, nil, utcNow)
	if err != nil {
		t.Fatalf("nil sources count as empty successes: %v", err)
	}
	if len(snap.Resources) != 0 {
		t.Errorf("got %v, want empty board", snap.Resources)
	}
}

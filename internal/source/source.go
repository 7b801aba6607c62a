// Package source provides the data sources feeding the board: the
// roster of expected resources and the per-resource calendar feeds.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/dulcinea/internal/avail"
)

// Fetch errors.
var (
	// ErrFetch marks a network or parse failure from a data source.
	ErrFetch = errors.New("fetch failed")
	// ErrNoData means neither source returned anything usable. It is
	// distinct from a transient ErrFetch: the board has nothing to
	// render at all.
	ErrNoData = errors.New("no data available")
)

// RosterSource returns the identifiers expected on the board.
type RosterSource interface {
	FetchRoster(ctx context.Context) ([]string, error)
}

// AvailabilitySource returns fetched events per resource.
type AvailabilitySource interface {
	FetchAvailability(ctx context.Context) ([]avail.ResourceAvailability, error)
}

// Snapshot is the result of one fetch-reconcile cycle.
type Snapshot struct {
	Resources []avail.ResourceAvailability
	FetchedAt time.Time

	// Per-source failures that were degraded to empty inputs. The
	// snapshot is still renderable; these are informational.
	RosterErr error
	AvailErr  error
}

// FetchSnapshot runs both fetches and reconciles the results. A
// failure of either source degrades to an empty input for that source:
// partial data is preferred over none. Only when both sources fail
// does the cycle itself fail, wrapping ErrNoData; the caller then
// shows a single error state instead of a half-broken grid.
//
// A nil source counts as an empty, successful one.
func FetchSnapshot(ctx context.Context, roster RosterSource, availability AvailabilitySource, now func() time.Time) (Snapshot, error) {
	if now == nil {
		now = time.Now
	}

	var (
		ids       []string
		fetched   []avail.ResourceAvailability
		rosterErr error
		availErr  error
	)

	if roster != nil {
		ids, rosterErr = roster.FetchRoster(ctx)
		if rosterErr != nil {
			ids = nil
		}
	}
	if availability != nil {
		fetched, availErr = availability.FetchAvailability(ctx)
		if availErr != nil {
			fetched = nil
		}
	}

	if rosterErr != nil && availErr != nil {
		return Snapshot{}, fmt.Errorf("%w: roster: %v; availability: %v", ErrNoData, rosterErr, availErr)
	}

	return Snapshot{
		Resources: avail.Reconcile(ids, fetched),
		FetchedAt: now(),
		RosterErr: rosterErr,
		AvailErr:  availErr,
	}, nil
}

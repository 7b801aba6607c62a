package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/dulcinea/internal/avail"
	"github.com/javiermolinar/dulcinea/internal/dateutil"
)

// occurrenceCap bounds recurrence expansion per event so a broken
// RRULE cannot blow up a refresh cycle.
const occurrenceCap = 200

// Feed maps one resource identifier to its ICS endpoint.
type Feed struct {
	ResourceID string
	URL        string
}

// ICS fetches per-resource availability from ICS calendar feeds. One
// feed per resource; events are expanded for the current day only,
// since the board never looks past it.
type ICS struct {
	feeds  []Feed
	client *http.Client
	now    func() time.Time
}

// NewICS creates an ICS availability source. now is injectable for
// testing; nil means time.Now.
func NewICS(feeds []Feed, now func() time.Time) *ICS {
	if now == nil {
		now = time.Now
	}
	return &ICS{
		feeds: feeds,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		now: now,
	}
}

// FetchAvailability fetches and parses every configured feed. A
// failing feed is skipped so the rest of the board still renders; the
// fetch as a whole fails only when every feed failed.
func (s *ICS) FetchAvailability(ctx context.Context) ([]avail.ResourceAvailability, error) {
	dayStart, dayEnd := dateutil.DayRange(s.now())

	out := make([]avail.ResourceAvailability, 0, len(s.feeds))
	var errs []error

	for _, feed := range s.feeds {
		body, err := s.fetch(ctx, feed.URL)
		if err != nil {
			errs = append(errs, fmt.Errorf("feed %s: %w", feed.ResourceID, err))
			continue
		}
		events, err := parseEvents(body, dayStart, dayEnd)
		if err != nil {
			errs = append(errs, fmt.Errorf("feed %s: %w", feed.ResourceID, err))
			continue
		}
		out = append(out, avail.ResourceAvailability{
			ResourceID: feed.ResourceID,
			Events:     events,
		})
	}

	if len(errs) > 0 && len(errs) == len(s.feeds) {
		return nil, fmt.Errorf("%w: all %d feeds failed: %v", ErrFetch, len(s.feeds), errors.Join(errs...))
	}
	return out, nil
}

func (s *ICS) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrFetch, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed returned %s", ErrFetch, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFetch, err)
	}
	return body, nil
}

// parseEvents parses an ICS payload into calendar events overlapping
// [rangeStart, rangeEnd), expanding recurring events into concrete
// occurrences inside the range.
func parseEvents(body []byte, rangeStart, rangeEnd time.Time) ([]avail.CalendarEvent, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty ICS body", ErrFetch)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing ICS: %v", ErrFetch, err)
	}

	var events []avail.CalendarEvent
	for _, ve := range cal.Events() {
		busyType, ok := busyTypeOf(ve)
		if !ok {
			continue // cancelled
		}

		start, err := ve.GetStartAt()
		if err != nil {
			continue
		}
		end, err := ve.GetEndAt()
		if err != nil || !end.After(start) {
			// Missing or degenerate DTEND: assume one slot.
			end = start.Add(avail.SlotDuration)
		}
		summary := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			summary = p.Value
		}

		rawRule := ""
		if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
			rawRule = p.Value
		}

		if rawRule == "" {
			if overlaps(start, end, rangeStart, rangeEnd) {
				events = append(events, avail.CalendarEvent{
					Summary:  summary,
					Start:    start,
					End:      end,
					BusyType: busyType,
				})
			}
			continue
		}

		for _, occStart := range expandRule(rawRule, start, rangeStart, rangeEnd) {
			occEnd := occStart.Add(end.Sub(start))
			events = append(events, avail.CalendarEvent{
				Summary:  summary,
				Start:    occStart,
				End:      occEnd,
				BusyType: busyType,
			})
		}
	}

	return events, nil
}

// expandRule expands an RRULE into occurrence starts within the range.
// Unparsable rules yield nothing rather than failing the whole feed.
func expandRule(rawRule string, dtstart, rangeStart, rangeEnd time.Time) []time.Time {
	r, err := rrule.StrToRRule(rawRule)
	if err != nil {
		return nil
	}
	r.DTStart(dtstart)

	var set rrule.Set
	set.RRule(r)

	// Between is inclusive on both ends; the grid's exclusive range
	// end is harmless since occurrences starting at midnight of the
	// next day cannot cover today's slots.
	occ := set.Between(rangeStart.In(dtstart.Location()), rangeEnd.In(dtstart.Location()), true)
	if len(occ) > occurrenceCap {
		occ = occ[:occurrenceCap]
	}
	return occ
}

// busyTypeOf maps ICS transparency and status onto the grid's busy
// types. Cancelled events are dropped entirely.
func busyTypeOf(ve *ical.VEvent) (avail.BusyType, bool) {
	status := ""
	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil {
		status = strings.ToUpper(strings.TrimSpace(p.Value))
	}
	if status == "CANCELLED" {
		return "", false
	}

	if p := ve.GetProperty("TRANSP"); p != nil {
		if strings.EqualFold(strings.TrimSpace(p.Value), "TRANSPARENT") {
			return avail.BusyTypeFree, true
		}
	}

	if status == "TENTATIVE" {
		return avail.BusyTypeTentative, true
	}
	return avail.BusyTypeBusy, true
}

// overlaps reports whether [aStart, aEnd) intersects [bStart, bEnd).
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

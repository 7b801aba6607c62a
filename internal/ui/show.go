package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/dulcinea/internal/avail"
	"github.com/javiermolinar/dulcinea/internal/source"
)

func (a *App) showCmd() *cobra.Command {
	var noColor bool
	var upcoming bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show today's availability",
		Long: `Fetch the feeds once and print each resource's busy intervals for
today, without opening the interactive board.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			roster, availability := a.sources()
			snap, err := source.FetchSnapshot(ctx, roster, availability, nil)
			if err != nil {
				return fmt.Errorf("fetching board: %w", err)
			}

			policy := avail.NewWindowPolicy(a.config.Board.DayStartHour, a.config.Board.DayEndHour, nil)
			if upcoming {
				policy.SetMode(avail.ModeUpcoming)
			}
			pageSize := len(snap.Resources)
			if pageSize < 1 {
				pageSize = 1
			}
			board := avail.NewBoard(policy, avail.NewPager(pageSize), nil)
			board.SetSnapshot(snap.Resources, snap.FetchedAt)

			printBoard(board, snap)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.Flags().BoolVarP(&upcoming, "upcoming", "u", false, "Show the next three hours instead of the full day")
	return cmd
}

func printBoard(board *avail.Board, snap source.Snapshot) {
	w := board.WindowPolicy().Window()
	fmt.Printf("=== %s ===\n", formatHeader(w.Start.Format("Monday, January 2, 2006")))
	fmt.Printf("%s\n\n", formatMuted(fmt.Sprintf("%s to %s", w.Start.Format("15:04"), w.End.Format("15:04"))))

	if snap.RosterErr != nil {
		fmt.Println(formatMuted(fmt.Sprintf("warning: roster unavailable: %v", snap.RosterErr)))
	}
	if snap.AvailErr != nil {
		fmt.Println(formatMuted(fmt.Sprintf("warning: calendars unavailable: %v", snap.AvailErr)))
	}

	resources := board.Resources()
	if len(resources) == 0 {
		fmt.Println("No resources on the board.")
		return
	}

	idWidth := nameColumnWidth(resources)
	for _, r := range resources {
		fmt.Printf("%-*s  %s\n", idWidth, r.ResourceID, formatIntervals(busyIntervals(board, r.ResourceID, w)))
	}
}

// nameColumnWidth sizes the id column to the longest id, capped so
// narrow terminals keep room for the intervals.
func nameColumnWidth(resources []avail.ResourceAvailability) int {
	width := 0
	for _, r := range resources {
		if len(r.ResourceID) > width {
			width = len(r.ResourceID)
		}
	}
	if limit := termWidth() / 3; width > limit {
		width = limit
	}
	return width
}

// interval is a run of consecutive same-state slots.
type interval struct {
	state      avail.CellState
	start, end time.Time
}

// busyIntervals collapses the slot axis into busy and tentative runs,
// dropping free slots.
func busyIntervals(board *avail.Board, resourceID string, w avail.Window) []interval {
	var out []interval
	for t := w.Start; t.Before(w.End); t = t.Add(avail.SlotDuration) {
		state := board.State(resourceID, t.Format("15:04"))
		if state == avail.CellFree {
			continue
		}
		if n := len(out); n > 0 && out[n-1].state == state && out[n-1].end.Equal(t) {
			out[n-1].end = t.Add(avail.SlotDuration)
			continue
		}
		out = append(out, interval{state: state, start: t, end: t.Add(avail.SlotDuration)})
	}
	return out
}

func formatIntervals(intervals []interval) string {
	if len(intervals) == 0 {
		return formatFree("free")
	}

	parts := make([]string, 0, len(intervals))
	for _, iv := range intervals {
		span := fmt.Sprintf("%s-%s", iv.start.Format("15:04"), iv.end.Format("15:04"))
		if iv.state == avail.CellTentative {
			parts = append(parts, formatTentative(span+"?"))
		} else {
			parts = append(parts, formatBusy(span))
		}
	}
	return strings.Join(parts, "  ")
}

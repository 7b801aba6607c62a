package avail

import (
	"iter"
	"time"
)

// SlotDuration is the grid cadence. Every row of the board covers one
// half-hour slot.
const SlotDuration = 30 * time.Minute

// Slots returns the sequence of slot labels between start (inclusive)
// and end (exclusive) at the fixed half-hour cadence. Labels are
// zero-padded 24-hour "HH:MM" strings; the first label is exactly
// start. If end is not after start the sequence is empty.
//
// No alignment is performed: callers that want slots on the half hour
// must pass an aligned start.
func Slots(start, end time.Time) iter.Seq[string] {
	return func(yield func(string) bool) {
		for t := start; t.Before(end); t = t.Add(SlotDuration) {
			if !yield(t.Format("15:04")) {
				return
			}
		}
	}
}

// SlotLabels materializes Slots into a slice.
func SlotLabels(start, end time.Time) []string {
	var labels []string
	for label := range Slots(start, end) {
		labels = append(labels, label)
	}
	return labels
}

package avail

import "time"

// Board assembles the grid the view layer renders: the reconciled
// resource list, the slot axis derived from the current window, the
// current page of resource columns and per-cell classification.
//
// A board is mutated from a single goroutine (the TUI update loop or
// the one-shot CLI path); each completed fetch commits its own derived
// state through SetSnapshot, so there is no read-then-write across a
// suspension point.
type Board struct {
	policy *WindowPolicy
	pager  *Pager
	now    func() time.Time

	resources []ResourceAvailability
	byID      map[string]int

	lastRefresh time.Time
	err         error
}

// NewBoard creates an empty board. now is injectable for testing; nil
// means time.Now.
func NewBoard(policy *WindowPolicy, pager *Pager, now func() time.Time) *Board {
	if now == nil {
		now = time.Now
	}
	return &Board{policy: policy, pager: pager, now: now}
}

// SetSnapshot replaces the working data set wholesale with a freshly
// reconciled list and clears any error state. It returns false when
// the reconciler handed back the previous fetched slice unchanged, so
// the caller can skip re-rendering.
func (b *Board) SetSnapshot(resources []ResourceAvailability, fetchedAt time.Time) bool {
	changed := !sameSlice(b.resources, resources)
	b.resources = resources
	b.byID = make(map[string]int, len(resources))
	for i, r := range resources {
		b.byID[r.ResourceID] = i
	}
	b.lastRefresh = fetchedAt
	b.err = nil
	b.pager.SetCount(len(resources))
	return changed
}

// SetError marks the data set as errored after a total fetch failure.
// The grid is suppressed until the next successful cycle; the previous
// data is kept so a later partial success can diff against it.
func (b *Board) SetError(err error) {
	b.err = err
}

// Err returns the current error state, nil when renderable.
func (b *Board) Err() error {
	return b.err
}

// Resources returns the full reconciled resource list.
func (b *Board) Resources() []ResourceAvailability {
	return b.resources
}

// LastRefresh returns when the current data set was fetched.
func (b *Board) LastRefresh() time.Time {
	return b.lastRefresh
}

// Pager returns the board's pagination state.
func (b *Board) Pager() *Pager {
	return b.pager
}

// WindowPolicy returns the board's window policy.
func (b *Board) WindowPolicy() *WindowPolicy {
	return b.policy
}

// SlotLabels returns the row axis for the current window.
func (b *Board) SlotLabels() []string {
	w := b.policy.Window()
	return SlotLabels(w.Start, w.End)
}

// PageResources returns the resource columns of the current page.
func (b *Board) PageResources() []ResourceAvailability {
	b.pager.Clamp()
	lo, hi := b.pager.Bounds()
	return b.resources[lo:hi]
}

// Busy classifies one cell: true when the resource has a busy event
// covering the slot on today's date. Unknown resources are free.
func (b *Board) Busy(resourceID, slot string) bool {
	i, ok := b.byID[resourceID]
	if !ok {
		return false
	}
	return BusyAt(b.resources[i].Events, b.now(), slot)
}

// State returns the display state for one cell, including tentative.
func (b *Board) State(resourceID, slot string) CellState {
	i, ok := b.byID[resourceID]
	if !ok {
		return CellFree
	}
	return StateAt(b.resources[i].Events, b.now(), slot)
}

// sameSlice reports whether two slices share identity: same length and
// same backing array. Reconcile returns the fetched slice untouched
// when nothing had to be merged, which this detects.
func sameSlice(a, c []ResourceAvailability) bool {
	if len(a) != len(c) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &c[0]
}

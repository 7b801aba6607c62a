package avail

import "sort"

// Reconcile merges a roster of expected resource identifiers with the
// fetched availability records into a single list with exactly one
// entry per identifier.
//
// Identifiers present only in the roster are synthesized with an empty
// event list. Duplicate fetched records keep the first occurrence. The
// merged list is sorted by identifier, case-sensitively.
//
// When the fetched list already covers every roster id and contains no
// duplicates, the fetched slice is returned unchanged (same backing
// array). Callers use that identity to skip re-rendering when a refresh
// produced nothing new; see Board.SetSnapshot.
func Reconcile(roster []string, fetched []ResourceAvailability) []ResourceAvailability {
	seen := make(map[string]bool, len(fetched))
	duplicates := false
	for _, r := range fetched {
		if seen[r.ResourceID] {
			duplicates = true
			continue
		}
		seen[r.ResourceID] = true
	}

	var missing []string
	for _, id := range roster {
		if !seen[id] {
			seen[id] = true
			missing = append(missing, id)
		}
	}

	if len(missing) == 0 && !duplicates {
		return fetched
	}

	merged := make([]ResourceAvailability, 0, len(fetched)+len(missing))
	kept := make(map[string]bool, len(fetched))
	for _, r := range fetched {
		if kept[r.ResourceID] {
			continue
		}
		kept[r.ResourceID] = true
		merged = append(merged, r)
	}
	for _, id := range missing {
		merged = append(merged, ResourceAvailability{ResourceID: id})
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ResourceID < merged[j].ResourceID
	})
	return merged
}

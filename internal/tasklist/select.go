package tasklist

import (
	"fmt"
	"sort"
	"time"
)

// timeNow is swapped out in tests for deterministic completion stamps.
var timeNow = func() time.Time { return time.Now().UTC() }

// SelectNext returns the records a caller should act on next, steered by a
// free-text hint. In priority order:
//
//  1. A hint naming an ordinal selects exactly that record if it is
//     pending. An ordinal that does not exist or is already completed
//     yields an empty result: a recoverable "nothing to do", not a fault.
//  2. A hint with all/remaining intent selects every pending record in
//     ascending sequence order.
//  3. Otherwise the single lowest-sequence pending record, or nothing.
//
// SelectNext never mutates status; returned records are copies.
func SelectNext(records []Record, hint string) []Record {
	in := parseHint(hint)

	if in.hasOrdinal {
		for i := range records {
			if records[i].Seq == in.ordinal && records[i].Status == StatusPending {
				return []Record{records[i].Clone()}
			}
		}
		return nil
	}

	if in.all {
		var pending []Record
		for i := range records {
			if records[i].Status == StatusPending {
				pending = append(pending, records[i].Clone())
			}
		}
		sort.SliceStable(pending, func(i, j int) bool {
			return pending[i].Seq < pending[j].Seq
		})
		return pending
	}

	var best *Record
	for i := range records {
		if records[i].Status != StatusPending {
			continue
		}
		if best == nil || records[i].Seq < best.Seq {
			best = &records[i]
		}
	}
	if best == nil {
		return nil
	}
	return []Record{best.Clone()}
}

// MarkCompleted returns a new snapshot with the record at seq transitioned
// to completed and CompletedAt stamped. All other records are copied
// unchanged. Marking an already-completed record is a no-op that preserves
// the original completion time.
func MarkCompleted(records []Record, seq int) ([]Record, error) {
	updated := CloneAll(records)
	for i := range updated {
		if updated[i].Seq != seq {
			continue
		}
		if updated[i].Status == StatusCompleted {
			return updated, nil
		}
		now := timeNow()
		updated[i].Status = StatusCompleted
		updated[i].CompletedAt = &now
		return updated, nil
	}
	return nil, fmt.Errorf("task %d not found", seq)
}

package tasklist

import (
	"fmt"
	"strings"
	"time"
)

// completedAtKey is the reserved metadata key carrying a record's
// completion timestamp in serialized form.
const completedAtKey = "completedAt"

// Parse converts a checklist document into an ordered sequence of records.
// Lines that match neither the task nor the metadata grammar are skipped,
// and a document with zero valid task lines yields an empty sequence rather
// than an error.
func Parse(text string) []Record {
	var records []Record
	for _, line := range strings.Split(text, "\n") {
		kind, task, meta := scanLine(line)
		switch kind {
		case lineTask:
			records = append(records, Record{
				Seq:         len(records) + 1,
				Description: task.description,
				Status:      statusForMarker(task.marker),
			})
		case lineMeta:
			// A metadata line before the first task has no record to
			// attach to and is discarded.
			if len(records) == 0 {
				continue
			}
			last := &records[len(records)-1]
			// The completedAt key is how a completion stamp survives the
			// file round-trip. It is lifted into the record field rather
			// than kept as ordinary metadata.
			if meta.key == completedAtKey {
				if ts, err := time.Parse(time.RFC3339, meta.value); err == nil {
					last.CompletedAt = &ts
					continue
				}
			}
			last.Meta = append(last.Meta, Meta{Key: meta.key, Value: meta.value})
		}
	}
	return records
}

// statusForMarker maps a checkbox marker to a status. Markers other than
// 'x' and ' ' default to pending: the document may carry hand-edited
// markers this tool never emits, and treating them as unfinished is the
// safer reading. This default is a policy choice, not part of the grammar.
func statusForMarker(marker byte) Status {
	if marker == 'x' || marker == 'X' {
		return StatusCompleted
	}
	return StatusPending
}

// Serialize is the inverse of Parse: one checkbox line per record in
// sequence order, followed by the record's metadata lines in insertion
// order. Serialize(Parse(d)) preserves task count, order, status,
// description, and metadata for any document d that Serialize produced.
func Serialize(records []Record) string {
	var b strings.Builder
	for _, r := range records {
		marker := " "
		if r.Status == StatusCompleted {
			marker = "x"
		}
		fmt.Fprintf(&b, "- [%s] %d. %s\n", marker, r.Seq, r.Description)
		for _, m := range r.Meta {
			fmt.Fprintf(&b, "  %s: %s\n", m.Key, m.Value)
		}
		if r.CompletedAt != nil {
			fmt.Fprintf(&b, "  %s: %s\n", completedAtKey, r.CompletedAt.UTC().Format(time.RFC3339))
		}
	}
	return b.String()
}

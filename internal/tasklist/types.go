package tasklist

import "time"

// Status represents a task status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Meta is one key/value annotation attached to a task.
type Meta struct {
	Key   string
	Value string
}

// Record is a single line-item of work parsed from a checklist document.
// Seq is assigned by parse position and is unique and strictly increasing
// in document order.
type Record struct {
	Seq         int
	Description string
	Status      Status
	Meta        []Meta
	CompletedAt *time.Time
}

// IsZero returns true if the record is empty (was never assigned a sequence).
func (r *Record) IsZero() bool {
	return r.Seq == 0
}

// MetaValue returns the value for a metadata key, or "" if the key is absent.
func (r *Record) MetaValue(key string) string {
	for _, m := range r.Meta {
		if m.Key == key {
			return m.Value
		}
	}
	return ""
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	if r.Meta != nil {
		out.Meta = make([]Meta, len(r.Meta))
		copy(out.Meta, r.Meta)
	}
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// CloneAll returns a deep copy of a snapshot.
func CloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i := range records {
		out[i] = records[i].Clone()
	}
	return out
}

// CountByStatus returns the number of records with the given status.
func CountByStatus(records []Record, status Status) int {
	count := 0
	for i := range records {
		if records[i].Status == status {
			count++
		}
	}
	return count
}

package tasklist

import (
	"testing"
	"time"
)

func sampleRecords() []Record {
	return []Record{
		{Seq: 1, Description: "First", Status: StatusPending},
		{Seq: 2, Description: "Second", Status: StatusCompleted},
		{Seq: 3, Description: "Third", Status: StatusPending},
	}
}

func TestSelectNextNoHint(t *testing.T) {
	got := SelectNext(sampleRecords(), "")
	if len(got) != 1 {
		t.Fatalf("SelectNext() = %d records, want 1", len(got))
	}
	if got[0].Seq != 1 {
		t.Errorf("selected Seq = %d, want 1", got[0].Seq)
	}
}

func TestSelectNextSkipsCompleted(t *testing.T) {
	records := sampleRecords()
	records[0].Status = StatusCompleted
	got := SelectNext(records, "")
	if len(got) != 1 || got[0].Seq != 3 {
		t.Fatalf("SelectNext() = %+v, want the single pending task 3", got)
	}
}

func TestSelectNextAllRemaining(t *testing.T) {
	got := SelectNext(sampleRecords(), "all remaining")
	if len(got) != 2 {
		t.Fatalf("SelectNext() = %d records, want 2", len(got))
	}
	if got[0].Seq != 1 || got[1].Seq != 3 {
		t.Errorf("selected = [%d %d], want [1 3]", got[0].Seq, got[1].Seq)
	}
}

func TestSelectNextOrdinal(t *testing.T) {
	tests := []struct {
		name string
		hint string
		want []int
	}{
		{"pending ordinal", "execute task 3", []int{3}},
		{"completed ordinal yields nothing", "task 2", nil},
		{"missing ordinal yields nothing", "task 9", nil},
		{"bare number", "3", []int{3}},
		{"hash prefix", "do #3 now", []int{3}},
		{"ordinal wins over all intent", "all of task 3", []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectNext(sampleRecords(), tt.hint)
			if len(got) != len(tt.want) {
				t.Fatalf("SelectNext(%q) = %d records, want %d", tt.hint, len(got), len(tt.want))
			}
			for i, seq := range tt.want {
				if got[i].Seq != seq {
					t.Errorf("SelectNext(%q)[%d].Seq = %d, want %d", tt.hint, i, got[i].Seq, seq)
				}
			}
		})
	}
}

func TestSelectNextEmptyWhenAllDone(t *testing.T) {
	records := []Record{
		{Seq: 1, Description: "Done", Status: StatusCompleted},
	}
	if got := SelectNext(records, ""); len(got) != 0 {
		t.Errorf("SelectNext() = %+v, want empty", got)
	}
}

func TestSelectNextDoesNotMutate(t *testing.T) {
	records := sampleRecords()
	got := SelectNext(records, "")
	got[0].Status = StatusCompleted
	got[0].Description = "mutated"
	if records[0].Status != StatusPending || records[0].Description != "First" {
		t.Error("SelectNext returned a record sharing state with the input")
	}
}

func TestMarkCompleted(t *testing.T) {
	stamp := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return stamp }
	defer func() { timeNow = orig }()

	records := sampleRecords()
	updated, err := MarkCompleted(records, 1)
	if err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}

	if updated[0].Status != StatusCompleted {
		t.Errorf("updated[0].Status = %s, want completed", updated[0].Status)
	}
	if updated[0].CompletedAt == nil || !updated[0].CompletedAt.Equal(stamp) {
		t.Errorf("updated[0].CompletedAt = %v, want %v", updated[0].CompletedAt, stamp)
	}

	// Input snapshot is untouched.
	if records[0].Status != StatusPending || records[0].CompletedAt != nil {
		t.Error("MarkCompleted mutated the input snapshot")
	}

	// All other records are structurally unchanged.
	for i := 1; i < len(records); i++ {
		if updated[i].Seq != records[i].Seq ||
			updated[i].Description != records[i].Description ||
			updated[i].Status != records[i].Status {
			t.Errorf("updated[%d] = %+v, want %+v", i, updated[i], records[i])
		}
	}
}

func TestMarkCompletedIdempotent(t *testing.T) {
	stamp := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return stamp }
	defer func() { timeNow = orig }()

	records := sampleRecords()
	once, err := MarkCompleted(records, 1)
	if err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}

	later := stamp.Add(time.Hour)
	timeNow = func() time.Time { return later }

	twice, err := MarkCompleted(once, 1)
	if err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}
	if !twice[0].CompletedAt.Equal(stamp) {
		t.Errorf("re-marking drifted CompletedAt to %v, want original %v", twice[0].CompletedAt, stamp)
	}
}

func TestMarkCompletedNotFound(t *testing.T) {
	if _, err := MarkCompleted(sampleRecords(), 42); err == nil {
		t.Error("MarkCompleted(42) expected error, got nil")
	}
}

func TestParseHint(t *testing.T) {
	tests := []struct {
		hint       string
		ordinal    int
		hasOrdinal bool
		all        bool
	}{
		{"", 0, false, false},
		{"execute task 3", 3, true, false},
		{"Task 12, please", 12, true, false},
		{"execute all remaining", 0, false, true},
		{"finish the rest", 0, false, true},
		{"everything", 0, false, true},
		{"#2", 2, true, false},
		{"task zero 0", 0, false, false},
		{"tasks 2 and 5", 2, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			in := parseHint(tt.hint)
			if in.ordinal != tt.ordinal || in.hasOrdinal != tt.hasOrdinal || in.all != tt.all {
				t.Errorf("parseHint(%q) = %+v, want {ordinal:%d hasOrdinal:%v all:%v}",
					tt.hint, in, tt.ordinal, tt.hasOrdinal, tt.all)
			}
		})
	}
}

package tasklist

import (
	"strings"
	"testing"
	"time"
)

func TestParseEmpty(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Errorf("Parse(\"\") = %d records, want 0", len(got))
	}
}

func TestParseAssignsSequenceByPosition(t *testing.T) {
	doc := "- [ ] 7. First\n- [x] 3. Second\n- [ ] Third\n"
	records := Parse(doc)
	if len(records) != 3 {
		t.Fatalf("Parse() = %d records, want 3", len(records))
	}
	for i, r := range records {
		if r.Seq != i+1 {
			t.Errorf("records[%d].Seq = %d, want %d", i, r.Seq, i+1)
		}
	}
	// Embedded ordinals are stripped from descriptions.
	if records[0].Description != "First" {
		t.Errorf("Description = %q, want %q", records[0].Description, "First")
	}
	if records[1].Status != StatusCompleted {
		t.Errorf("records[1].Status = %s, want completed", records[1].Status)
	}
}

func TestParseMetadata(t *testing.T) {
	doc := "- [ ] 1. Write login form\n  leverage: AuthService\n- [x] 2. Write tests\n"
	records := Parse(doc)
	if len(records) != 2 {
		t.Fatalf("Parse() = %d records, want 2", len(records))
	}
	first := records[0]
	if first.Status != StatusPending {
		t.Errorf("first.Status = %s, want pending", first.Status)
	}
	if len(first.Meta) != 1 || first.Meta[0].Key != "leverage" || first.Meta[0].Value != "AuthService" {
		t.Errorf("first.Meta = %+v, want [{leverage AuthService}]", first.Meta)
	}
	second := records[1]
	if second.Status != StatusCompleted {
		t.Errorf("second.Status = %s, want completed", second.Status)
	}
	if len(second.Meta) != 0 {
		t.Errorf("second.Meta = %+v, want none", second.Meta)
	}
}

func TestParseEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{
			name: "metadata before any task is discarded",
			doc:  "leverage: orphan\n- [ ] Real task\n",
			want: 1,
		},
		{
			name: "unrecognized lines are skipped",
			doc:  "# Heading\n\nsome prose here\n- [ ] Task\n",
			want: 1,
		},
		{
			name: "zero valid task lines yields empty sequence",
			doc:  "# Nothing but prose\n\nno checkboxes anywhere\n",
			want: 0,
		},
		{
			name: "blank lines are separators",
			doc:  "- [ ] One\n\n\n- [ ] Two\n",
			want: 2,
		},
		{
			name: "empty bracket is not a task line",
			doc:  "- [] Not a task\n",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.doc); len(got) != tt.want {
				t.Errorf("Parse() = %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseUnknownMarkerDefaultsToPending(t *testing.T) {
	records := Parse("- [?] Ambiguous marker\n")
	if len(records) != 1 {
		t.Fatalf("Parse() = %d records, want 1", len(records))
	}
	if records[0].Status != StatusPending {
		t.Errorf("Status = %s, want pending", records[0].Status)
	}
}

func TestParseOrphanMetadataAttachesToNearestTask(t *testing.T) {
	doc := "- [ ] One\n  requirements: REQ-1\n  leverage: CacheLayer\n- [ ] Two\n  requirements: REQ-2\n"
	records := Parse(doc)
	if len(records) != 2 {
		t.Fatalf("Parse() = %d records, want 2", len(records))
	}
	if got := records[0].MetaValue("leverage"); got != "CacheLayer" {
		t.Errorf("records[0] leverage = %q, want CacheLayer", got)
	}
	if got := records[1].MetaValue("requirements"); got != "REQ-2" {
		t.Errorf("records[1] requirements = %q, want REQ-2", got)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	doc := "- [ ] 1. Write login form\n  leverage: AuthService\n- [x] 2. Write tests\n"
	records := Parse(doc)
	out := Serialize(records)
	reparsed := Parse(out)

	if len(reparsed) != len(records) {
		t.Fatalf("round trip changed task count: %d -> %d", len(records), len(reparsed))
	}
	for i := range records {
		want, got := records[i], reparsed[i]
		if got.Seq != want.Seq {
			t.Errorf("records[%d].Seq = %d, want %d", i, got.Seq, want.Seq)
		}
		if got.Description != want.Description {
			t.Errorf("records[%d].Description = %q, want %q", i, got.Description, want.Description)
		}
		if got.Status != want.Status {
			t.Errorf("records[%d].Status = %s, want %s", i, got.Status, want.Status)
		}
		if len(got.Meta) != len(want.Meta) {
			t.Fatalf("records[%d] metadata count = %d, want %d", i, len(got.Meta), len(want.Meta))
		}
		for j := range want.Meta {
			if got.Meta[j] != want.Meta[j] {
				t.Errorf("records[%d].Meta[%d] = %+v, want %+v", i, j, got.Meta[j], want.Meta[j])
			}
		}
	}
}

func TestSerializeIdempotent(t *testing.T) {
	doc := "- [ ] 1. One\n  key: value\n- [x] 2. Two\n- [ ] 3. Three\n"
	once := Serialize(Parse(doc))
	twice := Serialize(Parse(once))
	if once != twice {
		t.Errorf("serialize not stable:\nfirst:\n%s\nsecond:\n%s", once, twice)
	}
}

func TestScanLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want lineKind
	}{
		{"pending task", "- [ ] Do it", lineTask},
		{"completed task", "- [x] Done it", lineTask},
		{"uppercase marker", "- [X] Done it", lineTask},
		{"indented task", "  - [ ] Nested", lineTask},
		{"metadata", "  leverage: AuthService", lineMeta},
		{"metadata with dashes", "  reviewed-by: alice", lineMeta},
		{"blank", "", lineBlank},
		{"whitespace only", "   \t ", lineBlank},
		{"prose", "just some notes", lineOther},
		{"heading", "# Tasks", lineOther},
		{"key with spaces is not metadata", "not a key: value", lineOther},
		{"colon first is not metadata", ": value", lineOther},
		{"description required", "- [ ] ", lineOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, _, _ := scanLine(tt.line)
			if kind != tt.want {
				t.Errorf("scanLine(%q) = %v, want %v", tt.line, kind, tt.want)
			}
		})
	}
}

func TestCompletionTimestampRoundTrip(t *testing.T) {
	stamp := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	records := []Record{
		{Seq: 1, Description: "Ship it", Status: StatusCompleted, CompletedAt: &stamp},
		{Seq: 2, Description: "Next", Status: StatusPending},
	}

	text := Serialize(records)
	if !strings.Contains(text, "completedAt: 2026-02-01T09:30:00Z") {
		t.Fatalf("serialized document missing completion stamp:\n%s", text)
	}

	round := Parse(text)
	if round[0].CompletedAt == nil || !round[0].CompletedAt.Equal(stamp) {
		t.Errorf("CompletedAt = %v, want %v", round[0].CompletedAt, stamp)
	}
	if len(round[0].Meta) != 0 {
		t.Errorf("completion stamp leaked into metadata: %+v", round[0].Meta)
	}
	if round[1].CompletedAt != nil {
		t.Errorf("pending record gained CompletedAt = %v", round[1].CompletedAt)
	}
}

func TestParseMalformedCompletionStampStaysMetadata(t *testing.T) {
	text := "- [x] 1. Done\n  completedAt: yesterday\n"
	records := Parse(text)
	if records[0].CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil for malformed stamp", records[0].CompletedAt)
	}
	if records[0].MetaValue("completedAt") != "yesterday" {
		t.Errorf("malformed stamp dropped: %+v", records[0].Meta)
	}
}

func TestValidMetaKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"leverage", true},
		{"reviewed-by", true},
		{"REQ_4", true},
		{"", false},
		{"bad key", false},
		{"key:colon", false},
		{"päivä", false},
	}
	for _, tt := range tests {
		if got := ValidMetaKey(tt.key); got != tt.want {
			t.Errorf("ValidMetaKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

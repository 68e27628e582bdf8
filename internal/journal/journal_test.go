package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewAndAppend(t *testing.T) {
	baseDir := t.TempDir()
	workDir := t.TempDir()

	j, err := New(baseDir, workDir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer j.Close()

	events := []Event{
		{Action: ActionAdded, Seq: 3, Description: "Write the docs", Document: "to-do.md"},
		{Action: ActionCompleted, Seq: 1, Description: "Write login form", Document: "to-do.md"},
	}
	for _, ev := range events {
		if err := j.Append(ev); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	file, err := os.Open(j.Path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer file.Close()

	var got []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("unmarshal line %q: %v", scanner.Text(), err)
		}
		got = append(got, ev)
	}
	if len(got) != len(events) {
		t.Fatalf("journal has %d events, want %d", len(got), len(events))
	}
	for i, want := range events {
		if got[i].Action != want.Action || got[i].Seq != want.Seq || got[i].Description != want.Description {
			t.Errorf("event[%d] = %+v, want %+v", i, got[i], want)
		}
		if got[i].Time.IsZero() {
			t.Errorf("event[%d] missing timestamp", i)
		}
	}
}

func TestDirIsStablePerProject(t *testing.T) {
	baseDir := t.TempDir()
	workDir := t.TempDir()

	first, err := Dir(baseDir, workDir)
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	second, err := Dir(baseDir, workDir)
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if first != second {
		t.Errorf("Dir() not stable: %q vs %q", first, second)
	}
	if !strings.HasPrefix(first, baseDir) {
		t.Errorf("Dir() = %q, want under %q", first, baseDir)
	}
}

func TestDirDistinguishesSameName(t *testing.T) {
	baseDir := t.TempDir()
	parentA := t.TempDir()
	parentB := t.TempDir()
	workA := filepath.Join(parentA, "proj")
	workB := filepath.Join(parentB, "proj")
	for _, dir := range []string{workA, workB} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	dirA, err := Dir(baseDir, workA)
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	dirB, err := Dir(baseDir, workB)
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if dirA == dirB {
		t.Errorf("distinct projects share journal dir %q", dirA)
	}
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()

	if latest, err := FindLatest(dir); err != nil || latest != "" {
		t.Fatalf("FindLatest(empty) = %q, %v; want \"\", nil", latest, err)
	}

	older := filepath.Join(dir, "20260101-000000-1.jsonl")
	newer := filepath.Join(dir, "20260102-000000-1.jsonl")
	if err := os.WriteFile(older, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(newer, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, old, old); err != nil {
		t.Fatal(err)
	}

	latest, err := FindLatest(dir)
	if err != nil {
		t.Fatalf("FindLatest() error = %v", err)
	}
	if latest != newer {
		t.Errorf("FindLatest() = %q, want %q", latest, newer)
	}
}

func TestFindLatestMissingDir(t *testing.T) {
	latest, err := FindLatest(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("FindLatest() error = %v", err)
	}
	if latest != "" {
		t.Errorf("FindLatest() = %q, want \"\"", latest)
	}
}

func TestTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl")
	lines := []string{
		`{"action":"completed","seq":1}`,
		`{"action":"completed","seq":2}`,
		`{"action":"completed","seq":3}`,
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := Tail(&b, path, 0, false); err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	for _, line := range lines {
		if !strings.Contains(b.String(), line) {
			t.Errorf("Tail output missing %q", line)
		}
	}
}

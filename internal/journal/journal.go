// Package journal records task completions as JSONL and tails them back.
//
// Each project gets its own directory under the journal base dir, named by
// a slug of the project root plus a short path hash so unrelated projects
// with the same directory name never share a journal. Within that
// directory each process run appends to its own timestamped .jsonl file.
package journal

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Event is one journal entry.
type Event struct {
	Time        time.Time `json:"time"`
	Action      string    `json:"action"`
	Seq         int       `json:"seq,omitempty"`
	Description string    `json:"description,omitempty"`
	Document    string    `json:"document,omitempty"`
}

// Actions recorded by the CLI.
const (
	ActionCompleted = "completed"
	ActionAdded     = "added"
)

// Journal appends events for a single run.
type Journal struct {
	Dir   string
	RunID string
	Path  string
	file  *os.File
}

// New creates the per-project journal directory and opens a run file.
func New(baseDir, workDir string) (*Journal, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("journal base dir is empty")
	}

	dir, err := Dir(baseDir, workDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	id := runID()
	path := filepath.Join(dir, fmt.Sprintf("%s.jsonl", id))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("create journal file: %w", err)
	}

	return &Journal{
		Dir:   dir,
		RunID: id,
		Path:  path,
		file:  file,
	}, nil
}

// Append writes one event. A zero Time is stamped with the current time.
func (j *Journal) Append(ev Event) error {
	if j == nil || j.file == nil {
		return nil
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal journal event: %w", err)
	}
	data = append(data, '\n')
	if _, err := j.file.Write(data); err != nil {
		return fmt.Errorf("write journal event: %w", err)
	}
	return nil
}

// Close closes the run file.
func (j *Journal) Close() error {
	if j == nil || j.file == nil {
		return nil
	}
	return j.file.Close()
}

// Dir resolves the per-project journal directory for a work directory.
func Dir(baseDir, workDir string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("journal base dir is empty")
	}

	resolved := workDir
	if resolved == "" {
		resolved = "."
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}

	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(resolved, baseDir)
	}
	baseDir = filepath.Clean(baseDir)

	projectRoot := resolveProjectRoot(resolved)
	return filepath.Join(baseDir, projectSlug(projectRoot)), nil
}

// FindLatest finds the most recently modified .jsonl file in a journal
// directory, or "" if there is none.
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read journal dir: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = filepath.Join(dir, entry.Name())
		}
	}
	return latest, nil
}

// Tail copies a journal file to w, optionally showing only the last n
// lines and optionally following for new entries.
func Tail(w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open journal file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := tailSeek(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}

	if follow {
		return tailFollow(w, file)
	}

	_, err = io.Copy(w, file)
	return err
}

// resolveProjectRoot prefers the git top-level of workDir so journals stay
// stable no matter which subdirectory a command runs from.
func resolveProjectRoot(workDir string) string {
	if workDir == "" {
		return "."
	}
	if _, err := exec.LookPath("git"); err == nil {
		cmd := exec.Command("git", "-C", workDir, "rev-parse", "--show-toplevel")
		if output, err := cmd.Output(); err == nil {
			root := strings.TrimSpace(string(output))
			if root != "" {
				return root
			}
		}
	}
	return workDir
}

func projectSlug(projectRoot string) string {
	return fmt.Sprintf("%s-%s", slugify(filepath.Base(projectRoot)), hashPath(projectRoot))
}

func slugify(input string) string {
	if strings.TrimSpace(input) == "" {
		return "project"
	}

	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "project"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}

func runID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}

// tailSeek seeks to a position that shows approximately the last n lines.
func tailSeek(file *os.File, n int) error {
	const avgLineLength = 120

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	size := stat.Size()
	if size < avgLineLength*int64(n) {
		_, err = file.Seek(0, io.SeekStart)
		return err
	}

	offset := size - int64(n*avgLineLength)
	if offset < 0 {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	// Discard the partial first line.
	buf := make([]byte, 1)
	for {
		if _, err := file.Read(buf); err != nil {
			break
		}
		if buf[0] == '\n' {
			break
		}
	}
	return nil
}

// tailFollow follows a file like tail -f.
func tailFollow(w io.Writer, file *os.File) error {
	if _, err := io.Copy(w, file); err != nil {
		return err
	}

	for {
		if _, err := io.Copy(w, file); err != nil {
			return err
		}

		time.Sleep(100 * time.Millisecond)

		var buf [1]byte
		_, err := file.Read(buf[:])
		if err != nil {
			if err == io.EOF {
				continue
			}
			return err
		}
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
}

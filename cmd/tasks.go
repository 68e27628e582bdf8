package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ticklist/ticklist-go/internal/config"
	"github.com/ticklist/ticklist-go/internal/docstore"
	"github.com/ticklist/ticklist-go/internal/hooks"
	"github.com/ticklist/ticklist-go/internal/journal"
	"github.com/ticklist/ticklist-go/internal/tasklist"
)

// loadRecords reads and parses the task document at path.
func loadRecords(path string) ([]tasklist.Record, error) {
	text, err := docstore.Load(path)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("%w (run 'ticklist init' to create one)", err)
		}
		return nil, err
	}
	return tasklist.Parse(text), nil
}

// nextCommand shows the next pending task, or the tasks a hint names.
func nextCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ticklist next", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	hint := strings.Join(fs.Args(), " ")

	records, err := loadRecords(cfg.TaskFile)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	selected := tasklist.SelectNext(records, hint)
	if len(selected) == 0 {
		if tasklist.CountByStatus(records, tasklist.StatusPending) == 0 {
			fmt.Println("No pending tasks.")
		} else {
			fmt.Println("No matching task.")
		}
		return nil
	}
	for _, rec := range selected {
		printRecord(rec, false)
	}
	return nil
}

// doneCommand completes the selected tasks and records the completions.
func doneCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("ticklist done", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	hint := strings.Join(fs.Args(), " ")

	records, err := loadRecords(cfg.TaskFile)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	selected := tasklist.SelectNext(records, hint)
	if len(selected) == 0 {
		if tasklist.CountByStatus(records, tasklist.StatusPending) == 0 {
			fmt.Println("No pending tasks.")
			return nil
		}
		return fmt.Errorf("no task matches %q", hint)
	}

	updated := records
	for _, rec := range selected {
		updated, err = tasklist.MarkCompleted(updated, rec.Seq)
		if err != nil {
			return err
		}
	}

	if err := docstore.Save(cfg.TaskFile, tasklist.Serialize(updated)); err != nil {
		return fmt.Errorf("saving task file: %w", err)
	}

	recordCompletions(ctx, cfg, logger, selected)

	for _, rec := range selected {
		fmt.Printf("Completed task %d: %s\n", rec.Seq, rec.Description)
	}
	return nil
}

// recordCompletions journals each completion and runs the hook command.
// Neither failure unwinds the save; both are reported as warnings.
func recordCompletions(ctx context.Context, cfg *config.Config, logger *log.Logger, completed []tasklist.Record) {
	j, err := journal.New(cfg.JournalDir, cfg.ProjectRoot)
	if err != nil {
		logger.Warn("journal unavailable", "err", err)
	} else {
		defer j.Close()
		for _, rec := range completed {
			ev := journal.Event{
				Action:      journal.ActionCompleted,
				Seq:         rec.Seq,
				Description: rec.Description,
				Document:    cfg.TaskFile,
			}
			if err := j.Append(ev); err != nil {
				logger.Warn("journal append failed", "err", err)
			}
		}
	}

	for _, rec := range completed {
		result, err := hooks.Invoke(ctx, hooks.Options{
			Command:     cfg.HookCommand,
			Seq:         rec.Seq,
			Description: rec.Description,
			Document:    cfg.TaskFile,
			WorkDir:     cfg.ProjectRoot,
		})
		if err != nil {
			logger.Warn("hook failed", "exit_code", result.ExitCode, "err", err)
		} else if result.Ran {
			logger.Debug("hook finished", "command", result.Command)
		}
	}
}

// metaFlags collects repeated -meta key=value flags in order.
type metaFlags []tasklist.Meta

func (m *metaFlags) String() string {
	parts := make([]string, 0, len(*m))
	for _, kv := range *m {
		parts = append(parts, kv.Key+"="+kv.Value)
	}
	return strings.Join(parts, ",")
}

func (m *metaFlags) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	key = strings.TrimSpace(key)
	if !tasklist.ValidMetaKey(key) {
		return fmt.Errorf("invalid metadata key %q (letters, digits, '_' and '-' only)", key)
	}
	*m = append(*m, tasklist.Meta{Key: key, Value: strings.TrimSpace(val)})
	return nil
}

// addCommand appends a pending task to the document.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("ticklist add", flag.ContinueOnError)
	var metas metaFlags
	fs.Var(&metas, "meta", "Attach key=value metadata (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	description := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if description == "" {
		return fmt.Errorf("add requires a task description")
	}

	records, err := loadRecords(cfg.TaskFile)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	records = append(records, tasklist.Record{
		Seq:         len(records) + 1,
		Description: description,
		Status:      tasklist.StatusPending,
		Meta:        metas,
	})

	if err := docstore.Save(cfg.TaskFile, tasklist.Serialize(records)); err != nil {
		return fmt.Errorf("saving task file: %w", err)
	}

	if j, err := journal.New(cfg.JournalDir, cfg.ProjectRoot); err != nil {
		logger.Warn("journal unavailable", "err", err)
	} else {
		defer j.Close()
		ev := journal.Event{
			Action:      journal.ActionAdded,
			Seq:         len(records),
			Description: description,
			Document:    cfg.TaskFile,
		}
		if err := j.Append(ev); err != nil {
			logger.Warn("journal append failed", "err", err)
		}
	}

	fmt.Printf("Added task %d: %s\n", len(records), description)
	return nil
}

// lsCommand lists tasks, optionally filtered by status.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ticklist ls", flag.ContinueOnError)
	statusFilter := fs.String("status", "", "Filter by status (pending|completed)")
	verbose := fs.Bool("v", false, "Show metadata and completion times")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) >= 1 && *statusFilter == "" {
		*statusFilter = remaining[0]
		remaining = remaining[1:]
	}
	if len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	var filter tasklist.Status
	switch *statusFilter {
	case "":
	case "pending":
		filter = tasklist.StatusPending
	case "completed", "done":
		filter = tasklist.StatusCompleted
	default:
		return fmt.Errorf("unknown status %q (expected pending|completed)", *statusFilter)
	}

	records, err := loadRecords(cfg.TaskFile)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	if filter == "" {
		printByStatus("pending", records, tasklist.StatusPending, *verbose)
		printByStatus("completed", records, tasklist.StatusCompleted, *verbose)
		return nil
	}
	for _, rec := range records {
		if rec.Status == filter {
			printRecord(rec, *verbose)
		}
	}
	return nil
}

// fmtCommand rewrites the document in canonical serialized form.
func fmtCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ticklist fmt", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	path := cfg.TaskFile
	if len(remaining) == 1 {
		path = remaining[0]
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.ProjectRoot, path)
		}
	}

	records, err := loadRecords(path)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}
	if err := docstore.Save(path, tasklist.Serialize(records)); err != nil {
		return fmt.Errorf("saving task file: %w", err)
	}
	fmt.Printf("Formatted %s (%d tasks)\n", path, len(records))
	return nil
}

func printByStatus(label string, records []tasklist.Record, status tasklist.Status, verbose bool) {
	count := tasklist.CountByStatus(records, status)
	if count == 0 {
		return
	}
	fmt.Printf("%s (%d):\n", label, count)
	for _, rec := range records {
		if rec.Status == status {
			printRecord(rec, verbose)
		}
	}
	fmt.Println()
}

func printRecord(rec tasklist.Record, verbose bool) {
	marker := " "
	if rec.Status == tasklist.StatusCompleted {
		marker = "x"
	}
	fmt.Printf("  [%s] %d. %s\n", marker, rec.Seq, rec.Description)
	if !verbose {
		return
	}
	for _, m := range rec.Meta {
		fmt.Printf("      %s: %s\n", m.Key, m.Value)
	}
	if rec.CompletedAt != nil {
		fmt.Printf("      completed: %s\n", rec.CompletedAt.Format("2006-01-02 15:04"))
	}
}

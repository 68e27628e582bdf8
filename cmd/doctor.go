package cmd

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ticklist/ticklist-go/internal/config"
	"github.com/ticklist/ticklist-go/internal/docstore"
	"github.com/ticklist/ticklist-go/internal/journal"
	"github.com/ticklist/ticklist-go/internal/tasklist"
)

// doctorCommand checks config, the task file, the journal dir, and the
// hook command.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ticklist doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("Ticklist Doctor")
	fmt.Println("===============")
	fmt.Println()

	allOK := true

	fmt.Printf("Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	fmt.Println("Config:")
	if levelOK(cfg.LogLevel) {
		fmt.Printf("  ✅ Log level: %s\n", cfg.LogLevel)
	} else {
		fmt.Printf("  ❌ Log level: %s (expected debug|info|warn|error)\n", cfg.LogLevel)
		allOK = false
	}
	if formatOK(cfg.LogFormat) {
		fmt.Printf("  ✅ Log format: %s\n", cfg.LogFormat)
	} else {
		fmt.Printf("  ❌ Log format: %s (expected text|json|logfmt)\n", cfg.LogFormat)
		allOK = false
	}
	fmt.Println()

	fmt.Printf("Task file: %s\n", cfg.TaskFile)
	info, err := os.Stat(cfg.TaskFile)
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (run 'ticklist init' to create one)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Println("  ✅ OK")
		text, loadErr := docstore.Load(cfg.TaskFile)
		if loadErr != nil {
			fmt.Printf("  ❌ Load error: %v\n", loadErr)
			allOK = false
			break
		}
		records := tasklist.Parse(text)
		pending := tasklist.CountByStatus(records, tasklist.StatusPending)
		completed := tasklist.CountByStatus(records, tasklist.StatusCompleted)
		fmt.Printf("  ✅ Parsed %d tasks (%d pending, %d completed)\n", len(records), pending, completed)
		if *verbose {
			for _, rec := range records {
				printRecord(rec, false)
			}
		}
	}
	fmt.Println()

	fmt.Printf("Journal directory: %s\n", cfg.JournalDir)
	if _, err := os.Stat(cfg.JournalDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on first completion)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Println("  ✅ OK")
		if dir, err := journal.Dir(cfg.JournalDir, cfg.ProjectRoot); err == nil {
			latest, _ := journal.FindLatest(dir)
			if latest != "" {
				fmt.Printf("  ✅ Latest journal: %s\n", latest)
			} else if *verbose {
				fmt.Println("  ⚠️  No journal entries for this project yet")
			}
		}
	}
	fmt.Println()

	if cfg.HookCommand != "" {
		fmt.Printf("Hook command: %s\n", cfg.HookCommand)
		if _, err := exec.LookPath(cfg.HookCommand); err != nil {
			fmt.Printf("  ❌ Not found: %v\n", err)
			allOK = false
		} else {
			fmt.Println("  ✅ OK")
		}
		fmt.Println()
	}

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Ticklist may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

func levelOK(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return true
	}
	return false
}

func formatOK(format string) bool {
	switch strings.ToLower(format) {
	case "", "text", "json", "logfmt":
		return true
	}
	return false
}

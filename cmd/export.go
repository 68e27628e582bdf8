package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ticklist/ticklist-go/internal/config"
	"github.com/ticklist/ticklist-go/internal/export"
)

// exportCommand prints the task document as schema-validated JSON.
func exportCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ticklist export", flag.ContinueOnError)
	outPath := fs.String("o", "", "Write output to a file instead of stdout")
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

	doc := export.FromRecords(records, path, time.Now())
	data, err := export.Marshal(doc)
	if err != nil {
		return err
	}
	if err := export.Validate(data); err != nil {
		return err
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, data, 0644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Printf("Exported %d tasks to %s\n", len(records), *outPath)
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/ticklist/ticklist-go/internal/config"
	"github.com/ticklist/ticklist-go/internal/ui"
)

// tuiCommand launches the terminal viewer.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ticklist tui", flag.ContinueOnError)
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

	return ui.RunTUI(ctx, path)
}

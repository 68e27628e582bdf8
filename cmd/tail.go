package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/ticklist/ticklist-go/internal/config"
	"github.com/ticklist/ticklist-go/internal/journal"
)

// tailCommand tails the latest journal file for this project.
func tailCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ticklist tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the journal (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the journal (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dir, err := journal.Dir(cfg.JournalDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding journal directory: %w", err)
	}

	path, err := journal.FindLatest(dir)
	if err != nil {
		return fmt.Errorf("finding latest journal: %w", err)
	}
	if path == "" {
		fmt.Println("No journal files found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", path)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return journal.Tail(os.Stdout, path, *n, *follow)
}

// Package cmd implements the CLI command structure for ticklist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ticklist/ticklist-go/internal/config"
	"github.com/ticklist/ticklist-go/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the ticklist CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ticklist", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.NewFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)

	// If no args or first arg is a flag, default to "next".
	subcommand := "next"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	switch subcommand {
	case "next":
		return nextCommand(cfg, remainingArgs)
	case "done":
		return doneCommand(ctx, cfg, logger, remainingArgs)
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "fmt":
		return fmtCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, logger, remainingArgs)
	case "export":
		return exportCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// An existing file is shorthand for "next <file>".
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			cfg.TaskFile = subcommand
			return nextCommand(cfg, remainingArgs)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("ticklist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Ticklist - A markdown checklist tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ticklist [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  next [hint]   Show the next pending task (default command)")
	fmt.Fprintln(w, "  done [hint]   Complete the next pending task, or the one the hint names")
	fmt.Fprintln(w, "  add <text>    Append a pending task (repeat -meta k=v to attach metadata)")
	fmt.Fprintln(w, "  ls [status]   List tasks, optionally filtered by status")
	fmt.Fprintln(w, "  fmt           Rewrite the document in canonical form")
	fmt.Fprintln(w, "  init [name]   Create a task document from a template")
	fmt.Fprintln(w, "  export        Print the document as JSON")
	fmt.Fprintln(w, "  doctor        Check config, task file, and journal health")
	fmt.Fprintln(w, "  tail          Tail the latest journal file")
	fmt.Fprintln(w, "  tui           Launch the terminal viewer")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next/Done Hints:")
	fmt.Fprintln(w, "  A bare number, \"task N\", or \"#N\" names a task by its position.")
	fmt.Fprintln(w, "  \"all\", \"remaining\", \"everything\", or \"rest\" selects every pending task.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add' command):")
	fmt.Fprintln(w, "  -meta string")
	fmt.Fprintln(w, "        Attach key=value metadata to the new task (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Init Options (use with 'init' command):")
	fmt.Fprintln(w, "  -template string")
	fmt.Fprintln(w, "        Template name (blank|feature|bugfix)")
	fmt.Fprintln(w, "  -config")
	fmt.Fprintln(w, "        Also write an example ticklist.toml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the journal (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (pending|completed)")
	fmt.Fprintln(w, "  -v    Show metadata and completion times")
}

// Package hooks invokes an external command after a task completes.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Options configures a hook invocation.
type Options struct {
	Command     string
	Seq         int
	Description string
	Document    string
	WorkDir     string
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// Invoke runs the hook command with the completed task's sequence number,
// description, and document path as arguments. An empty command is a
// no-op, not an error.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" {
		return Result{}, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	args := []string{strconv.Itoa(opts.Seq), opts.Description, opts.Document}
	cmd := exec.CommandContext(ctx, opts.Command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

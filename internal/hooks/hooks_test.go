package hooks

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestInvokeEmptyCommand(t *testing.T) {
	result, err := Invoke(context.Background(), Options{Command: ""})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if result.Ran {
		t.Error("expected Ran to be false for empty command")
	}
}

func TestInvokeRunsCommandWithArgs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script hook not supported on windows")
	}

	dir := t.TempDir()
	outPath := filepath.Join(dir, "hook-out.txt")
	script := filepath.Join(dir, "hook.sh")
	content := "#!/bin/sh\necho \"$1|$2|$3\" > " + outPath + "\n"
	if err := os.WriteFile(script, []byte(content), 0755); err != nil {
		t.Fatal(err)
	}

	result, err := Invoke(context.Background(), Options{
		Command:     script,
		Seq:         3,
		Description: "Write the docs",
		Document:    "to-do.md",
		WorkDir:     dir,
	})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if !result.Ran {
		t.Fatal("expected Ran to be true")
	}
	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("hook did not write output: %v", err)
	}
	got := strings.TrimSpace(string(out))
	if got != "3|Write the docs|to-do.md" {
		t.Errorf("hook args = %q, want %q", got, "3|Write the docs|to-do.md")
	}
}

func TestInvokeFailingCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script hook not supported on windows")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "hook.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 7\n"), 0755); err != nil {
		t.Fatal(err)
	}

	result, err := Invoke(context.Background(), Options{Command: script, Seq: 1})
	if err == nil {
		t.Fatal("expected error for failing hook")
	}
	if !result.Ran {
		t.Error("expected Ran to be true even on failure")
	}
	if result.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", result.ExitCode)
	}
}

func TestInvokeMissingCommand(t *testing.T) {
	result, err := Invoke(context.Background(), Options{
		Command: filepath.Join(t.TempDir(), "no-such-hook"),
		Seq:     1,
	})
	if err == nil {
		t.Fatal("expected error for missing hook binary")
	}
	if result.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", result.ExitCode)
	}
}

package runner

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunTrimsStdout(t *testing.T) {
	requireShell(t)
	r := New("sh", 0)
	out, err := r.Run(context.Background(), "-c", "printf '  hello\\n\\n'")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "hello" {
		t.Fatalf("want %q, got %q", "hello", out)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	requireShell(t)
	r := New("sh", 0)
	_, err := r.Run(context.Background(), "-c", "echo boom >&2; exit 3")
	var perr *ProcessError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProcessError, got %v", err)
	}
	if perr.ExitCode != 3 {
		t.Fatalf("expected exit 3, got %d", perr.ExitCode)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected stderr in error, got %q", err.Error())
	}
}

func TestRunMissingBinary(t *testing.T) {
	r := New("mpctl-definitely-not-installed", 0)
	_, err := r.Run(context.Background(), "list")
	var perr *ProcessError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProcessError, got %v", err)
	}
	if perr.ExitCode != -1 {
		t.Fatalf("expected exit -1 for start failure, got %d", perr.ExitCode)
	}
}

func TestNewDefaultsBinary(t *testing.T) {
	if got := New("  ", 0).Binary; got != DefaultBinary {
		t.Fatalf("want %s, got %s", DefaultBinary, got)
	}
}

func TestCommandLine(t *testing.T) {
	if got := CommandLine("multipass", "list", "--format", "json"); got != "multipass list --format json" {
		t.Fatalf("unexpected command line %q", got)
	}
	if got := CommandLine("multipass"); got != "multipass" {
		t.Fatalf("unexpected command line %q", got)
	}
}

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/projecteru2/core/log"
)

// DefaultBinary is the external tool driven when no binary is configured.
const DefaultBinary = "multipass"

// Runner executes one invocation of the external tool and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ProcessError reports a failed invocation: the process exited non-zero or could not start.
type ProcessError struct {
	Command  string
	ExitCode int // -1 when the process never started
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: %s", e.Command, msg)
	}
	return fmt.Sprintf("%s (exit %d): %s", e.Command, e.ExitCode, msg)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// ExecRunner runs Binary as a child process and blocks until it exits.
// A zero Timeout means the call is bounded only by ctx.
type ExecRunner struct {
	Binary  string
	Timeout time.Duration
}

// New returns an ExecRunner for binary, falling back to DefaultBinary.
func New(binary string, timeout time.Duration) *ExecRunner {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &ExecRunner{Binary: binary, Timeout: timeout}
}

// Run executes the tool with args.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	command := CommandLine(r.Binary, args...)
	logger := log.WithFunc("runner.Run")
	logger.Debugf(ctx, "exec: %s", command)

	cmd := exec.CommandContext(ctx, r.Binary, args...) //nolint:gosec // binary comes from user config
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		perr := &ProcessError{Command: command, ExitCode: -1, Stderr: stderr.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			perr.ExitCode = exitErr.ExitCode()
		}
		logger.Warnf(ctx, "%v", perr)
		return "", perr
	}
	return strings.TrimSpace(stdout.String()), nil
}

// CommandLine renders an invocation the way a user would type it.
func CommandLine(binary string, args ...string) string {
	if len(args) == 0 {
		return binary
	}
	return binary + " " + strings.Join(args, " ")
}

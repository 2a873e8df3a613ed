// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell runs command lines through the host shell for slash-commands
// that are not built in.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// ERRORS
// =============================================================================

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("shell: %q exited with status %d", e.Command, e.ExitCode)
}

// ErrEmptyCommand is returned for a blank command line.
var ErrEmptyCommand = errors.New("shell: empty command")

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes command lines with the platform shell.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env overrides the child environment when non-nil.
	Env []string
}

// NewRunner creates a runner attached to the process's stdio.
func NewRunner() *Runner {
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// NormalizeCommand normalizes unicode to NFKC form so lookalike characters
// reach the shell in their canonical form.
func NormalizeCommand(line string) string {
	return norm.NFKC.String(strings.TrimSpace(line))
}

// Run executes line and returns its exit status. A non-zero exit is also
// reported as an *ExitError.
func (r *Runner) Run(ctx context.Context, line string) (int, error) {
	line = NormalizeCommand(line)
	if line == "" {
		return -1, ErrEmptyCommand
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", line)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", line)
	}
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if r.Env != nil {
		cmd.Env = r.Env
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		return code, &ExitError{Command: line, ExitCode: code}
	}
	return -1, fmt.Errorf("shell: failed to start %q: %w", line, err)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
)

// DispatchError is how every failure leaves the dispatcher. It names the
// command and where in the dispatch cycle the failure happened.
type DispatchError struct {
	Command string
	Locator string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %v (at %s)", e.Command, e.Err, e.Locator)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// UsageError reports arguments that do not fit a command's shape.
type UsageError struct {
	Command string
	Shape   string
	Got     int // number of tokens supplied
	Usage   string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("expected %s, got %s; usage: %s", e.Shape, tokens(e.Got), e.Usage)
}

func tokens(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", n)
}

// UnknownCommandError reports a command name /info cannot describe.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("command '%s' not found", e.Name)
}

// ShellError reports a failed shell fallback.
type ShellError struct {
	Line     string
	ExitCode int
	Err      error
}

func (e *ShellError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("shell command %q exited with status %d", e.Line, e.ExitCode)
	}
	return fmt.Sprintf("shell command %q failed: %v", e.Line, e.Err)
}

func (e *ShellError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a handler panic.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

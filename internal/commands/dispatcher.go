// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jeranaias/gemchat/internal/objects"
	"github.com/jeranaias/gemchat/internal/shell"
)

// ShellRunner runs lines that name no known command.
type ShellRunner interface {
	Run(ctx context.Context, line string) (int, error)
}

// ModelSession is the live session deferred actions are applied to.
type ModelSession interface {
	TruncateHistory()
}

// Locators name the dispatch stage a failure came from.
const (
	LocParse    = "parse"
	LocArgs     = "args"
	LocHandler  = "handler"
	LocShell    = "shell"
	LocDeferred = "deferred"
)

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher routes command lines to handlers or the shell.
type Dispatcher struct {
	catalog *Catalog
	shell   ShellRunner
	session ModelSession
}

// NewDispatcher creates a dispatcher. session may be nil when no model is
// attached, in which case deferred actions fail with a reported error.
func NewDispatcher(catalog *Catalog, sh ShellRunner, session ModelSession) *Dispatcher {
	return &Dispatcher{catalog: catalog, shell: sh, session: session}
}

// Dispatch runs one command line to completion. Every failure, including a
// handler panic, comes back as a *DispatchError; the only other non-nil
// return is ErrExit. An empty line is ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	function, argstr, rest := SplitLine(line)
	if function == "" {
		return &DispatchError{Command: Prefix, Locator: LocParse, Err: errors.New("missing command name")}
	}

	desc, ok := d.catalog.Lookup(function)
	if !ok {
		return d.fallback(ctx, function, rest)
	}

	fn, err := bindArgs(desc, argstr)
	if err != nil {
		return &DispatchError{Command: desc.Command(), Locator: LocArgs, Err: err}
	}

	res, loc, err := invoke(ctx, fn)
	if errors.Is(err, ErrExit) {
		return ErrExit
	}
	if err != nil {
		return &DispatchError{Command: desc.Command(), Locator: loc, Err: err}
	}

	if err := d.applyDeferred(res.Deferred); err != nil {
		return &DispatchError{Command: desc.Command(), Locator: LocDeferred, Err: err}
	}
	return nil
}

// fallback hands the line after the prefix to the shell. Failures are
// returned as ShellError and never escape as panics.
func (d *Dispatcher) fallback(ctx context.Context, function, rest string) (err error) {
	cmdline := shell.NormalizeCommand(rest)
	defer func() {
		if r := recover(); r != nil {
			err = &DispatchError{Command: Prefix + function, Locator: LocShell, Err: &PanicError{Value: r}}
		}
	}()

	if d.shell == nil {
		return &DispatchError{Command: Prefix + function, Locator: LocShell, Err: &ShellError{Line: cmdline, Err: errors.New("no shell configured")}}
	}

	code, runErr := d.shell.Run(ctx, cmdline)
	if runErr != nil || code != 0 {
		return &DispatchError{
			Command: Prefix + function,
			Locator: LocShell,
			Err:     &ShellError{Line: cmdline, ExitCode: code, Err: runErr},
		}
	}
	return nil
}

// invoke calls fn, converting a panic into an error located at the frame
// that panicked.
func invoke(ctx context.Context, fn call) (res Result, loc string, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, loc, err = Result{}, LocHandler+" "+panicSite(), &PanicError{Value: r}
		}
	}()
	res, err = fn(ctx)
	return res, LocHandler, err
}

// panicSite returns "file.go:line" for the first frame outside the runtime
// on the panicking goroutine's stack.
func panicSite() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, "runtime.") && f.File != "" {
			return fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		}
		if !more {
			return "unknown"
		}
	}
}

// applyDeferred runs each distinct action once against the live session.
func (d *Dispatcher) applyDeferred(actions []objects.DeferredAction) error {
	seen := make(map[objects.DeferredAction]bool, len(actions))
	for _, a := range actions {
		if seen[a] {
			continue
		}
		seen[a] = true

		switch a {
		case objects.DeferredNone:
		case objects.TruncateExternalHistory:
			if d.session == nil {
				return fmt.Errorf("%s: no model session attached", a)
			}
			d.session.TruncateHistory()
		default:
			return fmt.Errorf("unsupported deferred action %s", a)
		}
	}
	return nil
}

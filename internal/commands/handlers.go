// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/gemchat/internal/objects"
)

// =============================================================================
// HANDLER ENVIRONMENT
// =============================================================================

// ScreenClearer clears the terminal.
type ScreenClearer interface {
	ClearScreen()
}

// Evaluator runs code in a persistent namespace. Cancelling ctx interrupts
// the running code.
type Evaluator interface {
	Eval(ctx context.Context, src string) (result string, hasResult bool, err error)
}

// Env provides handlers with the state they act on.
type Env struct {
	// Out receives everything handlers print
	Out io.Writer

	// Objects is the registry served by /get and /clear
	Objects *objects.Registry

	// Screen is cleared by /clear with no arguments
	Screen ScreenClearer

	// Eval backs /exec. A nil Eval disables the command.
	Eval Evaluator

	// catalog is set once the catalog is built so /info and /options can
	// describe it.
	catalog *Catalog
}

// ErrExit is returned by /exit to end the session.
var ErrExit = errors.New("exit requested")

// ErrExecDisabled is returned by /exec when no evaluator is configured.
var ErrExecDisabled = errors.New("exec is disabled")

// UsageGuidance is printed by /info with no argument.
const UsageGuidance = `You can execute commands by placing a '/' before the command.
If the command is not one of the available commands, it is executed as a system command.
You can see the available commands by typing '/options'.
You can also get information about a specific command by typing '/info <command>'.
Example: /info options`

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func builtins(env *Env) []*Descriptor {
	return []*Descriptor{
		{
			Name:        "info",
			Description: "Display information about how to interact with Gemini.",
			Shape:       SingleString{Optional: true, Name: "command", Fn: env.info},
			Returns:     "explanation",
			Examples:    []string{"/info", "/info options"},
		},
		{
			Name:        "options",
			Description: "Display the available commands.",
			Shape:       NoArgs{Fn: env.options},
			Returns:     "options list",
			Examples:    []string{"/options"},
		},
		{
			Name:        "get",
			Description: "Display registered objects by category and name; '*' matches any.",
			Shape:       StringPair{First: "category", Second: "name", Fn: env.get},
			Returns:     "matching objects",
			Examples:    []string{"/get list history", "/get * *"},
		},
		{
			Name:        "clear",
			Description: "Clear the screen, or clear registered objects by category and name.",
			Shape:       StringPair{AllowNone: true, First: "category", Second: "name", Fn: env.clear},
			Returns:     "cleared objects and deferred action",
			Examples:    []string{"/clear", "/clear list history"},
		},
		{
			Name:        "exec",
			Description: "Evaluate JavaScript in a persistent namespace. Not sandboxed.",
			Shape:       SingleString{Name: "code", Fn: env.exec},
			Returns:     "none",
			Examples:    []string{"/exec var x = 6 * 7", "/exec print(x)"},
		},
		{
			Name:        "reset",
			Description: "Reset the chat session.",
			Shape:       NoArgs{Fn: env.reset},
			Returns:     "deferred history truncation",
			Examples:    []string{"/reset"},
		},
		{
			Name:        "exit",
			Description: "Exit the chat session.",
			Shape:       NoArgs{Fn: env.exit},
			Returns:     "none",
			Examples:    []string{"/exit"},
		},
	}
}

// bind records the catalog for handlers that describe it.
func (env *Env) bind(c *Catalog) {
	env.catalog = c
}

// =============================================================================
// HANDLERS
// =============================================================================

func (env *Env) info(_ context.Context, arg string) (Result, error) {
	name := strings.TrimPrefix(strings.TrimSpace(arg), Prefix)
	if name == "" {
		fmt.Fprintln(env.Out, UsageGuidance)
		return Result{Value: UsageGuidance}, nil
	}

	d, ok := env.catalog.Lookup(name)
	if !ok {
		return Result{}, &UnknownCommandError{Name: name}
	}

	objects.Render(env.Out, map[string]string{d.Name: d.Description})
	fmt.Fprintln(env.Out)
	fmt.Fprintf(env.Out, "%s : ", d.Name)
	objects.Render(env.Out, d.View())
	return Result{Value: d.Description}, nil
}

func (env *Env) options(_ context.Context) (Result, error) {
	names := env.catalog.Names()
	objects.Render(env.Out, names)
	return Result{Value: names}, nil
}

func (env *Env) get(_ context.Context, p Pair) (Result, error) {
	entries, err := env.Objects.Lookup(p.First, p.Second)
	if err != nil {
		return Result{}, err
	}
	if err := objects.RenderEntries(env.Out, entries); err != nil {
		return Result{}, err
	}
	return Result{Value: entries}, nil
}

func (env *Env) clear(_ context.Context, p Pair) (Result, error) {
	if p.IsZero() {
		if env.Screen != nil {
			env.Screen.ClearScreen()
		}
		return Result{}, nil
	}

	res, err := env.Objects.Clear(p.First, p.Second)
	if err != nil {
		return Result{}, err
	}
	for _, e := range res.Cleared {
		fmt.Fprintf(env.Out, "cleared %s (was %s)\n", e.Key(), objects.Format(e.Value))
	}
	return Result{Value: res.Cleared, Deferred: res.Deferred}, nil
}

func (env *Env) exec(ctx context.Context, src string) (Result, error) {
	if env.Eval == nil {
		return Result{}, ErrExecDisabled
	}
	out, ok, err := env.Eval.Eval(ctx, src)
	if err != nil {
		return Result{}, err
	}
	if ok {
		fmt.Fprintln(env.Out, out)
	}
	return Result{}, nil
}

func (env *Env) reset(_ context.Context) (Result, error) {
	fmt.Fprintln(env.Out, "Gemini: Chat session reset.")
	return Result{Deferred: []objects.DeferredAction{objects.TruncateExternalHistory}}, nil
}

func (env *Env) exit(_ context.Context) (Result, error) {
	return Result{}, ErrExit
}

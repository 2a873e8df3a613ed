// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"

	"github.com/jeranaias/gemchat/internal/objects"
)

// =============================================================================
// HANDLER RESULT
// =============================================================================

// Result is what a handler returns to the dispatcher.
type Result struct {
	// Value is what the handler produced. It has already been printed.
	Value any

	// Deferred lists actions to apply against the live session.
	Deferred []objects.DeferredAction
}

// =============================================================================
// ARGUMENT SHAPES
// =============================================================================

// Shape describes how a command's raw argument text is bound. The set of
// shapes is closed: NoArgs, SingleString and StringPair.
type Shape interface {
	// Kind names the shape for descriptors and usage errors.
	Kind() string
	sealed()
}

// NoArgs commands reject any argument.
type NoArgs struct {
	Fn func(ctx context.Context) (Result, error)
}

// SingleString commands receive the remainder of the line verbatim.
type SingleString struct {
	// Optional allows the argument to be omitted.
	Optional bool
	// Name labels the argument in usage text.
	Name string
	Fn   func(ctx context.Context, arg string) (Result, error)
}

// StringPair commands receive exactly two whitespace-separated tokens.
type StringPair struct {
	// AllowNone also accepts zero tokens, passed as the zero Pair.
	AllowNone bool
	// First and Second label the tokens in usage text.
	First, Second string
	Fn            func(ctx context.Context, p Pair) (Result, error)
}

// Pair holds the two tokens bound for a StringPair command.
type Pair struct {
	First  string
	Second string
}

// IsZero reports whether no tokens were supplied.
func (p Pair) IsZero() bool {
	return p.First == "" && p.Second == ""
}

func (NoArgs) Kind() string { return "no-argument" }

func (s SingleString) Kind() string {
	if s.Optional {
		return "single-string, optional"
	}
	return "single-string"
}

func (s StringPair) Kind() string {
	if s.AllowNone {
		return "pair-of-strings, zero allowed"
	}
	return "pair-of-strings"
}

func (NoArgs) sealed()       {}
func (SingleString) sealed() {}
func (StringPair) sealed()   {}

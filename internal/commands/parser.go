// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// IsCommand returns true if the input appears to be a command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), Prefix)
}

// SplitLine strips the prefix and splits the rest into the command token
// and the raw argument text. rest is everything after the prefix.
// e.g., "/get list  history" -> ("get", "list  history", "get list  history")
func SplitLine(input string) (function, argstr, rest string) {
	rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), Prefix))
	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end == -1 {
		return rest, "", rest
	}
	return rest[:end], strings.TrimSpace(rest[end:]), rest
}

// call is a handler with its arguments already bound.
type call func(ctx context.Context) (Result, error)

// bindArgs matches argstr against the descriptor's shape. A mismatch yields
// a UsageError and the handler is never called.
func bindArgs(d *Descriptor, argstr string) (call, error) {
	usage := func(got int) error {
		return &UsageError{Command: d.Command(), Shape: d.Shape.Kind(), Got: got, Usage: d.Usage()}
	}

	switch s := d.Shape.(type) {
	case NoArgs:
		if argstr != "" {
			return nil, usage(len(strings.Fields(argstr)))
		}
		return s.Fn, nil

	case SingleString:
		if argstr == "" && !s.Optional {
			return nil, usage(0)
		}
		return func(ctx context.Context) (Result, error) {
			return s.Fn(ctx, argstr)
		}, nil

	case StringPair:
		fields := strings.Fields(argstr)
		var p Pair
		switch {
		case len(fields) == 2:
			p = Pair{First: fields[0], Second: fields[1]}
		case len(fields) == 0 && s.AllowNone:
		default:
			return nil, usage(len(fields))
		}
		return func(ctx context.Context) (Result, error) {
			return s.Fn(ctx, p)
		}, nil

	default:
		return nil, fmt.Errorf("unsupported argument shape %T", d.Shape)
	}
}

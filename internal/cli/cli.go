// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Argument parsing and usage text for gemchat.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdChat Command = iota
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet      bool
	Verbose    bool
	NoMarkdown bool
	Model      string
	ModelSet   bool // --model was given, possibly empty
	Name       string

	// Command-specific
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `gemchat - interactive chat with Gemini

Usage:
  gemchat [chat]               Start an interactive chat session (default)
  gemchat config [show|init]   Show the effective config or write the default file
  gemchat version              Show version information
  gemchat help                 Show this help

Flags:
  -m, --model NAME    Use a specific model (overrides config)
  -n, --name USER     Skip the name prompt
  --no-markdown       Print replies as plain text
  -q, --quiet         Minimal output
  -v, --verbose       Log request diagnostics to stderr

Environment:
  GEMINI_API_KEY               API key (required for chat)
  GEMCHAT_MODEL                Model override
  GEMCHAT_SYSTEM_INSTRUCTION   System instruction override
  GEMCHAT_HOME                 Config directory (default ~/.gemchat)

In the chat, type /info for help and /exit to leave.

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "gemchat version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments (without the program name) and
// returns the command and args.
func Parse(argv []string) (Command, Args, error) {
	remaining, parsedArgs, err := parseGlobalFlags(argv)
	if err != nil {
		return CmdHelp, parsedArgs, err
	}

	// No command means chat
	if len(remaining) == 0 {
		return CmdChat, parsedArgs, nil
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "chat":
		if len(remaining) > 0 {
			return CmdChat, parsedArgs, &ArgError{Arg: remaining[0], Reason: "unexpected argument to chat"}
		}
		return CmdChat, parsedArgs, nil

	case "config":
		parsedArgs.Subcommand = "show"
		if len(remaining) > 0 {
			parsedArgs.Subcommand = strings.ToLower(remaining[0])
		}
		switch parsedArgs.Subcommand {
		case "show", "init":
			return CmdConfig, parsedArgs, nil
		default:
			return CmdConfig, parsedArgs, &ArgError{Arg: parsedArgs.Subcommand, Reason: "unknown config subcommand (want show or init)"}
		}

	case "version", "--version":
		return CmdVersion, parsedArgs, nil

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs, nil

	default:
		return CmdHelp, parsedArgs, &ArgError{Arg: cmd, Reason: "unknown command"}
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args, error) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--no-markdown":
			parsedArgs.NoMarkdown = true
		case "-m", "--model", "-n", "--name":
			if i+1 >= len(args) {
				return nil, parsedArgs, &ArgError{Arg: arg, Reason: "requires a value"}
			}
			i++
			if arg == "-m" || arg == "--model" {
				parsedArgs.Model = args[i]
				parsedArgs.ModelSet = true
			} else {
				parsedArgs.Name = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--model="):
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
				parsedArgs.ModelSet = true
			case strings.HasPrefix(arg, "--name="):
				parsedArgs.Name = strings.TrimPrefix(arg, "--name=")
			default:
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs, nil
}

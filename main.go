// gemchat - An interactive terminal chat client for Gemini.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/jeranaias/gemchat/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cmd, args, err := cli.Parse(argv)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		cli.PrintUsage(os.Stderr)
		return cli.GetExitCode(err)
	}

	setupLogging(args.Verbose)

	switch cmd {
	case cli.CmdChat:
		err = cli.HandleChatCommand(context.Background(), args)
	case cli.CmdConfig:
		err = cli.HandleConfig(os.Stdout, args)
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
	default:
		cli.PrintUsage(os.Stdout)
	}

	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// setupLogging sends diagnostics to stderr only in verbose mode.
func setupLogging(verbose bool) {
	log.SetFlags(0)
	log.SetPrefix("gemchat: ")
	if verbose {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(io.Discard)
}

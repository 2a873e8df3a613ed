// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The "config" command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/gemchat/internal/config"
)

// ErrConfigExists is returned by "config init" when a config file is
// already present.
var ErrConfigExists = errors.New("config file already exists")

// HandleConfig runs "config show" or "config init".
func HandleConfig(w io.Writer, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(w)
	case "init":
		return handleConfigInit(w)
	default:
		return &ArgError{Arg: args.Subcommand, Reason: "unknown config subcommand (want show or init)"}
	}
}

// handleConfigShow prints the effective configuration as TOML.
func handleConfigShow(w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return &CommandError{Command: "config", Action: "show", Err: err}
	}

	path, err := config.ConfigPathTOML()
	if err == nil {
		source := "defaults"
		if _, statErr := os.Stat(path); statErr == nil {
			source = path
		}
		fmt.Fprintln(w, infoStyle.Render("# source: "+source))
	}
	fmt.Fprint(w, cfg.String())
	return nil
}

// handleConfigInit writes the default configuration file. An existing file
// is never overwritten.
func handleConfigInit(w io.Writer) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return &CommandError{Command: "config", Action: "init", Err: err}
	}
	if _, err := os.Stat(path); err == nil {
		return &CommandError{Command: "config", Action: "init", Err: fmt.Errorf("%w: %s", ErrConfigExists, path)}
	}

	if err := config.Save(config.Default()); err != nil {
		return &CommandError{Command: "config", Action: "init", Err: err}
	}

	fmt.Fprintf(w, "%s Wrote %s\n", SuccessStyle.Render("[OK]"), path)
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the interactive chat
// session for gemchat.
//
// # Key Types
//
//   - Command: Enumeration of the top-level commands
//   - Args: Parsed command-line arguments
//   - Loop: The interactive session; routes slash commands to the
//     dispatcher and everything else to the model
//   - ChatCLI: Line editing and input history backed by liner
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	switch cmd {
//	case cli.CmdChat:
//	    err = cli.HandleChatCommand(ctx, args)
//	case cli.CmdConfig:
//	    err = cli.HandleConfig(os.Stdout, args)
//	}
package cli

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for gemchat.
//
// A Catalog holds one Descriptor per command. Each descriptor declares its
// argument shape (NoArgs, SingleString or StringPair) and carries a handler
// typed for that shape. The Dispatcher parses a command line, binds the
// arguments according to the shape, invokes the handler and applies any
// deferred action the handler requests against the live model session.
//
// Unknown commands fall through to the host shell.
//
// # Built-in Commands
//
//   - /info [command]: Usage guidance or details for one command
//   - /options: List the available commands
//   - /get <category> <name>: Show registry objects
//   - /clear [<category> <name>]: Clear the screen or a registry object
//   - /exec <code>: Evaluate JavaScript in a persistent namespace
//   - /reset: Reset the chat session
//   - /exit: Exit the chat session
//
// # Usage
//
//	catalog := commands.NewCatalog(env)
//	d := commands.NewDispatcher(catalog, shell.NewRunner(), chat)
//	if err := d.Dispatch(ctx, "/get list history"); err != nil {
//	    // report and continue
//	}
package commands

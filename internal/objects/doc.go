// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package objects provides the registry of in-process values exposed to the
// introspection commands.
//
// The registry is declared explicitly at startup: every (category, name)
// pair maps to an accessor closure, and writable entries additionally carry
// a mutability flag and a clear mutator. Nothing is discovered by
// reflection over live program state.
//
// # Selectors
//
//	Lookup("list", "history")  // one entry
//	Lookup("list", "*")        // every entry in a category
//	Lookup("*", "history")     // that name in every category
//	Lookup("*", "*")           // everything
//
// # Clearing
//
// Clear on a Clearable entry empties it. AppendOnly and read-only entries
// return ErrNotClearable and are left untouched; unknown selectors return
// ErrNotFound. Clearing an entry may request a DeferredAction which the
// command dispatcher applies against the live model session.
package objects

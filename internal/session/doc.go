// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the state owned by one interactive chat session.
//
// # Key Types
//
//   - History: Conversation history shared by reference with the model session
//   - Turn: One role-tagged message (user or model)
//   - Info: Session ID, user name and start time
//
// # Usage
//
//	hist := session.NewHistory()
//	modelSession := model.StartSession(hist) // same pointer, no copy
//	hist.AppendExchange("hello", reply)
package session

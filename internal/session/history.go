// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the state owned by one interactive chat session.
package session

import (
	"sync"
)

// =============================================================================
// TURNS
// =============================================================================

// Role identifies who produced a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one role-tagged message in the conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// =============================================================================
// HISTORY
// =============================================================================

// History is the conversation history of a session.
//
// A single *History is shared by the chat loop and the model session handle.
// Every mutation is visible to both holders; callers must never hand the
// model an independent copy.
type History struct {
	mu    sync.Mutex
	turns []Turn
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{turns: make([]Turn, 0)}
}

// Append adds a single turn.
func (h *History) Append(role Role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, Turn{Role: role, Content: content})
}

// AppendExchange records a completed user/model exchange. The user turn is
// always written before the model turn and both land under one lock, so a
// reader never observes half an exchange.
func (h *History) AppendExchange(user, model string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns,
		Turn{Role: RoleUser, Content: user},
		Turn{Role: RoleModel, Content: model},
	)
}

// Turns returns a snapshot of the history.
func (h *History) Turns() []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of turns.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Clear empties the history in place and returns the removed turns.
func (h *History) Clear() []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	removed := h.turns
	h.turns = make([]Turn, 0)
	return removed
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"time"

	"github.com/google/uuid"
)

// DefaultUserName is used when the user leaves the name prompt empty.
const DefaultUserName = "you"

// Info describes the running session.
type Info struct {
	ID        string
	UserName  string
	StartedAt time.Time
}

// NewInfo creates session metadata for the given user.
func NewInfo(userName string) Info {
	if userName == "" {
		userName = DefaultUserName
	}
	return Info{
		ID:        generateSessionID(),
		UserName:  userName,
		StartedAt: time.Now(),
	}
}

// Uptime returns how long the session has been running.
func (i Info) Uptime() time.Duration {
	return time.Since(i.StartedAt).Round(time.Second)
}

// generateSessionID creates a unique session ID.
func generateSessionID() string {
	return "sess_" + uuid.NewString()
}

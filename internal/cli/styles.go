// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gemchat/internal/session"
	"github.com/jeranaias/gemchat/internal/ui/styles"
)

// init configures lipgloss color profile based on terminal capabilities.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// promptStyle renders the "<user>: " input prompt
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.RoleColor(string(session.RoleUser))).
			Bold(true)

	// modelStyle renders the "Gemini:" reply label
	modelStyle = lipgloss.NewStyle().
			Foreground(styles.RoleColor(string(session.RoleModel))).
			Bold(true)

	// infoStyle is used for secondary information
	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// commandStyle highlights command names
	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// summaryHeaderStyle is the exit summary header
	summaryHeaderStyle = lipgloss.NewStyle().
				Foreground(styles.Cyan).
				Bold(true)

	// warningStyle marks recoverable interruptions
	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber).
			Bold(true)

	// ErrorStyle is used for error messages and failures
	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// SuccessStyle is used for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)
)

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the color palette for gemchat's terminal output.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

  - Cyan - The user's prompt
  - Purple - The model's replies
  - Emerald - Success states and command names
  - Amber - Warnings
  - Rose - Errors

Usage:

	label := lipgloss.NewStyle().Foreground(styles.RoleColor("model")).Render("Gemini:")
*/
package styles

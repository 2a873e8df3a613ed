// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// markdown.go - Markdown rendering of model replies.
package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns a model reply into terminal text.
type Renderer func(reply string) string

// PlainRenderer returns replies unchanged.
func PlainRenderer(reply string) string {
	return reply
}

// NewMarkdownRenderer returns a glamour-backed renderer wrapping at width
// columns (capped at MaxMarkdownWidth). If the renderer cannot be built,
// replies are printed as plain text.
func NewMarkdownRenderer(width int) Renderer {
	if width <= 0 {
		width = DefaultTerminalWidth
	}
	width = min(width, MaxMarkdownWidth)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return PlainRenderer
	}

	return func(reply string) string {
		rendered, err := r.Render(reply)
		if err != nil {
			return reply
		}
		return strings.Trim(rendered, "\n")
	}
}

// chooseRenderer renders markdown only when enabled and stdout is a TTY, so
// piped output stays plain.
func chooseRenderer(markdown bool) Renderer {
	if markdown && IsStdoutTTY() {
		return NewMarkdownRenderer(GetTerminalWidth())
	}
	return PlainRenderer
}

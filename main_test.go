// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/gemchat/internal/cli"
)

func TestRun_ExitCodes(t *testing.T) {
	t.Setenv("GEMCHAT_HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMCHAT_MODEL", "")

	tests := []struct {
		name string
		argv []string
		want int
	}{
		{"version", []string{"version"}, cli.ExitSuccess},
		{"help", []string{"help"}, cli.ExitSuccess},
		{"config show", []string{"config", "show"}, cli.ExitSuccess},
		{"unknown command", []string{"bogus"}, cli.ExitUsageError},
		{"missing flag value", []string{"--model"}, cli.ExitUsageError},
		{"chat without credential", []string{"chat", "--name", "ada"}, cli.ExitConfigError},
		{"chat with empty model", []string{"chat", "--model=", "--name", "ada"}, cli.ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(tt.argv))
		})
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPaletteDefined(t *testing.T) {
	colors := []struct {
		name  string
		color lipgloss.AdaptiveColor
	}{
		{"Purple", Purple},
		{"Cyan", Cyan},
		{"Emerald", Emerald},
		{"Rose", Rose},
		{"Amber", Amber},
		{"TextSecondary", TextSecondary},
	}

	for _, c := range colors {
		if c.color.Light == "" || c.color.Dark == "" {
			t.Errorf("%s should define both light and dark variants", c.name)
		}
	}
}

func TestRoleColor(t *testing.T) {
	tests := []struct {
		role string
		want lipgloss.AdaptiveColor
	}{
		{"user", Cyan},
		{"model", Purple},
		{"system", TextSecondary},
		{"", TextSecondary},
	}

	for _, tc := range tests {
		if got := RoleColor(tc.role); got != tc.want {
			t.Errorf("RoleColor(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

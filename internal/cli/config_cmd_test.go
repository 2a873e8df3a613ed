// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/gemchat/internal/config"
)

func TestHandleConfig_ShowDefaults(t *testing.T) {
	t.Setenv("GEMCHAT_HOME", t.TempDir())
	t.Setenv("GEMCHAT_MODEL", "")

	var buf bytes.Buffer
	require.NoError(t, HandleConfig(&buf, Args{Subcommand: "show"}))
	assert.Contains(t, buf.String(), "# source: defaults")
	assert.Contains(t, buf.String(), `model = "gemini-1.5-flash"`)
}

func TestHandleConfig_InitThenShow(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GEMCHAT_HOME", home)
	t.Setenv("GEMCHAT_MODEL", "")

	var buf bytes.Buffer
	require.NoError(t, HandleConfig(&buf, Args{Subcommand: "init"}))

	path := filepath.Join(home, "config.toml")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	buf.Reset()
	require.NoError(t, HandleConfig(&buf, Args{Subcommand: "show"}))
	assert.Contains(t, buf.String(), "# source: "+path)

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestHandleConfig_InitRefusesOverwrite(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GEMCHAT_HOME", home)

	path := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = \"mine\"\n"), 0600))

	err := HandleConfig(&bytes.Buffer{}, Args{Subcommand: "init"})
	assert.ErrorIs(t, err, ErrConfigExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "model = \"mine\"\n", string(data))
}

func TestHandleConfig_ShowInvalidFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GEMCHAT_HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"),
		[]byte("[generation]\ntemperature = 5.0\n"), 0600))

	err := HandleConfig(&bytes.Buffer{}, Args{Subcommand: "show"})
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
}

func TestHandleConfig_UnknownSubcommand(t *testing.T) {
	err := HandleConfig(&bytes.Buffer{}, Args{Subcommand: "edit"})
	var argErr *ArgError
	assert.ErrorAs(t, err, &argErr)
}

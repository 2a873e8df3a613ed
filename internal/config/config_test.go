// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "gemini-1.5-flash", cfg.Model)
	assert.Equal(t, 1.0, cfg.Generation.Temperature)
	assert.Equal(t, 0.95, cfg.Generation.TopP)
	assert.Equal(t, 64, cfg.Generation.TopK)
	assert.Equal(t, 8192, cfg.Generation.MaxOutputTokens)
	assert.Equal(t, "text/plain", cfg.Generation.ResponseMIMEType)

	require.Len(t, cfg.Safety, 4)
	assert.Equal(t, SafetySetting{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"}, cfg.Safety[0])
	for _, s := range cfg.Safety[1:] {
		assert.Equal(t, "BLOCK_MEDIUM_AND_ABOVE", s.Threshold, s.Category)
	}

	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"empty model", func(c *Config) { c.Model = " " }, "model"},
		{"temperature high", func(c *Config) { c.Generation.Temperature = 2.5 }, "generation.temperature"},
		{"temperature negative", func(c *Config) { c.Generation.Temperature = -0.1 }, "generation.temperature"},
		{"top_p high", func(c *Config) { c.Generation.TopP = 1.1 }, "generation.top_p"},
		{"top_k negative", func(c *Config) { c.Generation.TopK = -1 }, "generation.top_k"},
		{"max tokens negative", func(c *Config) { c.Generation.MaxOutputTokens = -5 }, "generation.max_output_tokens"},
		{"unknown category", func(c *Config) { c.Safety[0].Category = "HARM_CATEGORY_RUDENESS" }, "safety[0].category"},
		{"unknown threshold", func(c *Config) { c.Safety[2].Threshold = "BLOCK_SOME" }, "safety[2].threshold"},
		{"missing category", func(c *Config) { c.Safety[1].Category = "" }, "safety[1].category"},
		{"missing threshold", func(c *Config) { c.Safety[3].Threshold = "" }, "safety[3].threshold"},
		{"negative rpm", func(c *Config) { c.Chat.RequestsPerMinute = -1 }, "chat.requests_per_minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	_, err := APIKey()
	assert.ErrorIs(t, err, ErrMissingCredential)

	t.Setenv(APIKeyEnv, "  secret  ")
	key, err := APIKey()
	require.NoError(t, err)
	assert.Equal(t, "secret", key)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("GEMCHAT_MODEL", "gemini-2.0-flash")
	t.Setenv("GEMCHAT_SYSTEM_INSTRUCTION", "be brief")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, "be brief", cfg.SystemInstruction)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GEMCHAT_HOME", t.TempDir())
	t.Setenv("GEMCHAT_MODEL", "")
	t.Setenv("GEMCHAT_SYSTEM_INSTRUCTION", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("GEMCHAT_MODEL", "")
	t.Setenv("GEMCHAT_SYSTEM_INSTRUCTION", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
model = "gemini-1.5-pro"

[generation]
temperature = 0.4

[[safety]]
category = "HARM_CATEGORY_HATE_SPEECH"
threshold = "BLOCK_ONLY_HIGH"

[chat]
user_name = "ada"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-1.5-pro", cfg.Model)
	assert.Equal(t, 0.4, cfg.Generation.Temperature)
	assert.Equal(t, 64, cfg.Generation.TopK)
	assert.Equal(t, []SafetySetting{{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_ONLY_HIGH"}}, cfg.Safety)
	assert.Equal(t, "ada", cfg.Chat.UserName)
	assert.True(t, cfg.Chat.Markdown)
}

func TestLoadFromPath_Rejects(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("modle = \"typo\"\n"), 0600))
	_, err := LoadFromPath(unknown)
	assert.ErrorContains(t, err, "unknown config keys: modle")

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[generation]\ntop_p = 3.0\n"), 0600))
	_, err = LoadFromPath(invalid)
	var verrs ValidateErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestLoadFromPath_SafetyEntriesDoNotInheritDefaults(t *testing.T) {
	t.Setenv("GEMCHAT_MODEL", "")

	// The first default entry is harassment/BLOCK_NONE. A file entry that
	// omits its threshold must not pick that up.
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[[safety]]\ncategory = \"HARM_CATEGORY_HATE_SPEECH\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := LoadFromPath(path)
	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs), "got %v", err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "safety[0].threshold", verrs[0].Field)
	assert.Equal(t, "must be set", verrs[0].Message)
}

func TestLoadFromPath_SafetyListReplacedWhole(t *testing.T) {
	t.Setenv("GEMCHAT_MODEL", "")
	dir := t.TempDir()

	// Two file entries replace all four defaults.
	two := filepath.Join(dir, "two.toml")
	content := `
[[safety]]
category = "HARM_CATEGORY_HARASSMENT"
threshold = "BLOCK_LOW_AND_ABOVE"

[[safety]]
category = "HARM_CATEGORY_DANGEROUS_CONTENT"
threshold = "BLOCK_ONLY_HIGH"
`
	require.NoError(t, os.WriteFile(two, []byte(content), 0600))
	cfg, err := LoadFromPath(two)
	require.NoError(t, err)
	assert.Equal(t, []SafetySetting{
		{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_LOW_AND_ABOVE"},
		{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_ONLY_HIGH"},
	}, cfg.Safety)

	// A file without [[safety]] keeps the defaults.
	none := filepath.Join(dir, "none.toml")
	require.NoError(t, os.WriteFile(none, []byte("model = \"gemini-pro\"\n"), 0600))
	cfg, err = LoadFromPath(none)
	require.NoError(t, err)
	assert.Equal(t, Default().Safety, cfg.Safety)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GEMCHAT_HOME", dir)
	t.Setenv("GEMCHAT_MODEL", "")
	t.Setenv("GEMCHAT_SYSTEM_INSTRUCTION", "")

	cfg := Default()
	cfg.SystemInstruction = "answer in French"
	cfg.Chat.RequestsPerMinute = 0
	require.NoError(t, Save(cfg))

	path, err := ConfigPathTOML()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm()&0077 != 0 && os.PathSeparator == '/' {
		t.Errorf("config file permissions too open: %v", info.Mode().Perm())
	}

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestString(t *testing.T) {
	out := Default().String()
	assert.Contains(t, out, `model = "gemini-1.5-flash"`)
	assert.Contains(t, out, "[[safety]]")
	assert.NotContains(t, out, APIKeyEnv)
}

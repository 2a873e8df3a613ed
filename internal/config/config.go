// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/gemchat/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete gemchat configuration.
type Config struct {
	// Model is the Gemini model name.
	Model string `toml:"model" json:"model"`

	// SystemInstruction is an optional system-level instruction sent with
	// every request. Empty means none.
	SystemInstruction string `toml:"system_instruction" json:"system_instruction"`

	// Generation holds the sampling parameters.
	Generation GenerationConfig `toml:"generation" json:"generation"`

	// Safety lists (harm category, block threshold) pairs.
	Safety []SafetySetting `toml:"safety" json:"safety"`

	// Chat configures the interactive session.
	Chat ChatConfig `toml:"chat" json:"chat"`
}

// GenerationConfig contains model sampling parameters.
type GenerationConfig struct {
	Temperature      float64 `toml:"temperature" json:"temperature"`
	TopP             float64 `toml:"top_p" json:"top_p"`
	TopK             int     `toml:"top_k" json:"top_k"`
	MaxOutputTokens  int     `toml:"max_output_tokens" json:"max_output_tokens"`
	ResponseMIMEType string  `toml:"response_mime_type" json:"response_mime_type"`
}

// SafetySetting is one harm category and its block threshold, using the
// API's enum spelling (e.g. "HARM_CATEGORY_HARASSMENT", "BLOCK_NONE").
type SafetySetting struct {
	Category  string `toml:"category" json:"category"`
	Threshold string `toml:"threshold" json:"threshold"`
}

// ChatConfig contains interactive session settings.
type ChatConfig struct {
	// RequestsPerMinute paces model requests client-side. 0 disables pacing.
	RequestsPerMinute int `toml:"requests_per_minute" json:"requests_per_minute"`
	// InputHistory persists line-editor history between runs.
	InputHistory bool `toml:"input_history" json:"input_history"`
	// Markdown renders replies as markdown when stdout is a terminal.
	Markdown bool `toml:"markdown" json:"markdown"`
	// UserName is offered as the default at the name prompt.
	UserName string `toml:"user_name" json:"user_name"`
}

// =============================================================================
// CREDENTIAL
// =============================================================================

// APIKeyEnv is the environment variable holding the Gemini API key.
const APIKeyEnv = "GEMINI_API_KEY"

// ErrMissingCredential is returned when the API key is not set.
var ErrMissingCredential = errors.New(APIKeyEnv + " is not set")

// APIKey reads the credential from the environment.
func APIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv(APIKeyEnv))
	if key == "" {
		return "", ErrMissingCredential
	}
	return key, nil
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Harm categories accepted in [[safety]] entries.
var KnownCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
	"HARM_CATEGORY_CIVIC_INTEGRITY",
}

// Block thresholds accepted in [[safety]] entries.
var KnownThresholds = []string{
	"BLOCK_NONE",
	"BLOCK_LOW_AND_ABOVE",
	"BLOCK_MEDIUM_AND_ABOVE",
	"BLOCK_ONLY_HIGH",
	"OFF",
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Model: "gemini-1.5-flash",

		Generation: GenerationConfig{
			Temperature:      1,
			TopP:             0.95,
			TopK:             64,
			MaxOutputTokens:  8192,
			ResponseMIMEType: "text/plain",
		},

		Safety: []SafetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		},

		Chat: ChatConfig{
			RequestsPerMinute: 15,
			InputHistory:      true,
			Markdown:          true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the gemchat configuration directory path.
// GEMCHAT_HOME overrides the default ~/.gemchat.
func ConfigDir() (string, error) {
	if dir := os.Getenv("GEMCHAT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".gemchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default file, falling back to defaults
// when it does not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, cfg.Validate()
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, cfg.Validate()
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file with full
// validation. Keys missing from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Scalar keys missing from the file
// keep their current values. A [[safety]] list in the file replaces the
// current list as a whole; its entries never inherit fields from it.
func LoadTOML(cfg *Config, path string) error {
	current := cfg.Safety
	cfg.Safety = nil

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		cfg.Safety = current
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if !md.IsDefined("safety") {
		cfg.Safety = current
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - GEMCHAT_MODEL: overrides model
//   - GEMCHAT_SYSTEM_INSTRUCTION: overrides system_instruction
func (c *Config) ApplyEnvOverrides() {
	if model := os.Getenv("GEMCHAT_MODEL"); model != "" {
		c.Model = model
	}
	if instr := os.Getenv("GEMCHAT_SYSTEM_INSTRUCTION"); instr != "" {
		c.SystemInstruction = instr
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration atomically with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# gemchat configuration file\n")
	buf.WriteString("# The API key is read from " + APIKeyEnv + " and never stored here.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Model) == "" {
		errs = append(errs, ValidationError{Field: "model", Message: "must not be empty"})
	}

	g := c.Generation
	if g.Temperature < 0 || g.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "generation.temperature",
			Message: fmt.Sprintf("%v out of range 0..2", g.Temperature),
		})
	}
	if g.TopP < 0 || g.TopP > 1 {
		errs = append(errs, ValidationError{
			Field:   "generation.top_p",
			Message: fmt.Sprintf("%v out of range 0..1", g.TopP),
		})
	}
	if g.TopK < 0 {
		errs = append(errs, ValidationError{Field: "generation.top_k", Message: "must not be negative"})
	}
	if g.MaxOutputTokens < 0 {
		errs = append(errs, ValidationError{Field: "generation.max_output_tokens", Message: "must not be negative"})
	}

	for i, s := range c.Safety {
		if s.Category == "" {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("safety[%d].category", i), Message: "must be set"})
		} else if !contains(KnownCategories, s.Category) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("safety[%d].category", i),
				Message: fmt.Sprintf("unknown category %q", s.Category),
			})
		}
		if s.Threshold == "" {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("safety[%d].threshold", i), Message: "must be set"})
		} else if !contains(KnownThresholds, s.Threshold) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("safety[%d].threshold", i),
				Message: fmt.Sprintf("unknown threshold %q", s.Threshold),
			})
		}
	}

	if c.Chat.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{Field: "chat.requests_per_minute", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

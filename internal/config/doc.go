// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for gemchat.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - GenerationConfig: Sampling parameters sent with every request
//   - SafetySetting: One harm category and its block threshold
//   - ChatConfig: Interactive session settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (GEMCHAT_*)
//   - ~/.gemchat/config.toml
//   - Built-in defaults
//
// The API key is never stored in the file; it is read from GEMINI_API_KEY.
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	key, err := config.APIKey()
package config

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"google.golang.org/genai"

	"github.com/jeranaias/gemchat/internal/config"
	"github.com/jeranaias/gemchat/internal/session"
)

// GenerateConfig builds the per-request settings from the configuration.
func GenerateConfig(cfg *config.Config) *genai.GenerateContentConfig {
	g := cfg.Generation
	out := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(g.Temperature)),
		TopP:             genai.Ptr(float32(g.TopP)),
		TopK:             genai.Ptr(float32(g.TopK)),
		MaxOutputTokens:  int32(g.MaxOutputTokens),
		ResponseMIMEType: g.ResponseMIMEType,
	}

	for _, s := range cfg.Safety {
		out.SafetySettings = append(out.SafetySettings, &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		})
	}

	if cfg.SystemInstruction != "" {
		out.SystemInstruction = genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser)
	}
	return out
}

// buildContents converts the recorded turns plus the pending prompt into
// request contents. The history itself is not modified.
func buildContents(turns []session.Turn, prompt string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns)+1)
	for _, t := range turns {
		contents = append(contents, genai.NewContentFromText(t.Content, genai.Role(t.Role)))
	}
	return append(contents, genai.NewContentFromText(prompt, genai.RoleUser))
}

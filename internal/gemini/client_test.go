// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/jeranaias/gemchat/internal/config"
	"github.com/jeranaias/gemchat/internal/session"
)

// fakeGenerator records requests and replays a canned response.
type fakeGenerator struct {
	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig

	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = cfg
	return f.resp, f.err
}

func textResponse(text string, tokens int32) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(text, genai.RoleModel)},
		},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{TotalTokenCount: tokens},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Chat.RequestsPerMinute = 0
	return cfg
}

func TestGenerateConfig(t *testing.T) {
	cfg := config.Default()
	cfg.SystemInstruction = "be terse"

	out := GenerateConfig(cfg)

	require.NotNil(t, out.Temperature)
	assert.Equal(t, float32(1), *out.Temperature)
	assert.Equal(t, float32(0.95), *out.TopP)
	assert.Equal(t, float32(64), *out.TopK)
	assert.Equal(t, int32(8192), out.MaxOutputTokens)
	assert.Equal(t, "text/plain", out.ResponseMIMEType)

	require.Len(t, out.SafetySettings, 4)
	assert.Equal(t, genai.HarmCategoryHarassment, out.SafetySettings[0].Category)
	assert.Equal(t, genai.HarmBlockThresholdBlockNone, out.SafetySettings[0].Threshold)
	assert.Equal(t, genai.HarmBlockThresholdBlockMediumAndAbove, out.SafetySettings[3].Threshold)

	require.NotNil(t, out.SystemInstruction)
	require.Len(t, out.SystemInstruction.Parts, 1)
	assert.Equal(t, "be terse", out.SystemInstruction.Parts[0].Text)
}

func TestGenerateConfig_NoSystemInstruction(t *testing.T) {
	assert.Nil(t, GenerateConfig(config.Default()).SystemInstruction)
}

func TestSession_SendBuildsContentsFromSharedHistory(t *testing.T) {
	history := session.NewHistory()
	history.AppendExchange("hi", "hello")

	gen := &fakeGenerator{resp: textResponse("4", 12)}
	chat := newModel(gen, testConfig()).StartSession(history)

	reply, err := chat.Send(context.Background(), "2+2?")
	require.NoError(t, err)
	assert.Equal(t, "4", reply)

	assert.Equal(t, "gemini-1.5-flash", gen.model)
	require.Len(t, gen.contents, 3)
	assert.Equal(t, "user", gen.contents[0].Role)
	assert.Equal(t, "hi", gen.contents[0].Parts[0].Text)
	assert.Equal(t, "model", gen.contents[1].Role)
	assert.Equal(t, "2+2?", gen.contents[2].Parts[0].Text)

	// Send leaves recording to the caller.
	assert.Equal(t, 2, history.Len())
	assert.Equal(t, Usage{Requests: 1, TotalTokens: 12}, chat.Usage())
}

func TestSession_ClearedHistoryIsVisible(t *testing.T) {
	history := session.NewHistory()
	history.AppendExchange("a", "b")

	gen := &fakeGenerator{resp: textResponse("ok", 1)}
	chat := newModel(gen, testConfig()).StartSession(history)

	history.Clear()
	_, err := chat.Send(context.Background(), "fresh")
	require.NoError(t, err)
	require.Len(t, gen.contents, 1)
}

func TestSession_TruncateHistory(t *testing.T) {
	history := session.NewHistory()
	gen := &fakeGenerator{resp: textResponse("ok", 5)}
	chat := newModel(gen, testConfig()).StartSession(history)

	_, err := chat.Send(context.Background(), "x")
	require.NoError(t, err)
	history.AppendExchange("x", "ok")

	chat.TruncateHistory()
	assert.Equal(t, 0, history.Len())
	assert.Equal(t, Usage{}, chat.Usage())

	// Idempotent on an empty history.
	chat.TruncateHistory()
	assert.Equal(t, 0, history.Len())
}

func TestSession_SendErrors(t *testing.T) {
	tests := []struct {
		name       string
		gen        *fakeGenerator
		wantStatus string
		wantIs     error
	}{
		{
			name:       "api error keeps status",
			gen:        &fakeGenerator{err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"}},
			wantStatus: "RESOURCE_EXHAUSTED",
		},
		{
			name:   "transport error",
			gen:    &fakeGenerator{err: errors.New("connection reset")},
			wantIs: nil,
		},
		{
			name: "prompt blocked",
			gen: &fakeGenerator{resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			}},
			wantStatus: string(genai.BlockedReasonSafety),
			wantIs:     ErrBlocked,
		},
		{
			name: "reply withheld",
			gen: &fakeGenerator{resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}},
			wantIs: ErrBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := session.NewHistory()
			chat := newModel(tt.gen, testConfig()).StartSession(history)

			reply, err := chat.Send(context.Background(), "hello")
			require.Error(t, err)
			assert.Empty(t, reply)

			var svcErr *ServiceError
			require.True(t, errors.As(err, &svcErr))
			if tt.wantStatus != "" {
				assert.Equal(t, tt.wantStatus, svcErr.Status)
			}
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.Equal(t, 0, history.Len())
		})
	}
}

func TestSession_RateLimiterHonoursContext(t *testing.T) {
	cfg := config.Default()
	cfg.Chat.RequestsPerMinute = 1

	gen := &fakeGenerator{resp: textResponse("ok", 1)}
	chat := newModel(gen, cfg).StartSession(session.NewHistory())

	_, err := chat.Send(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = chat.Send(ctx, "second")

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, 1, gen.calls)
}

func TestSession_NoClient(t *testing.T) {
	var s Session
	_, err := s.Send(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoClient)
}

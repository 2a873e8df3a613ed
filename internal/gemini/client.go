// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/jeranaias/gemchat/internal/config"
	"github.com/jeranaias/gemchat/internal/session"
)

// BackendName identifies the API backend requests go to.
const BackendName = "gemini-api"

// generator is the subset of the genai Models service used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// =============================================================================
// MODEL
// =============================================================================

// Model is a configured handle to one Gemini model.
type Model struct {
	name    string
	gen     generator
	config  *genai.GenerateContentConfig
	limiter *rate.Limiter
}

// NewModel creates a client for the Gemini API backend and binds it to the
// configured model and generation settings.
func NewModel(ctx context.Context, apiKey string, cfg *config.Config) (*Model, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newModel(client.Models, cfg), nil
}

func newModel(gen generator, cfg *config.Config) *Model {
	m := &Model{
		name:   cfg.Model,
		gen:    gen,
		config: GenerateConfig(cfg),
	}
	if rpm := cfg.Chat.RequestsPerMinute; rpm > 0 {
		m.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
	}
	return m
}

// Name returns the model name requests are sent to.
func (m *Model) Name() string {
	return m.name
}

// Backend returns the name of the API backend.
func (m *Model) Backend() string {
	return BackendName
}

// StartSession returns a session bound to the given history. The session
// keeps no copy of its own.
func (m *Model) StartSession(history *session.History) *Session {
	return &Session{model: m, history: history}
}

// =============================================================================
// SESSION
// =============================================================================

// Usage counts requests made through a session since its last truncation.
type Usage struct {
	Requests    int `json:"requests"`
	TotalTokens int `json:"total_tokens"`
}

// Session is a conversation with the model over a shared history.
type Session struct {
	model   *Model
	history *session.History

	mu    sync.Mutex
	usage Usage
}

// Send sends text with the current history as context and returns the
// reply. The history is not modified; recording the exchange is left to
// the caller so that a failed request leaves it unchanged.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	m := s.model
	if m == nil || m.gen == nil {
		return "", ErrNoClient
	}

	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return "", &ServiceError{Status: "rate limit wait", Err: err}
		}
	}

	contents := buildContents(s.history.Turns(), text)

	start := time.Now()
	resp, err := m.gen.GenerateContent(ctx, m.name, contents, m.config)
	if err != nil {
		return "", wrapServiceError(err)
	}
	log.Printf("%s replied in %v", m.name, time.Since(start).Round(time.Millisecond))

	s.mu.Lock()
	s.usage.Requests++
	if resp.UsageMetadata != nil {
		s.usage.TotalTokens += int(resp.UsageMetadata.TotalTokenCount)
	}
	s.mu.Unlock()

	if len(resp.Candidates) == 0 {
		reason := "no candidates"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			reason = string(resp.PromptFeedback.BlockReason)
		}
		return "", &ServiceError{Status: reason, Err: ErrBlocked}
	}

	reply := resp.Text()
	if reply == "" && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", &ServiceError{Status: string(genai.FinishReasonSafety), Err: ErrBlocked}
	}
	return reply, nil
}

// TruncateHistory clears the shared history and resets the usage counters.
// Calling it on an empty history is a no-op.
func (s *Session) TruncateHistory() {
	s.history.Clear()
	s.mu.Lock()
	s.usage = Usage{}
	s.mu.Unlock()
}

// Usage returns the counters accumulated since the last truncation.
func (s *Session) Usage() Usage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini connects gemchat to the Gemini generative-language API.
//
// A Model holds the configured client and request settings. Each Session
// is bound to a shared conversation history and rebuilds the request
// contents from it on every send, so clearing the history elsewhere is
// immediately visible to the next request.
//
// # Usage
//
//	model, err := gemini.NewModel(ctx, apiKey, cfg)
//	if err != nil {
//	    return err
//	}
//	chat := model.StartSession(history)
//	reply, err := chat.Send(ctx, "hello")
package gemini

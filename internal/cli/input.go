// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// input.go - Line editing and input history for the chat prompt.
package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/gemchat/internal/config"
)

// ErrInterrupted is returned by a LineReader when the user presses Ctrl+C
// at the prompt.
var ErrInterrupted = errors.New("interrupted")

// LineReader reads one line of user input per call. It returns io.EOF at
// end of input and ErrInterrupted on Ctrl+C.
type LineReader interface {
	Prompt(prompt string) (string, error)
	Close()
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// historyFileName is the readline history file inside the config directory.
// It holds typed input lines, not the conversation.
const historyFileName = "chat_history"

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI. When persist is false nothing is read from
// or written to disk.
func NewChatCLI(persist bool) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	cli := &ChatCLI{line: line}
	if persist {
		configDir, err := config.ConfigDir()
		if err != nil {
			configDir = os.TempDir()
		}
		cli.historyFile = filepath.Join(configDir, historyFileName)
		cli.LoadHistory()
	}

	return cli
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if c.historyFile == "" {
		return
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line of input with the given prompt. Non-empty input is
// added to the history.
func (c *ChatCLI) Prompt(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrInterrupted
		}
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}

	return input, nil
}

// SaveHistory persists input history to file with secure permissions.
func (c *ChatCLI) SaveHistory() {
	if c.historyFile == "" {
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		return
	}

	// 0600 - owner read/write only
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

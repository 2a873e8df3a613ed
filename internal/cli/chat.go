// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - The interactive chat session.
//
// The loop reads a line, routes it by the command prefix, and either
// dispatches a slash-command or sends the line to the model. Errors from
// either path are reported and the loop continues.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jeranaias/gemchat/internal/commands"
	"github.com/jeranaias/gemchat/internal/config"
	"github.com/jeranaias/gemchat/internal/gemini"
	"github.com/jeranaias/gemchat/internal/jsexec"
	"github.com/jeranaias/gemchat/internal/objects"
	"github.com/jeranaias/gemchat/internal/session"
	"github.com/jeranaias/gemchat/internal/shell"
	"github.com/jeranaias/gemchat/internal/util"
)

const (
	// modelLabel prefixes every reply
	modelLabel = "Gemini:"

	// namePrompt asks for the user's name before the loop starts
	namePrompt = "Enter your name: "

	// summaryPromptWidth caps the last prompt shown in the exit summary
	summaryPromptWidth = 48
)

// ErrCancelled is reported when Ctrl+C interrupts a model request, a
// shell command or an /exec evaluation.
var ErrCancelled = errors.New("cancelled")

// ChatModel is the model session the loop talks to.
type ChatModel interface {
	Send(ctx context.Context, text string) (string, error)
}

// Dispatcher runs slash-commands.
type Dispatcher interface {
	Dispatch(ctx context.Context, line string) error
}

// =============================================================================
// SESSION LOOP
// =============================================================================

// Loop is one interactive chat session.
type Loop struct {
	In  LineReader
	Out io.Writer
	Err io.Writer

	Model      ChatModel
	Dispatcher Dispatcher

	// History is shared with the model session.
	History *session.History

	// Info is updated with the name the user enters.
	Info *session.Info

	// Usage feeds the exit summary. Optional.
	Usage UsageReporter

	// Render formats replies. Nil prints them as-is.
	Render Renderer

	// AskName prompts for the user's name before the greeting.
	AskName bool

	// DefaultName replaces an empty name. Empty means session.DefaultUserName.
	DefaultName string

	// Quiet skips the exit summary.
	Quiet bool
}

// Run reads input until /exit, exit, quit, EOF or Ctrl+C.
func (l *Loop) Run(ctx context.Context) error {
	if l.AskName {
		name, err := l.In.Prompt(namePrompt)
		if err != nil {
			if isEndOfInput(err) {
				fmt.Fprintln(l.Out)
				return nil
			}
			return err
		}
		l.Info.UserName = l.resolveName(name)
	}

	l.printGreeting()

	prompt := promptStyle.Render(l.Info.UserName+":") + " "
	for {
		input, err := l.In.Prompt(prompt)
		if err != nil {
			if isEndOfInput(err) {
				fmt.Fprintln(l.Out)
				l.printExitSummary()
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if commands.IsCommand(input) {
			err := l.interruptible(ctx, func(opCtx context.Context) error {
				return l.Dispatcher.Dispatch(opCtx, input)
			})
			if errors.Is(err, commands.ErrExit) {
				l.printExitSummary()
				return nil
			}
			l.report(err)
			continue
		}

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			l.printExitSummary()
			return nil
		}

		l.report(l.interruptible(ctx, func(opCtx context.Context) error {
			return l.chat(opCtx, input)
		}))
	}
}

// interruptible runs op with a context that Ctrl+C cancels. SIGINT is
// caught for as long as op runs, so it ends only that operation and never
// the session.
func (l *Loop) interruptible(ctx context.Context, op func(context.Context) error) error {
	opCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	err := op(opCtx)
	if err != nil && opCtx.Err() != nil && ctx.Err() == nil {
		return ErrCancelled
	}
	return err
}

// report shows an operation error and lets the loop continue.
func (l *Loop) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, ErrCancelled):
		fmt.Fprintln(l.Err, warningStyle.Render("[Cancelled]"))
	default:
		DisplayError(l.Err, err)
	}
}

// chat sends one prompt and records the exchange only once the reply has
// been printed.
func (l *Loop) chat(ctx context.Context, input string) error {
	reply, err := l.Model.Send(ctx, input)
	if err != nil {
		return err
	}

	rendered := reply
	if l.Render != nil {
		rendered = l.Render(reply)
	}
	fmt.Fprintf(l.Out, "%s %s\n", modelStyle.Render(modelLabel), rendered)

	l.History.AppendExchange(input, reply)
	return nil
}

func (l *Loop) resolveName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if l.DefaultName != "" {
		return l.DefaultName
	}
	return session.DefaultUserName
}

func (l *Loop) printGreeting() {
	fmt.Fprintf(l.Out, "%s Hello %s, how can I help you? (Type '%s' to see how to interact with me. Type '%s' to exit the chat session.)\n",
		modelStyle.Render(modelLabel),
		l.Info.UserName,
		commandStyle.Render("/info"),
		commandStyle.Render("/exit"))
}

// printExitSummary prints the session summary on exit.
func (l *Loop) printExitSummary() {
	if l.Quiet {
		return
	}

	turns := l.History.Turns()
	if len(turns) == 0 {
		fmt.Fprintln(l.Out, infoStyle.Render("Goodbye!"))
		return
	}

	fmt.Fprintln(l.Out)
	fmt.Fprintln(l.Out, summaryHeaderStyle.Render("Session Summary"))
	fmt.Fprintln(l.Out, infoStyle.Render(strings.Repeat("─", 15)))

	fmt.Fprintf(l.Out, "  %s %d\n", infoStyle.Render("Turns:"), len(turns))
	if l.Usage != nil {
		u := l.Usage.Usage()
		fmt.Fprintf(l.Out, "  %s %d\n", infoStyle.Render("Requests:"), u.Requests)
		fmt.Fprintf(l.Out, "  %s %d\n", infoStyle.Render("Tokens:"), u.TotalTokens)
	}
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == session.RoleUser {
			fmt.Fprintf(l.Out, "  %s %s\n", infoStyle.Render("Last prompt:"),
				util.TruncateWidth(util.OneLine(turns[i].Content), summaryPromptWidth))
			break
		}
	}
	fmt.Fprintf(l.Out, "  %s %s\n", infoStyle.Render("Duration:"), l.Info.Uptime())

	fmt.Fprintln(l.Out)
	fmt.Fprintln(l.Out, infoStyle.Render("Goodbye!"))
}

func isEndOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupted)
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChatCommand loads the configuration, connects to the model and runs
// an interactive session on the process's terminal.
func HandleChatCommand(ctx context.Context, args Args) error {
	cfg, err := loadChatConfig(args)
	if err != nil {
		return err
	}

	apiKey, err := config.APIKey()
	if err != nil {
		return err
	}

	model, err := gemini.NewModel(ctx, apiKey, cfg)
	if err != nil {
		return err
	}

	history := session.NewHistory()
	chatSession := model.StartSession(history)
	info := session.NewInfo(args.Name)
	ns := jsexec.New(os.Stdout)

	registry := objects.NewRegistry()
	env := &commands.Env{
		Out:     os.Stdout,
		Objects: registry,
		Screen:  NewScreen(os.Stdout),
		Eval:    ns,
	}
	catalog := commands.NewCatalog(env)
	PopulateRegistry(registry, RegistrySources{
		Config:    cfg,
		History:   history,
		Info:      &info,
		Model:     model,
		Usage:     chatSession,
		Namespace: ns,
		Catalog:   catalog,
	})

	input := NewChatCLI(cfg.Chat.InputHistory)
	defer input.Close()

	loop := &Loop{
		In:          input,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Model:       chatSession,
		Dispatcher:  commands.NewDispatcher(catalog, shell.NewRunner(), chatSession),
		History:     history,
		Info:        &info,
		Usage:       chatSession,
		Render:      chooseRenderer(cfg.Chat.Markdown),
		AskName:     args.Name == "",
		DefaultName: cfg.Chat.UserName,
		Quiet:       args.Quiet,
	}
	return loop.Run(ctx)
}

// loadChatConfig loads the configuration and applies the command-line
// overrides. The result is validated again, so an override can never
// produce a config the file itself would be rejected for.
func loadChatConfig(args Args) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if args.ModelSet {
		cfg.Model = args.Model
	}
	if args.NoMarkdown {
		cfg.Chat.Markdown = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid option: %w", err)
	}
	return cfg, nil
}

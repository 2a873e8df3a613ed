// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types, exit codes and error display for gemchat.
//
// Commands return errors and let the caller decide how to display them.
// Errors inside the chat session are reported and the session continues;
// only startup errors reach GetExitCode.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/gemchat/internal/config"
	"github.com/jeranaias/gemchat/internal/gemini"
)

// =============================================================================
// EXIT CODES - Specific codes for different error categories
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file, settings or credential error
	ExitConfigError = 3
	// ExitAuthError indicates the service rejected the credential
	ExitAuthError = 4
	// ExitNetworkError indicates the service could not be reached
	ExitNetworkError = 5
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES FOR STRUCTURED ERROR HANDLING
// =============================================================================

// ArgError reports a bad command-line argument.
type ArgError struct {
	Arg    string
	Reason string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("%s: %s", e.Arg, e.Reason)
}

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "config")
	Action  string // Action being performed (e.g., "init")
	Err     error  // Underlying error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Command, e.Action, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError writes an error in the standard "[Error] message" form.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %v\n", ErrorStyle.Render("[Error]"), err)
}

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var argErr *ArgError
	if errors.As(err, &argErr) {
		return ExitUsageError
	}

	var verrs config.ValidateErrors
	if errors.Is(err, config.ErrMissingCredential) || errors.As(err, &verrs) {
		return ExitConfigError
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ExitTimeoutError
	}

	var svcErr *gemini.ServiceError
	if errors.As(err, &svcErr) {
		switch svcErr.Code {
		case 401, 403:
			return ExitAuthError
		case 0:
			return ExitNetworkError
		}
	}

	return ExitGeneralError
}

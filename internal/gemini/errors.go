// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var (
	// ErrBlocked indicates the prompt or the reply was withheld by the
	// service's safety filters.
	ErrBlocked = errors.New("response blocked")

	// ErrNoClient indicates the model was used before it was configured.
	ErrNoClient = errors.New("gemini client not configured")
)

// ServiceError wraps a failure reported by the language model service.
type ServiceError struct {
	Code   int    // HTTP status code, 0 when unknown
	Status string // service status or block reason
	Err    error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	switch {
	case e.Code != 0 && e.Status != "":
		return fmt.Sprintf("gemini: %s (HTTP %d): %v", e.Status, e.Code, e.Err)
	case e.Status != "":
		return fmt.Sprintf("gemini: %s: %v", e.Status, e.Err)
	default:
		return fmt.Sprintf("gemini: %v", e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// wrapServiceError converts a client error into a ServiceError, keeping
// the status of an API error when there is one.
func wrapServiceError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ServiceError{
			Code:   apiErr.Code,
			Status: apiErr.Status,
			Err:    errors.New(apiErr.Message),
		}
	}
	return &ServiceError{Err: err}
}

// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aap

import "fmt"

// PermissionDeniedMessage is surfaced verbatim on HTTP 403, never retried.
const PermissionDeniedMessage = "You do not have permission to perform this action."

// TransportError wraps a network level failure. Retryable in principle, but
// retry policy belongs to callers, not this layer.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// PermissionError maps HTTP 403.
type PermissionError struct {
	URL string
}

func (e *PermissionError) Error() string {
	return PermissionDeniedMessage
}

// ValidationError maps a non-2xx response with a structured JSON body,
// carrying the joined message strings from the body.
type ValidationError struct {
	URL        string
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RequestFailedError is the catch-all for non-2xx responses without a usable
// body.
type RequestFailedError struct {
	URL        string
	StatusCode int
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}

// MaxPagesExceededError signals the pagination guard tripped before the
// remote service returned a null next cursor.
type MaxPagesExceededError struct {
	Path     string
	MaxPages int
}

func (e *MaxPagesExceededError) Error() string {
	return fmt.Sprintf("pagination of %s exceeded %d pages", e.Path, e.MaxPages)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package errors defines the error taxonomy shared by the service:
// validation, not-found, upstream-fetch, and store-failure kinds, plus
// the mapping to HTTP responses. Clients receive a stable machine code
// and message; the underlying error text stays in the logs.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds. Wrap with %w to classify an error without losing it.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream failure")
	ErrStore        = errors.New("store failure")
)

// Upstream classifies err as an upstream-fetch failure.
func Upstream(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}

// Store classifies err as a store failure.
func Store(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStore, err)
}

// AppError carries an HTTP status together with a stable machine code
// and client-safe message. Err holds the internal cause for logging.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError.
func New(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Map translates any error into an AppError with an appropriate HTTP
// status and stable code. Unclassified errors map to internal_error so
// that raw failure text is never surfaced to clients.
func Map(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return New(http.StatusBadRequest, "invalid_input", "invalid request", err)
	case errors.Is(err, ErrNotFound):
		return New(http.StatusNotFound, "not_found", "resource not found", err)
	case errors.Is(err, ErrUpstream):
		return New(http.StatusInternalServerError, "upstream_failure", "upstream fetch failed", err)
	case errors.Is(err, ErrStore):
		return New(http.StatusInternalServerError, "store_failure", "storage operation failed", err)
	}

	return New(http.StatusInternalServerError, "internal_error", "internal server error", err)
}

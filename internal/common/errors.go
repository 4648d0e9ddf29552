// Package common defines shared constants and sentinel errors used across
// the TinyLink client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors raised before any network call.
	ErrValidation = errors.New("validation error")

	// Auth errors surfaced by higher layers.
	ErrUnauthorized = errors.New("unauthorized")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")
)

// Package common defines shared sentinel errors used across the PetCheck
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors.
	ErrorInvalidInput = errors.New("invalid input")

	// Configuration errors.
	ErrorUnknownBackend   = errors.New("unknown storage backend")
	ErrorUnknownTransport = errors.New("unknown lookup transport")
)

package models

import "errors"

// Error categories shared by repositories, the interview orchestrator and handlers.
// Wrap them with fmt.Errorf("...: %w", ErrX) and match with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

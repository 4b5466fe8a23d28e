// Package apperrors defines the error taxonomy shared by handlers and
// repositories: NotFound, InvalidOperation and Conflict map to 404, 400 and
// 409 at the HTTP boundary; any other repository error is treated as a
// persistence failure and surfaces as a 500.
package apperrors

import "errors"

var (
	// ErrNotFound signals a missing user, request or message.
	ErrNotFound = errors.New("not found")

	// ErrInvalidOperation signals a self-request or a wrong-state transition.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrConflict signals a duplicate request or an existing friendship.
	ErrConflict = errors.New("conflict")
)

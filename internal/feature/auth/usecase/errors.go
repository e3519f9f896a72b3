// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrValidation marks input that fails the registration rules (username
	// length, password policy). Handlers map it to a 400 with the full message.
	ErrValidation = errors.New("validation failed")

	// ErrUserNotFound is returned when a user cannot be found by lookup or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when attempting to register a user whose
	// username or email already exists (case-insensitive).
	ErrUserAlreadyExists = errors.New("username or email already exists")

	// ErrInvalidCredentials is returned on login failure. The same error is used
	// for an unknown user and for a wrong password to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidRefreshToken is returned when a refresh token is invalid or malformed.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

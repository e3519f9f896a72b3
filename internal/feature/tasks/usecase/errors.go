// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when no task matches the given id for the
	// calling user. A task owned by another user is indistinguishable from a
	// nonexistent one.
	ErrTaskNotFound = errors.New("task not found")

	// ErrValidation marks input that fails the task rules (title presence,
	// length limits, enum codes). Handlers map it to a 400 with the full message.
	ErrValidation = errors.New("validation failed")
)

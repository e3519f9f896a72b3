// Package entity defines the domain entities for the tasks feature.
package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a task.
// Stored as an integer code, presented as its name in JSON.
type Status int

const (
	StatusPending Status = iota + 1
	StatusInProgress
	StatusCompleted
)

// String returns the canonical name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "InProgress"
	case StatusCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// IsValid reports whether s is one of the defined status codes.
func (s Status) IsValid() bool {
	return s >= StatusPending && s <= StatusCompleted
}

// ParseStatus converts a status name to its code. Matching is case-insensitive.
func ParseStatus(v string) (Status, error) {
	switch strings.ToLower(v) {
	case "pending":
		return StatusPending, nil
	case "inprogress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return 0, fmt.Errorf("unknown status %q", v)
	}
}

// Priority represents the urgency of a task.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

// String returns the canonical name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// IsValid reports whether p is one of the defined priority codes.
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// ParsePriority converts a priority name to its code. Matching is case-insensitive.
func ParsePriority(v string) (Priority, error) {
	switch strings.ToLower(v) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return 0, fmt.Errorf("unknown priority %q", v)
	}
}

// Task represents a single task owned by a user.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	DueDate     *time.Time // nil when no due date is set
	Status      Status
	Priority    Priority
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      uuid.UUID
}

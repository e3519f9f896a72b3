package dto

import (
	"time"

	"github.com/google/uuid"

	"task_backend/internal/feature/tasks/domain/entity"
)

// TaskResponse is the JSON representation of a task.
// Status and Priority are rendered as their enum names.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	UserID      uuid.UUID  `json:"userId"`
}

// PagedTasksResponse is the JSON representation of one page of a task listing.
type PagedTasksResponse struct {
	Items           []TaskResponse `json:"items"`
	TotalCount      int64          `json:"totalCount"`
	PageNumber      int            `json:"pageNumber"`
	PageSize        int            `json:"pageSize"`
	TotalPages      int            `json:"totalPages"`
	HasNextPage     bool           `json:"hasNextPage"`
	HasPreviousPage bool           `json:"hasPreviousPage"`
}

// DeleteTaskResponse reports whether a deletion occurred.
// Deleting an absent task is an outcome, not an error.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewTaskResponse maps a task entity to its JSON representation.
func NewTaskResponse(t *entity.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status.String(),
		Priority:    t.Priority.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		UserID:      t.UserID,
	}
}

// Package dto defines data transfer objects for the tasks feature's HTTP transport layer.
package dto

import "time"

// CreateTaskReq represents the request body for the /api/task/create endpoint.
// Status and Priority are enum names; empty values fall back to Pending / Medium.
// Client-supplied ids and timestamps are not accepted.
type CreateTaskReq struct {
	Title       string     `json:"title" binding:"required,max=100"`
	Description string     `json:"description" binding:"omitempty,max=500"`
	DueDate     *time.Time `json:"dueDate"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
}

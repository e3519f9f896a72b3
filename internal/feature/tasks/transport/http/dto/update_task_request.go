package dto

import "time"

// UpdateTaskReq は/api/task/update/:idエンドポイントのリクエストボディを表します。
// すべてのフィールドは省略可能で、省略されたフィールドは変更されません（部分更新）。
type UpdateTaskReq struct {
	Title       *string    `json:"title" binding:"omitempty,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
	DueDate     *time.Time `json:"dueDate"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
}

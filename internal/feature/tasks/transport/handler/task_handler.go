// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/transport/http/dto"
	"task_backend/internal/feature/tasks/usecase"
	jwtmw "task_backend/internal/platform/jwt"
)

// TasksUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type TasksUsecase interface {
	// Create は認証済みユーザーの新しいタスクを作成します。
	Create(ctx context.Context, userID uuid.UUID, in usecase.CreateInput) (*entity.Task, error)
	// GetByID は(id, userID)でタスクを取得します。
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.Task, error)
	// List はユーザーのタスクをフィルタ・ソート・ページングして返します。
	List(ctx context.Context, userID uuid.UUID, filter usecase.ListFilter) (*usecase.Page, error)
	// Update は部分更新を適用します。
	Update(ctx context.Context, id, userID uuid.UUID, in usecase.UpdateInput) (*entity.Task, error)
	// Delete はタスクを削除し、削除が行われたかを返します。
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// TaskHandler はタスク操作のHTTPリクエストを処理します。
type TaskHandler struct {
	tasks TasksUsecase
}

// NewTaskHandler はTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(tasks TasksUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// parseDate はRFC 3339形式または日付のみ（2006-01-02）の文字列をパースします。
func parseDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create はタスク作成APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 成功時は作成されたタスク付きで201を返却
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("task create validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	in := usecase.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != "" {
		status, err := entity.ParseStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		in.Status = status
	}
	if req.Priority != "" {
		priority, err := entity.ParsePriority(req.Priority)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		in.Priority = priority
	}

	task, err := h.tasks.Create(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("task create failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}
	slog.Info("task created", "task_id", task.ID, "user_id", userID)
	c.JSON(http.StatusCreated, dto.NewTaskResponse(task))
}

// GetByID はタスク取得APIエンドポイントを処理します。
// 他ユーザーのタスクおよび存在しないタスクはいずれも404を返します。
func (h *TaskHandler) GetByID(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	// 不正なIDは存在しないタスクと同様に扱う
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: usecase.ErrTaskNotFound.Error()})
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: usecase.ErrTaskNotFound.Error()})
			return
		}
		slog.Error("task lookup failed", "error", err, "task_id", id, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// List はタスク一覧APIエンドポイントを処理します。
// フィルタは連言的に適用され、ソートキーは単一、結果はページングされます。
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.ListTasksReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	filter := usecase.ListFilter{
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
	}
	if req.Status != "" {
		status, err := entity.ParseStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		filter.Status = &status
	}
	if req.Priority != "" {
		priority, err := entity.ParsePriority(req.Priority)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		filter.Priority = &priority
	}
	from, err := parseDate(req.DueDateFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid dueDateFrom"})
		return
	}
	to, err := parseDate(req.DueDateTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid dueDateTo"})
		return
	}
	filter.DueDateFrom = from
	filter.DueDateTo = to

	page, err := h.tasks.List(c.Request.Context(), userID, filter)
	if err != nil {
		slog.Error("task list failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}

	items := make([]dto.TaskResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, dto.NewTaskResponse(&page.Items[i]))
	}
	c.JSON(http.StatusOK, dto.PagedTasksResponse{
		Items:           items,
		TotalCount:      page.TotalCount,
		PageNumber:      page.PageNumber,
		PageSize:        page.PageSize,
		TotalPages:      page.TotalPages,
		HasNextPage:     page.HasNextPage,
		HasPreviousPage: page.HasPreviousPage,
	})
}

// Update はタスク更新APIエンドポイントを処理します。
// 指定されたフィールドのみが上書きされます（部分更新）。
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: usecase.ErrTaskNotFound.Error()})
		return
	}

	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("task update validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	in := usecase.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil && *req.Status != "" {
		status, err := entity.ParseStatus(*req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		in.Status = &status
	}
	if req.Priority != nil && *req.Priority != "" {
		priority, err := entity.ParsePriority(*req.Priority)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		in.Priority = &priority
	}

	task, err := h.tasks.Update(c.Request.Context(), id, userID, in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: usecase.ErrTaskNotFound.Error()})
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("task update failed", "error", err, "task_id", id, "user_id", userID)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		}
		return
	}
	slog.Info("task updated", "task_id", task.ID, "user_id", userID)
	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// Delete はタスク削除APIエンドポイントを処理します。
// 一致するタスクがない場合もエラーではなくdeleted=falseを返します。
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	// 不正なIDは一致なしとして扱う
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, dto.DeleteTaskResponse{Deleted: false})
		return
	}

	deleted, err := h.tasks.Delete(c.Request.Context(), id, userID)
	if err != nil {
		slog.Error("task delete failed", "error", err, "task_id", id, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}
	if deleted {
		slog.Info("task deleted", "task_id", id, "user_id", userID)
	}
	c.JSON(http.StatusOK, dto.DeleteTaskResponse{Deleted: deleted})
}

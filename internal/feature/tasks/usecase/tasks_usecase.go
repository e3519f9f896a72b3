// Package usecase はタスク操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"task_backend/internal/feature/tasks/domain/entity"
)

const (
	// DefaultPageSize はタスク一覧のデフォルト返却件数です。
	DefaultPageSize = 10
	// MaxPageSize はタスク一覧の最大返却件数です。
	MaxPageSize = 100

	// MaxTitleLength / MaxDescriptionLength はフィールドの長さ制限です。
	MaxTitleLength       = 100
	MaxDescriptionLength = 500

	// DefaultSortKey は未知または未指定のソートキーのフォールバックです。
	DefaultSortKey = "createdAt"
)

// ListFilter は一覧取得の絞り込み・ソート・ページング条件を表します。
// nilのフィルタは「条件なし」を意味します。
type ListFilter struct {
	Status      *entity.Status
	Priority    *entity.Priority
	DueDateFrom *time.Time // inclusive
	DueDateTo   *time.Time // inclusive
	SortBy      string
	SortOrder   string
	PageNumber  int
	PageSize    int
}

// Page はページングされた一覧結果を表します。
type Page struct {
	Items           []entity.Task
	TotalCount      int64
	PageNumber      int
	PageSize        int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// CreateInput は新規タスクの入力フィールドを表します。
// StatusとPriorityのゼロ値はデフォルト（Pending / Medium）にフォールバックします。
type CreateInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      entity.Status
	Priority    entity.Priority
}

// UpdateInput は部分更新のフィールドを表します。
// nilのフィールド（文字列の場合は空文字も）は「変更しない」を意味します。
type UpdateInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *entity.Status
	Priority    *entity.Priority
}

// TaskRepository はタスクエンティティの永続化層を抽象化します。
// すべての読み書きは(id, userID)の複合条件でスコープされます。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type TaskRepository interface {
	// Create は新しいタスクをストレージに永続化します。
	Create(ctx context.Context, task *entity.Task) error

	// FindByID は(id, userID)に一致するタスクを取得します。
	// 一致しない場合はErrTaskNotFoundを返します。
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Task, error)

	// List はユーザーのタスクをフィルタ・ソート・ページング条件で取得し、
	// ページング前の総件数を併せて返します。
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]entity.Task, int64, error)

	// Update は既存タスクを保存し、UpdatedAtを更新します。
	Update(ctx context.Context, task *entity.Task) error

	// Delete は(id, userID)に一致するタスクを削除します。
	// 削除が行われたかどうかを返します（存在しない場合はfalse、エラーではない）。
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// tasksUsecase はタスク操作のユースケースを実装します。
type tasksUsecase struct {
	tasks TaskRepository
}

// NewTasksUsecase はtasksUsecaseの新しいインスタンスを生成します。
func NewTasksUsecase(tasks TaskRepository) *tasksUsecase {
	return &tasksUsecase{tasks: tasks}
}

// validateTitle はタイトルの必須・長さ制限をチェックします。
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrValidation, MaxTitleLength)
	}
	return nil
}

// validateDescription は説明の長さ制限をチェックします。
func validateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrValidation, MaxDescriptionLength)
	}
	return nil
}

// Create は認証済みユーザーの新しいタスクを作成します。
// IDとタイムスタンプはサーバー側で付与され、クライアント指定値は無視されます。
func (u *tasksUsecase) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*entity.Task, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}

	status := in.Status
	if status == 0 {
		status = entity.StatusPending
	}
	priority := in.Priority
	if priority == 0 {
		priority = entity.PriorityMedium
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status code %d", ErrValidation, status)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: invalid priority code %d", ErrValidation, priority)
	}

	task := &entity.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      status,
		Priority:    priority,
		UserID:      userID,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// GetByID は(id, userID)でタスクを取得します。
// 他ユーザーのタスクは存在しないタスクと区別されません。
func (u *tasksUsecase) GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.Task, error) {
	return u.tasks.FindByID(ctx, id, userID)
}

// normalizeSortKey は既知のソートキーを正規形に変換します。
// 未知または未指定の場合はDefaultSortKeyにフォールバックします。
func normalizeSortKey(sortBy string) string {
	switch strings.ToLower(sortBy) {
	case "title":
		return "title"
	case "duedate":
		return "dueDate"
	case "priority":
		return "priority"
	case "status":
		return "status"
	default:
		return DefaultSortKey
	}
}

// normalizeSortOrder は昇順指定のみをascとして扱い、それ以外はdescにフォールバックします。
func normalizeSortOrder(sortOrder string) string {
	if strings.EqualFold(sortOrder, "asc") {
		return "asc"
	}
	return "desc"
}

// List はユーザーのタスクをフィルタ・ソート・ページングして返します。
// ページ番号は1以上、ページサイズは1〜100にクランプされます。
func (u *tasksUsecase) List(ctx context.Context, userID uuid.UUID, filter ListFilter) (*Page, error) {
	if filter.PageNumber < 1 {
		filter.PageNumber = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = DefaultPageSize
	}
	if filter.PageSize > MaxPageSize {
		filter.PageSize = MaxPageSize
	}
	filter.SortBy = normalizeSortKey(filter.SortBy)
	filter.SortOrder = normalizeSortOrder(filter.SortOrder)

	items, total, err := u.tasks.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return &Page{
		Items:           items,
		TotalCount:      total,
		PageNumber:      filter.PageNumber,
		PageSize:        filter.PageSize,
		TotalPages:      totalPages,
		HasNextPage:     filter.PageNumber < totalPages,
		HasPreviousPage: filter.PageNumber > 1,
	}, nil
}

// Update は(id, userID)に一致するタスクへ部分更新を適用します。
// 指定されなかったフィールド（文字列の場合は空文字も）は変更されません。
func (u *tasksUsecase) Update(ctx context.Context, id, userID uuid.UUID, in UpdateInput) (*entity.Task, error) {
	task, err := u.tasks.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && *in.Title != "" {
		if err := validateTitle(*in.Title); err != nil {
			return nil, err
		}
		task.Title = *in.Title
	}
	if in.Description != nil && *in.Description != "" {
		if err := validateDescription(*in.Description); err != nil {
			return nil, err
		}
		task.Description = *in.Description
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status code %d", ErrValidation, *in.Status)
		}
		task.Status = *in.Status
	}
	if in.Priority != nil {
		if !in.Priority.IsValid() {
			return nil, fmt.Errorf("%w: invalid priority code %d", ErrValidation, *in.Priority)
		}
		task.Priority = *in.Priority
	}

	if err := u.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete は(id, userID)に一致するタスクを削除します。
// 一致するタスクがない場合はfalseを返します。これは正常な結果でありエラーではありません。
func (u *tasksUsecase) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	return u.tasks.Delete(ctx, id, userID)
}

package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authentity "task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
)

type taskPostgres struct {
	db *gorm.DB
}

var _ usecase.TaskRepository = (*taskPostgres)(nil)

func NewTaskRepository(db *gorm.DB) *taskPostgres {
	return &taskPostgres{db: db}
}

// TaskModel is the GORM model for the tasks table.
// Deleting a user cascades to their tasks via the user_id foreign key.
type TaskModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title       string     `gorm:"size:100;not null"`
	Description string     `gorm:"size:500"`
	DueDate     *time.Time `gorm:"index"`
	Status      int        `gorm:"not null;default:1"`
	Priority    int        `gorm:"not null;default:2"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	UserID uuid.UUID        `gorm:"type:uuid;index;not null"`
	User   *authentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (TaskModel) TableName() string {
	return "tasks"
}

func toModel(e *entity.Task) TaskModel {
	return TaskModel{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		DueDate:     e.DueDate,
		Status:      int(e.Status),
		Priority:    int(e.Priority),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		UserID:      e.UserID,
	}
}

func toEntity(m TaskModel) entity.Task {
	return entity.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		DueDate:     m.DueDate,
		Status:      entity.Status(m.Status),
		Priority:    entity.Priority(m.Priority),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		UserID:      m.UserID,
	}
}

// sortColumn maps a normalized sort key to its column. Keys outside the
// whitelist order by created_at so no caller input ever reaches the ORDER BY.
func sortColumn(sortBy string) string {
	switch sortBy {
	case "title":
		return "title"
	case "dueDate":
		return "due_date"
	case "priority":
		return "priority"
	case "status":
		return "status"
	default:
		return "created_at"
	}
}

// Create はタスクをデータベースに追加します。
// IDとタイムスタンプはサーバー側で付与されます。
func (r *taskPostgres) Create(ctx context.Context, task *entity.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	m := toModel(task)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	task.CreatedAt = m.CreatedAt
	task.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID は(id, user_id)の単一条件でタスクを取得します。
// 他ユーザーのタスクは存在しないタスクと同様にusecase.ErrTaskNotFoundになります。
func (r *taskPostgres) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Task, error) {
	var m TaskModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	t := toEntity(m)
	return &t, nil
}

// List はユーザーのタスクを連言的なフィルタ・単一ソートキー・ページングで取得します。
// 総件数はページング適用前に算出されます。
func (r *taskPostgres) List(ctx context.Context, userID uuid.UUID, f usecase.ListFilter) ([]entity.Task, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&TaskModel{}).
		Where("user_id = ?", userID)

	if f.Status != nil {
		q = q.Where("status = ?", int(*f.Status))
	}
	if f.Priority != nil {
		q = q.Where("priority = ?", int(*f.Priority))
	}
	if f.DueDateFrom != nil {
		q = q.Where("due_date >= ?", *f.DueDateFrom)
	}
	if f.DueDateTo != nil {
		q = q.Where("due_date <= ?", *f.DueDateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []TaskModel
	err := q.Order(sortColumn(f.SortBy) + " " + f.SortOrder).
		Offset((f.PageNumber - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]entity.Task, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, total, nil
}

// Update はタスクを保存し、UpdatedAtを更新します。
func (r *taskPostgres) Update(ctx context.Context, task *entity.Task) error {
	m := toModel(task)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	task.UpdatedAt = m.UpdatedAt
	return nil
}

// Delete は(id, user_id)に一致するタスクを削除し、削除が行われたかを返します。
// 一致する行がない場合はエラーではなくfalseを返します。
func (r *taskPostgres) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&TaskModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

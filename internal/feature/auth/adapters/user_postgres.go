// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/usecase"
)

// userPostgres はUserRepositoryインターフェースのPostgres実装です。
// GORMを使用してデータベース操作を行います。
type userPostgres struct {
	db *gorm.DB
}

// userPostgresがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserRepository は指定されたgorm.DB接続でuserPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserRepository(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// isDuplicateKey はユニーク制約違反かどうかを判定します。
// Postgresのエラーコード23505と、GORMのTranslateErrorによる変換の両方を扱います。
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Create はユーザーをデータベースに追加します。
// IDとタイムスタンプはサーバー側で生成します。
// 同じユーザー名またはメールアドレスのユーザーが既に存在する場合、usecase.ErrUserAlreadyExistsを返します。
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// FindByUsernameOrEmail はユーザー名またはメールアドレスでユーザーを取得します。
// 比較は大文字小文字を区別しません。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)", usernameOrEmail, usernameOrEmail).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

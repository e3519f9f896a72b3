// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"task_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// minUsernameLength / maxUsernameLength はユーザー名の長さ制限を定義します。
	minUsernameLength = 3
	maxUsernameLength = 50

	// maxActiveSessions は1ユーザーが同時に保持できるセッション数の上限です。
	maxActiveSessions = 5
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じユーザー名またはメールアドレスのユーザーが既に存在する場合、ErrUserAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsernameOrEmail はユーザー名またはメールアドレスに一致するユーザーを取得します。
	// 比較は大文字小文字を区別しません。存在しない場合はErrUserNotFoundを返します。
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uuid.UUID, username string) (string, error)
}

// SessionMeta carries client metadata recorded with each refresh session.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	Token        string
	RefreshToken string
	User         *entity.User
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
	sessionTTL   time.Duration
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator, sessionTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
		sessionTTL:   sessionTTL,
	}
}

// validateUsername はユーザー名の長さ制限をチェックします。
func validateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be between %d and %d characters", ErrValidation, minUsernameLength, maxUsernameLength)
	}
	return nil
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
// 8文字以上で、大文字・小文字・数字・記号をそれぞれ1文字以上含む必要があります。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, minPasswordLength)
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return fmt.Errorf("%w: password must contain at least one uppercase letter, one lowercase letter, one digit and one symbol", ErrValidation)
	}
	return nil
}

// newSessionID は暗号学的に安全な64文字のセッションIDを生成します。
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// createSession は新しいリフレッシュセッションを作成し、ユーザーごとの上限を適用します。
func (u *authUsecase) createSession(ctx context.Context, userID uuid.UUID, meta SessionMeta) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	now := time.Now()
	session := &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	// 上限を超えた場合は最も古いセッションを削除
	count, err := u.sessions.CountByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	for count > maxActiveSessions {
		if err := u.sessions.DeleteOldestByUserID(ctx, userID); err != nil {
			return "", err
		}
		count--
	}

	return id, nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、
// アクセストークンとリフレッシュトークンを発行します。
// ユーザー名またはメールアドレスが既に使用されている場合（大文字小文字を区別しない）、
// ErrUserAlreadyExistsを返します。
func (u *authUsecase) Register(ctx context.Context, username, email, password string, meta SessionMeta) (*AuthResult, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	// ユーザー名・メールアドレスの重複チェック（大文字小文字を区別しない）
	if _, err := u.users.FindByUsernameOrEmail(ctx, username); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if _, err := u.users.FindByUsernameOrEmail(ctx, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Username: username, Email: email, PasswordHash: string(hashed)}
	// チェックと挿入の間の競合はユニーク制約が拾う（アダプタがErrUserAlreadyExistsに変換）
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, user, meta)
}

// Login はユーザーを認証し、成功時にトークンを発行します。
// ユーザー名またはメールアドレスで検索し、パスワードを検証します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, usernameOrEmail, password string, meta SessionMeta) (*AuthResult, error) {
	user, err := u.users.FindByUsernameOrEmail(ctx, usernameOrEmail)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.PasswordHash
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、同一のエラーを返す
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user, meta)
}

// issueTokens はアクセストークンとリフレッシュセッションを生成します。
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User, meta SessionMeta) (*AuthResult, error) {
	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	refresh, err := u.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, RefreshToken: refresh, User: user}, nil
}

// Refresh はリフレッシュトークンを検証し、新しいトークンペアを発行します。
// 古いセッションは失効させます（ローテーション）。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, meta SessionMeta) (*AuthResult, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// ローテーション: 使用済みセッションを失効させてから新しいペアを発行
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, user, meta)
}

// Logout は指定されたリフレッシュセッションを失効させます。
// セッションが存在しない場合もエラーにはなりません（冪等）。
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.sessions.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// Profile は認証済みユーザーの情報を取得します。
func (u *authUsecase) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

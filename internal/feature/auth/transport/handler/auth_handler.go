// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/transport/http/dto"
	"task_backend/internal/feature/auth/usecase"
	jwtmw "task_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、トークンペアと公開プロフィールを返します。
	Register(ctx context.Context, username, email, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error)
	// Login はユーザーを認証し、成功時にトークンペアと公開プロフィールを返します。
	Login(ctx context.Context, usernameOrEmail, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error)
	// Refresh はリフレッシュトークンを検証し、新しいトークンペアを発行します。
	Refresh(ctx context.Context, refreshToken string, meta usecase.SessionMeta) (*usecase.AuthResult, error)
	// Logout は指定されたリフレッシュセッションを失効させます。
	Logout(ctx context.Context, refreshToken string) error
	// Profile は認証済みユーザーの情報を取得します。
	Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// sessionMeta はリクエストからクライアントメタデータを抽出します。
func sessionMeta(c *gin.Context) usecase.SessionMeta {
	return usecase.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド
// - バリデーションエラー時は400を返却
// - ユーザー名・メールアドレス重複時は409を返却
// - 成功時はトークンペアと公開プロフィール付きで200を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password, sessionMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			slog.Warn("register conflict", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: usecase.ErrUserAlreadyExists.Error()})
		case errors.Is(err, usecase.ErrValidation):
			slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			// 内部エラーの詳細はクライアントに公開しない
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		}
		return
	}
	slog.Info("user registered", "user_id", result.User.ID, "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
		User:         dto.NewUserResponse(result.User),
	})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（ユーザー未検出とパスワード不一致で同一メッセージ）
// - 認証成功時はトークンペア付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req.UsernameOrEmail, req.Password, sessionMeta(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// ユーザー列挙攻撃を防止するため、どちらが誤りかは公開しない
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: usecase.ErrInvalidCredentials.Error()})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}
	slog.Info("user login successful", "user_id", result.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
		User:         dto.NewUserResponse(result.User),
	})
}

// Refresh はトークン更新APIエンドポイントを処理します。
// 無効・失効・期限切れのリフレッシュトークンはいずれも401を返します。
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, sessionMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRefreshToken),
			errors.Is(err, usecase.ErrSessionRevoked),
			errors.Is(err, usecase.ErrSessionExpired),
			errors.Is(err, usecase.ErrUserNotFound):
			slog.Warn("token refresh rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid refresh token"})
		default:
			slog.Error("token refresh failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.TokenPairResponse{
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
	})
}

// Logout はログアウトAPIエンドポイントを処理します。
// セッションが存在しない場合も200を返します（冪等）。
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "ok"})
}

// Profile は認証済みユーザーのプロフィール取得APIエンドポイントを処理します。
// JWTミドルウェアが設定したユーザーIDを使用します。
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}
	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: usecase.ErrUserNotFound.Error()})
			return
		}
		slog.Error("profile lookup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

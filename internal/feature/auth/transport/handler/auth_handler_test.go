package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/usecase"
	jwtmw "task_backend/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, username, email, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error)
	LoginFunc    func(ctx context.Context, usernameOrEmail, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error)
	RefreshFunc  func(ctx context.Context, refreshToken string, meta usecase.SessionMeta) (*usecase.AuthResult, error)
	LogoutFunc   func(ctx context.Context, refreshToken string) error
	ProfileFunc  func(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

func (m *mockAuthUsecase) Register(ctx context.Context, username, email, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error) {
	return m.RegisterFunc(ctx, username, email, password, meta)
}

func (m *mockAuthUsecase) Login(ctx context.Context, usernameOrEmail, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error) {
	return m.LoginFunc(ctx, usernameOrEmail, password, meta)
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, refreshToken string, meta usecase.SessionMeta) (*usecase.AuthResult, error) {
	return m.RefreshFunc(ctx, refreshToken, meta)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	return m.LogoutFunc(ctx, refreshToken)
}

func (m *mockAuthUsecase) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return m.ProfileFunc(ctx, userID)
}

// setupRouter は認証エンドポイントを配線したテスト用ルーターを返します。
// userIDが指定された場合、保護ルート用に認証済みコンテキストを注入します。
func setupRouter(uc AuthUsecase, userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(uc)

	r := gin.New()
	r.POST("/api/user/register", h.Register)
	r.POST("/api/user/login", h.Login)
	r.POST("/api/user/refresh", h.Refresh)
	r.POST("/api/user/logout", h.Logout)
	r.GET("/api/user/profile", func(c *gin.Context) {
		if userID != nil {
			c.Set(jwtmw.ContextUserID, *userID)
		}
	}, h.Profile)
	return r
}

func sampleResult() *usecase.AuthResult {
	return &usecase.AuthResult{
		Token:        "header.payload.signature",
		RefreshToken: strings.Repeat("ab", 32),
		User: &entity.User{
			ID:        uuid.New(),
			Username:  "alice",
			Email:     "alice@example.com",
			CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		},
	}
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		registerFunc func(ctx context.Context, username, email, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error)
		wantStatus   int
		wantBody     []string
	}{
		{
			name: "success returns token pair and profile",
			body: `{"username":"alice","email":"alice@example.com","password":"Password123!"}`,
			registerFunc: func(ctx context.Context, username, email, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error) {
				return sampleResult(), nil
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"token":"header.payload.signature"`, `"username":"alice"`, `"refreshToken"`},
		},
		{
			name:       "binding rejects short username",
			body:       `{"username":"al","email":"alice@example.com","password":"Password123!"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "binding rejects malformed email",
			body:       `{"username":"alice","email":"not-an-email","password":"Password123!"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "weak password from usecase",
			body: `{"username":"alice","email":"alice@example.com","password":"password123"}`,
			registerFunc: func(ctx context.Context, username, email, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error) {
				return nil, fmt.Errorf("%w: password must contain an uppercase letter", usecase.ErrValidation)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   []string{"uppercase"},
		},
		{
			name: "duplicate user conflicts",
			body: `{"username":"alice","email":"alice@example.com","password":"Password123!"}`,
			registerFunc: func(ctx context.Context, username, email, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error) {
				return nil, usecase.ErrUserAlreadyExists
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "internal details are not leaked",
			body: `{"username":"alice","email":"alice@example.com","password":"Password123!"}`,
			registerFunc: func(ctx context.Context, username, email, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error) {
				return nil, fmt.Errorf("pq: connection refused at 10.0.0.5")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{"internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&mockAuthUsecase{RegisterFunc: tt.registerFunc}, nil)

			w := postJSON(r, "/api/user/register", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, w.Body.String(), want)
			}
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "10.0.0.5")
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginFunc  func(ctx context.Context, usernameOrEmail, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error)
		wantStatus int
	}{
		{
			name: "success",
			body: `{"usernameOrEmail":"alice","password":"Password123!"}`,
			loginFunc: func(ctx context.Context, usernameOrEmail, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error) {
				return sampleResult(), nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "bad credentials",
			body: `{"usernameOrEmail":"alice","password":"WrongPass1!"}`,
			loginFunc: func(ctx context.Context, usernameOrEmail, password string, meta usecase.SessionMeta) (*usecase.AuthResult, error) {
				return nil, usecase.ErrInvalidCredentials
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing password",
			body:       `{"usernameOrEmail":"alice"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&mockAuthUsecase{LoginFunc: tt.loginFunc}, nil)

			w := postJSON(r, "/api/user/login", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("rotation returns a new pair", func(t *testing.T) {
		uc := &mockAuthUsecase{
			RefreshFunc: func(ctx context.Context, refreshToken string, meta usecase.SessionMeta) (*usecase.AuthResult, error) {
				return sampleResult(), nil
			},
		}
		r := setupRouter(uc, nil)

		w := postJSON(r, "/api/user/refresh", `{"refreshToken":"`+strings.Repeat("cd", 32)+`"}`)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Token        string `json:"token"`
			RefreshToken string `json:"refreshToken"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("all rejection reasons collapse to one message", func(t *testing.T) {
		for _, cause := range []error{
			usecase.ErrInvalidRefreshToken,
			usecase.ErrSessionRevoked,
			usecase.ErrSessionExpired,
			usecase.ErrUserNotFound,
		} {
			uc := &mockAuthUsecase{
				RefreshFunc: func(ctx context.Context, refreshToken string, meta usecase.SessionMeta) (*usecase.AuthResult, error) {
					return nil, cause
				},
			}
			r := setupRouter(uc, nil)

			w := postJSON(r, "/api/user/refresh", `{"refreshToken":"whatever"}`)

			assert.Equal(t, http.StatusUnauthorized, w.Code, "cause: %v", cause)
			assert.Contains(t, w.Body.String(), "invalid refresh token", "cause: %v", cause)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		r := setupRouter(&mockAuthUsecase{}, nil)

		w := postJSON(r, "/api/user/refresh", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("revokes the session", func(t *testing.T) {
		var got string
		uc := &mockAuthUsecase{
			LogoutFunc: func(ctx context.Context, refreshToken string) error {
				got = refreshToken
				return nil
			},
		}
		r := setupRouter(uc, nil)

		w := postJSON(r, "/api/user/logout", `{"refreshToken":"tok-1"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "tok-1", got)
		assert.Contains(t, w.Body.String(), `"message":"ok"`)
	})
}

func TestAuthHandler_Profile(t *testing.T) {
	userID := uuid.New()

	t.Run("returns the public profile", func(t *testing.T) {
		uc := &mockAuthUsecase{
			ProfileFunc: func(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
				require.Equal(t, userID, uid)
				return &entity.User{ID: uid, Username: "alice", Email: "alice@example.com"}, nil
			},
		}
		r := setupRouter(uc, &userID)

		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"alice"`)
		// パスワードハッシュは公開されない
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("unauthorized without middleware context", func(t *testing.T) {
		r := setupRouter(&mockAuthUsecase{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deleted user is not found", func(t *testing.T) {
		uc := &mockAuthUsecase{
			ProfileFunc: func(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
				return nil, usecase.ErrUserNotFound
			},
		}
		r := setupRouter(uc, &userID)

		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"task_backend/internal/feature/auth/domain/entity"
)

// UserResponse is the public representation of a user.
// The password hash is never included.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is returned by register and login: a token pair plus the public profile.
type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// TokenPairResponse is returned by refresh: a rotated token pair without the profile.
type TokenPairResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the generic success body for endpoints without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewUserResponse maps a user entity to its public representation.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

package dto

import (
	"time"

	"github.com/wakanda-gov/platform/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Username   string `json:"username" validate:"required,alphanum,min=3,max=30"`
	FirstName  string `json:"firstName" validate:"required,min=2,max=50"`
	LastName   string `json:"lastName" validate:"required,min=2,max=50"`
	Password   string `json:"password" validate:"required,min=8,password"`
	Role       string `json:"role" validate:"omitempty,oneof=admin manager user viewer"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest payload for partial updates. Role and active are only
// honored on the admin path.
type UpdateUserRequest struct {
	FirstName  *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName   *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Department *string `json:"department"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Role       *string `json:"role" validate:"omitempty,oneof=admin manager user viewer"`
	Active     *bool   `json:"active"`
}

// TokensResponse carries the issued token pair.
type TokensResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// UserResponse is the sanitized account view; the password hash never
// leaves the service.
type UserResponse struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Username    string      `json:"username"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Role        domain.Role `json:"role"`
	Department  string      `json:"department,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Address     string      `json:"address,omitempty"`
	Active      bool        `json:"active"`
	LastLoginAt *time.Time  `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NewUserResponse maps a domain user to its API shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		Department:  user.Department,
		Phone:       user.Phone,
		Address:     user.Address,
		Active:      user.Active,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ChatRequest payload for the AI pass-through.
type ChatRequest struct {
	Model   string `json:"model"`
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// User represents a reseller or back-office user.
type User struct {
	ID           uint        `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	FullName     string      `json:"full_name"`
	CPF          null.String `json:"cpf"`
	IsActive     bool        `json:"is_active"`
	IsSuperuser  bool        `json:"is_superuser"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// CreateUserInput represents input for registering a reseller.
type CreateUserInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name" binding:"required"`
	CPF         string `json:"cpf" binding:"required"`
	IsActive    *bool  `json:"is_active"`
	IsSuperuser *bool  `json:"is_superuser"`
}

// UpdateUserInput represents input for updating a user. Nil fields are
// left untouched.
type UpdateUserInput struct {
	Password *string `json:"password" binding:"omitempty,min=8"`
	FullName *string `json:"full_name"`
	IsActive *bool   `json:"is_active"`
}

// LoginInput represents the OAuth2 password form posted to the token
// endpoint; username carries the email.
type LoginInput struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse represents an issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

package domain

import (
	"time"
)

// User represents a registered account. The password is stored only as a
// bcrypt hash and never serialized.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	UserName     string    `json:"userName" db:"user_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// RegisterRequest is the body for user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	UserName string `json:"userName" validate:"required,alphanum,min=6,max=14"`
	Password string `json:"password" validate:"required,min=6,max=14"`
}

// LoginRequest is the body for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdateProfileRequest updates the authenticated user's own profile.
// Only the provided fields are changed.
type UpdateProfileRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	UserName *string `json:"userName,omitempty" validate:"omitempty,alphanum,min=6,max=14"`
}

// ChangePasswordRequest changes the authenticated user's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=14"`
}

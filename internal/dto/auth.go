package dto

import "github.com/noah-isme/desk-portal-api/internal/models"

// LoginRequest carries the sign-in form payload. The role comes from the
// tab the user picked on the login page and must match the account's role.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,portal_role"`
}

// RegisterRequest carries the registration form payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,portal_role"`
}

// ForgotPasswordRequest asks the auth service to start a reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes a reset flow with the emailed token.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// LoginResponse is returned to the browser shell after a successful login.
// The shell stores the session id only; the raw token never leaves the server.
type LoginResponse struct {
	SessionID string          `json:"session_id"`
	FullName  string          `json:"full_name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	Redirect  string          `json:"redirect"`
}

// SessionResponse describes the signed-in user for shell bootstrapping.
type SessionResponse struct {
	FullName string          `json:"full_name"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	Redirect string          `json:"redirect"`
}

// MessageResponse wraps flows that only return a confirmation string.
type MessageResponse struct {
	Message string `json:"message"`
}

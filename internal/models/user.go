package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole represents the dashboard roles issued by the auth service.
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleEmployee  UserRole = "EMPLOYEE"
	RoleITSupport UserRole = "IT_SUPPORT"
)

// HomeRoute is the dashboard route a role lands on. Unknown roles are sent
// back to the login page.
func (r UserRole) HomeRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin-dashboard"
	case RoleEmployee:
		return "/employee-dashboard"
	case RoleITSupport:
		return "/itsupport-dashboard"
	default:
		return "/login"
	}
}

// Known reports whether the role is one the portal understands.
func (r UserRole) Known() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleITSupport:
		return true
	}
	return false
}

// TokenClaims is the bearer token payload as issued by the auth service.
// The portal decodes it for display and UX gating only; the signature is
// never verified here, and every upstream call re-validates the token.
type TokenClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// Session is the server-side record of a signed-in browser: the bearer
// token plus the display fields the shell needs without re-decoding it.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      UserRole  `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

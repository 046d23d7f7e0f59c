package gateway

import (
	"context"
	"net/http"

	"github.com/noah-isme/desk-portal-api/internal/dto"
)

// TokenResponse is the upstream login result.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}

// ResetTokenResponse is the upstream forgot-password result. The reset
// token comes back in the body instead of an email.
type ResetTokenResponse struct {
	ResetToken string `json:"reset_token"`
	TokenType  string `json:"token_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", nil, req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ForgotPassword starts a password reset flow.
func (c *Client) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*ResetTokenResponse, error) {
	var out ResetTokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password", "", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword completes a password reset flow.
func (c *Client) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/reset-password", "", nil, req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

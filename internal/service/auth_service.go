package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/desk-portal-api/internal/dto"
	"github.com/noah-isme/desk-portal-api/internal/gateway"
	"github.com/noah-isme/desk-portal-api/internal/models"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
)

type authGateway interface {
	Login(ctx context.Context, req dto.LoginRequest) (*gateway.TokenResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (string, error)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*gateway.ResetTokenResponse, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (string, error)
}

type sessionBuilder interface {
	NewSession(token, email string) (*models.Session, error)
}

type sessionStore interface {
	Create(ctx context.Context, sess *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// AuthService runs the sign-in flows against the upstream auth
// endpoints and owns the resulting server-side sessions.
type AuthService struct {
	gw        authGateway
	resolver  sessionBuilder
	store     sessionStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(gw authGateway, resolver sessionBuilder, store sessionStore, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{gw: gw, resolver: resolver, store: store, validator: validate, logger: logger}
}

// Login exchanges credentials for a session. The upstream 401 for bad
// credentials is surfaced as plain unauthorized rather than an expired
// session, since no session exists yet.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	token, err := s.gw.Login(ctx, req)
	if err != nil {
		if errors.Is(err, appErrors.ErrSessionExpired) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid email or password")
		}
		return nil, err
	}

	sess, err := s.resolver.NewSession(token.AccessToken, req.Email)
	if err != nil {
		return nil, err
	}
	if !sess.Role.Known() {
		s.logger.Warn("login token carried unknown role", zap.String("role", string(sess.Role)))
		return nil, appErrors.Clone(appErrors.ErrInvalidToken, "token carries an unknown role")
	}

	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("user signed in",
		zap.String("user_id", sess.UserID),
		zap.String("role", string(sess.Role)),
	)

	return &dto.LoginResponse{
		SessionID: sess.ID,
		FullName:  sess.FullName,
		Email:     sess.Email,
		Role:      sess.Role,
		Redirect:  sess.Role.HomeRoute(),
	}, nil
}

// Logout ends the session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// Session describes the signed-in user for shell bootstrapping.
func (s *AuthService) Session(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{
		FullName: sess.FullName,
		Email:    sess.Email,
		Role:     sess.Role,
		Redirect: sess.Role.HomeRoute(),
	}, nil
}

// Register creates a new account upstream.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.MessageResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	msg, err := s.gw.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: msg}, nil
}

// ForgotPassword starts a reset flow. The upstream hands the reset token
// back in the response body instead of sending mail.
func (s *AuthService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*gateway.ResetTokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	return s.gw.ForgotPassword(ctx, req)
}

// ResetPassword completes a reset flow.
func (s *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	msg, err := s.gw.ResetPassword(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: msg}, nil
}

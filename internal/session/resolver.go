package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/desk-portal-api/internal/models"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
)

// Resolver reads the claims out of an upstream-issued access token.
// The token is decoded without signature verification: the portal only
// needs the display fields, and every upstream call re-validates the
// token server-side where the signing key lives.
type Resolver struct {
	parser *jwt.Parser
}

// NewResolver constructs a Resolver.
func NewResolver() *Resolver {
	return &Resolver{parser: jwt.NewParser()}
}

// Decode extracts the claims from a token. Malformed tokens yield
// ErrInvalidToken.
func (r *Resolver) Decode(token string) (*models.TokenClaims, error) {
	if token == "" {
		return nil, appErrors.ErrInvalidToken
	}

	claims := &models.TokenClaims{}
	if _, _, err := r.parser.ParseUnverified(token, claims); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidToken.Code, appErrors.ErrInvalidToken.Status, appErrors.ErrInvalidToken.Message)
	}
	return claims, nil
}

// NewSession builds a session record from a freshly issued token.
func (r *Resolver) NewSession(token, email string) (*models.Session, error) {
	claims, err := r.Decode(token)
	if err != nil {
		return nil, err
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &models.Session{
		Token:     token,
		UserID:    claims.UserID,
		Email:     email,
		FullName:  claims.FullName,
		Role:      claims.Role,
		ExpiresAt: expiresAt,
	}, nil
}

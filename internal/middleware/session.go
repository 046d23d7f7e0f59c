package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/desk-portal-api/internal/models"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
	"github.com/noah-isme/desk-portal-api/pkg/response"
)

// ContextSessionKey is the gin context key storing the resolved session.
const ContextSessionKey = "currentSession"

type sessionLoader interface {
	Get(ctx context.Context, id string) (*models.Session, error)
}

// Session resolves the bearer session id into the stored session. A
// missing or unknown id redirects the shell to the login page; role
// checks are left to the Guard.
func Session(store sessionLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			response.Denied(c, appErrors.ErrUnauthorized, models.UserRole("").HomeRoute(), "")
			c.Abort()
			return
		}

		sess, err := store.Get(c.Request.Context(), id)
		if err != nil {
			response.Denied(c, err, models.UserRole("").HomeRoute(), "")
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// CurrentSession extracts the session attached by the Session middleware.
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*models.Session)
	return sess, ok
}

func sessionID(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/desk-portal-api/internal/models"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
	"github.com/noah-isme/desk-portal-api/pkg/response"
)

// Guard gates a route group by role. With no roles given, any
// authenticated session passes. A session whose role is not in the
// allow-list is sent back to its own dashboard with a denial notice;
// the browser shell follows the redirect in the response meta. These
// checks shape the UX only: the upstream service re-validates the
// bearer token and role on every call.
func Guard(allowed ...models.UserRole) gin.HandlerFunc {
	allowedRoles := make(map[models.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedRoles[role] = struct{}{}
	}

	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			response.Denied(c, appErrors.ErrUnauthorized, models.UserRole("").HomeRoute(), "")
			c.Abort()
			return
		}

		if len(allowedRoles) == 0 {
			c.Next()
			return
		}

		if _, ok := allowedRoles[sess.Role]; ok {
			c.Next()
			return
		}

		response.Denied(c,
			appErrors.ErrForbidden,
			sess.Role.HomeRoute(),
			"You do not have access to that page.",
		)
		c.Abort()
	}
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/dispatch"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	pkgAuth "github.com/polkiloo/orderdesk/internal/pkg/auth"
)

// PrincipalContextKey is a gin context key for the authenticated caller.
const PrincipalContextKey = "principal"

// TokenParser resolves bearer tokens into principals.
type TokenParser interface {
	ParseToken(token string) (model.Principal, error)
}

// AuthRequired ensures the caller presents a valid bearer token. The
// principal is stored both in the gin context and in the request context
// so use cases can authorize the call.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "authentication required")
			return
		}

		principal, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, "invalid token")
				return
			}
			abort(c, http.StatusInternalServerError, "failed to verify token")
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Request = c.Request.WithContext(pkgAuth.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// StaffOnly rejects authenticated callers without the staff role.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := pkgAuth.RequireStaff(c.Request.Context()); err != nil {
			abort(c, http.StatusForbidden, "insufficient permissions")
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dispatch.Envelope{Message: message})
}

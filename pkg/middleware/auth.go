package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
)

// Context keys set by AuthMiddleware.
const (
	UsernameKey = "username"
	TokenKey    = "token"
)

// Verifier checks a raw bearer token and returns the identity it carries.
type Verifier interface {
	Verify(ctx context.Context, raw string) (string, error)
}

// RevocationChecker reports tokens that were explicitly revoked before expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, raw string) (bool, error)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier.
// A missing header or token yields 401; a token that fails verification or was revoked yields 403.
// revoked may be nil.
func AuthMiddleware(ver Verifier, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		token := bearerToken(auth)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		username, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debugf("rejected bearer token: %v", err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), token)
			if err != nil {
				logger.Errorf("revocation check failed: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token revocation check failed"})
				return
			}
			if isRevoked {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token revoked"})
				return
			}
		}

		c.Set(UsernameKey, username)
		c.Set(TokenKey, token)
		c.Next()
	}
}

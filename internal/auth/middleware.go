package auth

import (
	"net/http"
	"strings"

	"artist-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const principalKey = "principal"

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(verifier *TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		p, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			logger.WithComponent("auth").Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		WithPrincipal(c, p)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(authorizer Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !authorizer.IsAdmin(p) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// WithPrincipal stores p on the context for PrincipalFrom.
func WithPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ggyyuubb/wearther/internal/domain/auth"
)

const authClaimsKey = "auth_claims"

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(authClaimsKey, claims)
}

func getClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(authClaimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}

// userIDFrom prefers the authenticated subject and falls back to the caller-supplied id
// when auth is disabled.
func userIDFrom(c *gin.Context, supplied string) string {
	if claims, ok := getClaims(c); ok {
		return claims.UserID
	}
	return strings.TrimSpace(supplied)
}

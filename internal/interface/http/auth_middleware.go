package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ggyyuubb/wearther/internal/domain/auth"
	apperrors "github.com/ggyyuubb/wearther/pkg/errors"
)

// authMiddleware requires a bearer token when auth is configured and stores its claims.
// Without a configured secret every request passes and the caller-supplied user id is trusted.
func authMiddleware(svc auth.Service) gin.HandlerFunc {
	if svc == nil || !svc.Enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		token, httpErr := bearerToken(c.GetHeader("Authorization"))
		if httpErr != nil {
			abortWithError(c, httpErr)
			return
		}
		claims, err := svc.ValidateToken(c.Request.Context(), token)
		switch {
		case err == nil:
			setClaims(c, claims)
			c.Next()
		case apperrors.IsCode(err, "invalid_token"):
			abortWithError(c, NewHTTPError(http.StatusForbidden, "invalid_token", apperrors.MessageOf(err), err))
		default:
			abortWithError(c, NewHTTPError(http.StatusInternalServerError, "auth_failed", errMessage(err), err))
		}
	}
}

func bearerToken(header string) (string, *HTTPError) {
	if header == "" {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing authorization header", nil)
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized", "invalid authorization header", nil)
	}
	return token, nil
}

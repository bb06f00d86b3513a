package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escusoft/escuela-backend/internal/response"
	"github.com/escusoft/escuela-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
)

// RequireAuth validates the JWT from the Authorization header. The policy is
// uniform: every route behind this middleware rejects the same way, a missing
// header with ErrTokenRequired and anything else with ErrTokenInvalid.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authService.VerifyHeader(c.GetHeader("Authorization"))
		if err != nil {
			code := response.ErrTokenInvalid
			if errors.Is(err, service.ErrMissingAuthHeader) {
				code = response.ErrTokenRequired
			}
			response.AbortFail(c, http.StatusUnauthorized, code)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the authenticated claims set by RequireAuth.
func GetClaims(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}

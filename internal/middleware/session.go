package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educhain/educhain-server/internal/response"
	"github.com/educhain/educhain-server/internal/service"
)

// CheckActiveSession validates the JWT's JTI against the active session
// in Redis. A mismatch means the session was replaced by a newer login
// or cleared by logout, so the token is rejected even if its signature
// is still valid.
func CheckActiveSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if err := authService.ValidateSession(c.Request.Context(), claims.UserID, claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}

		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoginRedirect is where unauthenticated visitors are sent.
const LoginRedirect = "/login"

// RequireAuth gates routes that need a logged-in visitor. The browser is
// told where to go; the gateway does not issue HTTP redirects for API
// responses.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetState(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": LoginRedirect,
			})
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"fieldassist/utils"

	"github.com/gin-gonic/gin"
)

// SessionAuthMiddleware validates the session token minted on the first chat
// turn and pins the request to that session. Requests may only continue the
// session the token was issued for.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sessionID, err := utils.ValidateSessionToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("sessionID", sessionID)
		c.Next()
	}
}

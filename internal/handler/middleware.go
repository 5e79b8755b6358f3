package handler

import (
	"net/http"
	"strings"

	"ticketera/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token on protected routes and stores
// the resolved user in the request context.
func AuthMiddleware(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing bearer token",
			})
			return
		}

		user, err := auth.Authenticate(c, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Could not validate credentials",
			})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bhetghat/bhetghat-server/utils"
)

const (
	// ContextUsername is the gin context key for the session username.
	ContextUsername = "username"
	// ContextUserID is the gin context key for the session user id.
	ContextUserID = "user_id"
)

// Auth validates the bearer session token and sets the user identity in
// the gin context.
func Auth(tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization header"})
			return
		}
		claims, err := tokens.ParseSessionToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

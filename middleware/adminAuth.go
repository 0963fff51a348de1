package middleware

import (
	"net/http"
	"strings"

	"rapstation/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthAdminMiddleware accepts only bearer tokens signed with secret and carrying the admin role.
func JWTAuthAdminMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ValidateToken(secret, tokenString)
		if err != nil || role != "admin" {
			zap.L().Warn("Rejected admin token", zap.String("ip", getClientIP(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Unauthorized admin access"})
			return
		}

		c.Set("adminUser", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medicore/utils"
)

// ContextUserID and ContextRole are the gin context keys set by Auth.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// Auth validates the Bearer token and stores the caller's identity and
// role on the request context.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed Authorization header"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		subject, role, err := utils.ExtractClaims(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, subject)
		c.Set(ContextRole, role)
		c.Next()
	}
}

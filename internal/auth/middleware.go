package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ClaimsKey - ключ, под которым middleware кладет Claims в gin.Context
const ClaimsKey = "claims"

// AdminAuth пропускает только запросы с действующим bearer-токеном администратора
func AdminAuth(a *Authenticator, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			log.Warn("Bearer token missing from admin request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := a.Parse(strings.TrimSpace(authz[len("bearer "):]))
		if err != nil {
			log.WithError(err).Warn("Invalid admin token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if claims.Role != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

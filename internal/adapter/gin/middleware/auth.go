package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recharge-service/internal/domain/user"
	"recharge-service/pkg/auth"
)

// ClaimsKey is the gin context key under which verified claims are stored.
const ClaimsKey = "auth_claims"

// RequireAdmin verifies the bearer token and rejects callers that are not
// admins. A missing or invalid token is 401; a valid non-admin token is 403.
func RequireAdmin(tokens *auth.TokenManager, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			log.Warn("missing bearer token", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_credentials",
				"message": "missing or malformed authorization header",
			})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			log.Warn("token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_credentials",
				"message": "invalid or expired token",
			})
			return
		}

		if claims.Role != user.RoleAdmin {
			log.Warn("non-admin caller on admin route",
				zap.String("path", c.Request.URL.Path),
				zap.String("subject", claims.Subject),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "admin access required",
			})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/creator-campaign-api/internal/models"
	"github.com/noah-isme/creator-campaign-api/internal/service"
	apperrors "github.com/noah-isme/creator-campaign-api/pkg/errors"
	"github.com/noah-isme/creator-campaign-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// JWT protects admin routes by requiring a valid access token. skipAuth is a
// construction-time config value for local development; it injects a
// superadmin identity and is never honored in production builds (the config
// loader refuses to set it there).
func JWT(authService *service.AuthService, skipAuth bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipAuth {
			c.Set(ContextUserKey, &models.JWTClaims{
				UserID:   "dev-admin",
				Role:     models.RoleSuperAdmin,
				Email:    "dev@localhost",
				FullName: "Dev Admin",
			})
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, apperrors.Clone(apperrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

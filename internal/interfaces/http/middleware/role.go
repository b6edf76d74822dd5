package middleware

import (
	"net/http"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when the role check fails (optional)
	OnDenied func(c *gin.Context, requiredRoles []approval.Role)
}

// RequireRole creates middleware that requires a specific approval role
func RequireRole(role approval.Role) gin.HandlerFunc {
	return RequireAnyRole(role)
}

// RequireAnyRole creates middleware that requires any of the specified roles.
// The role is taken from the validated JWT claims; requests without claims
// are rejected as unauthenticated.
func RequireAnyRole(roles ...approval.Role) gin.HandlerFunc {
	return RequireAnyRoleWithConfig(RoleConfig{}, roles...)
}

// RequireAnyRoleWithConfig creates role middleware with custom config
func RequireAnyRoleWithConfig(cfg RoleConfig, roles ...approval.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		actorRole := approval.Role(claims.Role)
		for _, role := range roles {
			if actorRole == role {
				c.Next()
				return
			}
		}

		if cfg.Logger != nil {
			cfg.Logger.Warn("Role check failed",
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role),
				zap.String("path", c.Request.URL.Path),
			)
		}
		if cfg.OnDenied != nil {
			cfg.OnDenied(c, roles)
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient role for this operation",
			},
		})
	}
}

// RequireApprover requires any role that participates in the approval chain
func RequireApprover() gin.HandlerFunc {
	return RequireAnyRole(approval.RoleAccountManager, approval.RoleHOF, approval.RoleAdmin)
}

// RequireSecondTier requires a role that can decide second-tier approvals
func RequireSecondTier() gin.HandlerFunc {
	return RequireAnyRole(approval.RoleHOF, approval.RoleAdmin)
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/dto/response"
	"github.com/tulipbilling/invoicing-api/pkg/utils"
)

// identityKey is the context key the auth middleware stores the identity
// under. Handlers read it back through handler.GetIdentity.
const identityKey = "identity"

// AuthMiddleware creates a JWT authentication middleware. The validated
// claims become the request-scoped identity; nothing downstream touches the
// raw token again.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(identityKey, claims.Identity())
		c.Next()
	}
}

// GetIdentity returns the identity stored by AuthMiddleware, or false when
// the request never passed authentication.
func GetIdentity(c *gin.Context) (entity.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return entity.Identity{}, false
	}
	identity, ok := value.(entity.Identity)
	return identity, ok
}

// RequireRole creates a middleware that gates a route on a role predicate.
func RequireRole(allowed func(enum.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		if !allowed(identity.Role) {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin restricts a route to admin and master accounts.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(enum.Role.CanAdminister)
}

// RequireMaster restricts a route to the master account.
func RequireMaster() gin.HandlerFunc {
	return RequireRole(enum.Role.CanManageUsers)
}

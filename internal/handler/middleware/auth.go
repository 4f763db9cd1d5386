package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"staybook/internal/domain/auth"
	"staybook/internal/handler/httperr"
	"staybook/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const ctxPrincipalKey = "principal"

var (
	errMissingToken = errors.New("missing bearer token")
	errNoPrincipal  = errors.New("principal missing from context")
	errRoleDenied   = errors.New("role not permitted for route")
)

type AuthMiddleware struct {
	tokens *jwt.Service
}

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		role := auth.Role(claims.Role)
		if !role.IsValid() {
			httperr.AbortWithError(c, http.StatusUnauthorized, auth.ErrInvalidRole, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxPrincipalKey, auth.Principal{UserID: claims.UserID, Role: role})
		c.Set("jwt_claims", map[string]any{
			"user_id": claims.UserID.String(),
			"role":    claims.Role,
		})
		c.Next()
	}
}

// RequireRole guards host/admin-only route groups; must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
			return
		}

		for _, r := range roles {
			if principal.Role == r || principal.Role == auth.RoleAdmin {
				c.Next()
				return
			}
		}

		httperr.AbortWithError(c, http.StatusForbidden, errRoleDenied, "Insufficient permissions", nil)
	}
}

func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return auth.Principal{}, false
	}

	p, ok := v.(auth.Principal)
	return p, ok
}

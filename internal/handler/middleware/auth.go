package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"shop-backend/internal/domain/admin"
	"shop-backend/internal/handler/httperr"
	"shop-backend/internal/pkg/cookie"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrUnauthenticated = errs.New("admin authentication required")

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxAdminIDKey   = "admin_id"
	ctxAdminNameKey = "admin_username"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAdmin accepts the admin token from the session cookie or a bearer header.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, ErrUnauthenticated, "Access token required", nil)
			return
		}

		adminID, username, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.Mark(err, ErrUnauthenticated), "Invalid or expired token", nil)
			return
		}

		c.Set(ctxAdminIDKey, adminID)
		c.Set(ctxAdminNameKey, username)
		c.Set("jwt_claims", map[string]any{
			"admin_id": adminID.String(),
			"username": username.Value(),
		})
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetAdminToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetAdminID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxAdminIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetAdminUsername(c *gin.Context) (admin.Username, bool) {
	v, exists := c.Get(ctxAdminNameKey)
	if !exists {
		return admin.Username{}, false
	}
	name, ok := v.(admin.Username)
	return name, ok
}

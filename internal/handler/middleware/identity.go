package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/handler/httperr"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/cookie"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/commands"
)

const (
	CartIDHeader = "X-Cart-ID"
	ctxCartIDKey = "cart_id"
)

// Fingerprint resolves the visitor's cart id: an explicit X-Cart-ID header or
// cart cookie wins, otherwise a hash of the request's stable headers and IP.
// The resolved id is written back as the cart cookie, refreshed for maxAge.
func Fingerprint(cfg config.CookieConfig, maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(CartIDHeader)
		if raw == "" {
			raw = cookie.GetCartID(c)
		}
		if raw == "" {
			raw = fingerprintOf(c)
		}

		id, err := cart.NewID(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errs.ErrInvalidInput), err.Error(), nil)
			return
		}

		c.Set(ctxCartIDKey, id)
		c.Header(CartIDHeader, id.String())
		cookie.SetCartID(c, cfg, id.String(), maxAge)
		c.Next()
	}
}

func fingerprintOf(c *gin.Context) string {
	h := sha256.New()
	for _, part := range []string{
		c.GetHeader("User-Agent"),
		c.GetHeader("Accept"),
		c.GetHeader("Accept-Language"),
		c.GetHeader("Accept-Encoding"),
		c.ClientIP(),
	} {
		h.Write([]byte(strings.TrimSpace(part)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// EnsureCart creates an empty cart on first contact so every cart route
// operates on an existing cart. Must run after Fingerprint.
func EnsureCart(carts commands.CartCommands) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetCartID(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("cart id missing from context"), "Internal server error", nil)
			return
		}

		created, err := carts.EnsureCart(c.Request.Context(), id)
		if err != nil {
			httperr.Abort(c, errs.Wrap(err, "ensure cart"))
			return
		}
		if created {
			slog.Debug("cart created", "cart_id", id.String())
		}
		c.Next()
	}
}

func GetCartID(c *gin.Context) (cart.ID, bool) {
	v, exists := c.Get(ctxCartIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(cart.ID)
	return id, ok
}

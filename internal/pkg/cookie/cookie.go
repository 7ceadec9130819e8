package cookie

import (
	"net/http"
	"time"

	"shop-backend/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AdminTokenCookieName = "admin_token"
	CartIDCookieName     = "cart_id"
)

func SetAdminToken(c *gin.Context, cfg config.CookieConfig, token string, expiry time.Duration) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(AdminTokenCookieName, token, int(expiry.Seconds()), "/", cfg.Domain, cfg.Secure, true)
}

func ClearAdminToken(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(AdminTokenCookieName, "", -1, "/", cfg.Domain, cfg.Secure, true)
}

func GetAdminToken(c *gin.Context) string {
	token, _ := c.Cookie(AdminTokenCookieName)
	return token
}

// SetCartID pins the visitor to a cart id so later requests resolve to it
// even when their fingerprint headers change.
func SetCartID(c *gin.Context, cfg config.CookieConfig, id string, expiry time.Duration) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(CartIDCookieName, id, int(expiry.Seconds()), "/", cfg.Domain, cfg.Secure, true)
}

func GetCartID(c *gin.Context) string {
	id, _ := c.Cookie(CartIDCookieName)
	return id
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

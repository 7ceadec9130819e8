package api

import (
	"net/http"
	"time"

	reqdto "shop-backend/internal/handler/dto/request"
	resdto "shop-backend/internal/handler/dto/response"
	"shop-backend/internal/handler/httperr"
	"shop-backend/internal/handler/middleware"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/cookie"
	"shop-backend/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth      commands.AuthCommands
	cookieCfg config.CookieConfig
}

func NewAuthHandler(auth commands.AuthCommands, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		cookieCfg: cfg.Cookie,
	}
}

// @Summary Admin login
// @Description Login with username and password; the token is also set as an HttpOnly cookie
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		status := httperr.StatusFor(err)
		if status != http.StatusUnauthorized {
			httperr.Abort(c, err)
			return
		}
		// never tell which of username or password was wrong
		httperr.AbortWithError(c, status, err, "Invalid username or password", nil)
		return
	}

	cookie.SetAdminToken(c, h.cookieCfg, res.AccessToken, time.Until(res.ExpiresAt))
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: res.AccessToken,
		AdminID:     res.AdminID,
		Username:    res.Username,
		ExpiresAt:   res.ExpiresAt,
	})
}

// @Summary Admin logout
// @Tags admin
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAdminToken(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Current admin
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} httperr.Response
// @Router /admin/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id, _ := middleware.GetAdminID(c)
	name, _ := middleware.GetAdminUsername(c)
	c.JSON(http.StatusOK, gin.H{
		"adminId":  id.String(),
		"username": name.Value(),
	})
}

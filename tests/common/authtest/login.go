//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"shop-backend/internal/pkg/cookie"
	"shop-backend/tests/common/builder"
	"shop-backend/tests/common/dbtest"
	"shop-backend/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func LoginAdmin(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	body := builder.NewAuthBuilder().WithUsername(username).WithPassword(password).BuildDTO()
	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/admin/login", body, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	tokenCookie := httptest.ExtractCookie(w, cookie.AdminTokenCookieName)
	require.NotNil(t, tokenCookie, "Admin token not found in cookies")
	require.NotEmpty(t, tokenCookie.Value, "Admin token cookie is empty")

	return tokenCookie.Value
}

func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, username string) string {
	t.Helper()
	dbtest.CreateTestAdmin(t, db, username, builder.DefaultPassword)
	return LoginAdmin(t, router, username, builder.DefaultPassword)
}

func LogoutAdmin(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, "/api/admin/logout", nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}

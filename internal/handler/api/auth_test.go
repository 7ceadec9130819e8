//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"shop-backend/internal/domain/admin"
	"shop-backend/internal/handler/api"
	resdto "shop-backend/internal/handler/dto/response"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/cookie"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/commands"
	"shop-backend/tests/common/httptest"
	"shop-backend/tests/common/testutil"
	commandsmock "shop-backend/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, config.NewTestConfig())

	s.router.POST("/admin/login", s.handler.Login)
	s.router.POST("/admin/logout", s.handler.Logout)
	s.router.GET("/admin/me", func(c *gin.Context) {
		// stands in for RequireAdmin
		name, _ := admin.NewUsername("shopkeeper")
		c.Set("admin_id", uuid.MustParse("00000000-0000-0000-0000-00000000000a"))
		c.Set("admin_username", name)
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/admin/login"
	reqBody := map[string]any{"username": "shopkeeper", "password": "correct-horse"}
	result := &commands.LoginResult{
		AdminID:     uuid.New(),
		Username:    "shopkeeper",
		AccessToken: "test-jwt-token",
		ExpiresAt:   time.Now().Add(time.Hour),
	}

	s.Run("success: returns token and sets the session cookie", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), "shopkeeper", "correct-horse").
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("test-jwt-token", response.AccessToken)
		s.Equal(result.AdminID, response.AdminID)

		c := httptest.ExtractCookie(rec, cookie.AdminTokenCookieName)
		s.Require().NotNil(c)
		s.Equal("test-jwt-token", c.Value)
		s.True(c.HttpOnly)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseAuth{
			{name: "missing username", mutate: testutil.Field("username", nil), expectCode: http.StatusBadRequest},
			{name: "missing password", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
			{name: "username too short", mutate: testutil.Field("username", "ab"), expectCode: http.StatusBadRequest},
			{name: "password boundary invalid (7 chars)", mutate: testutil.Field("password", strings.Repeat("a", 7)), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{"invalid credentials", commands.ErrAuthenticationFailed, http.StatusUnauthorized, "Invalid username or password"},
			{"inactive account", commands.ErrAdminInactive, http.StatusUnauthorized, "Invalid username or password"},
			{"internal server error", errs.New("database error"), http.StatusInternalServerError, "Internal Server Error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), "shopkeeper", "correct-horse").
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/logout", nil, "bearer-token")
	s.Equal(http.StatusNoContent, rec.Code)

	c := httptest.ExtractCookie(rec, cookie.AdminTokenCookieName)
	s.Require().NotNil(c)
	s.Empty(c.Value)
}

func (s *AuthHandlerTestSuite) TestMe() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/me", nil, "")

	var response map[string]string
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Equal("shopkeeper", response["username"])
	s.Equal("00000000-0000-0000-0000-00000000000a", response["adminId"])
}

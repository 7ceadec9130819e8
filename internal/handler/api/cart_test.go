//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/handler/api"
	resdto "shop-backend/internal/handler/dto/response"
	"shop-backend/internal/handler/middleware"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/commands"
	"shop-backend/internal/usecase/shared"
	"shop-backend/tests/common/httptest"
	"shop-backend/tests/common/testutil"
	commandsmock "shop-backend/tests/mock/commands"
	queriesmock "shop-backend/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testCartID = cart.ID("cart-test-0001")

var cartHeaders = map[string]string{middleware.CartIDHeader: testCartID.String()}

type CartHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockCarts   *commandsmock.MockCartCommands
	mockQueries *queriesmock.MockCartQueries
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCarts = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCartQueries(s.mockCtrl)
	h := api.NewCartHandler(s.mockCarts, s.mockQueries)

	g := s.router.Group("/cart", middleware.Fingerprint(config.CookieConfig{}, time.Hour))
	g.GET("", h.GetCart)
	g.DELETE("", h.EmptyCart)
	g.PUT("/items/:productId", h.AddItem)
	g.DELETE("/items/:productId", h.RemoveItem)
	g.PUT("/shipping-method", h.SetShippingMethod)
	g.DELETE("/shipping-method", h.ClearShippingMethod)
	g.PUT("/customer", h.SetCustomerDetails)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func sampleCart(productID uuid.UUID, amount int) *cart.Cart {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	var items []cart.LineItem
	if amount > 0 {
		items = []cart.LineItem{{ProductID: productID, Amount: amount}}
	}
	return cart.Reconstruct(testCartID, items, nil, nil, nil, now, now.Add(15*time.Minute))
}

func (s *CartHandlerTestSuite) TestGetCart() {
	s.Run("success: returns the cart resolved from the header", func() {
		s.mockQueries.EXPECT().GetCart(gomock.Any(), testCartID).
			Return(sampleCart(uuid.New(), 2), nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/cart", nil, cartHeaders)

		var resp resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(testCartID.String(), resp.ID)
		s.Len(resp.Items, 1)
		httptest.AssertHeaders(s.T(), rec, map[string]string{middleware.CartIDHeader: testCartID.String()})
	})

	s.Run("error: malformed explicit cart id", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/cart", nil,
			map[string]string{middleware.CartIDHeader: "bad id!"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "cart id")
	})

	s.Run("fingerprint: identical requests resolve to the same cart", func() {
		var seen []cart.ID
		s.mockQueries.EXPECT().GetCart(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id cart.ID) (*cart.Cart, error) {
				seen = append(seen, id)
				return sampleCart(uuid.New(), 0), nil
			}).Times(2)

		headers := map[string]string{"User-Agent": "test-agent/1.0", "Accept-Language": "he-IL"}
		httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/cart", nil, headers)
		httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/cart", nil, headers)

		s.Require().Len(seen, 2)
		s.Equal(seen[0], seen[1])
		s.Len(seen[0].String(), 64)
	})
}

func (s *CartHandlerTestSuite) TestAddItem() {
	productID := uuid.New()
	url := "/cart/items/" + productID.String()

	s.Run("success: amount defaults to one", func() {
		s.mockCarts.EXPECT().AddItem(gomock.Any(), testCartID, productID, 1).
			Return(sampleCart(productID, 1), nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, url, nil, cartHeaders)
		var resp resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(1, resp.Items[0].Amount)
	})

	s.Run("success: explicit amount", func() {
		s.mockCarts.EXPECT().AddItem(gomock.Any(), testCartID, productID, 4).
			Return(sampleCart(productID, 4), nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, url+"?amount=4", nil, cartHeaders)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: request validation", func() {
		cases := []struct {
			name string
			path string
		}{
			{name: "product id is not a uuid", path: "/cart/items/not-a-uuid"},
			{name: "amount is not a number", path: url + "?amount=lots"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, tc.path, nil, cartHeaders)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps engine errors to statuses", func() {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{
				name:   "out of stock",
				err:    errs.Classify(errs.New("temp stock 0"), commands.ErrProductOutOfStock, errs.ErrInsufficientStock),
				status: http.StatusConflict,
			},
			{
				name:   "unknown product",
				err:    errs.Classify(errs.New("no rows"), shared.ErrProductNotFound, errs.ErrNotFound),
				status: http.StatusNotFound,
			},
			{
				name:   "invalid amount",
				err:    errs.Mark(cart.ErrInvalidAmount, errs.ErrInvalidInput),
				status: http.StatusBadRequest,
			},
			{
				name:   "unexpected failure",
				err:    errs.New("connection reset"),
				status: http.StatusInternalServerError,
			},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCarts.EXPECT().AddItem(gomock.Any(), testCartID, productID, 1).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, url, nil, cartHeaders)
				httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
			})
		}
	})

	s.Run("error: server errors do not leak details", func() {
		s.mockCarts.EXPECT().AddItem(gomock.Any(), testCartID, productID, 1).
			Return(nil, errs.New("pq: password authentication failed")).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, url, nil, cartHeaders)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal Server Error")
		s.NotContains(rec.Body.String(), "password")
	})
}

func (s *CartHandlerTestSuite) TestRemoveItem() {
	productID := uuid.New()

	s.Run("success", func() {
		s.mockCarts.EXPECT().RemoveItem(gomock.Any(), testCartID, productID, 2).
			Return(sampleCart(productID, 1), nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodDelete,
			"/cart/items/"+productID.String()+"?amount=2", nil, cartHeaders)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: item not in cart", func() {
		s.mockCarts.EXPECT().RemoveItem(gomock.Any(), testCartID, productID, 1).
			Return(nil, errs.Mark(cart.ErrItemNotInCart, errs.ErrNotFound)).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodDelete,
			"/cart/items/"+productID.String(), nil, cartHeaders)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not in the cart")
	})
}

func (s *CartHandlerTestSuite) TestEmptyCart() {
	s.mockCarts.EXPECT().EmptyCart(gomock.Any(), testCartID).
		Return(sampleCart(uuid.Nil, 0), nil).Times(1)

	rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodDelete, "/cart", nil, cartHeaders)
	var resp resdto.CartResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
	s.Empty(resp.Items)
}

func (s *CartHandlerTestSuite) TestShippingMethod() {
	methodID := uuid.New()

	s.Run("success: set", func() {
		s.mockCarts.EXPECT().SetShippingMethod(gomock.Any(), testCartID, methodID).
			Return(sampleCart(uuid.New(), 1), nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, "/cart/shipping-method",
			map[string]any{"shippingMethodId": methodID}, cartHeaders)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: missing body", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, "/cart/shipping-method",
			map[string]any{}, cartHeaders)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: no slots left", func() {
		s.mockCarts.EXPECT().SetShippingMethod(gomock.Any(), testCartID, methodID).
			Return(nil, errs.Classify(nil, commands.ErrShippingUnavailable, errs.ErrInsufficientStock)).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, "/cart/shipping-method",
			map[string]any{"shippingMethodId": methodID}, cartHeaders)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("success: clear", func() {
		s.mockCarts.EXPECT().ClearShippingMethod(gomock.Any(), testCartID).
			Return(sampleCart(uuid.New(), 1), nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodDelete, "/cart/shipping-method", nil, cartHeaders)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *CartHandlerTestSuite) TestSetCustomerDetails() {
	body := map[string]any{
		"fullName":    "Dana Levi",
		"email":       "dana@example.com",
		"phone":       "050-1234567",
		"address":     "Herzl",
		"houseNumber": 12,
	}

	s.Run("success", func() {
		s.mockCarts.EXPECT().SetCustomerDetails(gomock.Any(), testCartID, commands.CustomerInput{
			FullName: "Dana Levi", Email: "dana@example.com", Phone: "050-1234567", Address: "Herzl", HouseNumber: 12,
		}).Return(sampleCart(uuid.New(), 1), nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, "/cart/customer", body, cartHeaders)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: missing required fields", func() {
		for _, field := range []string{"fullName", "email", "phone", "address"} {
			s.Run(field, func() {
				req := testutil.DtoMap(s.T(), body, testutil.Field(field, nil))
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, "/cart/customer", req, cartHeaders)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: domain validation", func() {
		s.mockCarts.EXPECT().SetCustomerDetails(gomock.Any(), testCartID, gomock.Any()).
			Return(nil, errs.Classify(errs.New("bad email"), commands.ErrInvalidCustomer, errs.ErrInvalidInput)).Times(1)

		req := testutil.DtoMap(s.T(), body, testutil.Field("email", "nope"))
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, "/cart/customer", req, cartHeaders)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "bad email")
	})
}

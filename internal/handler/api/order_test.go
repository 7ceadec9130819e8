//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/domain/order"
	"shop-backend/internal/handler/api"
	resdto "shop-backend/internal/handler/dto/response"
	"shop-backend/internal/handler/middleware"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/commands"
	"shop-backend/internal/usecase/queries"
	"shop-backend/internal/usecase/shared"
	"shop-backend/tests/common/httptest"
	commandsmock "shop-backend/tests/mock/commands"
	queriesmock "shop-backend/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockOrders  *commandsmock.MockOrderCommands
	mockQueries *queriesmock.MockOrderQueries
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockOrders = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	h := api.NewOrderHandler(s.mockOrders, s.mockQueries)

	s.router.POST("/orders", middleware.Fingerprint(config.CookieConfig{}, time.Hour), h.CreateOrder)
	s.router.DELETE("/orders", middleware.Fingerprint(config.CookieConfig{}, time.Hour), h.CancelOrder)
	s.router.POST("/orders/payment-callback", h.PaymentCallback)
	s.router.GET("/orders", h.ListOrders)
	s.router.GET("/orders/:id", h.GetOrder)
	s.router.POST("/orders/:id/resend-notification", h.ResendNotification)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func sampleOrder(status order.Status) *order.Order {
	id := uuid.New()
	free := inventory.Money(10000)
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := order.Snapshot{
		Version: order.SnapshotVersion,
		OrderID: id,
		CartID:  testCartID.String(),
		Items: []order.SnapshotItem{
			{ProductID: uuid.New(), Name: "Fusilli", UnitPrice: 1100, Amount: 2, Subtotal: 2200},
		},
		Shipping: order.SnapshotShipping{
			ID: uuid.New(), Name: "Courier", Type: inventory.ShippingDelivery, Price: 2500, FreeAbove: &free, Charge: 2500,
		},
		Customer:   cart.CustomerDetails{FullName: "Dana Levi", Email: "dana@example.com", Phone: "0501234567", Address: "Herzl", HouseNumber: 3},
		ItemsTotal: 2200,
		Total:      4700,
		CapturedAt: now,
	}
	var txn *order.Transaction
	if status == order.StatusApproved {
		txn = &order.Transaction{TransactionID: "t-9", ProcessID: "p-9", Sum: 4700, CardSuffix: "4242"}
	}
	return order.Reconstruct(id, testCartID.String(), status, snap,
		order.PaymentProcess{ProcessID: "p-9", URL: "https://pay.example/p-9"}, txn, now, now)
}

func (s *OrderHandlerTestSuite) TestCreateOrder() {
	orderID := uuid.New()
	payment := order.PaymentProcess{ProcessID: "p-1", URL: "https://pay.example/p-1"}

	s.Run("success: 201 for a new order", func() {
		s.mockOrders.EXPECT().CreateOrder(gomock.Any(), testCartID).
			Return(&commands.CheckoutResult{OrderID: orderID, Payment: payment}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/orders", nil, cartHeaders)
		var resp resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(resdto.CheckoutResponse{OrderID: orderID, ProcessID: "p-1", PaymentURL: payment.URL}, resp)
	})

	s.Run("success: 200 when the pending order is replayed", func() {
		s.mockOrders.EXPECT().CreateOrder(gomock.Any(), testCartID).
			Return(&commands.CheckoutResult{OrderID: orderID, Payment: payment, Replayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/orders", nil, cartHeaders)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: maps failures", func() {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{"cart not ready", errs.Classify(cart.ErrEmptyCart, commands.ErrCartNotCheckoutReady, errs.ErrInvalidInput), http.StatusBadRequest},
			{"gateway down", errs.Classify(errs.New("dial tcp"), commands.ErrPaymentUnavailable, errs.ErrUpstreamFailure), http.StatusBadGateway},
			{"cart changed meanwhile", errs.Classify(nil, commands.ErrCartChanged, errs.ErrConflict), http.StatusConflict},
			{"cart gone", errs.Classify(nil, shared.ErrCartNotFound, errs.ErrNotFound), http.StatusNotFound},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockOrders.EXPECT().CreateOrder(gomock.Any(), testCartID).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/orders", nil, cartHeaders)
				httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
			})
		}
	})
}

func (s *OrderHandlerTestSuite) TestCancelOrder() {
	s.Run("success", func() {
		o := sampleOrder(order.StatusCancelled)
		s.mockOrders.EXPECT().CancelOrder(gomock.Any(), testCartID).Return(o, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodDelete, "/orders", nil, cartHeaders)
		var resp resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("cancelled", resp.Status)
	})

	s.Run("error: order not pending", func() {
		s.mockOrders.EXPECT().CancelOrder(gomock.Any(), testCartID).
			Return(nil, errs.Classify(nil, commands.ErrOrderNotPending, errs.ErrConflict)).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodDelete, "/orders", nil, cartHeaders)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func callbackBody(orderID, cartID string) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"transactionId": "t-123",
			"processId":     "p-1",
			"sum":           47.0,
			"paymentType":   "credit",
			"cardSuffix":    "4242",
			"fullName":      "Dana Levi",
			"customFields":  map[string]any{"cField1": orderID, "cField2": cartID},
		},
	}
}

func (s *OrderHandlerTestSuite) TestPaymentCallback() {
	orderID := uuid.New()

	s.Run("success: forwards the parsed callback", func() {
		want := commands.PaymentCallback{
			OrderID: orderID,
			CartID:  testCartID,
			Transaction: order.Transaction{
				TransactionID: "t-123", ProcessID: "p-1", Sum: 4700,
				PaymentType: "credit", CardSuffix: "4242", PayerName: "Dana Levi",
			},
		}
		s.mockOrders.EXPECT().HandlePaymentCallback(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got commands.PaymentCallback) (*order.Order, error) {
				if diff := cmp.Diff(want, got); diff != "" {
					s.T().Errorf("callback mismatch (-want +got):\n%s", diff)
				}
				return sampleOrder(order.StatusApproved), nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/payment-callback",
			callbackBody(orderID.String(), testCartID.String()), "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: malformed references", func() {
		for name, body := range map[string]map[string]any{
			"bad order id": callbackBody("not-a-uuid", testCartID.String()),
			"bad cart id":  callbackBody(orderID.String(), "x"),
		} {
			s.Run(name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/payment-callback", body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: gateway refuses the transaction", func() {
		s.mockOrders.EXPECT().HandlePaymentCallback(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("declined"), errs.ErrUpstreamFailure)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/payment-callback",
			callbackBody(orderID.String(), testCartID.String()), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "")
	})

	s.Run("error: stock finalization failed", func() {
		s.mockOrders.EXPECT().HandlePaymentCallback(gomock.Any(), gomock.Any()).
			Return(nil, errs.Classify(errs.New("constraint"), commands.ErrStockFinalizeFailure, errs.ErrFatal)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/payment-callback",
			callbackBody(orderID.String(), testCartID.String()), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})
}

func (s *OrderHandlerTestSuite) TestGetOrder() {
	s.Run("success: snapshot is mapped into the response", func() {
		o := sampleOrder(order.StatusApproved)
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), o.ID()).Return(o, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+o.ID().String(), nil, "")
		var resp resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)

		s.Equal(o.ID(), resp.ID)
		s.Equal("approved", resp.Status)
		s.Require().Len(resp.Items, 1)
		s.Equal(resdto.OrderItemResponse{
			ProductID: o.Snapshot().Items[0].ProductID, Name: "Fusilli", UnitPrice: 1100, Amount: 2, Subtotal: 2200,
		}, resp.Items[0])
		s.Equal("Courier", resp.Shipping.Name)
		s.Equal("delivery", resp.Shipping.Type)
		s.Require().NotNil(resp.Shipping.FreeAbove)
		s.Equal(int64(10000), *resp.Shipping.FreeAbove)
		s.Equal("dana@example.com", resp.Customer.Email)
		s.Equal(int64(4700), resp.Total)
		s.Require().NotNil(resp.Transaction)
		s.Equal("4242", resp.Transaction.CardSuffix)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/abc", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid order ID format")
	})

	s.Run("error: not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), id).
			Return(nil, errs.Classify(nil, shared.ErrOrderNotFound, errs.ErrNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "order not found")
	})
}

func (s *OrderHandlerTestSuite) TestListOrders() {
	s.Run("success: filters by status and returns the next cursor", func() {
		approved := order.StatusApproved
		s.mockQueries.EXPECT().ListOrders(gomock.Any(), &approved, (*queries.Cursor)(nil), 2).
			Return([]*order.Order{sampleOrder(approved), sampleOrder(approved)}, &queries.Cursor{After: "next-page"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?status=approved&limit=2", nil, "")
		var resp resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp.Orders, 2)
		s.Equal("next-page", resp.NextCursor)
	})

	s.Run("error: unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?status=shipped", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: bad cursor", func() {
		s.mockQueries.EXPECT().ListOrders(gomock.Any(), gomock.Nil(), &queries.Cursor{After: "garbage"}, 0).
			Return(nil, nil, errs.Wrap(queries.ErrInvalidCursor, "decode")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?cursor=garbage", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid cursor")
	})
}

func (s *OrderHandlerTestSuite) TestResendNotification() {
	id := uuid.New()

	s.Run("success", func() {
		s.mockOrders.EXPECT().ResendNotification(gomock.Any(), id).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/"+id.String()+"/resend-notification", nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: order not approved", func() {
		s.mockOrders.EXPECT().ResendNotification(gomock.Any(), id).
			Return(errs.Classify(nil, commands.ErrOrderNotApproved, errs.ErrConflict)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/"+id.String()+"/resend-notification", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

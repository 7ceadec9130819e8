//go:build e2e

package order_test

import (
	"net/http"
	"testing"

	resdto "shop-backend/internal/handler/dto/response"
	"shop-backend/internal/handler/middleware"
	"shop-backend/tests/common/authtest"
	"shop-backend/tests/common/builder"
	"shop-backend/tests/common/dbtest"
	"shop-backend/tests/common/httptest"
	"shop-backend/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	ordersURL   = "/api/orders"
	callbackURL = "/api/orders/payment-callback"
)

type orderSuite struct {
	e2e.SharedSuite
}

func TestOrderSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(orderSuite))
}

type fixture struct {
	cartID    string
	productID uuid.UUID
	methodID  uuid.UUID
	headers   map[string]string
}

// readyCart fills a cart with two units, a pickup slot and customer details.
func (s *orderSuite) readyCart(cartID string) fixture {
	t := s.T()
	f := fixture{
		cartID:    cartID,
		productID: dbtest.CreateTestProduct(t, s.DB, "Challah", 2000, 5),
		methodID:  dbtest.CreateTestShippingMethod(t, s.DB, "Store pickup", 0, 3),
		headers:   map[string]string{middleware.CartIDHeader: cartID},
	}

	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPut,
		"/api/cart/items/"+f.productID.String()+"?amount=2", nil, f.headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPut,
		"/api/cart/shipping-method", map[string]any{"shippingMethodId": f.methodID}, f.headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPut,
		"/api/cart/customer", builder.NewCustomerBuilder().BuildDTO(), f.headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	return f
}

func (s *orderSuite) checkout(f fixture, expectedStatus int) resdto.CheckoutResponse {
	var body resdto.CheckoutResponse
	w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, ordersURL, nil, f.headers)
	httptest.AssertSuccessResponse(s.T(), w, expectedStatus, &body)
	return body
}

func callbackBody(orderID uuid.UUID, cartID, txnID string) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"transactionId": txnID,
			"processId":     "1001",
			"sum":           40.0,
			"paymentType":   "CC",
			"cardSuffix":    "4242",
			"fullName":      "Dana Levi",
			"payerEmail":    "dana@example.com",
			"customFields": map[string]any{
				"cField1": orderID.String(),
				"cField2": cartID,
			},
		},
	}
}

func (s *orderSuite) TestCheckoutIsIdempotent() {
	f := s.readyCart("cart-order-0001")

	first := s.checkout(f, http.StatusCreated)
	s.NotEqual(uuid.Nil, first.OrderID)
	s.NotEmpty(first.PaymentURL)
	s.False(first.Replayed)

	second := s.checkout(f, http.StatusOK)
	s.Equal(first.OrderID, second.OrderID)
	s.Equal(first.PaymentURL, second.PaymentURL)
	s.True(second.Replayed)

	creates := s.Payment.Creates()
	require.Len(s.T(), creates, 1)
	s.Equal(first.OrderID.String(), creates[0].Get("cField1"))
	s.Equal(f.cartID, creates[0].Get("cField2"))
	s.Equal("40.00", creates[0].Get("sum"))
}

func (s *orderSuite) TestCheckoutRequiresCompleteCart() {
	productID := dbtest.CreateTestProduct(s.T(), s.DB, "Bagel", 600, 5)
	headers := map[string]string{middleware.CartIDHeader: "cart-order-0002"}

	httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPut,
		"/api/cart/items/"+productID.String(), nil, headers)

	w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, ordersURL, nil, headers)
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
	s.Empty(s.Payment.Creates())
}

func (s *orderSuite) TestGatewayFailureLeavesCartRetryable() {
	f := s.readyCart("cart-order-0003")

	s.Payment.FailNext()
	w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, ordersURL, nil, f.headers)
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadGateway, "")

	s.checkout(f, http.StatusCreated)
}

func (s *orderSuite) TestPaymentCallbackApprovesOrder() {
	f := s.readyCart("cart-order-0004")
	res := s.checkout(f, http.StatusCreated)

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, callbackURL,
		callbackBody(res.OrderID, f.cartID, "txn-0001"), "")
	s.Equal(http.StatusNoContent, w.Code, w.Body.String())

	stock, temp := dbtest.ProductStock(s.T(), s.DB, f.productID)
	s.Equal(3, stock)
	s.Equal(3, temp)
	shipStock, shipTemp := dbtest.ShippingStock(s.T(), s.DB, f.methodID)
	s.Equal(2, shipStock)
	s.Equal(2, shipTemp)
	s.False(dbtest.CartExists(s.T(), s.DB, f.cartID))
	s.Equal([]uuid.UUID{res.OrderID}, s.Notifier.Approved())
	s.Len(s.Payment.Approvals(), 1)

	s.Run("a repeated callback is acknowledged without side effects", func() {
		// SetupSubTest resets state, so replay against a fresh approved order.
		g := s.readyCart("cart-order-0005")
		again := s.checkout(g, http.StatusCreated)
		body := callbackBody(again.OrderID, g.cartID, "txn-0002")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, callbackURL, body, "")
		s.Equal(http.StatusNoContent, w.Code, w.Body.String())
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, callbackURL, body, "")
		s.Equal(http.StatusNoContent, w.Code, w.Body.String())

		stock, _ := dbtest.ProductStock(s.T(), s.DB, g.productID)
		s.Equal(3, stock)
		s.Len(s.Notifier.Approved(), 1)
	})
}

func (s *orderSuite) TestPaymentCallbackRejectsForeignCart() {
	f := s.readyCart("cart-order-0006")
	res := s.checkout(f, http.StatusCreated)

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, callbackURL,
		callbackBody(res.OrderID, "cart-someone-else", "txn-0003"), "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")

	_, temp := dbtest.ProductStock(s.T(), s.DB, f.productID)
	s.Equal(3, temp)
	s.Empty(s.Notifier.Approved())
}

func (s *orderSuite) TestCancelOrderKeepsReservations() {
	f := s.readyCart("cart-order-0007")
	first := s.checkout(f, http.StatusCreated)

	var cancelled resdto.OrderResponse
	w := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodDelete, ordersURL, nil, f.headers)
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &cancelled)
	s.Equal("cancelled", cancelled.Status)

	_, temp := dbtest.ProductStock(s.T(), s.DB, f.productID)
	s.Equal(3, temp)

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, callbackURL,
		callbackBody(first.OrderID, f.cartID, "txn-late"), "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")

	second := s.checkout(f, http.StatusCreated)
	s.NotEqual(first.OrderID, second.OrderID)
}

func (s *orderSuite) TestAdminOrderEndpoints() {
	f := s.readyCart("cart-order-0008")
	res := s.checkout(f, http.StatusCreated)

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, ordersURL, nil, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")

	token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "shopkeeper")

	var list resdto.OrderListResponse
	w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, ordersURL+"?status=pending", nil, token)
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
	require.Len(s.T(), list.Orders, 1)
	s.Equal(res.OrderID, list.Orders[0].ID)
	s.Equal(int64(4000), list.Orders[0].Total)

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
		ordersURL+"/"+res.OrderID.String()+"/resend-notification", nil, token)
	httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, callbackURL,
		callbackBody(res.OrderID, f.cartID, "txn-0004"), "")
	s.Equal(http.StatusNoContent, w.Code, w.Body.String())

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
		ordersURL+"/"+res.OrderID.String()+"/resend-notification", nil, token)
	s.Equal(http.StatusNoContent, w.Code, w.Body.String())
	s.Equal([]uuid.UUID{res.OrderID, res.OrderID}, s.Notifier.Approved())

	var got resdto.OrderResponse
	w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, ordersURL+"/"+res.OrderID.String(), nil, token)
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
	s.Equal("approved", got.Status)
	require.NotNil(s.T(), got.Transaction)
	s.Equal("txn-0004", got.Transaction.TransactionID)
}

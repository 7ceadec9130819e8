//go:build unit

package payment_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/domain/order"
	"shop-backend/internal/infra/payment"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/errs"
)

func newGateway(t *testing.T, handler http.HandlerFunc) *payment.Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.PaymentConfig{
		BaseURL:         srv.URL + "/api/light/server/1.0",
		PageCode:        "page-1",
		UserID:          "user-1",
		SuccessURL:      "https://shop.example/ok",
		CancelURL:       "https://shop.example/cancel",
		Timeout:         time.Second,
		BreakerFailures: 2,
		BreakerCooldown: time.Minute,
	}
	return payment.NewGateway(cfg, srv.Client(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func snapshot() order.Snapshot {
	return order.Snapshot{
		Version: order.SnapshotVersion,
		OrderID: uuid.MustParse("6f1c2b1e-1111-4c1e-9e2a-000000000001"),
		CartID:  "cart-0001",
		Items: []order.SnapshotItem{
			{ProductID: uuid.New(), Name: "Spaghetti", UnitPrice: 1250, Amount: 2, Subtotal: 2500},
		},
		Shipping: order.SnapshotShipping{
			ID: uuid.New(), Name: "Courier", Type: inventory.ShippingDelivery, Price: 3000, Charge: 3000,
		},
		Customer: cart.CustomerDetails{
			FullName: "Dana Levi", Email: "dana@example.com", Phone: "0501234567",
			Address: "Herzl", HouseNumber: 12,
		},
		ItemsTotal: 2500,
		Total:      5500,
	}
}

func TestCreatePaymentProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("sends the order as a form and returns the process", func(t *testing.T) {
		g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/light/server/1.0/createPaymentProcess", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "page-1", r.PostForm.Get("pageCode"))
			assert.Equal(t, "user-1", r.PostForm.Get("userId"))
			assert.Equal(t, "55.00", r.PostForm.Get("sum"))
			assert.Equal(t, "6f1c2b1e-1111-4c1e-9e2a-000000000001", r.PostForm.Get("cField1"))
			assert.Equal(t, "cart-0001", r.PostForm.Get("cField2"))
			assert.Equal(t, "Herzl", r.PostForm.Get("cField3"))
			assert.Equal(t, "12", r.PostForm.Get("cField4"))
			assert.Equal(t, "2", r.PostForm.Get("product_data[0][quantity]"))
			assert.Equal(t, "12.50", r.PostForm.Get("product_data[0][price]"))
			assert.Equal(t, "Courier", r.PostForm.Get("product_data[1][item_description]"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"status":1,"data":{"processId":98765,"url":"https://pay.example/p/98765"}}`)
		})

		p, err := g.CreatePaymentProcess(ctx, snapshot())
		require.NoError(t, err)
		assert.Equal(t, order.PaymentProcess{ProcessID: "98765", URL: "https://pay.example/p/98765"}, p)
	})

	t.Run("business rejection is an upstream failure", func(t *testing.T) {
		g := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"status":0,"err":{"id":312,"message":"invalid page code"}}`)
		})

		_, err := g.CreatePaymentProcess(ctx, snapshot())
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrUpstreamFailure))
		assert.True(t, errs.Is(err, payment.ErrGatewayRejected))
		assert.Contains(t, err.Error(), "invalid page code")
	})

	t.Run("process without url is rejected", func(t *testing.T) {
		g := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"status":1,"data":{"processId":"1"}}`)
		})

		_, err := g.CreatePaymentProcess(ctx, snapshot())
		assert.True(t, errs.Is(err, errs.ErrUpstreamFailure))
		assert.True(t, errs.Is(err, payment.ErrGatewayResponse))
	})

	t.Run("garbage body", func(t *testing.T) {
		g := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `<html>oops</html>`)
		})

		_, err := g.CreatePaymentProcess(ctx, snapshot())
		assert.True(t, errs.Is(err, errs.ErrUpstreamFailure))
	})
}

func TestApproveTransaction(t *testing.T) {
	ctx := context.Background()
	txn := order.Transaction{TransactionID: "t-1", ProcessID: "98765", Sum: 5500, PayerName: "Dana Levi"}

	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/light/server/1.0/approveTransaction", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "t-1", r.PostForm.Get("transactionId"))
		assert.Equal(t, "55.00", r.PostForm.Get("sum"))
		assert.Equal(t, "page-1", r.PostForm.Get("pageCode"))
		_, _ = io.WriteString(w, `{"status":1,"data":{}}`)
	})

	require.NoError(t, g.ApproveTransaction(ctx, txn))
}

func TestCircuitBreakerOpensOnOutage(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int32
	g := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for range 2 {
		_, err := g.CreatePaymentProcess(ctx, snapshot())
		require.True(t, errs.Is(err, errs.ErrUpstreamFailure))
	}

	_, err := g.CreatePaymentProcess(ctx, snapshot())
	assert.True(t, errs.Is(err, payment.ErrGatewayOpen))
	assert.True(t, errs.Is(err, errs.ErrUpstreamFailure))
	assert.Equal(t, int32(2), calls.Load())
}

func TestRejectionsDoNotTripBreaker(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int32
	g := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"status":0,"err":{"id":1,"message":"declined"}}`)
	})

	for range 4 {
		_, err := g.CreatePaymentProcess(ctx, snapshot())
		require.True(t, errs.Is(err, payment.ErrGatewayRejected))
	}
	assert.Equal(t, int32(4), calls.Load())
}

func TestCancelledCallersDoNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	g := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"status":1,"data":{"processId":1,"url":"https://pay.example/p/1"}}`)
	})

	gone, cancel := context.WithCancel(context.Background())
	cancel()
	for range 4 {
		_, err := g.CreatePaymentProcess(gone, snapshot())
		require.Error(t, err)
		require.False(t, errs.Is(err, payment.ErrGatewayOpen))
	}

	_, err := g.CreatePaymentProcess(context.Background(), snapshot())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

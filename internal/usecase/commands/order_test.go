//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/domain/order"
	"shop-backend/internal/infra/cache"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/pkg/metrics"
	"shop-backend/internal/usecase/commands"
	"shop-backend/internal/usecase/shared"
	commandsmock "shop-backend/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const orderGrace = 16 * time.Minute

type OrderCommandsTestSuite struct {
	suite.Suite
	ctx       context.Context
	fx        *engineFixture
	mockCtrl  *gomock.Controller
	gateway   *commandsmock.MockPaymentGateway
	notifier  *commandsmock.MockNotifier
	orders    commands.OrderCommands
	productID uuid.UUID
	methodID  uuid.UUID
}

func (s *OrderCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fx = newEngineFixture(s.T())
	s.mockCtrl = gomock.NewController(s.T())
	s.gateway = commandsmock.NewMockPaymentGateway(s.mockCtrl)
	s.notifier = commandsmock.NewMockNotifier(s.mockCtrl)

	s.orders = commands.NewOrderCommands(
		s.fx.store,
		s.gateway,
		s.notifier,
		cache.NopCache{},
		s.fx.clock,
		orderGrace,
		metrics.New(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	s.productID = s.fx.seedProduct(s.T(), 5)
	s.methodID = s.fx.seedShipping(s.T(), 2)
}

func TestOrderCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(OrderCommandsTestSuite))
}

func (s *OrderCommandsTestSuite) fillCart() {
	_, err := s.fx.carts.AddItem(s.ctx, s.fx.cartID, s.productID, 2)
	s.Require().NoError(err)
	_, err = s.fx.carts.SetShippingMethod(s.ctx, s.fx.cartID, s.methodID)
	s.Require().NoError(err)
	_, err = s.fx.carts.SetCustomerDetails(s.ctx, s.fx.cartID, commands.CustomerInput{
		FullName:    "Dana Levi",
		Email:       "dana@example.com",
		Phone:       "0501234567",
		Address:     "Herzl St",
		HouseNumber: 4,
	})
	s.Require().NoError(err)
}

func (s *OrderCommandsTestSuite) checkout() *commands.CheckoutResult {
	s.gateway.EXPECT().CreatePaymentProcess(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snap order.Snapshot) (order.PaymentProcess, error) {
			return order.PaymentProcess{ProcessID: "proc-" + snap.OrderID.String()[:8], URL: "https://pay.example/p"}, nil
		})
	res, err := s.orders.CreateOrder(s.ctx, s.fx.cartID)
	s.Require().NoError(err)
	return res
}

func (s *OrderCommandsTestSuite) cartState() *cart.Cart {
	c, err := s.fx.store.FindByID(s.ctx, s.fx.cartID)
	s.Require().NoError(err)
	return c
}

func (s *OrderCommandsTestSuite) TestCreateOrder() {
	s.Run("snapshots the cart and links a pending order", func() {
		s.fillCart()
		before := s.cartState().ExpiresAt()

		res := s.checkout()

		s.False(res.Replayed)
		o, ok := s.fx.store.Order(res.OrderID)
		s.Require().True(ok)
		s.Equal(order.StatusPending, o.Status())
		s.Equal(res.Payment, o.Payment())
		s.Equal(s.fx.cartID.String(), o.CartID())

		snap := o.Snapshot()
		s.Require().Len(snap.Items, 1)
		s.Equal(2, snap.Items[0].Amount)
		s.Equal(s.methodID, snap.Shipping.ID)
		s.Equal(snap.ItemsTotal+snap.Shipping.Charge, snap.Total)

		c := s.cartState()
		s.Require().NotNil(c.OrderID())
		s.Equal(res.OrderID, *c.OrderID())
		s.Equal(before.Add(orderGrace), c.ExpiresAt())
		// reservations stay with the cart until approval
		p, _ := s.fx.store.Product(s.productID)
		s.Equal(3, p.TempStock())
	})
}

func (s *OrderCommandsTestSuite) TestCreateOrderIsIdempotent() {
	s.fillCart()
	first := s.checkout()

	second, err := s.orders.CreateOrder(s.ctx, s.fx.cartID)
	s.Require().NoError(err)

	s.True(second.Replayed)
	s.Equal(first.OrderID, second.OrderID)
	s.Equal(first.Payment, second.Payment)
}

func (s *OrderCommandsTestSuite) TestCreateOrderRejectsIncompleteCart() {
	_, err := s.fx.carts.AddItem(s.ctx, s.fx.cartID, s.productID, 1)
	s.Require().NoError(err)

	_, err = s.orders.CreateOrder(s.ctx, s.fx.cartID)
	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrCartNotCheckoutReady))
	s.True(errs.Is(err, errs.ErrInvalidInput))
}

func (s *OrderCommandsTestSuite) TestCreateOrderGatewayFailure() {
	s.fillCart()
	before := s.cartState()
	s.gateway.EXPECT().CreatePaymentProcess(gomock.Any(), gomock.Any()).
		Return(order.PaymentProcess{}, errs.Mark(errs.New("connection refused"), errs.ErrUpstreamFailure))

	_, err := s.orders.CreateOrder(s.ctx, s.fx.cartID)
	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrUpstreamFailure))

	after := s.cartState()
	s.Nil(after.OrderID())
	s.Equal(before.ExpiresAt(), after.ExpiresAt())
}

func (s *OrderCommandsTestSuite) TestCancelOrder() {
	s.fillCart()
	original := s.cartState().ExpiresAt()
	res := s.checkout()

	cancelled, err := s.orders.CancelOrder(s.ctx, s.fx.cartID)
	s.Require().NoError(err)
	s.Equal(order.StatusCancelled, cancelled.Status())

	c := s.cartState()
	s.Equal(original, c.ExpiresAt())
	s.Len(c.Items(), 1)
	p, _ := s.fx.store.Product(s.productID)
	s.Equal(3, p.TempStock())

	s.Run("second cancel conflicts", func() {
		_, err := s.orders.CancelOrder(s.ctx, s.fx.cartID)
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrConflict))
	})

	s.Run("checkout after cancel opens a new order", func() {
		next := s.checkout()
		s.NotEqual(res.OrderID, next.OrderID)
		s.False(next.Replayed)
	})
}

func (s *OrderCommandsTestSuite) TestCancelWithoutOrder() {
	_, err := s.orders.CancelOrder(s.ctx, s.fx.cartID)
	s.Require().Error(err)
	s.True(errs.Is(err, shared.ErrOrderNotFound))
	s.True(errs.Is(err, errs.ErrNotFound))
}

func (s *OrderCommandsTestSuite) callback(orderID uuid.UUID) commands.PaymentCallback {
	return commands.PaymentCallback{
		OrderID: orderID,
		CartID:  s.fx.cartID,
		Transaction: order.Transaction{
			TransactionID: "txn-1",
			ProcessID:     "proc",
			Sum:           8180,
		},
	}
}

func (s *OrderCommandsTestSuite) TestPaymentCallback() {
	s.fillCart()
	res := s.checkout()

	s.gateway.EXPECT().ApproveTransaction(gomock.Any(), gomock.Any()).Return(nil)
	s.notifier.EXPECT().OrderApproved(gomock.Any(), gomock.Any()).Return(nil)

	approved, err := s.orders.HandlePaymentCallback(s.ctx, s.callback(res.OrderID))
	s.Require().NoError(err)
	s.Equal(order.StatusApproved, approved.Status())
	s.Require().NotNil(approved.Transaction())
	s.Equal("txn-1", approved.Transaction().TransactionID)

	p, _ := s.fx.store.Product(s.productID)
	s.Equal(3, p.Stock())
	s.Equal(3, p.TempStock())
	m, _ := s.fx.store.ShippingMethod(s.methodID)
	s.Equal(1, m.Stock())
	s.Equal(1, m.TempStock())

	_, err = s.fx.store.FindByID(s.ctx, s.fx.cartID)
	s.True(errs.Is(err, errs.ErrNotFound))

	s.Run("duplicate delivery does not touch stock", func() {
		again, err := s.orders.HandlePaymentCallback(s.ctx, s.callback(res.OrderID))
		s.Require().NoError(err)
		s.Equal(order.StatusApproved, again.Status())
		p, _ := s.fx.store.Product(s.productID)
		s.Equal(3, p.Stock())
	})
}

func (s *OrderCommandsTestSuite) TestPaymentCallbackNotifierFailureIsLoggedOnly() {
	s.fillCart()
	res := s.checkout()

	s.gateway.EXPECT().ApproveTransaction(gomock.Any(), gomock.Any()).Return(nil)
	s.notifier.EXPECT().OrderApproved(gomock.Any(), gomock.Any()).Return(errs.New("broker down"))

	approved, err := s.orders.HandlePaymentCallback(s.ctx, s.callback(res.OrderID))
	s.Require().NoError(err)
	s.Equal(order.StatusApproved, approved.Status())
}

func (s *OrderCommandsTestSuite) TestPaymentCallbackGatewayRejects() {
	s.fillCart()
	res := s.checkout()

	s.gateway.EXPECT().ApproveTransaction(gomock.Any(), gomock.Any()).
		Return(errs.Mark(errs.New("declined"), errs.ErrUpstreamFailure))

	_, err := s.orders.HandlePaymentCallback(s.ctx, s.callback(res.OrderID))
	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrUpstreamFailure))

	o, _ := s.fx.store.Order(res.OrderID)
	s.Equal(order.StatusPending, o.Status())
	p, _ := s.fx.store.Product(s.productID)
	s.Equal(5, p.Stock())
}

func (s *OrderCommandsTestSuite) TestPaymentCallbackFinalizationFailureIsFatal() {
	s.fillCart()
	res := s.checkout()
	// the cart vanished before the callback arrived
	_, err := s.fx.carts.EmptyCart(s.ctx, s.fx.cartID)
	s.Require().NoError(err)

	s.gateway.EXPECT().ApproveTransaction(gomock.Any(), gomock.Any()).Return(nil)

	_, err = s.orders.HandlePaymentCallback(s.ctx, s.callback(res.OrderID))
	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrStockFinalizeFailure))
	s.Equal(errs.ErrFatal, errs.Kind(err))

	o, _ := s.fx.store.Order(res.OrderID)
	s.Equal(order.StatusPending, o.Status())
}

func (s *OrderCommandsTestSuite) TestPaymentCallbackApprovesOrderAndStockTogether() {
	s.fillCart()
	res := s.checkout()

	s.gateway.EXPECT().ApproveTransaction(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.notifier.EXPECT().OrderApproved(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	s.fx.store.FailNext("CommitShipping", errs.New("connection reset"))
	_, err := s.orders.HandlePaymentCallback(s.ctx, s.callback(res.OrderID))
	s.Require().Error(err)
	s.Equal(errs.ErrFatal, errs.Kind(err))

	// nothing from the failed attempt is visible
	o, _ := s.fx.store.Order(res.OrderID)
	s.Equal(order.StatusPending, o.Status())
	p, _ := s.fx.store.Product(s.productID)
	s.Equal(5, p.Stock())
	s.Equal(3, p.TempStock())
	s.NotNil(s.cartState())

	approved, err := s.orders.HandlePaymentCallback(s.ctx, s.callback(res.OrderID))
	s.Require().NoError(err)
	s.Equal(order.StatusApproved, approved.Status())

	p, _ = s.fx.store.Product(s.productID)
	s.Equal(3, p.Stock())
	s.Equal(3, p.TempStock())
	m, _ := s.fx.store.ShippingMethod(s.methodID)
	s.Equal(1, m.Stock())
}

func (s *OrderCommandsTestSuite) TestPaymentCallbackMismatchedCart() {
	s.fillCart()
	res := s.checkout()

	cb := s.callback(res.OrderID)
	cb.CartID = cart.ID("someone-else")
	_, err := s.orders.HandlePaymentCallback(s.ctx, cb)
	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrCallbackMismatch))
}

func (s *OrderCommandsTestSuite) TestPaymentCallbackAfterCancel() {
	s.fillCart()
	res := s.checkout()
	_, err := s.orders.CancelOrder(s.ctx, s.fx.cartID)
	s.Require().NoError(err)

	_, err = s.orders.HandlePaymentCallback(s.ctx, s.callback(res.OrderID))
	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrOrderNotPending))
}

func (s *OrderCommandsTestSuite) TestResendNotification() {
	s.fillCart()
	res := s.checkout()

	err := s.orders.ResendNotification(s.ctx, res.OrderID)
	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrOrderNotApproved))

	s.gateway.EXPECT().ApproveTransaction(gomock.Any(), gomock.Any()).Return(nil)
	s.notifier.EXPECT().OrderApproved(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	_, err = s.orders.HandlePaymentCallback(s.ctx, s.callback(res.OrderID))
	s.Require().NoError(err)

	s.NoError(s.orders.ResendNotification(s.ctx, res.OrderID))

	err = s.orders.ResendNotification(s.ctx, uuid.New())
	s.Require().Error(err)
	s.True(errs.Is(err, shared.ErrOrderNotFound))
}

func TestCheckoutFailsForUnknownCart(t *testing.T) {
	f := newEngineFixture(t)
	ctrl := gomock.NewController(t)
	orders := commands.NewOrderCommands(
		f.store,
		commandsmock.NewMockPaymentGateway(ctrl),
		commandsmock.NewMockNotifier(ctrl),
		cache.NopCache{}, f.clock, orderGrace, metrics.New(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	_, err := orders.CreateOrder(context.Background(), cart.ID("missing-cart"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, shared.ErrCartNotFound))
}

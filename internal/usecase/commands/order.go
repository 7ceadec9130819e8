package commands

import (
	"context"
	"log/slog"
	"time"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/domain/order"
	"shop-backend/internal/pkg/clock"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/pkg/metrics"
	"shop-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=order.go -destination=../../../tests/mock/commands/order_mock.go -package=commandsmock

var (
	ErrCartNotCheckoutReady = errs.New("cart cannot be checked out")
	ErrPaymentUnavailable   = errs.New("payment gateway request failed")
	ErrOrderNotPending      = errs.New("order is no longer pending")
	ErrOrderNotApproved     = errs.New("order is not approved")
	ErrCallbackMismatch     = errs.New("payment callback does not match the order")
	ErrCartChanged          = errs.New("cart changed during checkout")
	ErrNotificationFailed   = errs.New("order notification failed")
)

type CheckoutResult struct {
	OrderID  uuid.UUID
	Payment  order.PaymentProcess
	Replayed bool
}

// PaymentCallback is what the gateway reports after the customer paid.
type PaymentCallback struct {
	OrderID     uuid.UUID
	CartID      cart.ID
	Transaction order.Transaction
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, cartID cart.ID) (*CheckoutResult, error)
	CancelOrder(ctx context.Context, cartID cart.ID) (*order.Order, error)
	HandlePaymentCallback(ctx context.Context, cb PaymentCallback) (*order.Order, error)
	ResendNotification(ctx context.Context, orderID uuid.UUID) error
}

type orderCommandsImpl struct {
	uow      shared.UnitOfWork
	gateway  PaymentGateway
	notifier Notifier
	cache    CartInvalidator
	clock    clock.Clock
	grace    time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	notifier Notifier,
	cache CartInvalidator,
	clock clock.Clock,
	grace time.Duration,
	m *metrics.Metrics,
	logger *slog.Logger,
) OrderCommands {
	return &orderCommandsImpl{
		uow:      uow,
		gateway:  gateway,
		notifier: notifier,
		cache:    cache,
		clock:    clock,
		grace:    grace,
		metrics:  m,
		logger:   logger,
	}
}

// CreateOrder snapshots the cart, opens a payment process and links a new
// pending order to the cart. A cart that already has a pending order gets that
// order's payment process back. The gateway is called outside any transaction.
func (o *orderCommandsImpl) CreateOrder(ctx context.Context, cartID cart.ID) (*CheckoutResult, error) {
	var (
		existing *order.Order
		snapshot order.Snapshot
		linked   *uuid.UUID
	)
	now := o.clock.Now()

	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := lockCart(ctx, tx, cartID)
		if err != nil {
			return err
		}
		linked = c.OrderID()

		if linked != nil {
			prev, err := tx.Orders().Get(ctx, *linked)
			if err != nil && !errs.Is(err, errs.ErrNotFound) {
				return errs.Wrap(err, "load linked order")
			}
			if prev != nil && prev.IsPending() {
				existing = prev
				return nil
			}
		}

		snapshot, err = o.buildSnapshot(ctx, tx, c, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &CheckoutResult{OrderID: existing.ID(), Payment: existing.Payment(), Replayed: true}, nil
	}

	payment, err := o.gateway.CreatePaymentProcess(ctx, snapshot)
	if err != nil {
		o.metrics.PaymentRequests.WithLabelValues("create_process", metrics.ResultError).Inc()
		return nil, errs.Classify(err, ErrPaymentUnavailable, errs.ErrUpstreamFailure)
	}
	o.metrics.PaymentRequests.WithLabelValues("create_process", metrics.ResultOK).Inc()

	pending, err := order.NewPendingOrder(snapshot, payment, now)
	if err != nil {
		return nil, errs.Classify(err, ErrPaymentUnavailable, errs.ErrUpstreamFailure)
	}

	err = o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := lockCart(ctx, tx, cartID)
		if err != nil {
			return err
		}
		if !sameOrder(c.OrderID(), linked) {
			return errs.Mark(ErrCartChanged, errs.ErrConflict)
		}
		if err := tx.Orders().Create(ctx, pending); err != nil {
			return errs.Wrap(err, "create order")
		}
		return tx.Carts().LinkOrder(ctx, cartID, pending.ID(), c.ExpiresAt().Add(o.grace))
	})
	if err != nil {
		return nil, err
	}
	o.invalidate(ctx, cartID)

	o.logger.Info("order created",
		"order_id", pending.ID(),
		"cart_id", cartID,
		"total", snapshot.Total.String(),
	)
	return &CheckoutResult{OrderID: pending.ID(), Payment: payment}, nil
}

// CancelOrder leaves reservations in place; the cart returns to its normal expiry.
func (o *orderCommandsImpl) CancelOrder(ctx context.Context, cartID cart.ID) (*order.Order, error) {
	now := o.clock.Now()

	var cancelled *order.Order
	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := lockCart(ctx, tx, cartID)
		if err != nil {
			return err
		}
		if c.OrderID() == nil {
			return errs.Classify(nil, shared.ErrOrderNotFound, errs.ErrNotFound)
		}

		current, err := tx.Orders().Lock(ctx, *c.OrderID())
		if err != nil {
			return shared.NotFound(err, shared.ErrOrderNotFound)
		}
		if err := current.Cancel(now); err != nil {
			return errs.Classify(err, ErrOrderNotPending, errs.ErrConflict)
		}
		if err := tx.Orders().UpdateStatus(ctx, current); err != nil {
			return errs.Wrap(err, "cancel order")
		}
		if err := tx.Carts().SetExpiry(ctx, cartID, c.ExpiresAt().Add(-o.grace)); err != nil {
			return errs.Wrap(err, "restore cart expiry")
		}
		cancelled = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.invalidate(ctx, cartID)
	return cancelled, nil
}

// HandlePaymentCallback approves the transaction at the gateway, then marks
// the order approved and finalizes stock in one transaction. A repeated
// callback for an approved order is acknowledged without touching stock.
func (o *orderCommandsImpl) HandlePaymentCallback(ctx context.Context, cb PaymentCallback) (*order.Order, error) {
	if err := cb.Transaction.Validate(); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}

	current, err := o.loadOrder(ctx, cb.OrderID)
	if err != nil {
		return nil, err
	}
	if !current.BelongsTo(cb.CartID.String()) {
		return nil, errs.Mark(ErrCallbackMismatch, errs.ErrInvalidInput)
	}
	switch current.Status() {
	case order.StatusApproved:
		return current, nil
	case order.StatusCancelled:
		return nil, errs.Mark(ErrOrderNotPending, errs.ErrConflict)
	}

	if err := o.gateway.ApproveTransaction(ctx, cb.Transaction); err != nil {
		o.metrics.PaymentRequests.WithLabelValues("approve_transaction", metrics.ResultError).Inc()
		return nil, errs.Classify(err, ErrPaymentUnavailable, errs.ErrUpstreamFailure)
	}
	o.metrics.PaymentRequests.WithLabelValues("approve_transaction", metrics.ResultOK).Inc()

	now := o.clock.Now()
	duplicate := false
	err = o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Orders().Lock(ctx, cb.OrderID)
		if err != nil {
			return shared.NotFound(err, shared.ErrOrderNotFound)
		}
		if locked.Status() == order.StatusApproved {
			duplicate = true
			current = locked
			return nil
		}
		if err := locked.Approve(cb.Transaction, now); err != nil {
			return errs.Classify(err, ErrOrderNotPending, errs.ErrConflict)
		}
		if err := tx.Orders().UpdateStatus(ctx, locked); err != nil {
			return errs.Wrap(err, "approve order")
		}
		// The order only becomes approved together with the stock depletion.
		if err := finalizeStock(ctx, tx, cb.CartID); err != nil {
			return errs.Classify(err, ErrStockFinalizeFailure, errs.ErrFatal)
		}
		current = locked
		return nil
	})
	if errs.Is(err, ErrStockFinalizeFailure) {
		o.metrics.CartOperations.WithLabelValues("approve", metrics.ResultError).Inc()
		o.metrics.FatalApprovals.Inc()
		o.logger.Error("paid order stock finalization failed",
			"severity", "FATAL",
			"order_id", cb.OrderID,
			"cart_id", cb.CartID,
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, 12),
		)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if duplicate {
		return current, nil
	}
	o.metrics.CartOperations.WithLabelValues("approve", metrics.ResultOK).Inc()
	o.invalidate(ctx, cb.CartID)

	if err := o.notifier.OrderApproved(ctx, current); err != nil {
		o.metrics.NotificationFailures.Inc()
		o.logger.Warn("order notification failed", "order_id", current.ID(), "error", err.Error())
	}

	o.logger.Info("order approved",
		"order_id", current.ID(),
		"cart_id", cb.CartID,
		"transaction_id", cb.Transaction.TransactionID,
	)
	return current, nil
}

func (o *orderCommandsImpl) ResendNotification(ctx context.Context, orderID uuid.UUID) error {
	current, err := o.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if current.Status() != order.StatusApproved {
		return errs.Mark(ErrOrderNotApproved, errs.ErrConflict)
	}
	if err := o.notifier.OrderApproved(ctx, current); err != nil {
		o.metrics.NotificationFailures.Inc()
		return errs.Classify(err, ErrNotificationFailed, errs.ErrUpstreamFailure)
	}
	return nil
}

func (o *orderCommandsImpl) loadOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var found *order.Order
	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Orders().Get(ctx, id)
		return shared.NotFound(err, shared.ErrOrderNotFound)
	})
	return found, err
}

// buildSnapshot resolves the cart's items and shipping method against the
// current catalog. Anything that no longer resolves is invalid input.
func (o *orderCommandsImpl) buildSnapshot(ctx context.Context, tx shared.Tx, c *cart.Cart, now time.Time) (order.Snapshot, error) {
	if err := c.CheckoutReady(); err != nil {
		return order.Snapshot{}, errs.Classify(err, ErrCartNotCheckoutReady, errs.ErrInvalidInput)
	}

	ids := make([]uuid.UUID, 0, len(c.Items()))
	for _, it := range c.Items() {
		ids = append(ids, it.ProductID)
	}
	products, err := tx.Inventory().ProductsByIDs(ctx, ids)
	if err != nil {
		return order.Snapshot{}, errs.Wrap(err, "load cart products")
	}

	var method *inventory.ShippingMethod
	method, err = tx.Inventory().ShippingMethodByID(ctx, *c.ShippingMethodID())
	if err != nil && !errs.Is(err, errs.ErrNotFound) {
		return order.Snapshot{}, errs.Wrap(err, "load cart shipping method")
	}

	s, err := order.BuildSnapshot(uuid.New(), c, products, method, now)
	if err != nil {
		return order.Snapshot{}, errs.Classify(err, ErrCartNotCheckoutReady, errs.ErrInvalidInput)
	}
	return s, nil
}

func (o *orderCommandsImpl) invalidate(ctx context.Context, id cart.ID) {
	if err := o.cache.Delete(ctx, id); err != nil {
		o.logger.Warn("cart cache invalidation failed", "cart_id", id, "error", err.Error())
	}
}

func sameOrder(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

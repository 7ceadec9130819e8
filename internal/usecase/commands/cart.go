package commands

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/pkg/clock"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/pkg/metrics"
	"shop-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=cart.go -destination=../../../tests/mock/commands/cart_mock.go -package=commandsmock

var (
	ErrProductOutOfStock    = errs.New("not enough product stock")
	ErrShippingUnavailable  = errs.New("shipping method has no free slots")
	ErrCartNotExpired       = errs.New("cart has not expired")
	ErrInvalidCustomer      = errs.New("invalid customer details")
	ErrStockFinalizeFailure = errs.New("failed to finalize stock for paid cart")
)

// CustomerInput is the unvalidated customer form of a cart.
type CustomerInput struct {
	FullName    string
	Email       string
	Phone       string
	Address     string
	HouseNumber int
	Apartment   string
}

// CartCommands is the only path through which cart contents and inventory
// counters change. Every method runs in one transaction holding the cart row.
type CartCommands interface {
	EnsureCart(ctx context.Context, id cart.ID) (bool, error)
	AddItem(ctx context.Context, id cart.ID, productID uuid.UUID, amount int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, id cart.ID, productID uuid.UUID, amount int) (*cart.Cart, error)
	SetShippingMethod(ctx context.Context, id cart.ID, methodID uuid.UUID) (*cart.Cart, error)
	ClearShippingMethod(ctx context.Context, id cart.ID) (*cart.Cart, error)
	SetCustomerDetails(ctx context.Context, id cart.ID, in CustomerInput) (*cart.Cart, error)
	EmptyCart(ctx context.Context, id cart.ID) (*cart.Cart, error)
	// ExpireCart empties the cart only if it is still past its expiry once locked.
	ExpireCart(ctx context.Context, id cart.ID) (*cart.Cart, error)
	// ApproveCart turns the cart's reservations into permanent stock
	// depletion and deletes it.
	ApproveCart(ctx context.Context, id cart.ID) error
}

type cartCommandsImpl struct {
	uow     shared.UnitOfWork
	cache   CartInvalidator
	clock   clock.Clock
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewCartCommands(
	uow shared.UnitOfWork,
	cache CartInvalidator,
	clock clock.Clock,
	ttl time.Duration,
	m *metrics.Metrics,
	logger *slog.Logger,
) CartCommands {
	return &cartCommandsImpl{
		uow:     uow,
		cache:   cache,
		clock:   clock,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

func (c *cartCommandsImpl) EnsureCart(ctx context.Context, id cart.ID) (bool, error) {
	fresh := cart.NewCart(id, c.clock.Now(), c.ttl)

	var created bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		created, err = tx.Carts().Ensure(ctx, fresh)
		return err
	})
	if err != nil {
		return false, errs.Wrap(err, "ensure cart")
	}
	// A cart reusing the id of a deleted one must not see its cached copy.
	if created {
		if cerr := c.cache.Delete(ctx, id); cerr != nil {
			c.logger.Warn("cart cache invalidation failed", "cart_id", id, "error", cerr.Error())
		}
	}
	return created, nil
}

func (c *cartCommandsImpl) AddItem(ctx context.Context, id cart.ID, productID uuid.UUID, amount int) (*cart.Cart, error) {
	const op = "add_item"
	if err := cart.ValidateAmount(amount); err != nil {
		return nil, c.finish(ctx, op, id, errs.Mark(err, errs.ErrInvalidInput))
	}

	var updated *cart.Cart
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := lockCart(ctx, tx, id); err != nil {
			return err
		}
		// Conditional decrement first; a failed merge below rolls it back with the tx.
		if err := tx.Inventory().ReserveProduct(ctx, productID, amount); err != nil {
			return stockErr(err, shared.ErrProductNotFound, ErrProductOutOfStock)
		}
		if err := tx.Carts().AddItemAmount(ctx, id, productID, amount); err != nil {
			return errs.Wrap(err, "merge cart item")
		}

		var err error
		updated, err = lockCart(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, c.finish(ctx, op, id, err)
	}
	return updated, c.finish(ctx, op, id, nil)
}

func (c *cartCommandsImpl) RemoveItem(ctx context.Context, id cart.ID, productID uuid.UUID, amount int) (*cart.Cart, error) {
	const op = "remove_item"
	if err := cart.ValidateAmount(amount); err != nil {
		return nil, c.finish(ctx, op, id, errs.Mark(err, errs.ErrInvalidInput))
	}

	var updated *cart.Cart
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := lockCart(ctx, tx, id)
		if err != nil {
			return err
		}

		plan, err := current.PlanRemoval(productID, amount)
		if err != nil {
			if errs.Is(err, cart.ErrItemNotInCart) {
				return errs.Mark(err, errs.ErrNotFound)
			}
			return errs.Mark(err, errs.ErrInvalidInput)
		}

		if err := tx.Inventory().ReleaseProduct(ctx, productID, plan.Released); err != nil {
			return shared.NotFound(err, shared.ErrProductNotFound)
		}
		if plan.DeleteLine {
			err = tx.Carts().DeleteItem(ctx, id, productID)
		} else {
			err = tx.Carts().SetItemAmount(ctx, id, productID, plan.Remaining)
		}
		if err != nil {
			return errs.Wrap(err, "update cart item")
		}

		updated, err = lockCart(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, c.finish(ctx, op, id, err)
	}
	return updated, c.finish(ctx, op, id, nil)
}

// SetShippingMethod acquires the new slot before giving up the old one, all in
// one transaction, so a failed acquisition leaves the cart's method untouched.
func (c *cartCommandsImpl) SetShippingMethod(ctx context.Context, id cart.ID, methodID uuid.UUID) (*cart.Cart, error) {
	const op = "set_shipping"

	var updated *cart.Cart
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := lockCart(ctx, tx, id)
		if err != nil {
			return err
		}
		if current.HasShippingMethod(methodID) {
			updated = current
			return nil
		}

		if err := tx.Inventory().ReserveShipping(ctx, methodID); err != nil {
			return stockErr(err, shared.ErrShippingMethodNotFound, ErrShippingUnavailable)
		}
		if old := current.ShippingMethodID(); old != nil {
			if err := c.releaseShipping(ctx, tx, id, *old); err != nil {
				return err
			}
		}
		if err := tx.Carts().SetShippingMethod(ctx, id, &methodID); err != nil {
			return errs.Wrap(err, "set cart shipping method")
		}

		updated, err = lockCart(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, c.finish(ctx, op, id, err)
	}
	return updated, c.finish(ctx, op, id, nil)
}

func (c *cartCommandsImpl) ClearShippingMethod(ctx context.Context, id cart.ID) (*cart.Cart, error) {
	const op = "clear_shipping"

	var updated *cart.Cart
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := lockCart(ctx, tx, id)
		if err != nil {
			return err
		}
		old := current.ShippingMethodID()
		if old == nil {
			updated = current
			return nil
		}

		if err := c.releaseShipping(ctx, tx, id, *old); err != nil {
			return err
		}
		if err := tx.Carts().SetShippingMethod(ctx, id, nil); err != nil {
			return errs.Wrap(err, "clear cart shipping method")
		}

		updated, err = lockCart(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, c.finish(ctx, op, id, err)
	}
	return updated, c.finish(ctx, op, id, nil)
}

func (c *cartCommandsImpl) SetCustomerDetails(ctx context.Context, id cart.ID, in CustomerInput) (*cart.Cart, error) {
	const op = "set_customer"
	details, err := cart.NewCustomerDetails(in.FullName, in.Email, in.Phone, in.Address, in.HouseNumber, in.Apartment)
	if err != nil {
		return nil, c.finish(ctx, op, id, errs.Classify(err, ErrInvalidCustomer, errs.ErrInvalidInput))
	}

	var updated *cart.Cart
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := lockCart(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.Carts().SetCustomer(ctx, id, details); err != nil {
			return errs.Wrap(err, "set customer details")
		}

		var err error
		updated, err = lockCart(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, c.finish(ctx, op, id, err)
	}
	return updated, c.finish(ctx, op, id, nil)
}

func (c *cartCommandsImpl) EmptyCart(ctx context.Context, id cart.ID) (*cart.Cart, error) {
	const op = "empty"

	var released *cart.Cart
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := lockCart(ctx, tx, id)
		if err != nil {
			return err
		}
		released, err = c.releaseAndDelete(ctx, tx, current)
		return err
	})
	if err != nil {
		return nil, c.finish(ctx, op, id, err)
	}
	return released, c.finish(ctx, op, id, nil)
}

func (c *cartCommandsImpl) ExpireCart(ctx context.Context, id cart.ID) (*cart.Cart, error) {
	const op = "expire"
	now := c.clock.Now()

	var released *cart.Cart
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := lockCart(ctx, tx, id)
		if err != nil {
			return err
		}
		// Checkout may have extended the cart after the sweeper listed it.
		if !current.IsExpired(now) {
			return ErrCartNotExpired
		}
		released, err = c.releaseAndDelete(ctx, tx, current)
		return err
	})
	if err != nil {
		return nil, c.finish(ctx, op, id, err)
	}
	return released, c.finish(ctx, op, id, nil)
}

func (c *cartCommandsImpl) ApproveCart(ctx context.Context, id cart.ID) error {
	const op = "approve"

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return finalizeStock(ctx, tx, id)
	})
	if err != nil {
		return c.finish(ctx, op, id, errs.Classify(err, ErrStockFinalizeFailure, errs.ErrFatal))
	}
	return c.finish(ctx, op, id, nil)
}

// finalizeStock commits the cart's reservations as permanent depletion and
// deletes the cart, inside the caller's transaction.
func finalizeStock(ctx context.Context, tx shared.Tx, id cart.ID) error {
	current, err := lockCart(ctx, tx, id)
	if err != nil {
		return err
	}

	for _, it := range sortedItems(current) {
		if err := tx.Inventory().CommitProduct(ctx, it.ProductID, it.Amount); err != nil {
			return errs.Wrapf(err, "commit product %s", it.ProductID)
		}
	}
	if m := current.ShippingMethodID(); m != nil {
		if err := tx.Inventory().CommitShipping(ctx, *m); err != nil {
			return errs.Wrapf(err, "commit shipping method %s", *m)
		}
	}
	return tx.Carts().Delete(ctx, id)
}

// releaseAndDelete returns every reservation the cart holds and removes it.
// Products are released in id order so concurrent sweeps lock rows in the same order.
func (c *cartCommandsImpl) releaseAndDelete(ctx context.Context, tx shared.Tx, current *cart.Cart) (*cart.Cart, error) {
	for _, it := range sortedItems(current) {
		err := tx.Inventory().ReleaseProduct(ctx, it.ProductID, it.Amount)
		if err != nil && !errs.Is(err, errs.ErrNotFound) {
			return nil, errs.Wrapf(err, "release product %s", it.ProductID)
		}
	}
	if m := current.ShippingMethodID(); m != nil {
		if err := c.releaseShipping(ctx, tx, current.ID(), *m); err != nil {
			return nil, err
		}
	}
	if err := tx.Carts().Delete(ctx, current.ID()); err != nil {
		return nil, errs.Wrap(err, "delete cart")
	}
	return current.Released(), nil
}

// releaseShipping tolerates a method deleted from the catalog since the cart took it.
func (c *cartCommandsImpl) releaseShipping(ctx context.Context, tx shared.Tx, id cart.ID, methodID uuid.UUID) error {
	err := tx.Inventory().ReleaseShipping(ctx, methodID)
	if err == nil {
		return nil
	}
	if errs.Is(err, errs.ErrNotFound) {
		c.logger.Warn("released shipping method no longer exists", "cart_id", id, "shipping_method_id", methodID)
		return nil
	}
	return errs.Wrapf(err, "release shipping method %s", methodID)
}

// finish records the outcome and drops the cached cart after a commit.
func (c *cartCommandsImpl) finish(ctx context.Context, op string, id cart.ID, err error) error {
	c.metrics.CartOperations.WithLabelValues(op, resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	if cerr := c.cache.Delete(ctx, id); cerr != nil {
		c.logger.Warn("cart cache invalidation failed", "cart_id", id, "error", cerr.Error())
	}
	return nil
}

func lockCart(ctx context.Context, tx shared.Tx, id cart.ID) (*cart.Cart, error) {
	c, err := tx.Carts().Lock(ctx, id)
	if err != nil {
		return nil, shared.NotFound(err, shared.ErrCartNotFound)
	}
	return c, nil
}

func stockErr(err, notFound, short error) error {
	switch {
	case errs.Is(err, errs.ErrNotFound):
		return errs.Classify(err, notFound, errs.ErrNotFound)
	case errs.Is(err, errs.ErrInsufficientStock):
		return errs.Classify(err, short, errs.ErrInsufficientStock)
	}
	return err
}

func sortedItems(c *cart.Cart) []cart.LineItem {
	items := slices.Clone(c.Items())
	slices.SortFunc(items, func(a, b cart.LineItem) int {
		return slices.Compare(a.ProductID[:], b.ProductID[:])
	})
	return items
}

func resultLabel(err error) string {
	if errs.Is(err, ErrCartNotExpired) {
		return metrics.ResultSkipped
	}
	switch errs.Kind(err) {
	case nil:
		if err == nil {
			return metrics.ResultOK
		}
		return metrics.ResultError
	case errs.ErrNotFound:
		return metrics.ResultNotFound
	case errs.ErrInsufficientStock:
		return metrics.ResultInsufficientStock
	case errs.ErrInvalidInput:
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}

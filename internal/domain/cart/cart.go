package cart

import (
	"regexp"
	"slices"
	"time"

	"shop-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidCartID            = errs.New("cart id must be 8-128 characters of [A-Za-z0-9_-]")
	ErrInvalidAmount            = errs.New("amount must be between 1 and 10000")
	ErrItemNotInCart            = errs.New("product is not in the cart")
	ErrEmptyCart                = errs.New("cart has no items")
	ErrShippingMethodRequired   = errs.New("cart has no shipping method")
	ErrCustomerDetailsRequired  = errs.New("cart has no customer details")
	ErrCartAlreadyLinkedToOrder = errs.New("cart is already linked to another order")
)

var cartIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// ID is the opaque visitor key a cart is stored under.
type ID string

func NewID(s string) (ID, error) {
	if !cartIDPattern.MatchString(s) {
		return "", ErrInvalidCartID
	}
	return ID(s), nil
}

func (id ID) String() string {
	return string(id)
}

type LineItem struct {
	ProductID uuid.UUID
	Amount    int
}

type Cart struct {
	id               ID
	items            []LineItem
	shippingMethodID *uuid.UUID
	customer         *CustomerDetails
	orderID          *uuid.UUID
	createdAt        time.Time
	expiresAt        time.Time
}

func NewCart(id ID, now time.Time, ttl time.Duration) *Cart {
	return &Cart{
		id:        id,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
}

func Reconstruct(
	id ID,
	items []LineItem,
	shippingMethodID *uuid.UUID,
	customer *CustomerDetails,
	orderID *uuid.UUID,
	createdAt, expiresAt time.Time,
) *Cart {
	return &Cart{
		id:               id,
		items:            items,
		shippingMethodID: shippingMethodID,
		customer:         customer,
		orderID:          orderID,
		createdAt:        createdAt,
		expiresAt:        expiresAt,
	}
}

func (c *Cart) ID() ID                       { return c.id }
func (c *Cart) Items() []LineItem            { return c.items }
func (c *Cart) ShippingMethodID() *uuid.UUID { return c.shippingMethodID }
func (c *Cart) Customer() *CustomerDetails   { return c.customer }
func (c *Cart) OrderID() *uuid.UUID          { return c.orderID }
func (c *Cart) CreatedAt() time.Time         { return c.createdAt }
func (c *Cart) ExpiresAt() time.Time         { return c.expiresAt }

func (c *Cart) Item(productID uuid.UUID) (LineItem, bool) {
	i := slices.IndexFunc(c.items, func(it LineItem) bool { return it.ProductID == productID })
	if i < 0 {
		return LineItem{}, false
	}
	return c.items[i], true
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) IsExpired(now time.Time) bool {
	return !now.Before(c.expiresAt)
}

func (c *Cart) HasShippingMethod(id uuid.UUID) bool {
	return c.shippingMethodID != nil && *c.shippingMethodID == id
}

// MaxAmount caps a single add/remove request.
const MaxAmount = 10_000

func ValidateAmount(amount int) error {
	if amount <= 0 || amount > MaxAmount {
		return ErrInvalidAmount
	}
	return nil
}

// Removal describes how a RemoveItem request applies to a line item.
type Removal struct {
	Released   int
	Remaining  int
	DeleteLine bool
}

// PlanRemoval clamps the requested amount to what the cart holds: asking for
// more than is present removes the line and releases only the held units.
func (c *Cart) PlanRemoval(productID uuid.UUID, requested int) (Removal, error) {
	if err := ValidateAmount(requested); err != nil {
		return Removal{}, err
	}
	item, ok := c.Item(productID)
	if !ok {
		return Removal{}, ErrItemNotInCart
	}

	released := min(item.Amount, requested)
	remaining := item.Amount - released
	return Removal{
		Released:   released,
		Remaining:  remaining,
		DeleteLine: remaining <= 0,
	}, nil
}

// CheckoutReady reports the first reason the cart cannot become an order.
func (c *Cart) CheckoutReady() error {
	switch {
	case c.IsEmpty():
		return ErrEmptyCart
	case c.shippingMethodID == nil:
		return ErrShippingMethodRequired
	case c.customer == nil:
		return ErrCustomerDetailsRequired
	}
	return nil
}

// Released is the cart as it looks once every reservation has been returned.
func (c *Cart) Released() *Cart {
	out := *c
	out.items = nil
	out.shippingMethodID = nil
	return &out
}

package order

import (
	"time"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUnresolvableItem     = errs.New("cart item no longer resolves to a product")
	ErrUnresolvableShipping = errs.New("cart shipping method no longer resolves")
	ErrInvalidSnapshot      = errs.New("invalid order snapshot")
)

// SnapshotVersion tags the stored layout so readers can reject unknown shapes.
const SnapshotVersion = 1

type SnapshotItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice inventory.Money `json:"unitPrice"`
	Amount    int             `json:"amount"`
	Subtotal  inventory.Money `json:"subtotal"`
}

type SnapshotShipping struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Type      inventory.ShippingType `json:"type"`
	Price     inventory.Money        `json:"price"`
	FreeAbove *inventory.Money       `json:"freeAbove,omitempty"`
	Charge    inventory.Money        `json:"charge"`
}

// Snapshot freezes what the customer agreed to pay for at checkout.
type Snapshot struct {
	Version    int                  `json:"version"`
	OrderID    uuid.UUID            `json:"orderId"`
	CartID     string               `json:"cartId"`
	Items      []SnapshotItem       `json:"items"`
	Shipping   SnapshotShipping     `json:"shipping"`
	Customer   cart.CustomerDetails `json:"customer"`
	ItemsTotal inventory.Money      `json:"itemsTotal"`
	Total      inventory.Money      `json:"total"`
	CapturedAt time.Time            `json:"capturedAt"`
}

func BuildSnapshot(
	orderID uuid.UUID,
	c *cart.Cart,
	products map[uuid.UUID]*inventory.Product,
	method *inventory.ShippingMethod,
	now time.Time,
) (Snapshot, error) {
	if err := c.CheckoutReady(); err != nil {
		return Snapshot{}, err
	}
	if method == nil || method.ID() != *c.ShippingMethodID() {
		return Snapshot{}, ErrUnresolvableShipping
	}

	items := make([]SnapshotItem, 0, len(c.Items()))
	var itemsTotal inventory.Money
	for _, it := range c.Items() {
		p, ok := products[it.ProductID]
		if !ok || p == nil {
			return Snapshot{}, errs.Wrapf(ErrUnresolvableItem, "product %s", it.ProductID)
		}
		subtotal := p.Price().Times(it.Amount)
		itemsTotal += subtotal
		items = append(items, SnapshotItem{
			ProductID: p.ID(),
			Name:      p.Name(),
			UnitPrice: p.Price(),
			Amount:    it.Amount,
			Subtotal:  subtotal,
		})
	}

	charge := method.ChargeFor(itemsTotal)
	s := Snapshot{
		Version: SnapshotVersion,
		OrderID: orderID,
		CartID:  c.ID().String(),
		Items:   items,
		Shipping: SnapshotShipping{
			ID:        method.ID(),
			Name:      method.Name(),
			Type:      method.Type(),
			Price:     method.Price(),
			FreeAbove: method.FreeAbove(),
			Charge:    charge,
		},
		Customer:   *c.Customer(),
		ItemsTotal: itemsTotal,
		Total:      itemsTotal + charge,
		CapturedAt: now,
	}
	return s, nil
}

// Validate checks a snapshot read back from storage.
func (s Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return errs.Wrapf(ErrInvalidSnapshot, "unsupported version %d", s.Version)
	}
	if s.OrderID == uuid.Nil || s.CartID == "" || len(s.Items) == 0 {
		return errs.Wrap(ErrInvalidSnapshot, "missing identity or items")
	}

	var sum inventory.Money
	for _, it := range s.Items {
		if it.Amount <= 0 || it.Subtotal != it.UnitPrice.Times(it.Amount) {
			return errs.Wrapf(ErrInvalidSnapshot, "line %s is inconsistent", it.ProductID)
		}
		sum += it.Subtotal
	}
	if sum != s.ItemsTotal || s.Total != s.ItemsTotal+s.Shipping.Charge {
		return errs.Wrap(ErrInvalidSnapshot, "totals do not add up")
	}
	return nil
}

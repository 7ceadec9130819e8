package inventory

import (
	"strings"
	"time"

	"shop-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidShippingType   = errs.New("shipping type must be pickup or delivery")
	ErrInvalidDeliveryWindow = errs.New("delivery window must end after it starts")
	ErrInvalidFreeAbove      = errs.New("free-above threshold must not be negative")
)

type ShippingType string

const (
	ShippingPickup   ShippingType = "pickup"
	ShippingDelivery ShippingType = "delivery"
)

func NewShippingType(s string) (ShippingType, error) {
	switch t := ShippingType(strings.ToLower(strings.TrimSpace(s))); t {
	case ShippingPickup, ShippingDelivery:
		return t, nil
	default:
		return "", ErrInvalidShippingType
	}
}

func (t ShippingType) String() string {
	return string(t)
}

type DeliveryWindow struct {
	From time.Time
	To   time.Time
}

// ShippingMethod is reserved one slot per cart regardless of cart size.
type ShippingMethod struct {
	id          uuid.UUID
	name        string
	description string
	kind        ShippingType
	price       Money
	freeAbove   *Money
	window      *DeliveryWindow
	stock       int
	tempStock   int
	createdAt   time.Time
}

type ShippingMethodParams struct {
	Name        string
	Description string
	Type        string
	Price       Money
	FreeAbove   *Money
	Window      *DeliveryWindow
	Stock       int
}

func NewShippingMethod(p ShippingMethodParams, now time.Time) (*ShippingMethod, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" || len([]rune(name)) > maxNameLength {
		return nil, ErrInvalidName
	}
	kind, err := NewShippingType(p.Type)
	if err != nil {
		return nil, err
	}
	if p.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if p.FreeAbove != nil && *p.FreeAbove < 0 {
		return nil, ErrInvalidFreeAbove
	}
	if p.Window != nil && !p.Window.To.After(p.Window.From) {
		return nil, ErrInvalidDeliveryWindow
	}
	if p.Stock < 0 {
		return nil, ErrInvalidStock
	}

	return &ShippingMethod{
		id:          uuid.New(),
		name:        name,
		description: strings.TrimSpace(p.Description),
		kind:        kind,
		price:       p.Price,
		freeAbove:   p.FreeAbove,
		window:      p.Window,
		stock:       p.Stock,
		tempStock:   p.Stock,
		createdAt:   now,
	}, nil
}

func ReconstructShippingMethod(id uuid.UUID, p ShippingMethodParams, tempStock int, createdAt time.Time) *ShippingMethod {
	return &ShippingMethod{
		id:          id,
		name:        p.Name,
		description: p.Description,
		kind:        ShippingType(p.Type),
		price:       p.Price,
		freeAbove:   p.FreeAbove,
		window:      p.Window,
		stock:       p.Stock,
		tempStock:   tempStock,
		createdAt:   createdAt,
	}
}

func (s *ShippingMethod) ID() uuid.UUID           { return s.id }
func (s *ShippingMethod) Name() string            { return s.name }
func (s *ShippingMethod) Description() string     { return s.description }
func (s *ShippingMethod) Type() ShippingType      { return s.kind }
func (s *ShippingMethod) Price() Money            { return s.price }
func (s *ShippingMethod) FreeAbove() *Money       { return s.freeAbove }
func (s *ShippingMethod) Window() *DeliveryWindow { return s.window }
func (s *ShippingMethod) Stock() int              { return s.stock }
func (s *ShippingMethod) TempStock() int          { return s.tempStock }
func (s *ShippingMethod) CreatedAt() time.Time    { return s.createdAt }

func (s *ShippingMethod) Reserved() int {
	return s.stock - s.tempStock
}

// ChargeFor returns the shipping price for an order whose items total subtotal.
func (s *ShippingMethod) ChargeFor(subtotal Money) Money {
	if s.freeAbove != nil && subtotal >= *s.freeAbove {
		return 0
	}
	return s.price
}

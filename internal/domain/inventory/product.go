package inventory

import (
	"strings"
	"time"

	"shop-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidName  = errs.New("name must be 1-120 characters")
	ErrInvalidPrice = errs.New("price must not be negative")
	ErrInvalidStock = errs.New("stock must not be negative")
)

const maxNameLength = 120

// Product is a catalog item. Stock is the permanent capacity; TempStock is what
// is still free to reserve. Stock - TempStock is held by live carts.
type Product struct {
	id          uuid.UUID
	name        string
	description string
	price       Money
	images      []string
	stock       int
	tempStock   int
	createdAt   time.Time
}

func NewProduct(name, description string, price Money, images []string, stock int, now time.Time) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLength {
		return nil, ErrInvalidName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	return &Product{
		id:          uuid.New(),
		name:        name,
		description: strings.TrimSpace(description),
		price:       price,
		images:      append([]string(nil), images...),
		stock:       stock,
		tempStock:   stock,
		createdAt:   now,
	}, nil
}

func ReconstructProduct(id uuid.UUID, name, description string, price Money, images []string, stock, tempStock int, createdAt time.Time) *Product {
	return &Product{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		images:      images,
		stock:       stock,
		tempStock:   tempStock,
		createdAt:   createdAt,
	}
}

func (p *Product) ID() uuid.UUID        { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() Money         { return p.price }
func (p *Product) Images() []string     { return p.images }
func (p *Product) Stock() int           { return p.stock }
func (p *Product) TempStock() int       { return p.tempStock }
func (p *Product) CreatedAt() time.Time { return p.createdAt }

// Reserved is the number of units currently held by carts.
func (p *Product) Reserved() int {
	return p.stock - p.tempStock
}

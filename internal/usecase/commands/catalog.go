package commands

import (
	"context"

	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/pkg/clock"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/shared"
)

//go:generate mockgen -source=catalog.go -destination=../../../tests/mock/commands/catalog_mock.go -package=commandsmock

var ErrInvalidCatalogItem = errs.New("invalid catalog item")

type CreateProductInput struct {
	Name        string
	Description string
	Price       inventory.Money
	Images      []string
	Stock       int
}

// CatalogCommands creates catalog entries with all of their stock free to reserve.
type CatalogCommands interface {
	CreateProduct(ctx context.Context, in CreateProductInput) (*inventory.Product, error)
	CreateShippingMethod(ctx context.Context, in inventory.ShippingMethodParams) (*inventory.ShippingMethod, error)
}

type catalogCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCatalogCommands(uow shared.UnitOfWork, clock clock.Clock) CatalogCommands {
	return &catalogCommandsImpl{uow: uow, clock: clock}
}

func (c *catalogCommandsImpl) CreateProduct(ctx context.Context, in CreateProductInput) (*inventory.Product, error) {
	p, err := inventory.NewProduct(in.Name, in.Description, in.Price, in.Images, in.Stock, c.clock.Now())
	if err != nil {
		return nil, errs.Classify(err, ErrInvalidCatalogItem, errs.ErrInvalidInput)
	}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Inventory().CreateProduct(ctx, p)
	})
	if err != nil {
		return nil, errs.Wrap(err, "create product")
	}
	return p, nil
}

func (c *catalogCommandsImpl) CreateShippingMethod(ctx context.Context, in inventory.ShippingMethodParams) (*inventory.ShippingMethod, error) {
	m, err := inventory.NewShippingMethod(in, c.clock.Now())
	if err != nil {
		return nil, errs.Classify(err, ErrInvalidCatalogItem, errs.ErrInvalidInput)
	}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Inventory().CreateShippingMethod(ctx, m)
	})
	if err != nil {
		return nil, errs.Wrap(err, "create shipping method")
	}
	return m, nil
}

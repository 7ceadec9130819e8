package request

import (
	"time"

	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/usecase/commands"
)

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       int64    `json:"price" binding:"gte=0"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock" binding:"gte=0"`
}

func (r CreateProductRequest) ToInput() commands.CreateProductInput {
	return commands.CreateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       inventory.Money(r.Price),
		Images:      r.Images,
		Stock:       r.Stock,
	}
}

type DeliveryWindowRequest struct {
	From time.Time `json:"from" binding:"required"`
	To   time.Time `json:"to" binding:"required"`
}

type CreateShippingMethodRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Type        string                 `json:"type" binding:"required,oneof=pickup delivery"`
	Price       int64                  `json:"price" binding:"gte=0"`
	FreeAbove   *int64                 `json:"freeAbove,omitempty"`
	Window      *DeliveryWindowRequest `json:"deliveryWindow,omitempty"`
	Stock       int                    `json:"stock" binding:"gte=0"`
}

func (r CreateShippingMethodRequest) ToParams() inventory.ShippingMethodParams {
	p := inventory.ShippingMethodParams{
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		Price:       inventory.Money(r.Price),
		Stock:       r.Stock,
	}
	if r.FreeAbove != nil {
		v := inventory.Money(*r.FreeAbove)
		p.FreeAbove = &v
	}
	if r.Window != nil {
		p.Window = &inventory.DeliveryWindow{From: r.Window.From, To: r.Window.To}
	}
	return p
}

type PageQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

package response

import (
	"time"

	"github.com/google/uuid"

	"shop-backend/internal/domain/inventory"
)

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Images      []string  `json:"images"`
	Available   int       `json:"available"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromProduct(p *inventory.Product) *ProductResponse {
	images := p.Images()
	if images == nil {
		images = []string{}
	}
	return &ProductResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       int64(p.Price()),
		Images:      images,
		Available:   p.TempStock(),
		Stock:       p.Stock(),
		CreatedAt:   p.CreatedAt(),
	}
}

func FromProducts(ps []*inventory.Product) []*ProductResponse {
	out := make([]*ProductResponse, len(ps))
	for i, p := range ps {
		out[i] = FromProduct(p)
	}
	return out
}

type DeliveryWindowResponse struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type ShippingMethodResponse struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Type        string                  `json:"type"`
	Price       int64                   `json:"price"`
	FreeAbove   *int64                  `json:"freeAbove,omitempty"`
	Window      *DeliveryWindowResponse `json:"deliveryWindow,omitempty"`
	Available   int                     `json:"available"`
	Stock       int                     `json:"stock"`
}

func FromShippingMethod(m *inventory.ShippingMethod) *ShippingMethodResponse {
	resp := &ShippingMethodResponse{
		ID:          m.ID(),
		Name:        m.Name(),
		Description: m.Description(),
		Type:        m.Type().String(),
		Price:       int64(m.Price()),
		Available:   m.TempStock(),
		Stock:       m.Stock(),
	}
	if fa := m.FreeAbove(); fa != nil {
		v := int64(*fa)
		resp.FreeAbove = &v
	}
	if w := m.Window(); w != nil {
		resp.Window = &DeliveryWindowResponse{From: w.From, To: w.To}
	}
	return resp
}

func FromShippingMethods(ms []*inventory.ShippingMethod) []*ShippingMethodResponse {
	out := make([]*ShippingMethodResponse, len(ms))
	for i, m := range ms {
		out[i] = FromShippingMethod(m)
	}
	return out
}

package response

import (
	"time"

	"github.com/google/uuid"

	"shop-backend/internal/domain/cart"
)

type CartItemResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Amount    int       `json:"amount"`
}

type CustomerResponse struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	HouseNumber int    `json:"houseNumber"`
	Apartment   string `json:"apartment,omitempty"`
}

type CartResponse struct {
	ID               string             `json:"id"`
	Items            []CartItemResponse `json:"items"`
	ShippingMethodID *uuid.UUID         `json:"shippingMethodId,omitempty"`
	Customer         *CustomerResponse  `json:"customerDetails,omitempty"`
	OrderID          *uuid.UUID         `json:"orderId,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	ExpiresAt        time.Time          `json:"expiresAt"`
}

func FromCart(c *cart.Cart) *CartResponse {
	items := make([]CartItemResponse, len(c.Items()))
	for i, it := range c.Items() {
		items[i] = CartItemResponse{ProductID: it.ProductID, Amount: it.Amount}
	}

	resp := &CartResponse{
		ID:               c.ID().String(),
		Items:            items,
		ShippingMethodID: c.ShippingMethodID(),
		OrderID:          c.OrderID(),
		CreatedAt:        c.CreatedAt(),
		ExpiresAt:        c.ExpiresAt(),
	}
	if d := c.Customer(); d != nil {
		resp.Customer = &CustomerResponse{
			FullName:    d.FullName,
			Email:       d.Email,
			Phone:       d.Phone,
			Address:     d.Address,
			HouseNumber: d.HouseNumber,
			Apartment:   d.Apartment,
		}
	}
	return resp
}

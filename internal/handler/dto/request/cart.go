package request

import (
	"github.com/google/uuid"

	"shop-backend/internal/usecase/commands"
)

// AmountQuery is the ?amount= of add/remove item; it defaults to one unit.
type AmountQuery struct {
	Amount *int `form:"amount"`
}

func (q AmountQuery) Value() int {
	if q.Amount == nil {
		return 1
	}
	return *q.Amount
}

type SetShippingMethodRequest struct {
	ShippingMethodID uuid.UUID `json:"shippingMethodId" binding:"required"`
}

type CustomerDetailsRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Address     string `json:"address" binding:"required"`
	HouseNumber int    `json:"houseNumber"`
	Apartment   string `json:"apartment"`
}

func (r CustomerDetailsRequest) ToInput() commands.CustomerInput {
	return commands.CustomerInput{
		FullName:    r.FullName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		HouseNumber: r.HouseNumber,
		Apartment:   r.Apartment,
	}
}

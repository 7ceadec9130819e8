//go:build unit || e2e

package builder

import (
	reqdto "shop-backend/internal/handler/dto/request"
)

type CustomerBuilder struct {
	FullName    string
	Email       string
	Phone       string
	Address     string
	HouseNumber int
	Apartment   string
}

func NewCustomerBuilder() *CustomerBuilder {
	return &CustomerBuilder{
		FullName:    "Dana Levi",
		Email:       "dana@example.com",
		Phone:       "0501234567",
		Address:     "Herzl St, Tel Aviv",
		HouseNumber: 12,
	}
}

func (b *CustomerBuilder) WithEmail(email string) *CustomerBuilder {
	b.Email = email
	return b
}

func (b *CustomerBuilder) WithApartment(apartment string) *CustomerBuilder {
	b.Apartment = apartment
	return b
}

func (b *CustomerBuilder) BuildDTO() reqdto.CustomerDetailsRequest {
	return reqdto.CustomerDetailsRequest{
		FullName:    b.FullName,
		Email:       b.Email,
		Phone:       b.Phone,
		Address:     b.Address,
		HouseNumber: b.HouseNumber,
		Apartment:   b.Apartment,
	}
}

type ProductBuilder struct {
	Name        string
	Description string
	Price       int64
	Images      []string
	Stock       int
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		Name:        "Sourdough loaf",
		Description: "Baked this morning",
		Price:       2500,
		Images:      []string{"https://cdn.example.com/loaf.jpg"},
		Stock:       10,
	}
}

func (b *ProductBuilder) WithPrice(price int64) *ProductBuilder {
	b.Price = price
	return b
}

func (b *ProductBuilder) WithStock(stock int) *ProductBuilder {
	b.Stock = stock
	return b
}

func (b *ProductBuilder) BuildDTO() reqdto.CreateProductRequest {
	return reqdto.CreateProductRequest{
		Name:        b.Name,
		Description: b.Description,
		Price:       b.Price,
		Images:      b.Images,
		Stock:       b.Stock,
	}
}

package query

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       int64
	Images      []string
	Stock       int32
	TempStock   int32
	CreatedAt   time.Time
}

type ShippingMethod struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Type         string
	Price        int64
	FreeAbove    pgtype.Int8
	DeliveryFrom pgtype.Timestamptz
	DeliveryTo   pgtype.Timestamptz
	Stock        int32
	TempStock    int32
	CreatedAt    time.Time
}

type Cart struct {
	ID               string
	ShippingMethodID pgtype.UUID
	CustomerDetails  []byte
	OrderID          pgtype.UUID
	CreatedAt        time.Time
	ExpiresAt        time.Time
}

type CartItem struct {
	CartID    string
	ProductID uuid.UUID
	Amount    int32
}

type Order struct {
	ID             uuid.UUID
	CartID         string
	Status         string
	Snapshot       []byte
	PaymentProcess []byte
	Transaction    []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Admin struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	IsActive     bool
	LastLogin    pgtype.Timestamptz
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

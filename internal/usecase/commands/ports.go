package commands

import (
	"context"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/domain/order"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports_mock.go -package=commandsmock

// PaymentGateway is the external payment provider. Adapters mark every
// failure with errs.ErrUpstreamFailure.
type PaymentGateway interface {
	CreatePaymentProcess(ctx context.Context, snapshot order.Snapshot) (order.PaymentProcess, error)
	ApproveTransaction(ctx context.Context, txn order.Transaction) error
}

type Notifier interface {
	OrderApproved(ctx context.Context, o *order.Order) error
}

// CartInvalidator drops cached copies of a cart once a mutation commits and
// voids cache fills that read the cart before it.
type CartInvalidator interface {
	Delete(ctx context.Context, id cart.ID) error
}

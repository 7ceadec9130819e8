package order

import (
	"strings"
	"time"

	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidPaymentProcess = errs.New("payment process must carry a process id and url")
	ErrInvalidTransaction    = errs.New("transaction must carry a transaction id and non-negative sum")
)

// PaymentProcess is the gateway session a pending order is paid through.
type PaymentProcess struct {
	ProcessID string `json:"processId"`
	URL       string `json:"url"`
}

func (p PaymentProcess) Validate() error {
	if strings.TrimSpace(p.ProcessID) == "" || strings.TrimSpace(p.URL) == "" {
		return ErrInvalidPaymentProcess
	}
	return nil
}

// Transaction is the gateway's record of a completed payment.
type Transaction struct {
	TransactionID string          `json:"transactionId"`
	ProcessID     string          `json:"processId"`
	Sum           inventory.Money `json:"sum"`
	PaymentType   string          `json:"paymentType,omitempty"`
	CardSuffix    string          `json:"cardSuffix,omitempty"`
	PayerName     string          `json:"payerName,omitempty"`
	PayerEmail    string          `json:"payerEmail,omitempty"`
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.TransactionID) == "" || t.Sum < 0 {
		return ErrInvalidTransaction
	}
	return nil
}

type Order struct {
	id          uuid.UUID
	cartID      string
	status      Status
	snapshot    Snapshot
	payment     PaymentProcess
	transaction *Transaction
	createdAt   time.Time
	updatedAt   time.Time
}

func NewPendingOrder(snapshot Snapshot, payment PaymentProcess, now time.Time) (*Order, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}
	return &Order{
		id:        snapshot.OrderID,
		cartID:    snapshot.CartID,
		status:    StatusPending,
		snapshot:  snapshot,
		payment:   payment,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	cartID string,
	status Status,
	snapshot Snapshot,
	payment PaymentProcess,
	transaction *Transaction,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:          id,
		cartID:      cartID,
		status:      status,
		snapshot:    snapshot,
		payment:     payment,
		transaction: transaction,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) CartID() string               { return o.cartID }
func (o *Order) Status() Status               { return o.status }
func (o *Order) Snapshot() Snapshot           { return o.snapshot }
func (o *Order) Payment() PaymentProcess      { return o.payment }
func (o *Order) Transaction() *Transaction    { return o.transaction }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
func (o *Order) IsPending() bool              { return o.status == StatusPending }
func (o *Order) BelongsTo(cartID string) bool { return o.cartID == cartID }

func (o *Order) Approve(txn Transaction, now time.Time) error {
	if err := txn.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(StatusApproved) {
		return ErrInvalidTransition
	}
	o.status = StatusApproved
	o.transaction = &txn
	o.updatedAt = now
	return nil
}

func (o *Order) Cancel(now time.Time) error {
	if !o.status.CanTransitionTo(StatusCancelled) {
		return ErrInvalidTransition
	}
	o.status = StatusCancelled
	o.updatedAt = now
	return nil
}

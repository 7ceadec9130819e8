package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"shop-backend/internal/domain/order"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/commands"
)

type CheckoutResponse struct {
	OrderID    uuid.UUID `json:"orderId"`
	ProcessID  string    `json:"processId"`
	PaymentURL string    `json:"url"`
	Replayed   bool      `json:"replayed"`
}

func FromCheckout(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		OrderID:    r.OrderID,
		ProcessID:  r.Payment.ProcessID,
		PaymentURL: r.Payment.URL,
		Replayed:   r.Replayed,
	}
}

type OrderItemResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unitPrice"`
	Amount    int       `json:"amount"`
	Subtotal  int64     `json:"subtotal"`
}

type OrderShippingResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Price     int64     `json:"price"`
	FreeAbove *int64    `json:"freeAbove,omitempty"`
	Charge    int64     `json:"charge"`
}

type TransactionResponse struct {
	TransactionID string `json:"transactionId"`
	ProcessID     string `json:"processId"`
	Sum           int64  `json:"sum"`
	PaymentType   string `json:"paymentType,omitempty"`
	CardSuffix    string `json:"cardSuffix,omitempty"`
	PayerName     string `json:"payerName,omitempty"`
	PayerEmail    string `json:"payerEmail,omitempty"`
}

type OrderResponse struct {
	ID          uuid.UUID             `json:"id"`
	CartID      string                `json:"cartId"`
	Status      string                `json:"status"`
	Items       []OrderItemResponse   `json:"items"`
	Shipping    OrderShippingResponse `json:"shipping"`
	Customer    CustomerResponse      `json:"customerDetails"`
	ItemsTotal  int64                 `json:"itemsTotal"`
	Total       int64                 `json:"total"`
	PaymentURL  string                `json:"paymentUrl"`
	Transaction *TransactionResponse  `json:"transaction,omitempty"`
	CapturedAt  time.Time             `json:"capturedAt"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

func FromOrder(o *order.Order) (*OrderResponse, error) {
	s := o.Snapshot()
	resp := &OrderResponse{
		ID:         o.ID(),
		CartID:     o.CartID(),
		Status:     o.Status().String(),
		PaymentURL: o.Payment().URL,
		CapturedAt: s.CapturedAt,
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}

	if err := copier.Copy(resp, &s); err != nil {
		return nil, errs.Wrap(err, "map order snapshot")
	}
	if txn := o.Transaction(); txn != nil {
		resp.Transaction = &TransactionResponse{}
		if err := copier.Copy(resp.Transaction, txn); err != nil {
			return nil, errs.Wrap(err, "map transaction")
		}
	}
	return resp, nil
}

type OrderListResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

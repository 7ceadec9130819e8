package request

import (
	"github.com/google/uuid"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/domain/order"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/commands"
)

var ErrMalformedCallback = errs.New("payment callback is missing order or cart reference")

// PaymentCallbackRequest is the provider's server-to-server notification.
// The order and cart ids travel back in the custom fields set at checkout.
type PaymentCallbackRequest struct {
	Data struct {
		TransactionID string  `json:"transactionId" binding:"required"`
		ProcessID     string  `json:"processId"`
		Sum           float64 `json:"sum"`
		PaymentType   string  `json:"paymentType"`
		CardSuffix    string  `json:"cardSuffix"`
		FullName      string  `json:"fullName"`
		PayerEmail    string  `json:"payerEmail"`
		CustomFields  struct {
			OrderID string `json:"cField1"`
			CartID  string `json:"cField2"`
		} `json:"customFields"`
	} `json:"data" binding:"required"`
}

func (r PaymentCallbackRequest) ToCallback() (commands.PaymentCallback, error) {
	orderID, err := uuid.Parse(r.Data.CustomFields.OrderID)
	if err != nil {
		return commands.PaymentCallback{}, errs.Classify(err, ErrMalformedCallback, errs.ErrInvalidInput)
	}
	cartID, err := cart.NewID(r.Data.CustomFields.CartID)
	if err != nil {
		return commands.PaymentCallback{}, errs.Classify(err, ErrMalformedCallback, errs.ErrInvalidInput)
	}

	return commands.PaymentCallback{
		OrderID: orderID,
		CartID:  cartID,
		Transaction: order.Transaction{
			TransactionID: r.Data.TransactionID,
			ProcessID:     r.Data.ProcessID,
			Sum:           toMinorUnits(r.Data.Sum),
			PaymentType:   r.Data.PaymentType,
			CardSuffix:    r.Data.CardSuffix,
			PayerName:     r.Data.FullName,
			PayerEmail:    r.Data.PayerEmail,
		},
	}, nil
}

// the provider reports sums in major units with two decimals
func toMinorUnits(sum float64) inventory.Money {
	if sum < 0 {
		return inventory.Money(sum*100 - 0.5)
	}
	return inventory.Money(sum*100 + 0.5)
}

type ListOrdersQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved cancelled"`
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit"`
}

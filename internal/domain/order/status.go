package order

import "shop-backend/internal/pkg/errs"

var (
	ErrInvalidStatus     = errs.New("invalid order status")
	ErrInvalidTransition = errs.New("order status transition not allowed")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusCancelled:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusCancelled
}

// CanTransitionTo allows only pending -> approved and pending -> cancelled.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusCancelled)
}

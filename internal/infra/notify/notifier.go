package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"shop-backend/internal/domain/cart"
	"shop-backend/internal/domain/inventory"
	"shop-backend/internal/domain/order"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/errs"
)

const EventOrderApproved = "order.approved"

// OrderApprovedEvent is what downstream mailers consume to send the customer
// and shop owner their confirmation.
type OrderApprovedEvent struct {
	EventID     uuid.UUID            `json:"eventId"`
	Type        string               `json:"type"`
	OrderID     uuid.UUID            `json:"orderId"`
	CartID      string               `json:"cartId"`
	Customer    cart.CustomerDetails `json:"customer"`
	Items       []order.SnapshotItem `json:"items"`
	Shipping    string               `json:"shipping"`
	Total       inventory.Money      `json:"total"`
	Transaction string               `json:"transactionId,omitempty"`
	ApprovedAt  time.Time            `json:"approvedAt"`
}

func NewOrderApprovedEvent(o *order.Order) OrderApprovedEvent {
	s := o.Snapshot()
	ev := OrderApprovedEvent{
		EventID:    uuid.New(),
		Type:       EventOrderApproved,
		OrderID:    o.ID(),
		CartID:     o.CartID(),
		Customer:   s.Customer,
		Items:      s.Items,
		Shipping:   s.Shipping.Name,
		Total:      s.Total,
		ApprovedAt: o.UpdatedAt(),
	}
	if txn := o.Transaction(); txn != nil {
		ev.Transaction = txn.TransactionID
	}
	return ev
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes order events keyed by order id so retries for one
// order stay in partition order.
type KafkaNotifier struct {
	writer messageWriter
	logger *slog.Logger
}

func NewKafkaNotifier(cfg config.KafkaConfig, logger *slog.Logger) *KafkaNotifier {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           5 * time.Second,
	}
	return newKafkaNotifier(w, logger)
}

func newKafkaNotifier(w messageWriter, logger *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{writer: w, logger: logger}
}

func (n *KafkaNotifier) OrderApproved(ctx context.Context, o *order.Order) error {
	ev := NewOrderApprovedEvent(o)
	payload, err := json.Marshal(ev)
	if err != nil {
		return errs.Wrap(err, "marshal order event")
	}

	msg := kafka.Message{
		Key:   []byte(ev.OrderID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
			{Key: "event_id", Value: []byte(ev.EventID.String())},
		},
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrapf(err, "publish %s for order %s", ev.Type, ev.OrderID)
	}

	n.logger.Info("order notification published",
		"order_id", ev.OrderID.String(),
		"event_id", ev.EventID.String(),
	)
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// LogNotifier stands in when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) OrderApproved(_ context.Context, o *order.Order) error {
	ev := NewOrderApprovedEvent(o)
	n.logger.Info("order approved",
		"order_id", ev.OrderID.String(),
		"cart_id", ev.CartID,
		"email", ev.Customer.Email,
		"total", ev.Total.String(),
	)
	return nil
}

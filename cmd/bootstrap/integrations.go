package bootstrap

import (
	"context"
	"log/slog"

	"shop-backend/internal/infra/notify"
	"shop-backend/internal/infra/payment"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/metrics"
	"shop-backend/internal/usecase/commands"

	"go.uber.org/fx"
)

var IntegrationModule = fx.Module("integration",
	fx.Provide(
		metrics.New,
		NewPaymentGateway,
		NewNotifier,
	),
)

func NewPaymentGateway(cfg config.Config, logger *slog.Logger) commands.PaymentGateway {
	return payment.NewGateway(cfg.Payment, nil, logger)
}

// NewNotifier publishes to Kafka when brokers are configured, otherwise it
// only logs approved orders.
func NewNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) commands.Notifier {
	if !cfg.Kafka.Enabled() {
		logger.Info("kafka disabled, order notifications are logged only")
		return notify.NewLogNotifier(logger)
	}

	n := notify.NewKafkaNotifier(cfg.Kafka, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return n.Close()
		},
	})
	return n
}

package components

import (
	"context"
	"log/slog"

	"shop-backend/internal/pkg/clock"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/jwt"
	"shop-backend/internal/pkg/metrics"
	"shop-backend/internal/usecase"
	"shop-backend/internal/usecase/commands"
	"shop-backend/internal/usecase/queries"
	"shop-backend/internal/usecase/shared"
	"shop-backend/internal/usecase/sweeper"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	sweeperModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(s *jwt.Service) commands.TokenIssuer { return s },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewCartCommands,
		NewOrderCommands,
		commands.NewAuthCommands,
		commands.NewCatalogCommands,
	),
	fx.Invoke(SeedAdmin),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCartQueries,
		queries.NewCatalogQueries,
		queries.NewOrderQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var sweeperModule = fx.Module("usecase/sweeper",
	fx.Provide(NewSweeper),
	fx.Invoke(RunSweeper),
)

func NewCartCommands(
	uow shared.UnitOfWork,
	cache commands.CartInvalidator,
	clk clock.Clock,
	cfg config.Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) commands.CartCommands {
	return commands.NewCartCommands(uow, cache, clk, cfg.Cart.TTL, m, logger)
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	gateway commands.PaymentGateway,
	notifier commands.Notifier,
	cache commands.CartInvalidator,
	clk clock.Clock,
	cfg config.Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) commands.OrderCommands {
	return commands.NewOrderCommands(uow, gateway, notifier, cache, clk, cfg.Cart.OrderGrace, m, logger)
}

// SeedAdmin creates the configured back-office account on start.
func SeedAdmin(lc fx.Lifecycle, auth commands.AuthCommands, cfg config.Config, logger *slog.Logger) {
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			created, err := auth.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
			if err != nil {
				return err
			}
			if created {
				logger.Info("admin account created", "username", cfg.Admin.Username)
			}
			return nil
		},
	})
}

func NewSweeper(
	lister sweeper.ExpiredCartLister,
	carts commands.CartCommands,
	clk clock.Clock,
	cfg config.Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) *sweeper.Sweeper {
	return sweeper.New(lister, carts, clk, sweeper.Config{
		Interval:    cfg.Sweeper.Interval,
		BatchSize:   cfg.Sweeper.BatchSize,
		Concurrency: cfg.Sweeper.Concurrency,
	}, m, logger)
}

func RunSweeper(lc fx.Lifecycle, s *sweeper.Sweeper, cfg config.Config) {
	if !cfg.Sweeper.Enabled {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}

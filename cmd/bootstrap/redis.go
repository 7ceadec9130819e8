package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"shop-backend/internal/infra/admission"
	"shop-backend/internal/infra/cache"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/errs"
	"shop-backend/internal/usecase/commands"
	"shop-backend/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// RedisModule backs the cart cache and the admission gate. Without REDIS_ADDR
// both fall back to in-process implementations.
var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		NewCartCache,
		NewAdmissionGate,
		func(c queries.CartCache) commands.CartInvalidator { return c },
	),
)

// NewRedisClient returns nil when Redis is not configured.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (redis.UniversalClient, error) {
	if !cfg.Redis.Enabled() {
		logger.Info("redis disabled, using in-process cart cache and admission gate")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to ping redis")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func NewCartCache(client redis.UniversalClient, cfg config.Config) queries.CartCache {
	if client == nil {
		return cache.NopCache{}
	}
	return cache.NewRedisCache(client, cfg.Redis.CacheTTL)
}

func NewAdmissionGate(client redis.UniversalClient, cfg config.Config, logger *slog.Logger) admission.Gate {
	if client == nil {
		return admission.NewLocalGate(cfg.Cart.AdmissionTimeout)
	}
	return admission.NewRedisGate(client, cfg.Cart.AdmissionTimeout, logger)
}

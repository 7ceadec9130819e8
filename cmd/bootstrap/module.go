package bootstrap

import (
	"shop-backend/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	RedisModule,
	IntegrationModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)

package components

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"shop-backend/internal/handler"
	"shop-backend/internal/handler/api"
	"shop-backend/internal/handler/middleware"
	"shop-backend/internal/infra/admission"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/metrics"
	"shop-backend/internal/usecase/commands"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCartHandler,
		api.NewOrderHandler,
		api.NewCatalogHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(NewRouter),
)

type RouterParams struct {
	fx.In

	Engine         *gin.Engine
	Config         config.Config
	Logger         *middleware.Logger
	Metrics        *metrics.Metrics
	Gate           admission.Gate
	Carts          commands.CartCommands
	AuthMiddleware *middleware.AuthMiddleware
	CartHandler    *api.CartHandler
	OrderHandler   *api.OrderHandler
	CatalogHandler *api.CatalogHandler
	AuthHandler    *api.AuthHandler
}

func NewRouter(p RouterParams) {
	handler.NewRouter(p.Engine, handler.Deps{
		Config:         p.Config,
		Logger:         p.Logger,
		Metrics:        p.Metrics,
		Gate:           p.Gate,
		Carts:          p.Carts,
		AuthMiddleware: p.AuthMiddleware,
		CartHandler:    p.CartHandler,
		OrderHandler:   p.OrderHandler,
		CatalogHandler: p.CatalogHandler,
		AuthHandler:    p.AuthHandler,
	})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shop-backend/internal/handler/api"
	"shop-backend/internal/handler/middleware"
	"shop-backend/internal/infra/admission"
	"shop-backend/internal/pkg/config"
	"shop-backend/internal/pkg/metrics"
	"shop-backend/internal/usecase/commands"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Deps groups what the router wires into routes.
type Deps struct {
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

func NewRouter(engine *gin.Engine, d Deps) {
	setupMiddleware(engine, d)
	setupRoutes(engine, d)
}

func setupMiddleware(engine *gin.Engine, d Deps) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(d.Config.CORS))
	engine.Use(d.Logger.LoggingMiddleware())
	engine.Use(middleware.Metrics(d.Metrics))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, d Deps) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAdmin := d.AuthMiddleware.RequireAdmin()
	identify := []gin.HandlerFunc{middleware.Fingerprint(d.Config.Cookie, d.Config.Cart.TTL), middleware.EnsureCart(d.Carts)}
	admit := middleware.Admission(d.Gate)

	apiGroup := engine.Group("/api")
	{
		cartGroup := apiGroup.Group("/cart", identify...)
		{
			addRoutes(cartGroup, []route{
				{Method: http.MethodGet, Path: "", Handler: d.CartHandler.GetCart},
				{Method: http.MethodDelete, Path: "", Handler: d.CartHandler.EmptyCart, Mw: []gin.HandlerFunc{admit}},
				{Method: http.MethodPut, Path: "/items/:productId", Handler: d.CartHandler.AddItem, Mw: []gin.HandlerFunc{admit}},
				{Method: http.MethodDelete, Path: "/items/:productId", Handler: d.CartHandler.RemoveItem, Mw: []gin.HandlerFunc{admit}},
				{Method: http.MethodPut, Path: "/shipping-method", Handler: d.CartHandler.SetShippingMethod, Mw: []gin.HandlerFunc{admit}},
				{Method: http.MethodDelete, Path: "/shipping-method", Handler: d.CartHandler.ClearShippingMethod, Mw: []gin.HandlerFunc{admit}},
				{Method: http.MethodPut, Path: "/customer", Handler: d.CartHandler.SetCustomerDetails, Mw: []gin.HandlerFunc{admit}},
			})
		}

		orders := apiGroup.Group("/orders")
		{
			checkout := append(append([]gin.HandlerFunc{}, identify...), admit)
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: d.OrderHandler.CreateOrder, Mw: checkout},
				{Method: http.MethodDelete, Path: "", Handler: d.OrderHandler.CancelOrder, Mw: checkout},
				{Method: http.MethodPost, Path: "/payment-callback", Handler: d.OrderHandler.PaymentCallback},
				{Method: http.MethodGet, Path: "", Handler: d.OrderHandler.ListOrders, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodGet, Path: "/:id", Handler: d.OrderHandler.GetOrder, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodPost, Path: "/:id/resend-notification", Handler: d.OrderHandler.ResendNotification, Mw: []gin.HandlerFunc{requireAdmin}},
			})
		}

		addRoutes(apiGroup.Group("/products"), []route{
			{Method: http.MethodGet, Path: "", Handler: d.CatalogHandler.ListProducts},
			{Method: http.MethodGet, Path: "/:id", Handler: d.CatalogHandler.GetProduct},
			{Method: http.MethodPost, Path: "", Handler: d.CatalogHandler.CreateProduct, Mw: []gin.HandlerFunc{requireAdmin}},
		})
		addRoutes(apiGroup.Group("/shipping-methods"), []route{
			{Method: http.MethodGet, Path: "", Handler: d.CatalogHandler.ListShippingMethods},
			{Method: http.MethodGet, Path: "/:id", Handler: d.CatalogHandler.GetShippingMethod},
			{Method: http.MethodPost, Path: "", Handler: d.CatalogHandler.CreateShippingMethod, Mw: []gin.HandlerFunc{requireAdmin}},
		})

		adminGroup := apiGroup.Group("/admin")
		{
			addRoutes(adminGroup, []route{
				{Method: http.MethodPost, Path: "/login", Handler: d.AuthHandler.Login},
				{Method: http.MethodPost, Path: "/logout", Handler: d.AuthHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: d.AuthHandler.Me, Mw: []gin.HandlerFunc{requireAdmin}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

// Route middleware is registered as real gin handlers so that c.Next in a
// middleware (admission release, EnsureCart) wraps the route handler.
func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)
		g.Handle(r.Method, r.Path, handlers...)
	}
}

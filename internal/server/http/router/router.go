package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/dispatch"
	"github.com/polkiloo/orderdesk/internal/server/http/handlers"
	"github.com/polkiloo/orderdesk/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. A nil limiter
// leaves public routes unthrottled.
func Setup(facade handlers.DeskFacade, dispatcher *dispatch.Dispatcher, limiter *middleware.IPRateLimiter, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade, dispatcher)
	orderHandler := handlers.NewOrderHandler(facade, dispatcher)
	clientHandler := handlers.NewClientHandler(facade, dispatcher)
	productHandler := handlers.NewProductHandler(facade, dispatcher)
	paymentHandler := handlers.NewPaymentHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/health", healthHandler.Check)
	engine.POST("/webhook", paymentHandler.Webhook)

	public := engine.Group("")
	public.Use(middleware.RateLimit(limiter))
	public.POST("/login", authHandler.LoginStaff())
	public.POST("/login/client", authHandler.LoginClient())
	public.POST("/clients", clientHandler.Register())
	public.POST("/clients/google", clientHandler.SignInWithGoogle())
	public.GET("/checkout/:status", paymentHandler.CheckoutResult)

	authed := engine.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/orders", orderHandler.Register())
	authed.DELETE("/orders/:sheet", orderHandler.Cancel())
	authed.POST("/orders/:sheet/checkout", orderHandler.RetryCheckout())
	authed.GET("/orders/:sheet", orderHandler.Get())
	authed.GET("/orders/details/:sheet", orderHandler.Details())
	authed.GET("/orders/client/:client", orderHandler.ByClient())
	authed.GET("/clients/:client", clientHandler.Get())
	authed.GET("/products/:code", productHandler.Get())

	staff := authed.Group("")
	staff.Use(middleware.StaffOnly())
	staff.PUT("/orders", orderHandler.UpdateStatus())
	staff.POST("/orders/filter", orderHandler.Filter())
	staff.POST("/orders/search", orderHandler.Search())
	staff.POST("/products", productHandler.Register())

	return engine
}

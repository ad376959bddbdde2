package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/dahorta/freshmarket/internal/server/http/handlers"
	"github.com/dahorta/freshmarket/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	fulfillmentHandler := handlers.NewFulfillmentHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	cart := api.Group("/cart")
	cart.Use(middleware.AuthRequired(facade))
	cart.GET("", cartHandler.View)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.Add)
	cart.PATCH("/items", cartHandler.Adjust)
	cart.PUT("/items", cartHandler.Set)
	cart.DELETE("/items/:productID", cartHandler.Remove)
	cart.POST("/estimate", cartHandler.Estimate)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Checkout)
	orders.GET("", orderHandler.List)
	orders.GET("/:orderID", orderHandler.Get)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.StaffRequired())
	admin.GET("/orders", fulfillmentHandler.List)
	admin.POST("/orders/:orderID/status", fulfillmentHandler.Transition)
	admin.GET("/orders/:orderID/picking", fulfillmentHandler.Picking)
	admin.POST("/orders/:orderID/picking/toggle", fulfillmentHandler.TogglePicked)
	admin.POST("/orders/:orderID/picking/complete", fulfillmentHandler.MarkAllPicked)
	admin.POST("/orders/:orderID/picking/reset", fulfillmentHandler.ResetPicking)
	admin.POST("/deliveries", fulfillmentHandler.DeliverBatch)

	return engine
}

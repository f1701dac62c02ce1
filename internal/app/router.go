package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"yatra/internal/handler"
	"yatra/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	PaymentHandler    *handler.PaymentHandler
	SettlementHandler *handler.SettlementHandler
	RideHandler       *handler.RideHandler
	DriverHandler     *handler.DriverHandler
	RedisClient       *redis.Client
	NewRelicApp       *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.Idempotency(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		v1.POST("/checkout", deps.PaymentHandler.InitiateCheckout)

		payments := v1.Group("/payments")
		{
			payments.POST("/confirm", deps.PaymentHandler.ConfirmPayment)
		}

		v1.POST("/settlements", deps.SettlementHandler.SettleRide)

		rides := v1.Group("/rides")
		{
			rides.POST("", deps.RideHandler.CreateRide)
			rides.POST("/repair", deps.RideHandler.RepairRiderRides)
		}

		v1.GET("/riders/:id/rides", deps.RideHandler.ListRiderRides)

		drivers := v1.Group("/drivers")
		{
			drivers.POST("/register", deps.DriverHandler.Register)
			drivers.GET("", deps.DriverHandler.GetAll)
		}
	}

	return router
}

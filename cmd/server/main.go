package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"yatra/internal/app"
	"yatra/internal/config"
	"yatra/internal/gateway"
	"yatra/internal/handler"
	internalRedis "yatra/internal/redis"
	"yatra/internal/repository/postgres"
	"yatra/internal/service"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.Stripe.SecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	server := wireServer(db, redisClient, nrApp, cfg)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Payment gateway client, built once and injected everywhere.
	stripeGateway := gateway.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.Currency)

	// Cache.
	rideCache := internalRedis.NewRideCache(redisClient)

	// Repositories.
	rideRepo := postgres.NewRideRepository(db)
	driverRepo := postgres.NewDriverRepository(db)

	// Services.
	paymentService := service.NewPaymentService(stripeGateway)
	rideService := service.NewRideService(rideRepo, rideCache)
	repairService := service.NewRepairService(rideRepo, rideCache)
	settlementService := service.NewSettlementService(paymentService, rideService)

	// Handlers.
	paymentHandler := handler.NewPaymentHandler(paymentService)
	settlementHandler := handler.NewSettlementHandler(settlementService)
	rideHandler := handler.NewRideHandler(rideService, repairService)
	driverHandler := handler.NewDriverHandler(driverRepo)

	router := app.NewRouter(app.RouterDeps{
		PaymentHandler:    paymentHandler,
		SettlementHandler: settlementHandler,
		RideHandler:       rideHandler,
		DriverHandler:     driverHandler,
		RedisClient:       redisClient,
		NewRelicApp:       nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

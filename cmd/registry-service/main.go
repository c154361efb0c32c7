package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"itemtrace-registry-service/internal/adapters/db"
	"itemtrace-registry-service/internal/adapters/httpapi"
	"itemtrace-registry-service/internal/adapters/paystack"
	"itemtrace-registry-service/internal/adapters/redis"
	"itemtrace-registry-service/internal/app"
	"itemtrace-registry-service/internal/config"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting Itemtrace Registry Service...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close()

	log.Info().Msg("Database connection established")

	// Create repository
	itemRepo := db.NewItemRepository(dbConn)

	// Create Redis client
	redisClient := redis.NewClient(cfg)
	if err := redis.PingRedis(redisClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	log.Info().Msg("Redis connection established")

	// Create payment gateway client
	gateway := paystack.NewClient(paystack.ClientParams{
		BaseURL:   cfg.Paystack.BaseURL,
		SecretKey: cfg.Paystack.SecretKey,
		Logger:    log.Logger,
	})

	// Create business services
	itemService := app.NewItemService(app.ItemServiceParams{
		ItemRepo: itemRepo,
		Logger:   log.Logger,
	})
	registryService := app.NewRegistryService(app.RegistryServiceParams{
		ItemRepo: itemRepo,
		Logger:   log.Logger,
	})
	analyticsService := app.NewAnalyticsService(app.AnalyticsServiceParams{
		ItemRepo: itemRepo,
		Logger:   log.Logger,
	})
	paymentService := app.NewPaymentService(app.PaymentServiceParams{
		Gateway:     gateway,
		CallbackURL: cfg.Paystack.CallbackURL,
		Logger:      log.Logger,
	})

	log.Info().Msg("Business services initialized")

	server := httpapi.NewServer(httpapi.ServerParams{
		Config:      cfg,
		Items:       itemService,
		Registry:    registryService,
		Analytics:   analyticsService,
		Payments:    paymentService,
		DB:          dbConn.GetDB(),
		RedisClient: redisClient,
		Logger:      log.Logger,
	})

	log.Info().Msg("HTTP server initialized")

	// Start HTTP server
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start HTTP server")
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case <-ctx.Done():
		log.Info().Msg("Context cancelled")
	}

	// Graceful shutdown
	log.Info().Msg("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop HTTP server
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	}

	// Drain the analytics worker pool
	analyticsService.Close()
	log.Info().Msg("Analytics worker pool stopped")

	log.Info().Msg("Graceful shutdown completed")
}

func initLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		// JSON format (default)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global logger
	zerolog.DefaultContextLogger = &log.Logger
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auroramart/internal/config"
	"auroramart/internal/database"
	"auroramart/internal/handler"
	"auroramart/internal/predictor"
	"auroramart/internal/repository"
	"auroramart/internal/router"
	"auroramart/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting auroramart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)

	// Initialize the category predictor. A missing or broken model degrades
	// the service to the explicit unavailable state rather than failing boot.
	categoryPredictor := newPredictor(ctx, cfg.Predictor, logger)
	defer categoryPredictor.Close()

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	customerService := service.NewCustomerService(customerRepo, categoryPredictor, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, cfg.Reconcile.DefaultQuantity, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	dashboardService := service.NewDashboardService(productRepo, customerRepo, orderRepo, categoryPredictor, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	customerHandler := handler.NewCustomerHandler(customerService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)

	// Initialize router
	mux := router.New(
		productHandler,
		customerHandler,
		orderHandler,
		cartHandler,
		dashboardHandler,
		cfg.Auth.APIKey,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newPredictor builds the category predictor from configuration, loading the
// model artifact from S3 with a local file fallback. Any failure yields the
// explicit unavailable predictor.
func newPredictor(ctx context.Context, cfg config.PredictorConfig, logger zerolog.Logger) predictor.Predictor {
	if !cfg.Enabled {
		logger.Info().Msg("category predictor disabled by configuration")
		return predictor.Unavailable(logger)
	}

	fileLoader := predictor.NewFileLoader(logger)
	var loader predictor.Loader = fileLoader

	if cfg.S3Enabled {
		s3Loader, err := predictor.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = predictor.NewFallbackLoader(s3Loader, fileLoader, cfg.S3Prefix, true, logger)
		}
	}

	p, err := predictor.New(ctx, cfg.ModelPath, loader, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("model_path", cfg.ModelPath).
			Msg("failed to load category prediction model, predictions unavailable")
		return predictor.Unavailable(logger)
	}

	return p
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pesokrava/storefront_catalog/internal/config"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/events"
	httpDelivery "github.com/Pesokrava/storefront_catalog/internal/delivery/http"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/handler"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/cache"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/database"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
	cacheRepo "github.com/Pesokrava/storefront_catalog/internal/repository/cache"
	"github.com/Pesokrava/storefront_catalog/internal/repository/postgres"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/color"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/notify"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/product"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/variant"

	_ "github.com/Pesokrava/storefront_catalog/docs"
)

// @title Storefront Catalog API
// @version 1.0
// @description Storefront catalog with product, variant and color lifecycle management.

// @contact.name API Support
// @contact.url http://github.com/Pesokrava/storefront_catalog

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @tag.name Products
// @tag.description Public storefront catalog

// @tag.name Admin Products
// @tag.description Product lifecycle management

// @tag.name Admin Variants
// @tag.description Variant lifecycle management

// @tag.name Admin Colors
// @tag.description Color palette management

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env).Service("catalog-api")
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		appLogger.Fatal("Invalid log level", err)
	}
	logger.SetGlobalLogger(appLogger)
	appLogger.Info("Starting Storefront Catalog API...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, appLogger, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL successfully")

	if cfg.Database.AutoMigrate {
		applied, err := database.RunMigrations(db, cfg.Database.MigrationsDir)
		if err != nil {
			appLogger.Fatal("Failed to run migrations", err)
		}
		appLogger.WithFields(map[string]interface{}{
			"migrations": applied,
		}).Info("Migrations applied")
	}

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(cfg, appLogger, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis successfully")

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg.NATS.URL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	// The API may start before the stock worker; publishing needs the stream.
	if err := events.NewStreamConfig(publisher.JetStream(), appLogger).EnsureStream(); err != nil {
		appLogger.Fatal("Failed to ensure stream", err)
	}

	productRepo := postgres.NewProductRepository(db)
	variantRepo := postgres.NewVariantRepository(db)
	colorRepo := postgres.NewColorRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	referenceRepo := postgres.NewReferenceRepository(db)
	redisCache := cacheRepo.NewRedisCache(
		redisClient,
		cfg.Cache.ProductDetailTTL,
		cfg.Cache.ProductListTTL,
	)

	notifier := notify.New(publisher, redisCache, appLogger)

	productService := product.NewService(
		productRepo, variantRepo, orderRepo, referenceRepo, notifier, redisCache,
		product.Settings{
			LowStockThreshold: cfg.Catalog.LowStockThreshold,
			HighlightLimit:    cfg.Catalog.HighlightLimit,
			FeaturedMinRating: cfg.Catalog.FeaturedMinRating,
		},
		appLogger,
	)
	variantService := variant.NewService(
		productRepo, variantRepo, colorRepo, orderRepo, referenceRepo, notifier,
		cfg.Catalog.LowStockThreshold, appLogger,
	)
	colorService := color.NewService(colorRepo, variantRepo, notifier, appLogger)

	pingRedis := func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	}

	router := httpDelivery.NewRouter(httpDelivery.Handlers{
		Products:      handler.NewProductHandler(productService, cfg.Catalog.PublicPageLimit, appLogger),
		AdminProducts: handler.NewAdminProductHandler(productService, cfg.Catalog.AdminPageLimit, appLogger),
		Variants:      handler.NewVariantHandler(variantService, appLogger),
		Colors:        handler.NewColorHandler(colorService, cfg.Catalog.AdminPageLimit, appLogger),
		Checks:        map[string]func(ctx context.Context) error{
			"postgres": db.PingContext,
			"redis":    pingRedis,
		},
	}, cfg, appLogger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}

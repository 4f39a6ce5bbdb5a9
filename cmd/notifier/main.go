package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pesokrava/storefront_catalog/internal/config"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/events"
	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env).Service("catalog-notifier")
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		appLogger.Fatal("Invalid log level", err)
	}
	appLogger.Info("Starting notifier service...")

	consumer, err := events.NewConsumer(cfg.NATS.URL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS consumer", err)
	}
	defer consumer.Close()

	if err := consumer.Subscribe(domain.CatalogSubject, events.LoggingHandler(appLogger)); err != nil {
		appLogger.Fatalf(err, "Failed to subscribe to %s", domain.CatalogSubject)
	}

	appLogger.Info("Notifier service started and listening for events...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down notifier service...")
}

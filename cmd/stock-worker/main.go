package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/storefront_catalog/internal/config"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/events"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/cache"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/database"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
	cacheRepo "github.com/Pesokrava/storefront_catalog/internal/repository/cache"
	"github.com/Pesokrava/storefront_catalog/internal/repository/postgres"
	"github.com/Pesokrava/storefront_catalog/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env).Service("catalog-stock-worker")
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		appLogger.Fatal("Invalid log level", err)
	}

	appLogger.Info("Starting stock worker...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, appLogger, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	appLogger.Info("Connected to database")

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(cfg, appLogger, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	redisCache := cacheRepo.NewRedisCache(redisClient, cfg.Cache.ProductDetailTTL, cfg.Cache.ProductListTTL)
	refresher := worker.NewStockRefresher(
		postgres.NewProductRepository(db),
		redisCache,
		cfg.Catalog.LowStockThreshold,
		appLogger,
	)
	stockWorker := worker.NewStockWorker(refresher, appLogger)

	appLogger.Info("Connecting to NATS JetStream...")
	nc, err := events.Connect(cfg.NATS.URL, "catalog-stock-worker", appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		appLogger.Fatal("Failed to create JetStream context", err)
	}

	appLogger.WithFields(map[string]any{
		"url": cfg.NATS.URL,
	}).Info("Connected to NATS JetStream")

	appLogger.Info("Initializing JetStream stream and consumer...")
	streamConfig := events.NewStreamConfig(js, appLogger)

	if err := streamConfig.EnsureStream(); err != nil {
		appLogger.Fatal("Failed to ensure stream", err)
	}

	if err := streamConfig.EnsureConsumer(); err != nil {
		appLogger.Fatal("Failed to ensure consumer", err)
	}

	sub, err := js.PullSubscribe(events.StreamSubjects, events.ConsumerName, nats.ManualAck())
	if err != nil {
		appLogger.Fatal("Failed to subscribe to JetStream consumer", err)
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil {
			appLogger.Error("Failed to unsubscribe from JetStream", err)
		}
	}()

	appLogger.WithFields(map[string]any{
		"stream":   events.StreamName,
		"consumer": events.ConsumerName,
	}).Info("Subscribed to JetStream consumer")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	fetchDone := make(chan struct{})
	go func() {
		defer close(fetchDone)
		for ctx.Err() == nil {
			msgs, err := sub.Fetch(10, nats.MaxWait(5*time.Second))
			if err != nil {
				if errors.Is(err, nats.ErrTimeout) {
					continue
				}
				appLogger.Error("Failed to fetch messages from JetStream", err)
				select {
				case <-time.After(5 * time.Second):
				case <-ctx.Done():
				}
				continue
			}

			for _, msg := range msgs {
				if err := stockWorker.HandleEvent(msg.Data); err != nil {
					appLogger.Error("Failed to handle event", err)

					// Redelivered with backoff until MaxDeliver, then discarded.
					// The next event of the product recomputes its stock in full.
					if nackErr := msg.Nak(); nackErr != nil {
						appLogger.Error("Failed to NACK message", nackErr)
					}
					continue
				}

				if ackErr := msg.Ack(); ackErr != nil {
					appLogger.Error("Failed to ACK message", ackErr)
				}
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	<-sigCh
	appLogger.Info("Received shutdown signal")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	select {
	case <-fetchDone:
	case <-shutdownCtx.Done():
	}

	if err := stockWorker.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Error during shutdown", err)
	}

	appLogger.Info("Stock worker stopped")
}

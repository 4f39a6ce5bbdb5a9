package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
)

// Consumer handles consuming events from NATS
type Consumer struct {
	nc     *nats.Conn
	logger *logger.Logger
	sub    *nats.Subscription
}

// NewConsumer creates a new NATS consumer
func NewConsumer(url string, log *logger.Logger) (*Consumer, error) {
	nc, err := Connect(url, "catalog-notifier", log)
	if err != nil {
		return nil, err
	}

	log.Infof("Connected to NATS at %s", url)

	return &Consumer{
		nc:     nc,
		logger: log,
	}, nil
}

// Subscribe subscribes to a NATS subject and processes messages
func (c *Consumer) Subscribe(subject string, handler func(data []byte) error) error {
	sub, err := c.nc.Subscribe(subject, func(msg *nats.Msg) {
		c.logger.Debugf("Received message on subject %s", subject)

		if err := handler(msg.Data); err != nil {
			c.logger.Errorf(err, "Failed to handle message on subject %s", subject)
		}
	})

	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	c.sub = sub
	c.logger.Infof("Subscribed to NATS subject: %s", subject)
	return nil
}

// Close closes the NATS connection
func (c *Consumer) Close() {
	if c.sub != nil {
		if err := c.sub.Unsubscribe(); err != nil {
			c.logger.Warnf("Failed to unsubscribe from NATS: %v", err)
		}
	}
	if c.nc != nil {
		c.nc.Close()
		c.logger.Info("NATS consumer connection closed")
	}
}

// LoggingHandler creates a handler that logs every catalog event
func LoggingHandler(log *logger.Logger) func(data []byte) error {
	return func(data []byte) error {
		var event domain.CatalogEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Error("Failed to unmarshal event", err)
			return err
		}
		if event.EventType == "" {
			return fmt.Errorf("event without type: %s", data)
		}

		fields := map[string]interface{}{
			"event_type": event.EventType,
			"timestamp":  event.Timestamp,
		}
		if event.ProductID != nil {
			fields["product_id"] = event.ProductID.String()
		}
		if event.VariantID != nil {
			fields["variant_id"] = event.VariantID.String()
		}
		if event.ColorID != nil {
			fields["color_id"] = event.ColorID.String()
		}

		log.WithFields(fields).Info("Catalog event received")
		return nil
	}
}

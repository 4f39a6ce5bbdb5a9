// Package notify publishes catalog events and drops stale cache entries
// after lifecycle mutations. Failures are logged, never returned.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
)

const publishTimeout = 3 * time.Second

// Notifier fans a mutation out to the event stream and the public cache.
// Either collaborator may be nil.
type Notifier struct {
	publisher domain.EventPublisher
	cache     domain.CatalogCache
	logger    *logger.Logger
}

// New creates a new notifier
func New(publisher domain.EventPublisher, cache domain.CatalogCache, log *logger.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		cache:     cache,
		logger:    log,
	}
}

// ProductChanged reports a product mutation
func (n *Notifier) ProductChanged(ctx context.Context, eventType domain.EventType, productID uuid.UUID) {
	n.invalidateProduct(ctx, productID)
	n.publish(ctx, domain.CatalogEvent{EventType: eventType, ProductID: &productID})
}

// VariantChanged reports a variant mutation of productID
func (n *Notifier) VariantChanged(ctx context.Context, eventType domain.EventType, productID, variantID uuid.UUID) {
	n.invalidateProduct(ctx, productID)
	n.publish(ctx, domain.CatalogEvent{EventType: eventType, ProductID: &productID, VariantID: &variantID})
}

// ColorChanged reports a color mutation. Listing pages embed color data,
// so every cached listing is dropped.
func (n *Notifier) ColorChanged(ctx context.Context, eventType domain.EventType, colorID uuid.UUID) {
	if n.cache != nil {
		if err := n.cache.InvalidateLists(ctx); err != nil {
			n.logger.Warnf("Failed to invalidate listing cache after color %s change: %v", colorID, err)
		}
	}
	n.publish(ctx, domain.CatalogEvent{EventType: eventType, ColorID: &colorID})
}

func (n *Notifier) invalidateProduct(ctx context.Context, productID uuid.UUID) {
	if n.cache == nil {
		return
	}
	if err := n.cache.InvalidateProduct(ctx, productID); err != nil {
		n.logger.Warnf("Failed to invalidate cache for product %s: %v", productID, err)
	}
}

func (n *Notifier) publish(ctx context.Context, event domain.CatalogEvent) {
	if n.publisher == nil {
		return
	}
	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		n.logger.Errorf(err, "Failed to marshal %s event", event.EventType)
		return
	}

	// the request may already be finished when the broker answers
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := n.publisher.Publish(pubCtx, domain.CatalogSubject, data); err != nil {
		n.logger.WithFields(map[string]interface{}{
			"event_type": event.EventType,
			"error":      err.Error(),
		}).Error("Failed to publish catalog event", err)
	}
}

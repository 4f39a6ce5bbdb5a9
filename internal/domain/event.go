package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names a catalog lifecycle event
type EventType string

const (
	EventProductCreated       EventType = "product.created"
	EventProductUpdated       EventType = "product.updated"
	EventProductDeleted       EventType = "product.deleted"
	EventProductDeactivated   EventType = "product.deactivated"
	EventProductRestored      EventType = "product.restored"
	EventProductStatusChanged EventType = "product.status_changed"

	EventVariantCreated       EventType = "variant.created"
	EventVariantUpdated       EventType = "variant.updated"
	EventVariantDeleted       EventType = "variant.deleted"
	EventVariantDeactivated   EventType = "variant.deactivated"
	EventVariantRestored      EventType = "variant.restored"
	EventVariantStatusChanged EventType = "variant.status_changed"

	EventColorCreated  EventType = "color.created"
	EventColorUpdated  EventType = "color.updated"
	EventColorDeleted  EventType = "color.deleted"
	EventColorRestored EventType = "color.restored"
)

// CatalogSubject is the NATS subject catalog events are published on
const CatalogSubject = "catalog.events"

// CatalogEvent is published after every catalog mutation
type CatalogEvent struct {
	EventType EventType  `json:"eventType"`
	Timestamp time.Time  `json:"timestamp"`
	ProductID *uuid.UUID `json:"productId,omitempty"`
	VariantID *uuid.UUID `json:"variantId,omitempty"`
	ColorID   *uuid.UUID `json:"colorId,omitempty"`
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
)

func TestExponentialBackoff(t *testing.T) {
	assert.Nil(t, exponentialBackoff(1))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, exponentialBackoff(3))
	assert.Len(t, exponentialBackoff(MaxDeliveryAttempts), MaxDeliveryAttempts-1)
}

func TestStreamConfig(t *testing.T) {
	cfg := streamConfig()

	assert.Equal(t, "CATALOG", cfg.Name)
	assert.Equal(t, []string{"catalog.events"}, cfg.Subjects)
	assert.Equal(t, nats.WorkQueuePolicy, cfg.Retention)
	assert.Equal(t, nats.FileStorage, cfg.Storage)
	assert.Equal(t, 24*time.Hour, cfg.MaxAge)
}

func TestConsumerConfig(t *testing.T) {
	cfg := consumerConfig()

	assert.Equal(t, "stock-worker", cfg.Durable)
	assert.Equal(t, nats.AckExplicitPolicy, cfg.AckPolicy)
	assert.Equal(t, MaxDeliveryAttempts, cfg.MaxDeliver)
	assert.Len(t, cfg.BackOff, MaxDeliveryAttempts-1)
}

func TestLoggingHandler(t *testing.T) {
	handle := LoggingHandler(logger.New("test"))

	productID := uuid.New()
	data, err := json.Marshal(domain.CatalogEvent{
		EventType: domain.EventProductCreated,
		Timestamp: time.Now(),
		ProductID: &productID,
	})
	require.NoError(t, err)

	assert.NoError(t, handle(data))
	assert.Error(t, handle([]byte("not json")))
	assert.Error(t, handle([]byte(`{}`)))
}

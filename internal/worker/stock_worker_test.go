package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
)

type mockRefresher struct {
	mock.Mock
}

func (m *mockRefresher) Refresh(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func setupTestWorker() (*StockWorker, *mockRefresher) {
	refresher := new(mockRefresher)
	return NewStockWorker(refresher, logger.New("test")), refresher
}

func productEvent(t *testing.T, eventType domain.EventType, productID uuid.UUID, ts time.Time) []byte {
	t.Helper()
	data, err := json.Marshal(domain.CatalogEvent{
		EventType: eventType,
		Timestamp: ts,
		ProductID: &productID,
	})
	require.NoError(t, err)
	return data
}

func TestStockWorker_HandleEvent_Success(t *testing.T) {
	worker, refresher := setupTestWorker()
	productID := uuid.New()

	refresher.On("Refresh", mock.Anything, productID).Return(nil).Once()

	err := worker.HandleEvent(productEvent(t, domain.EventVariantUpdated, productID, time.Now()))
	assert.NoError(t, err)
	assert.Equal(t, 1, worker.GetPendingCount())

	time.Sleep(debounceWindow + 100*time.Millisecond)

	assert.Equal(t, 0, worker.GetPendingCount())
	refresher.AssertExpectations(t)
}

func TestStockWorker_HandleEvent_InvalidJSON(t *testing.T) {
	worker, _ := setupTestWorker()

	err := worker.HandleEvent([]byte(`{invalid json}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestStockWorker_HandleEvent_ColorEventSkipped(t *testing.T) {
	worker, refresher := setupTestWorker()
	colorID := uuid.New()

	data, err := json.Marshal(domain.CatalogEvent{
		EventType: domain.EventColorUpdated,
		Timestamp: time.Now(),
		ColorID:   &colorID,
	})
	require.NoError(t, err)

	assert.NoError(t, worker.HandleEvent(data))
	assert.Equal(t, 0, worker.GetPendingCount())
	refresher.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestStockWorker_Debouncing_MultipleEvents(t *testing.T) {
	worker, refresher := setupTestWorker()
	productID := uuid.New()

	refresher.On("Refresh", mock.Anything, productID).Return(nil).Once()

	for i := 0; i < 10; i++ {
		err := worker.HandleEvent(productEvent(t, domain.EventVariantUpdated, productID, time.Now()))
		assert.NoError(t, err)
		time.Sleep(50 * time.Millisecond)
	}

	assert.Equal(t, 1, worker.GetPendingCount())

	time.Sleep(debounceWindow + 200*time.Millisecond)

	assert.Equal(t, 0, worker.GetPendingCount())
	refresher.AssertNumberOfCalls(t, "Refresh", 1)
}

func TestStockWorker_EventOrdering_IgnoreStaleEvents(t *testing.T) {
	worker, refresher := setupTestWorker()
	productID := uuid.New()
	now := time.Now()

	refresher.On("Refresh", mock.Anything, productID).Return(nil).Once()

	assert.NoError(t, worker.HandleEvent(productEvent(t, domain.EventVariantCreated, productID, now.Add(10*time.Second))))
	assert.NoError(t, worker.HandleEvent(productEvent(t, domain.EventVariantCreated, productID, now)))

	assert.Equal(t, 1, worker.GetPendingCount())

	time.Sleep(debounceWindow + 200*time.Millisecond)

	refresher.AssertNumberOfCalls(t, "Refresh", 1)
}

func TestStockWorker_MultipleProducts(t *testing.T) {
	worker, refresher := setupTestWorker()
	products := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	for _, productID := range products {
		refresher.On("Refresh", mock.Anything, productID).Return(nil).Once()
		assert.NoError(t, worker.HandleEvent(productEvent(t, domain.EventProductUpdated, productID, time.Now())))
	}

	assert.Equal(t, 3, worker.GetPendingCount())

	time.Sleep(debounceWindow + 300*time.Millisecond)

	assert.Equal(t, 0, worker.GetPendingCount())
	refresher.AssertExpectations(t)
}

func TestStockWorker_RetryLogic(t *testing.T) {
	worker, refresher := setupTestWorker()
	productID := uuid.New()

	refresher.On("Refresh", mock.Anything, productID).Return(assert.AnError).Twice()
	refresher.On("Refresh", mock.Anything, productID).Return(nil).Once()

	assert.NoError(t, worker.HandleEvent(productEvent(t, domain.EventVariantRestored, productID, time.Now())))

	// debounce + 100ms + 200ms of backoff
	time.Sleep(debounceWindow + 1*time.Second)

	refresher.AssertNumberOfCalls(t, "Refresh", 3)
}

func TestStockWorker_RetriesExhausted(t *testing.T) {
	worker, refresher := setupTestWorker()
	productID := uuid.New()

	refresher.On("Refresh", mock.Anything, productID).Return(assert.AnError)

	assert.NoError(t, worker.HandleEvent(productEvent(t, domain.EventVariantDeleted, productID, time.Now())))

	time.Sleep(debounceWindow + 1*time.Second)

	refresher.AssertNumberOfCalls(t, "Refresh", maxRetries)
}

func TestStockWorker_GracefulShutdown(t *testing.T) {
	worker, refresher := setupTestWorker()
	productID := uuid.New()

	refresher.On("Refresh", mock.Anything, productID).Return(nil).Once()

	assert.NoError(t, worker.HandleEvent(productEvent(t, domain.EventProductUpdated, productID, time.Now())))

	time.Sleep(debounceWindow + 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, worker.Shutdown(ctx))
	assert.Equal(t, 0, worker.GetPendingCount())
	refresher.AssertExpectations(t)
}

func TestStockWorker_ShutdownCancelsPendingUpdates(t *testing.T) {
	worker, refresher := setupTestWorker()
	productID := uuid.New()

	assert.NoError(t, worker.HandleEvent(productEvent(t, domain.EventProductUpdated, productID, time.Now())))
	assert.Equal(t, 1, worker.GetPendingCount())

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	assert.NoError(t, worker.Shutdown(ctx))
	assert.Equal(t, 0, worker.GetPendingCount())

	time.Sleep(debounceWindow + 100*time.Millisecond)
	refresher.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestStockWorker_IgnoresEventsAfterShutdown(t *testing.T) {
	worker, _ := setupTestWorker()

	require.NoError(t, worker.Shutdown(context.Background()))

	assert.NoError(t, worker.HandleEvent(productEvent(t, domain.EventProductUpdated, uuid.New(), time.Now())))
	assert.Equal(t, 0, worker.GetPendingCount())
}

func TestStockWorker_ShutdownTimeout(t *testing.T) {
	worker, refresher := setupTestWorker()
	productID := uuid.New()

	refresher.On("Refresh", mock.Anything, productID).
		WaitUntil(time.After(2 * time.Second)).
		Return(nil)

	assert.NoError(t, worker.HandleEvent(productEvent(t, domain.EventProductUpdated, productID, time.Now())))

	time.Sleep(debounceWindow + 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := worker.Shutdown(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)
}

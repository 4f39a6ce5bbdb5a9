package worker

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
	"github.com/Pesokrava/storefront_catalog/internal/repository/postgres"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/mocks"
)

func setupRefresher(t *testing.T, cache domain.CatalogCache) (*StockRefresher, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	repo := postgres.NewProductRepository(sqlx.NewDb(db, "sqlmock"))
	return NewStockRefresher(repo, cache, 10, logger.New("test")), sqlMock
}

func expectStockSum(sqlMock sqlmock.Sqlmock, productID uuid.UUID, total int) {
	sqlMock.ExpectQuery("SELECT COALESCE\\(SUM\\(vs.quantity\\), 0\\)").
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(total))
}

func TestStockRefresher_Refresh_LowStock(t *testing.T) {
	cache := new(mocks.CatalogCache)
	refresher, sqlMock := setupRefresher(t, cache)
	productID := uuid.New()

	expectStockSum(sqlMock, productID, 4)
	sqlMock.ExpectExec("UPDATE products").
		WithArgs(4, domain.StockLowStock, sqlmock.AnyArg(), productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	cache.On("InvalidateProduct", mock.Anything, productID).Return(nil)

	err := refresher.Refresh(context.Background(), productID)

	assert.NoError(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	cache.AssertExpectations(t)
}

func TestStockRefresher_Refresh_NoActiveVariants(t *testing.T) {
	refresher, sqlMock := setupRefresher(t, nil)
	productID := uuid.New()

	expectStockSum(sqlMock, productID, 0)
	sqlMock.ExpectExec("UPDATE products").
		WithArgs(0, domain.StockOutOfStock, sqlmock.AnyArg(), productID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, refresher.Refresh(context.Background(), productID))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestStockRefresher_Refresh_DeletedProductSkipped(t *testing.T) {
	cache := new(mocks.CatalogCache)
	refresher, sqlMock := setupRefresher(t, cache)
	productID := uuid.New()

	expectStockSum(sqlMock, productID, 30)
	sqlMock.ExpectExec("UPDATE products").
		WithArgs(30, domain.StockInStock, sqlmock.AnyArg(), productID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, refresher.Refresh(context.Background(), productID))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	cache.AssertNotCalled(t, "InvalidateProduct", mock.Anything, mock.Anything)
}

func TestStockRefresher_Refresh_DatabaseError(t *testing.T) {
	refresher, sqlMock := setupRefresher(t, nil)
	productID := uuid.New()

	sqlMock.ExpectQuery("SELECT COALESCE").
		WithArgs(productID).
		WillReturnError(assert.AnError)

	err := refresher.Refresh(context.Background(), productID)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "refresh product stock")
}

func TestStockRefresher_Refresh_CacheFailureIgnored(t *testing.T) {
	cache := new(mocks.CatalogCache)
	refresher, sqlMock := setupRefresher(t, cache)
	productID := uuid.New()

	expectStockSum(sqlMock, productID, 12)
	sqlMock.ExpectExec("UPDATE products").
		WithArgs(12, domain.StockInStock, sqlmock.AnyArg(), productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	cache.On("InvalidateProduct", mock.Anything, productID).Return(assert.AnError)

	assert.NoError(t, refresher.Refresh(context.Background(), productID))
}

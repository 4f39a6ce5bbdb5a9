package variant

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/mocks"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/notify"
)

type fixture struct {
	products *mocks.ProductRepository
	variants *mocks.VariantRepository
	colors   *mocks.ColorRepository
	orders   *mocks.OrderReader
	refs     *mocks.ReferenceReader
	service  *Service
}

func newFixture() *fixture {
	f := &fixture{
		products: new(mocks.ProductRepository),
		variants: new(mocks.VariantRepository),
		colors:   new(mocks.ColorRepository),
		orders:   new(mocks.OrderReader),
		refs:     new(mocks.ReferenceReader),
	}
	log := logger.New("test")
	f.service = NewService(f.products, f.variants, f.colors, f.orders, f.refs, notify.New(nil, nil, log), 10, log)
	f.products.On("RefreshStock", mock.Anything, mock.Anything, 10).Return(&domain.StockInfo{}, nil).Maybe()
	return f
}

func validInput(productID, colorID uuid.UUID) domain.VariantInput {
	return domain.VariantInput{
		ProductID:       productID,
		ColorID:         colorID,
		Gender:          domain.GenderUnisex,
		Price:           200,
		PercentDiscount: 15,
	}
}

func TestService_Create_Success(t *testing.T) {
	f := newFixture()
	productID, colorID, sizeID := uuid.New(), uuid.New(), uuid.New()
	in := validInput(productID, colorID)
	in.Sizes = []domain.VariantSize{{SizeID: sizeID, Quantity: 4, SKU: "SKU-1"}}

	f.products.On("GetByID", mock.Anything, productID).Return(&domain.Product{ID: productID}, nil)
	f.colors.On("GetByID", mock.Anything, colorID).Return(&domain.Color{ID: colorID, Name: "RED"}, nil)
	f.variants.On("ColorTaken", mock.Anything, productID, colorID, uuid.Nil).Return(false, nil)
	f.refs.On("MissingSizes", mock.Anything, []uuid.UUID{sizeID}).Return([]uuid.UUID{}, nil)
	f.variants.On("Create", mock.Anything, mock.AnythingOfType("*domain.Variant")).Return(nil)

	variant, err := f.service.Create(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, 170.0, variant.PriceFinal)
	assert.True(t, variant.IsActive)
	assert.Equal(t, "RED", variant.Color.Name)
	f.variants.AssertExpectations(t)
	f.products.AssertCalled(t, "RefreshStock", mock.Anything, productID, 10)
}

func TestService_Create_DuplicateColor(t *testing.T) {
	f := newFixture()
	productID, colorID := uuid.New(), uuid.New()

	f.products.On("GetByID", mock.Anything, productID).Return(&domain.Product{ID: productID}, nil)
	f.colors.On("GetByID", mock.Anything, colorID).Return(&domain.Color{ID: colorID}, nil)
	f.variants.On("ColorTaken", mock.Anything, productID, colorID, uuid.Nil).Return(true, nil)

	_, err := f.service.Create(context.Background(), validInput(productID, colorID))

	assert.ErrorIs(t, err, domain.ErrConflict)
	f.variants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_MissingProduct(t *testing.T) {
	f := newFixture()
	productID, colorID := uuid.New(), uuid.New()

	f.products.On("GetByID", mock.Anything, productID).Return(nil, domain.ErrNotFound)

	_, err := f.service.Create(context.Background(), validInput(productID, colorID))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Product not found", domain.Message(err, ""))
}

func TestService_Create_UnknownSize(t *testing.T) {
	f := newFixture()
	productID, colorID, sizeID := uuid.New(), uuid.New(), uuid.New()
	in := validInput(productID, colorID)
	in.Sizes = []domain.VariantSize{{SizeID: sizeID, Quantity: 1}}

	f.products.On("GetByID", mock.Anything, productID).Return(&domain.Product{ID: productID}, nil)
	f.colors.On("GetByID", mock.Anything, colorID).Return(&domain.Color{ID: colorID}, nil)
	f.variants.On("ColorTaken", mock.Anything, productID, colorID, uuid.Nil).Return(false, nil)
	f.refs.On("MissingSizes", mock.Anything, []uuid.UUID{sizeID}).Return([]uuid.UUID{sizeID}, nil)

	_, err := f.service.Create(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, domain.Message(err, ""), sizeID.String())
}

func TestService_Create_InvalidDiscount(t *testing.T) {
	f := newFixture()
	in := validInput(uuid.New(), uuid.New())
	in.PercentDiscount = 120

	_, err := f.service.Create(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	f.products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_Update_RecomputesFinalPrice(t *testing.T) {
	f := newFixture()
	id, productID := uuid.New(), uuid.New()
	existing := &domain.Variant{ID: id, ProductID: productID, ColorID: uuid.New(), Price: 100, PercentDiscount: 0, PriceFinal: 100}
	discount := 25.0

	f.variants.On("GetByID", mock.Anything, id).Return(existing, nil)
	f.variants.On("Update", mock.Anything, existing).Return(nil)

	variant, err := f.service.Update(context.Background(), id, domain.VariantUpdate{PercentDiscount: &discount})

	require.NoError(t, err)
	assert.Equal(t, 75.0, variant.PriceFinal)
	f.colors.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_Update_ColorChangeChecksSiblings(t *testing.T) {
	f := newFixture()
	id, productID, newColor := uuid.New(), uuid.New(), uuid.New()
	existing := &domain.Variant{ID: id, ProductID: productID, ColorID: uuid.New()}

	f.variants.On("GetByID", mock.Anything, id).Return(existing, nil)
	f.colors.On("GetByID", mock.Anything, newColor).Return(&domain.Color{ID: newColor}, nil)
	f.variants.On("ColorTaken", mock.Anything, productID, newColor, id).Return(true, nil)

	_, err := f.service.Update(context.Background(), id, domain.VariantUpdate{ColorID: &newColor})

	assert.ErrorIs(t, err, domain.ErrConflict)
	f.variants.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Delete_WithOrdersDeactivates(t *testing.T) {
	f := newFixture()
	id, productID := uuid.New(), uuid.New()

	f.variants.On("GetByID", mock.Anything, id).Return(&domain.Variant{ID: id, ProductID: productID, IsActive: true}, nil)
	f.orders.On("VariantHasOrders", mock.Anything, id).Return(true, nil)
	f.variants.On("SetActive", mock.Anything, id, false).Return(nil)

	result, err := f.service.Delete(context.Background(), id, nil)

	require.NoError(t, err)
	assert.True(t, result.DeactivatedInstead)
	f.variants.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Delete_SoftDeletes(t *testing.T) {
	f := newFixture()
	id, productID, actor := uuid.New(), uuid.New(), uuid.New()

	f.variants.On("GetByID", mock.Anything, id).Return(&domain.Variant{ID: id, ProductID: productID}, nil)
	f.orders.On("VariantHasOrders", mock.Anything, id).Return(false, nil)
	f.variants.On("SoftDelete", mock.Anything, id, &actor).Return(nil)

	result, err := f.service.Delete(context.Background(), id, &actor)

	require.NoError(t, err)
	assert.False(t, result.DeactivatedInstead)
	f.variants.AssertExpectations(t)
}

func TestService_Restore_DeletedParentConflicts(t *testing.T) {
	f := newFixture()
	id, productID := uuid.New(), uuid.New()
	deletedAt := time.Now()

	f.variants.On("GetByIDAll", mock.Anything, id).Return(&domain.Variant{ID: id, ProductID: productID, DeletedAt: &deletedAt}, nil)
	f.products.On("GetByIDAll", mock.Anything, productID).Return(&domain.Product{ID: productID, DeletedAt: &deletedAt}, nil)

	_, err := f.service.Restore(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrConflict)
	f.variants.AssertNotCalled(t, "Restore", mock.Anything, mock.Anything)
}

func TestService_Restore_ColorHeldConflicts(t *testing.T) {
	f := newFixture()
	id, productID, colorID := uuid.New(), uuid.New(), uuid.New()
	deletedAt := time.Now()

	f.variants.On("GetByIDAll", mock.Anything, id).Return(&domain.Variant{ID: id, ProductID: productID, ColorID: colorID, DeletedAt: &deletedAt}, nil)
	f.products.On("GetByIDAll", mock.Anything, productID).Return(&domain.Product{ID: productID}, nil)
	f.variants.On("ColorTaken", mock.Anything, productID, colorID, id).Return(true, nil)

	_, err := f.service.Restore(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_Restore_Success(t *testing.T) {
	f := newFixture()
	id, productID, colorID := uuid.New(), uuid.New(), uuid.New()
	deletedAt := time.Now()

	f.variants.On("GetByIDAll", mock.Anything, id).Return(&domain.Variant{ID: id, ProductID: productID, ColorID: colorID, DeletedAt: &deletedAt}, nil)
	f.products.On("GetByIDAll", mock.Anything, productID).Return(&domain.Product{ID: productID}, nil)
	f.variants.On("ColorTaken", mock.Anything, productID, colorID, id).Return(false, nil)
	f.variants.On("Restore", mock.Anything, id).Return(nil)

	variant, err := f.service.Restore(context.Background(), id)

	require.NoError(t, err)
	assert.Nil(t, variant.DeletedAt)
	assert.True(t, variant.IsActive)
	f.products.AssertCalled(t, "RefreshStock", mock.Anything, productID, 10)
}

func TestService_SetActive(t *testing.T) {
	f := newFixture()
	id, productID := uuid.New(), uuid.New()

	f.variants.On("GetByID", mock.Anything, id).Return(&domain.Variant{ID: id, ProductID: productID}, nil)
	f.variants.On("SetActive", mock.Anything, id, true).Return(nil)

	variant, err := f.service.SetActive(context.Background(), id, true)

	require.NoError(t, err)
	assert.True(t, variant.IsActive)
}

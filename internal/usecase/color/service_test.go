package color

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
	"github.com/Pesokrava/storefront_catalog/internal/query"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/mocks"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/notify"
)

func newService() (*Service, *mocks.ColorRepository, *mocks.VariantRepository) {
	colors := new(mocks.ColorRepository)
	variants := new(mocks.VariantRepository)
	log := logger.New("test")
	return NewService(colors, variants, notify.New(nil, nil, log), log), colors, variants
}

func TestService_Create_SolidNormalizesCode(t *testing.T) {
	service, colors, _ := newService()

	colors.On("FindByName", mock.Anything, "Navy", uuid.Nil).Return(nil, domain.ErrNotFound)
	colors.On("FindSolidByCode", mock.Anything, "#1A2B3C", uuid.Nil).Return(nil, domain.ErrNotFound)
	colors.On("Create", mock.Anything, mock.AnythingOfType("*domain.Color")).Return(nil)

	color, err := service.Create(context.Background(), domain.ColorInput{
		Name:   "Navy",
		Type:   domain.ColorSolid,
		Code:   "#1a2b3c",
		Colors: []string{"#000000", "#FFFFFF"},
	})

	require.NoError(t, err)
	assert.Equal(t, "#1A2B3C", color.Code)
	assert.Empty(t, color.Colors)
	colors.AssertExpectations(t)
}

func TestService_Create_SolidRequiresCode(t *testing.T) {
	service, colors, _ := newService()

	_, err := service.Create(context.Background(), domain.ColorInput{Name: "Navy", Type: domain.ColorSolid})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	colors.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_HalfRequiresPair(t *testing.T) {
	service, _, _ := newService()

	_, err := service.Create(context.Background(), domain.ColorInput{Name: "Split", Type: domain.ColorHalf, Code: "#FFFFFF"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_Create_DuplicateName(t *testing.T) {
	service, colors, _ := newService()

	colors.On("FindByName", mock.Anything, "Navy", uuid.Nil).Return(&domain.Color{ID: uuid.New(), Name: "Navy"}, nil)

	_, err := service.Create(context.Background(), domain.ColorInput{Name: "Navy", Type: domain.ColorSolid, Code: "#000080"})

	assert.ErrorIs(t, err, domain.ErrConflict)
	colors.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_DuplicateCode(t *testing.T) {
	service, colors, _ := newService()

	colors.On("FindByName", mock.Anything, "Midnight", uuid.Nil).Return(nil, domain.ErrNotFound)
	colors.On("FindSolidByCode", mock.Anything, "#000080", uuid.Nil).Return(&domain.Color{Name: "Navy"}, nil)

	_, err := service.Create(context.Background(), domain.ColorInput{Name: "Midnight", Type: domain.ColorSolid, Code: "#000080"})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, domain.Message(err, ""), "Navy")
}

func TestService_Create_HalfPairIsOrderIndependent(t *testing.T) {
	service, colors, _ := newService()

	colors.On("FindByName", mock.Anything, "Zebra", uuid.Nil).Return(nil, domain.ErrNotFound)
	colors.On("ListHalf", mock.Anything, uuid.Nil).Return([]*domain.Color{
		{Name: "Panda", Type: domain.ColorHalf, Colors: []string{"#FFFFFF", "#000000"}},
	}, nil)

	_, err := service.Create(context.Background(), domain.ColorInput{
		Name:   "Zebra",
		Type:   domain.ColorHalf,
		Colors: []string{"#000000", "#ffffff"},
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, domain.Message(err, ""), "Panda")
}

func TestService_Update_KeepsStoredType(t *testing.T) {
	service, colors, _ := newService()
	id := uuid.New()
	stored := &domain.Color{ID: id, Name: "Split", Type: domain.ColorHalf, Colors: []string{"#000000", "#FFFFFF"}}
	name := "Split Tone"

	colors.On("GetByID", mock.Anything, id).Return(stored, nil)
	colors.On("FindByName", mock.Anything, "Split Tone", id).Return(nil, domain.ErrNotFound)
	colors.On("ListHalf", mock.Anything, id).Return([]*domain.Color{}, nil)
	colors.On("Update", mock.Anything, stored).Return(nil)

	color, err := service.Update(context.Background(), id, domain.ColorUpdate{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, domain.ColorHalf, color.Type)
	assert.Equal(t, "Split Tone", color.Name)
	colors.AssertExpectations(t)
}

func TestService_Delete_InUse(t *testing.T) {
	service, colors, variants := newService()
	id := uuid.New()

	colors.On("GetByID", mock.Anything, id).Return(&domain.Color{ID: id}, nil)
	variants.On("CountByColor", mock.Anything, id).Return(3, nil)

	err := service.Delete(context.Background(), id, nil)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, domain.Message(err, ""), "3")
	colors.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Delete_Success(t *testing.T) {
	service, colors, variants := newService()
	id := uuid.New()

	colors.On("GetByID", mock.Anything, id).Return(&domain.Color{ID: id}, nil)
	variants.On("CountByColor", mock.Anything, id).Return(0, nil)
	colors.On("SoftDelete", mock.Anything, id, (*uuid.UUID)(nil)).Return(nil)

	err := service.Delete(context.Background(), id, nil)

	assert.NoError(t, err)
	colors.AssertExpectations(t)
}

func TestService_Restore_RevalidatesName(t *testing.T) {
	service, colors, _ := newService()
	id := uuid.New()
	deletedAt := time.Now()

	colors.On("GetByIDAll", mock.Anything, id).Return(&domain.Color{ID: id, Name: "Navy", Type: domain.ColorSolid, Code: "#000080", DeletedAt: &deletedAt}, nil)
	colors.On("FindByName", mock.Anything, "Navy", id).Return(&domain.Color{Name: "Navy"}, nil)

	_, err := service.Restore(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrConflict)
	colors.AssertNotCalled(t, "Restore", mock.Anything, mock.Anything)
}

func TestService_Restore_Success(t *testing.T) {
	service, colors, _ := newService()
	id := uuid.New()
	deletedAt := time.Now()

	colors.On("GetByIDAll", mock.Anything, id).Return(&domain.Color{ID: id, Name: "Navy", Type: domain.ColorSolid, Code: "#000080", DeletedAt: &deletedAt}, nil)
	colors.On("FindByName", mock.Anything, "Navy", id).Return(nil, domain.ErrNotFound)
	colors.On("FindSolidByCode", mock.Anything, "#000080", id).Return(nil, domain.ErrNotFound)
	colors.On("Restore", mock.Anything, id).Return(nil)

	color, err := service.Restore(context.Background(), id)

	require.NoError(t, err)
	assert.Nil(t, color.DeletedAt)
}

func TestService_Get_NotFound(t *testing.T) {
	service, colors, _ := newService()
	id := uuid.New()

	colors.On("GetByIDAll", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := service.Get(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Color not found", domain.Message(err, ""))
}

func TestService_ListDeleted_DefaultSort(t *testing.T) {
	service, colors, _ := newService()
	q := query.ColorQuery{Page: domain.Page{Number: 1, Limit: 10}}

	colors.On("ListDeleted", mock.Anything, domain.ColorFilter{}, query.RecentlyDeletedFirst, q.Page).Return([]*domain.Color{}, 0, nil)

	result, err := service.ListDeleted(context.Background(), q)

	require.NoError(t, err)
	assert.Zero(t, result.Total)
	colors.AssertExpectations(t)
}

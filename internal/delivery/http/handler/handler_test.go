package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/color"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/mocks"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/notify"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/product"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/variant"
)

type testAPI struct {
	products *mocks.ProductRepository
	variants *mocks.VariantRepository
	colors   *mocks.ColorRepository
	orders   *mocks.OrderReader
	refs     *mocks.ReferenceReader
	router   chi.Router
}

func newTestAPI() *testAPI {
	api := &testAPI{
		products: new(mocks.ProductRepository),
		variants: new(mocks.VariantRepository),
		colors:   new(mocks.ColorRepository),
		orders:   new(mocks.OrderReader),
		refs:     new(mocks.ReferenceReader),
	}
	log := logger.New("test")
	notifier := notify.New(nil, nil, log)

	productService := product.NewService(api.products, api.variants, api.orders, api.refs, notifier, nil,
		product.Settings{LowStockThreshold: 10, HighlightLimit: 8, FeaturedMinRating: 4}, log)
	variantService := variant.NewService(api.products, api.variants, api.colors, api.orders, api.refs, notifier, 10, log)
	colorService := color.NewService(api.colors, api.variants, notifier, log)

	public := NewProductHandler(productService, 18, log)
	admin := NewAdminProductHandler(productService, 10, log)
	variants := NewVariantHandler(variantService, log)
	colors := NewColorHandler(colorService, 10, log)

	r := chi.NewRouter()
	r.Get("/products", public.List)
	r.Get("/products/best-sellers", public.BestSellers)
	r.Get("/products/{id}", public.GetByID)
	r.Post("/admin/products", admin.Create)
	r.Delete("/admin/products/{id}", admin.Delete)
	r.Post("/admin/products/{id}/restore", admin.Restore)
	r.Patch("/admin/products/{id}/status", admin.SetStatus)
	r.Post("/admin/variants", variants.Create)
	r.Delete("/admin/colors/{id}", colors.Delete)
	api.router = r

	return api
}

func (api *testAPI) do(method, target string, body []byte, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestProductHandler_List_Envelope(t *testing.T) {
	api := newTestAPI()
	id := uuid.New()

	api.products.On("List", mock.Anything, mock.Anything, mock.Anything, domain.Page{Number: 2, Limit: 1}).
		Return([]*domain.Product{{ID: id, Name: "Shoe", IsActive: true}}, 3, nil)
	api.variants.On("ListByProducts", mock.Anything, []uuid.UUID{id}, true).Return([]*domain.Variant{}, nil)

	w := api.do(http.MethodGet, "/products?page=2&limit=1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, float64(3), body["total"])
	assert.Equal(t, float64(3), body["totalPages"])
	assert.Equal(t, float64(2), body["currentPage"])
	assert.Equal(t, true, body["hasNextPage"])
	assert.Equal(t, true, body["hasPrevPage"])
	require.Len(t, body["data"], 1)
}

func TestProductHandler_List_EmptyVariantMatch(t *testing.T) {
	api := newTestAPI()

	api.variants.On("ProductIDsMatching", mock.Anything, mock.Anything).Return([]uuid.UUID{}, nil)

	w := api.do(http.MethodGet, "/products?gender=female", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, float64(0), body["totalPages"])
	assert.Equal(t, float64(1), body["currentPage"])
	assert.Equal(t, false, body["hasNextPage"])
	assert.Equal(t, false, body["hasPrevPage"])
	assert.Equal(t, []interface{}{}, body["data"])
	api.products.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProductHandler_List_MalformedPrice(t *testing.T) {
	api := newTestAPI()

	w := api.do(http.MethodGet, "/products?minPrice=cheap", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "minPrice must be a number", body["error"])
}

func TestProductHandler_GetByID_InvalidUUID(t *testing.T) {
	api := newTestAPI()

	w := api.do(http.MethodGet, "/products/invalid-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid product ID", decode(t, w)["error"])
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	api := newTestAPI()
	id := uuid.New()

	api.products.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w := api.do(http.MethodGet, "/products/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decode(t, w)["error"])
}

func TestProductHandler_BestSellers_FallsBack(t *testing.T) {
	api := newTestAPI()

	api.orders.On("TopSelling", mock.Anything, 3).Return([]domain.ProductSales{}, nil)
	api.products.On("List", mock.Anything, mock.Anything, mock.Anything, domain.Page{Number: 1, Limit: 3}).
		Return([]*domain.Product{}, 0, nil)

	w := api.do(http.MethodGet, "/products/best-sellers?limit=3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, []interface{}{}, body["products"])
}

func TestAdminProductHandler_Create_RejectsUnknownFields(t *testing.T) {
	api := newTestAPI()

	w := api.do(http.MethodPost, "/admin/products", []byte(`{"name":"Shoe","description":"d","rating":5}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decode(t, w)["error"])
	api.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminProductHandler_Create_Success(t *testing.T) {
	api := newTestAPI()

	api.products.On("SlugTaken", mock.Anything, "shoe", uuid.Nil).Return(false, nil)
	api.products.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	w := api.do(http.MethodPost, "/admin/products", []byte(`{"name":"Shoe","description":"A shoe"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	created := body["product"].(map[string]interface{})
	assert.Equal(t, "shoe", created["slug"])
}

func TestAdminProductHandler_Create_ValidationMessage(t *testing.T) {
	api := newTestAPI()

	w := api.do(http.MethodPost, "/admin/products", []byte(`{"description":"A shoe"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name is required", decode(t, w)["error"])
}

func TestAdminProductHandler_Delete_DeactivatesWithOrders(t *testing.T) {
	api := newTestAPI()
	id := uuid.New()

	api.products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id}, nil)
	api.orders.On("ProductHasOrders", mock.Anything, id).Return(true, nil)
	api.products.On("SetActive", mock.Anything, id, false).Return(nil)
	api.variants.On("SetActiveByProduct", mock.Anything, id, false).Return(1, nil)
	api.products.On("RefreshStock", mock.Anything, id, 10).Return(&domain.StockInfo{}, nil)

	w := api.do(http.MethodDelete, "/admin/products/"+id.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["deactivatedInstead"])
}

func TestAdminProductHandler_Delete_PassesActor(t *testing.T) {
	api := newTestAPI()
	id, actor := uuid.New(), uuid.New()

	api.products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id}, nil)
	api.orders.On("ProductHasOrders", mock.Anything, id).Return(false, nil)
	api.products.On("SoftDelete", mock.Anything, id, &actor).Return(nil)
	api.variants.On("SetActiveByProduct", mock.Anything, id, false).Return(0, nil)

	w := api.do(http.MethodDelete, "/admin/products/"+id.String(), nil, "X-User-ID", actor.String())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["deactivatedInstead"])
	api.products.AssertExpectations(t)
}

func TestAdminProductHandler_Restore_WithoutVariants(t *testing.T) {
	api := newTestAPI()
	id := uuid.New()

	api.products.On("GetByIDAll", mock.Anything, id).Return(&domain.Product{ID: id, Slug: "shoe"}, nil)
	api.products.On("RefreshStock", mock.Anything, id, 10).Return(&domain.StockInfo{}, nil)
	api.products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id, Slug: "shoe"}, nil)

	w := api.do(http.MethodPost, "/admin/products/"+id.String()+"/restore?restoreVariants=false", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(0), body["restoredVariants"])
	assert.Equal(t, "Product restored without variants", body["message"])
	api.variants.AssertNotCalled(t, "ListDeletedByProduct", mock.Anything, mock.Anything)
}

func TestAdminProductHandler_SetStatus_RequiresIsActive(t *testing.T) {
	api := newTestAPI()

	w := api.do(http.MethodPatch, "/admin/products/"+uuid.New().String()+"/status", []byte(`{"cascade":true}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "isActive is required", decode(t, w)["error"])
}

func TestAdminProductHandler_SetStatus_CascadesByDefault(t *testing.T) {
	api := newTestAPI()
	id := uuid.New()

	api.products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id}, nil)
	api.products.On("SetActive", mock.Anything, id, false).Return(nil)
	api.variants.On("SetActiveByProduct", mock.Anything, id, false).Return(2, nil)
	api.products.On("RefreshStock", mock.Anything, id, 10).Return(&domain.StockInfo{}, nil)

	w := api.do(http.MethodPatch, "/admin/products/"+id.String()+"/status", []byte(`{"isActive":false}`))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(2), body["affectedVariants"])
	assert.Equal(t, "Product deactivated with 2 variants", body["message"])
	api.variants.AssertExpectations(t)
}

func TestAdminProductHandler_SetStatus_WithoutCascade(t *testing.T) {
	api := newTestAPI()
	id := uuid.New()

	api.products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id}, nil)
	api.products.On("SetActive", mock.Anything, id, true).Return(nil)

	w := api.do(http.MethodPatch, "/admin/products/"+id.String()+"/status", []byte(`{"isActive":true,"cascade":false}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product activated", decode(t, w)["message"])
	api.variants.AssertNotCalled(t, "SetActiveByProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestVariantHandler_Create_ColorConflict(t *testing.T) {
	api := newTestAPI()
	productID, colorID := uuid.New(), uuid.New()

	api.products.On("GetByID", mock.Anything, productID).Return(&domain.Product{ID: productID}, nil)
	api.colors.On("GetByID", mock.Anything, colorID).Return(&domain.Color{ID: colorID}, nil)
	api.variants.On("ColorTaken", mock.Anything, productID, colorID, uuid.Nil).Return(true, nil)

	payload, err := json.Marshal(map[string]interface{}{
		"productId": productID,
		"colorId":   colorID,
		"gender":    "male",
		"price":     100,
	})
	require.NoError(t, err)

	w := api.do(http.MethodPost, "/admin/variants", payload)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "A variant with this color already exists for this product", decode(t, w)["error"])
}

func TestColorHandler_Delete_InUse(t *testing.T) {
	api := newTestAPI()
	id := uuid.New()

	api.colors.On("GetByID", mock.Anything, id).Return(&domain.Color{ID: id}, nil)
	api.variants.On("CountByColor", mock.Anything, id).Return(2, nil)

	w := api.do(http.MethodDelete, "/admin/colors/"+id.String(), nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Color is used by 2 variants and cannot be deleted", decode(t, w)["error"])
}

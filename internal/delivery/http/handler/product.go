package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/request"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/response"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
	"github.com/Pesokrava/storefront_catalog/internal/query"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/product"
)

// ProductHandler handles public HTTP requests for products
type ProductHandler struct {
	service   *product.Service
	pageLimit int
	logger    *logger.Logger
}

// NewProductHandler creates a new product handler. pageLimit is the default
// page size of listings.
func NewProductHandler(service *product.Service, pageLimit int, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service:   service,
		pageLimit: pageLimit,
		logger:    log,
	}
}

// List handles GET /api/v1/products
// @Summary List products
// @Description Paginated list of active products with variant summaries
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(18)
// @Param name query string false "Name substring"
// @Param category query string false "Category ID"
// @Param brand query string false "Brand ID"
// @Param stockStatus query string false "in_stock, low_stock or out_of_stock"
// @Param colors query string false "Comma separated color IDs"
// @Param sizes query string false "Comma separated size IDs"
// @Param gender query string false "male, female or unisex"
// @Param minPrice query number false "Minimum final price"
// @Param maxPrice query number false "Maximum final price"
// @Param sort query string false "Named sort or JSON object of field directions"
// @Success 200 {object} response.Page
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := query.ParseProductQuery(r.URL.Query(), h.pageLimit)
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}

	result, err := h.service.ListPublic(r.Context(), q)
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}

	response.Paginated(w, result)
}

// Featured handles GET /api/v1/products/featured
// @Summary Featured products
// @Description Best rated active products
// @Tags Products
// @Produce json
// @Param limit query int false "Number of products" default(8)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.ErrorBody
// @Router /products/featured [get]
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Featured(r.Context(), request.GetIntQuery(r, "limit", 0))
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Success(w, response.Fields{"products": products})
}

// NewArrivals handles GET /api/v1/products/new-arrivals
// @Summary Newest products
// @Tags Products
// @Produce json
// @Param limit query int false "Number of products" default(8)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.ErrorBody
// @Router /products/new-arrivals [get]
func (h *ProductHandler) NewArrivals(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.NewArrivals(r.Context(), request.GetIntQuery(r, "limit", 0))
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Success(w, response.Fields{"products": products})
}

// BestSellers handles GET /api/v1/products/best-sellers
// @Summary Best selling products
// @Description Products ranked by quantity sold in delivered or confirmed orders
// @Tags Products
// @Produce json
// @Param limit query int false "Number of products" default(8)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.ErrorBody
// @Router /products/best-sellers [get]
func (h *ProductHandler) BestSellers(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.BestSellers(r.Context(), request.GetIntQuery(r, "limit", 0))
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Success(w, response.Fields{"products": products})
}

// GetBySlug handles GET /api/v1/products/slug/{slug}
// @Summary Get a product by slug
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /products/slug/{slug} [get]
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetPublicBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Success(w, response.Fields{"product": view})
}

// GetByID handles GET /api/v1/products/{id}
// @Summary Get a product by ID
// @Description Public product detail with its active variants
// @Tags Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	view, err := h.service.GetPublicByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Success(w, response.Fields{"product": view})
}

// Related handles GET /api/v1/products/{id}/related
// @Summary Related products
// @Description Active products of the same category, best rated first
// @Tags Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param limit query int false "Number of products" default(8)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /products/{id}/related [get]
func (h *ProductHandler) Related(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	products, err := h.service.Related(r.Context(), id, request.GetIntQuery(r, "limit", 0))
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Success(w, response.Fields{"products": products})
}

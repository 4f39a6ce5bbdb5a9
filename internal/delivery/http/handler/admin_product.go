package handler

import (
	"net/http"

	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/request"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/response"
	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
	"github.com/Pesokrava/storefront_catalog/internal/query"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/product"
)

// AdminProductHandler handles admin HTTP requests for products
type AdminProductHandler struct {
	service   *product.Service
	pageLimit int
	logger    *logger.Logger
}

// NewAdminProductHandler creates a new admin product handler
func NewAdminProductHandler(service *product.Service, pageLimit int, log *logger.Logger) *AdminProductHandler {
	return &AdminProductHandler{
		service:   service,
		pageLimit: pageLimit,
		logger:    log,
	}
}

// List handles GET /api/v1/admin/products
// @Summary List products (admin)
// @Description Paginated list of non-deleted products, inactive ones included
// @Tags Admin Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(10)
// @Param isActive query string false "true or false"
// @Param sort query string false "Named sort or JSON object of field directions"
// @Success 200 {object} response.Page
// @Failure 400 {object} response.ErrorBody
// @Router /admin/products [get]
func (h *AdminProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := query.ParseProductQuery(r.URL.Query(), h.pageLimit)
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}

	result, err := h.service.ListAdmin(r.Context(), q)
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Paginated(w, result)
}

// ListDeleted handles GET /api/v1/admin/products/deleted
// @Summary List deleted products
// @Tags Admin Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(10)
// @Param sort query string false "Named sort or JSON object of field directions"
// @Success 200 {object} response.Page
// @Failure 400 {object} response.ErrorBody
// @Router /admin/products/deleted [get]
func (h *AdminProductHandler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	q, err := query.ParseProductQuery(r.URL.Query(), h.pageLimit)
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}

	result, err := h.service.ListDeleted(r.Context(), q)
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Paginated(w, result)
}

// Get handles GET /api/v1/admin/products/{id}
// @Summary Get a product (admin)
// @Description Product with every variant, soft-deleted included, and variant stats
// @Tags Admin Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/products/{id} [get]
func (h *AdminProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid product ID")
	if !ok {
		return
	}

	detail, err := h.service.GetAdmin(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Success(w, response.Fields{"product": detail})
}

// Create handles POST /api/v1/admin/products
// @Summary Create a product
// @Tags Admin Products
// @Accept json
// @Produce json
// @Param product body domain.ProductInput true "Product details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody "Category or brand not found"
// @Router /admin/products [post]
func (h *AdminProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := request.DecodeJSON(w, r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Created(w, response.Fields{
		"message": "Product created successfully",
		"product": created,
	})
}

// Update handles PATCH /api/v1/admin/products/{id}
// @Summary Update a product
// @Tags Admin Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param product body domain.ProductUpdate true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/products/{id} [patch]
func (h *AdminProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid product ID")
	if !ok {
		return
	}

	var in domain.ProductUpdate
	if err := request.DecodeJSON(w, r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Success(w, response.Fields{
		"message": "Product updated successfully",
		"product": updated,
	})
}

// Delete handles DELETE /api/v1/admin/products/{id}
// @Summary Delete a product
// @Description Soft deletes the product, or only deactivates it when orders reference it
// @Tags Admin Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param X-User-ID header string false "Acting admin ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/products/{id} [delete]
func (h *AdminProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid product ID")
	if !ok {
		return
	}

	result, err := h.service.Delete(r.Context(), id, request.ActorID(r))
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Success(w, response.Fields{
		"message":            result.Message,
		"deactivatedInstead": result.DeactivatedInstead,
	})
}

// Restore handles POST /api/v1/admin/products/{id}/restore
// @Summary Restore a deleted product
// @Tags Admin Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param restoreVariants query bool false "Also restore deleted variants" default(true)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/products/{id}/restore [post]
func (h *AdminProductHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid product ID")
	if !ok {
		return
	}

	result, err := h.service.Restore(r.Context(), id, request.GetBoolQuery(r, "restoreVariants", true))
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Success(w, response.Fields{
		"message":          result.Message,
		"product":          result.Product,
		"restoredVariants": result.RestoredVariants,
	})
}

// SetStatus handles PATCH /api/v1/admin/products/{id}/status
// @Summary Activate or deactivate a product
// @Tags Admin Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param status body domain.StatusInput true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/products/{id}/status [patch]
func (h *AdminProductHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid product ID")
	if !ok {
		return
	}

	in, ok := decodeStatus(w, r)
	if !ok {
		return
	}

	cascade := in.Cascade == nil || *in.Cascade
	result, err := h.service.SetActive(r.Context(), id, *in.IsActive, cascade)
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Success(w, response.Fields{
		"message":          result.Message,
		"product":          result.Product,
		"affectedVariants": result.AffectedVariants,
	})
}

// RefreshStock handles POST /api/v1/admin/products/{id}/stock
// @Summary Recalculate product stock
// @Tags Admin Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/products/{id}/stock [post]
func (h *AdminProductHandler) RefreshStock(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid product ID")
	if !ok {
		return
	}

	info, err := h.service.RefreshStock(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err, "Product")
		return
	}
	response.Success(w, response.Fields{
		"message": "Stock updated successfully",
		"stock":   info,
	})
}

func decodeStatus(w http.ResponseWriter, r *http.Request) (domain.StatusInput, bool) {
	var in domain.StatusInput
	if err := request.DecodeJSON(w, r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return in, false
	}
	if in.IsActive == nil {
		response.Error(w, http.StatusBadRequest, "isActive is required")
		return in, false
	}
	return in, true
}

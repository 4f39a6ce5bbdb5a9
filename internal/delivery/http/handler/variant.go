package handler

import (
	"net/http"

	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/request"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/response"
	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/variant"
)

// VariantHandler handles admin HTTP requests for variants
type VariantHandler struct {
	service *variant.Service
	logger  *logger.Logger
}

// NewVariantHandler creates a new variant handler
func NewVariantHandler(service *variant.Service, log *logger.Logger) *VariantHandler {
	return &VariantHandler{
		service: service,
		logger:  log,
	}
}

// Create handles POST /api/v1/admin/variants
// @Summary Create a variant
// @Tags Admin Variants
// @Accept json
// @Produce json
// @Param variant body domain.VariantInput true "Variant details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody "Product, color or size not found"
// @Failure 409 {object} response.ErrorBody "Color already used by the product"
// @Router /admin/variants [post]
func (h *VariantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.VariantInput
	if err := request.DecodeJSON(w, r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err, "Variant")
		return
	}
	response.Created(w, response.Fields{
		"message": "Variant created successfully",
		"variant": created,
	})
}

// Update handles PATCH /api/v1/admin/variants/{id}
// @Summary Update a variant
// @Tags Admin Variants
// @Accept json
// @Produce json
// @Param id path string true "Variant ID (UUID)"
// @Param variant body domain.VariantUpdate true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /admin/variants/{id} [patch]
func (h *VariantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid variant ID")
	if !ok {
		return
	}

	var in domain.VariantUpdate
	if err := request.DecodeJSON(w, r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, h.logger, err, "Variant")
		return
	}
	response.Success(w, response.Fields{
		"message": "Variant updated successfully",
		"variant": updated,
	})
}

// Delete handles DELETE /api/v1/admin/variants/{id}
// @Summary Delete a variant
// @Description Soft deletes the variant, or only deactivates it when orders reference it
// @Tags Admin Variants
// @Produce json
// @Param id path string true "Variant ID (UUID)"
// @Param X-User-ID header string false "Acting admin ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/variants/{id} [delete]
func (h *VariantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid variant ID")
	if !ok {
		return
	}

	result, err := h.service.Delete(r.Context(), id, request.ActorID(r))
	if err != nil {
		writeError(w, h.logger, err, "Variant")
		return
	}
	response.Success(w, response.Fields{
		"message":            result.Message,
		"deactivatedInstead": result.DeactivatedInstead,
	})
}

// Restore handles POST /api/v1/admin/variants/{id}/restore
// @Summary Restore a deleted variant
// @Tags Admin Variants
// @Produce json
// @Param id path string true "Variant ID (UUID)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody "Product deleted or color taken"
// @Router /admin/variants/{id}/restore [post]
func (h *VariantHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid variant ID")
	if !ok {
		return
	}

	restored, err := h.service.Restore(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err, "Variant")
		return
	}
	response.Success(w, response.Fields{
		"message": "Variant restored successfully",
		"variant": restored,
	})
}

// SetStatus handles PATCH /api/v1/admin/variants/{id}/status
// @Summary Activate or deactivate a variant
// @Tags Admin Variants
// @Accept json
// @Produce json
// @Param id path string true "Variant ID (UUID)"
// @Param status body domain.StatusInput true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/variants/{id}/status [patch]
func (h *VariantHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid variant ID")
	if !ok {
		return
	}

	in, ok := decodeStatus(w, r)
	if !ok {
		return
	}

	updated, err := h.service.SetActive(r.Context(), id, *in.IsActive)
	if err != nil {
		writeError(w, h.logger, err, "Variant")
		return
	}

	message := "Variant deactivated"
	if updated.IsActive {
		message = "Variant activated"
	}
	response.Success(w, response.Fields{
		"message": message,
		"variant": updated,
	})
}

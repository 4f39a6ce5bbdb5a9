package handler

import (
	"net/http"

	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/request"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/response"
	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
	"github.com/Pesokrava/storefront_catalog/internal/query"
	"github.com/Pesokrava/storefront_catalog/internal/usecase/color"
)

// ColorHandler handles admin HTTP requests for colors
type ColorHandler struct {
	service   *color.Service
	pageLimit int
	logger    *logger.Logger
}

// NewColorHandler creates a new color handler
func NewColorHandler(service *color.Service, pageLimit int, log *logger.Logger) *ColorHandler {
	return &ColorHandler{
		service:   service,
		pageLimit: pageLimit,
		logger:    log,
	}
}

// List handles GET /api/v1/admin/colors
// @Summary List colors
// @Tags Admin Colors
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(10)
// @Param name query string false "Name substring"
// @Param type query string false "solid or half"
// @Param sort query string false "Named sort or JSON object of field directions"
// @Success 200 {object} response.Page
// @Router /admin/colors [get]
func (h *ColorHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), query.ParseColorQuery(r.URL.Query(), h.pageLimit))
	if err != nil {
		writeError(w, h.logger, err, "Color")
		return
	}
	response.Paginated(w, result)
}

// ListDeleted handles GET /api/v1/admin/colors/deleted
// @Summary List deleted colors
// @Tags Admin Colors
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(10)
// @Success 200 {object} response.Page
// @Router /admin/colors/deleted [get]
func (h *ColorHandler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListDeleted(r.Context(), query.ParseColorQuery(r.URL.Query(), h.pageLimit))
	if err != nil {
		writeError(w, h.logger, err, "Color")
		return
	}
	response.Paginated(w, result)
}

// Get handles GET /api/v1/admin/colors/{id}
// @Summary Get a color
// @Tags Admin Colors
// @Produce json
// @Param id path string true "Color ID (UUID)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/colors/{id} [get]
func (h *ColorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid color ID")
	if !ok {
		return
	}

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err, "Color")
		return
	}
	response.Success(w, response.Fields{"color": found})
}

// Create handles POST /api/v1/admin/colors
// @Summary Create a color
// @Tags Admin Colors
// @Accept json
// @Produce json
// @Param color body domain.ColorInput true "Color details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody "Name, code or pair already used"
// @Router /admin/colors [post]
func (h *ColorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.ColorInput
	if err := request.DecodeJSON(w, r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err, "Color")
		return
	}
	response.Created(w, response.Fields{
		"message": "Color created successfully",
		"color":   created,
	})
}

// Update handles PATCH /api/v1/admin/colors/{id}
// @Summary Update a color
// @Tags Admin Colors
// @Accept json
// @Produce json
// @Param id path string true "Color ID (UUID)"
// @Param color body domain.ColorUpdate true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /admin/colors/{id} [patch]
func (h *ColorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid color ID")
	if !ok {
		return
	}

	var in domain.ColorUpdate
	if err := request.DecodeJSON(w, r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, h.logger, err, "Color")
		return
	}
	response.Success(w, response.Fields{
		"message": "Color updated successfully",
		"color":   updated,
	})
}

// Delete handles DELETE /api/v1/admin/colors/{id}
// @Summary Delete a color
// @Description Soft deletes a color that no variant uses
// @Tags Admin Colors
// @Produce json
// @Param id path string true "Color ID (UUID)"
// @Param X-User-ID header string false "Acting admin ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody "Color in use"
// @Router /admin/colors/{id} [delete]
func (h *ColorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid color ID")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, request.ActorID(r)); err != nil {
		writeError(w, h.logger, err, "Color")
		return
	}
	response.Success(w, response.Fields{"message": "Color deleted successfully"})
}

// Restore handles POST /api/v1/admin/colors/{id}/restore
// @Summary Restore a deleted color
// @Tags Admin Colors
// @Produce json
// @Param id path string true "Color ID (UUID)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody "Name, code or pair taken meanwhile"
// @Router /admin/colors/{id}/restore [post]
func (h *ColorHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Invalid color ID")
	if !ok {
		return
	}

	restored, err := h.service.Restore(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err, "Color")
		return
	}
	response.Success(w, response.Fields{
		"message": "Color restored successfully",
		"color":   restored,
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/response"
	"github.com/Pesokrava/storefront_catalog/internal/domain"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
)

// writeError maps service errors to HTTP responses. The caller-facing
// message of a domain error is passed through.
func writeError(w http.ResponseWriter, log *logger.Logger, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, domain.Message(err, resource+" not found"))
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, domain.Message(err, "Invalid input"))
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		response.Error(w, http.StatusConflict, domain.Message(err, resource+" already exists"))
	default:
		log.Errorf(err, "Internal error in %s handler", resource)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/request"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/response"
)

// idParam reads the {id} path parameter, answering 400 with invalidMessage
// when it is not a UUID
func idParam(w http.ResponseWriter, r *http.Request, invalidMessage string) (uuid.UUID, bool) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, invalidMessage)
		return uuid.Nil, false
	}
	return id, true
}

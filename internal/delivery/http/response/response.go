package response

import (
	"encoding/json"
	"net/http"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

// ErrorBody is the body of every failed request
type ErrorBody struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
}

// Page is the envelope of a paginated listing
type Page struct {
	Success     bool        `json:"success" example:"true"`
	Count       int         `json:"count"`
	Data        interface{} `json:"data"`
	Total       int         `json:"total"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	HasNextPage bool        `json:"hasNextPage"`
	HasPrevPage bool        `json:"hasPrevPage"`
}

// Fields is a success body; "success": true is added on write
type Fields map[string]interface{}

// JSON writes a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Error writes an error response
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, ErrorBody{Success: false, Error: message})
}

// Success writes a 200 response with the given fields
func Success(w http.ResponseWriter, fields Fields) {
	write(w, http.StatusOK, fields)
}

// Created writes a 201 response with the given fields
func Created(w http.ResponseWriter, fields Fields) {
	write(w, http.StatusCreated, fields)
}

func write(w http.ResponseWriter, statusCode int, fields Fields) {
	body := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	JSON(w, statusCode, body)
}

// NoContent writes a no content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Paginated writes one page of a listing
func Paginated[T any](w http.ResponseWriter, result *domain.PageResult[T]) {
	items := result.Items
	if items == nil {
		items = []T{}
	}
	totalPages := result.Page.TotalPages(result.Total)

	JSON(w, http.StatusOK, Page{
		Success:     true,
		Count:       len(items),
		Data:        items,
		Total:       result.Total,
		TotalPages:  totalPages,
		CurrentPage: result.Page.Number,
		HasNextPage: result.Page.Number < totalPages,
		HasPrevPage: result.Page.Number > 1 && totalPages > 0,
	})
}

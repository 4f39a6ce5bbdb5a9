package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

func TestPaginated_MiddlePage(t *testing.T) {
	w := httptest.NewRecorder()

	Paginated(w, &domain.PageResult[string]{
		Items: []string{"a", "b"},
		Total: 5,
		Page:  domain.Page{Number: 2, Limit: 2},
	})

	var body Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 3, body.TotalPages)
	assert.Equal(t, 2, body.CurrentPage)
	assert.True(t, body.HasNextPage)
	assert.True(t, body.HasPrevPage)
}

func TestPaginated_EmptyResult(t *testing.T) {
	w := httptest.NewRecorder()

	Paginated(w, &domain.PageResult[string]{Page: domain.Page{Number: 3, Limit: 10}})

	assert.JSONEq(t, `{
		"success": true, "count": 0, "data": [], "total": 0, "totalPages": 0,
		"currentPage": 3, "hasNextPage": false, "hasPrevPage": false
	}`, w.Body.String())
}

func TestSuccess_AddsFlag(t *testing.T) {
	w := httptest.NewRecorder()

	Success(w, Fields{"message": "Product restored"})

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success": true, "message": "Product restored"}`, w.Body.String())
}

func TestError_Body(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusConflict, "Color is used by 2 variants and cannot be deleted")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success": false, "error": "Color is used by 2 variants and cannot be deleted"}`, w.Body.String())
}

package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Offset(t *testing.T) {
	tests := []struct {
		name     string
		page     Page
		expected int
	}{
		{"first page", Page{Number: 1, Limit: 10}, 0},
		{"third page", Page{Number: 3, Limit: 10}, 20},
		{"zero limit", Page{Number: 5, Limit: 0}, 0},
		{"saturates", Page{Number: math.MaxInt, Limit: 100}, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.page.Offset())
		})
	}
}

func TestPage_TotalPages(t *testing.T) {
	assert.Equal(t, 3, Page{Number: 1, Limit: 2}.TotalPages(5))
	assert.Equal(t, 0, Page{Number: 1, Limit: 2}.TotalPages(0))
}

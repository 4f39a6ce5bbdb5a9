package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string   `json:"name" validate:"required"`
	Colors []string `json:"colors" validate:"omitempty,len=2,dive,hexcolor"`
	Price  float64  `json:"price" validate:"gte=0"`
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		input    sample
		expected string
	}{
		{"required", sample{}, "name is required"},
		{"len", sample{Name: "a", Colors: []string{"#FFFFFF"}}, "colors must have exactly 2 items"},
		{"dive", sample{Name: "a", Colors: []string{"#FFFFFF", "blue"}}, "colors[1] must be a hex color"},
		{"gte", sample{Name: "a", Price: -1}, "price must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Get().Struct(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.expected, Describe(err))
		})
	}
}

func TestDescribe_NonValidationError(t *testing.T) {
	assert.Equal(t, "invalid request", Describe(assert.AnError))
}

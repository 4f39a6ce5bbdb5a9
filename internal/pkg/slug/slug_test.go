package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Running Shoe", "running-shoe"},
		{"  Air   Max 90!! ", "air-max-90"},
		{"Giày Thể Thao Đế Cao", "giay-the-thao-de-cao"},
		{"Crème brûlée", "creme-brulee"},
		{"***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.input))
		})
	}
}

func TestCandidate(t *testing.T) {
	assert.Equal(t, "shoe", Candidate("shoe", 0))
	assert.Equal(t, "shoe-1", Candidate("shoe", 1))
	assert.Equal(t, "shoe-12", Candidate("shoe", 12))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"6109dc9adcf23a013990701d", true},
		{"6110D97DB6211501CEDF64B6", true},
		{"teapot", false},
		{"", false},
		{"6109dc9adcf23a013990701", false},    // 23 chars
		{"6109dc9adcf23a013990701dd", false},  // 25 chars
		{"6109dc9adcf23a013990701g", false},   // non-hex char
		{" 6109dc9adcf23a013990701d", false},  // leading junk
		{"x6109dc9adcf23a013990701dx", false}, // embedded hex run only
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidID(tt.id), "id %q", tt.id)
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewID()
		require.NoError(t, err)
		assert.True(t, IsValidID(id), "generated id %q must be well-formed", id)
		assert.False(t, seen[id], "generated id %q repeated", id)
		seen[id] = true
	}
}

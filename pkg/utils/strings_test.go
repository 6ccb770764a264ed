package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Men's T-Shirt!", "mens-t-shirt"},
		{"  Leather   Jacket  ", "leather-jacket"},
		{"snake_case_name", "snake-case-name"},
		{"UPPER", "upper"},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GenerateSlug(tt.input), "input %q", tt.input)
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 42, ParseInt("42", 0))
	assert.Equal(t, 7, ParseInt("", 7))
	assert.Equal(t, 7, ParseInt("abc", 7))
}

func TestParseInt64(t *testing.T) {
	val, ok := ParseInt64("9000000000")
	assert.True(t, ok)
	assert.Equal(t, int64(9000000000), val)

	_, ok = ParseInt64("not-a-number")
	assert.False(t, ok)

	_, ok = ParseInt64("")
	assert.False(t, ok)
}

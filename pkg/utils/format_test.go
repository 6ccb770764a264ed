package utils

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		price decimal.Decimal
		want  string
	}{
		{"thousands separator", decimal.NewFromFloat(1234.5), "ETB 1,234.50"},
		{"zero", decimal.Zero, "ETB 0.00"},
		{"small amount", decimal.NewFromFloat(9.99), "ETB 9.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.price))
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.March, 7, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "March 7, 2024", FormatDate(d))
}

func TestCalculateDiscountPercentage(t *testing.T) {
	tests := []struct {
		name     string
		original float64
		current  float64
		want     int
	}{
		{"20 percent off", 100, 80, 20},
		{"rounded up", 3, 2, 33},
		{"current above original", 80, 100, 0},
		{"equal prices", 50, 50, 0},
		{"zero original", 0, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateDiscountPercentage(tt.original, tt.current))
		})
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "lorem...", TruncateText("lorem ipsum dolor", 5))

	// Multi-byte text is cut on rune boundaries, never mid-character.
	truncated := TruncateText("ሰላም ለዓለም ሁሉ", 6)
	assert.True(t, utf8.ValidString(truncated), "truncation must not split a character: %q", truncated)
	assert.Equal(t, "ሰላም ለዓ...", truncated)

	// Rune count, not byte count, decides whether anything is cut at all.
	assert.Equal(t, "ሰላም", TruncateText("ሰላም", 3))
}

func TestGenerateOrderID(t *testing.T) {
	id := GenerateOrderID()
	assert.True(t, strings.HasPrefix(id, "ORD-"), "order id %q should have ORD- prefix", id)
	assert.Equal(t, id, strings.ToUpper(id))

	parts := strings.Split(id, "-")
	assert.Len(t, parts, 3)
	assert.Len(t, parts[2], 6)
}

func TestCalculateCartTotal(t *testing.T) {
	lines := []CartLine{
		{Quantity: 2, Price: decimal.NewFromFloat(49.99)},
		{Quantity: 1, Price: decimal.NewFromInt(100)},
	}
	assert.True(t, CalculateCartTotal(lines).Equal(decimal.NewFromFloat(199.98)))
	assert.True(t, CalculateCartTotal(nil).Equal(decimal.Zero))
}

func TestGetInitials(t *testing.T) {
	assert.Equal(t, "AB", GetInitials("abebe", "bikila"))
	assert.Equal(t, "A", GetInitials("abebe", ""))
	assert.Equal(t, "", GetInitials("", ""))
}

package utils

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// etb formats amounts in Ethiopian Birr, the storefront's currency.
var etb = accounting.Accounting{Symbol: "ETB ", Precision: 2}

// FormatPrice renders a price for display, e.g. 1234.5 -> "ETB 1,234.50".
func FormatPrice(price decimal.Decimal) string {
	return etb.FormatMoneyDecimal(price)
}

// FormatDate renders a timestamp in the long form the storefront uses,
// e.g. "January 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// CalculateDiscountPercentage returns the rounded percentage saved when
// currentPrice is below originalPrice, and 0 otherwise. Never negative.
func CalculateDiscountPercentage(originalPrice, currentPrice float64) int {
	if originalPrice <= currentPrice || originalPrice == 0 {
		return 0
	}
	return int(math.Round((originalPrice - currentPrice) / originalPrice * 100))
}

// TruncateText shortens text to maxLength runes and appends an ellipsis.
// Counting runes keeps multi-byte characters intact at the cut point.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}

// GenerateOrderID produces a human-readable order number like
// "ORD-M2K3J1-A9X0QF": base36 timestamp plus base36 randomness.
func GenerateOrderID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	random := strconv.FormatInt(rand.Int63n(36*36*36*36*36*36), 36)
	for len(random) < 6 {
		random = "0" + random
	}
	return strings.ToUpper(fmt.Sprintf("ORD-%s-%s", ts, random))
}

// CartLine is the minimal shape CalculateCartTotal needs.
type CartLine struct {
	Quantity int
	Price    decimal.Decimal
}

// CalculateCartTotal sums quantity * price over the lines.
func CalculateCartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// GetInitials returns the uppercased initials of a name pair, for avatar
// placeholders.
func GetInitials(firstName, lastName string) string {
	initials := ""
	if firstName != "" {
		initials += string([]rune(firstName)[0])
	}
	if lastName != "" {
		initials += string([]rune(lastName)[0])
	}
	return strings.ToUpper(initials)
}

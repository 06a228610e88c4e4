package utils

import (
	"fmt"
	"math"
	"strconv"
)

// Money amounts are carried through the API as 2-decimal strings and computed
// as float64 in between. All price maths goes through this file so rounding
// behaves the same on every path.

// ParseAmount converts a decimal string to a float64. Non-numeric or
// non-finite input yields 0.
func ParseAmount(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FormatAmount renders an amount as a 2-decimal string.
func FormatAmount(f float64) string {
	return fmt.Sprintf("%.2f", Round2(f))
}

// Round2 rounds to 2 decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// EffectivePrice applies a percentage discount to a price. This is the single
// discounted-price function; every read or write of a sale-adjusted price
// must call it rather than repeating the formula.
func EffectivePrice(original, percent float64) float64 {
	if percent <= 0 {
		return Round2(original)
	}
	if percent >= 100 {
		return 0
	}
	return Round2(original - original*percent/100)
}

// LineTotal computes unitPrice × quantity for one cart or order line.
func LineTotal(unitPrice string, quantity int) float64 {
	return ParseAmount(unitPrice) * float64(quantity)
}

// ToPaise converts a rupee amount string to whole paise. Rounds rather than
// truncates: 2-dp values like 19.99 are not exactly representable in binary,
// and truncation would drop a paise.
func ToPaise(s string) int64 {
	return int64(math.Round(ParseAmount(s) * 100))
}

// CoerceShipping normalizes a caller-supplied shipping fee: negative or
// non-finite values become 0.
func CoerceShipping(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

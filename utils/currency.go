package utils

import (
	"fmt"
	"math"
)

// FormatCurrencyBRL formats a float64 value as a Brazilian Real currency string.
// Example: 15000.5 -> "R$ 15.000,50"
// Formatting is display-only; the billing calculators never round internally.
func FormatCurrencyBRL(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	// Arredonda para 2 casas apenas na exibição
	cents := int64(math.Round(amount * 100))
	integer := cents / 100
	decimal := cents % 100

	integerStr := ""
	if integer == 0 {
		integerStr = "0"
	}
	for integer > 0 {
		remainder := integer % 1000
		if integer >= 1000 {
			integerStr = fmt.Sprintf(".%03d%s", remainder, integerStr)
		} else {
			integerStr = fmt.Sprintf("%d%s", remainder, integerStr)
		}
		integer /= 1000
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, integerStr, decimal)
}

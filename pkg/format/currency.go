// Package format renders amounts for messages and reports.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if amount < 0 && math.Round(amount*100) != 0 {
		return "-$" + NumericCurrency(-amount)
	}
	return "$" + NumericCurrency(math.Abs(amount))
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer().Sprintf("%.2f", amount)
}

// WholeCurrency rounds to the dollar (e.g., "$1,192").
func WholeCurrency(amount float64) string {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return printer().Sprintf("-$%d", -rounded)
	}
	return printer().Sprintf("$%d", rounded)
}

// Number rounds to a whole number with separators (e.g., "12,750").
func Number(value float64) string {
	return printer().Sprintf("%d", int64(math.Round(value)))
}

// Percent renders a ratio as a percentage with one decimal (0.153 => "15.3%").
func Percent(ratio float64) string {
	return printer().Sprintf("%.1f%%", ratio*100)
}

package validation

import (
	"fmt"
	"sort"

	"github.com/iwvelando/vehicle-decision/pkg/tax"
)

// ValidateFraction warns when a rate is outside [0, 1].
func ValidateFraction(name string, rate float64) string {
	if rate < 0 || rate > 1 {
		return fmt.Sprintf("%s should be a fraction between 0 and 1, got %v", name, rate)
	}
	return ""
}

// ValidatePositive warns when an amount is not positive.
func ValidatePositive(name string, amount float64) string {
	if amount <= 0 {
		return fmt.Sprintf("%s should be positive, got %v", name, amount)
	}
	return ""
}

// ValidateBrackets checks that brackets start at zero, are contiguous and
// end with an unbounded bracket.
func ValidateBrackets(brackets []tax.Bracket) []string {
	if len(brackets) == 0 {
		return []string{"taxBrackets is empty - every taxable income will use a 0 rate"}
	}

	var warnings []string
	if brackets[0].Min != 0 {
		warnings = append(warnings, fmt.Sprintf("taxBrackets should start at 0, first bracket starts at %v", brackets[0].Min))
	}

	for i, b := range brackets {
		if msg := ValidateFraction(fmt.Sprintf("taxBrackets[%d].rate", i), b.Rate); msg != "" {
			warnings = append(warnings, msg)
		}
		if b.Max > 0 && b.Max <= b.Min {
			warnings = append(warnings, fmt.Sprintf("taxBrackets[%d] has max %v not above min %v", i, b.Max, b.Min))
		}
		if i == 0 {
			continue
		}
		prev := brackets[i-1]
		if prev.Max <= 0 {
			warnings = append(warnings, fmt.Sprintf("taxBrackets[%d] follows an unbounded bracket and is unreachable", i))
		} else if prev.Max != b.Min {
			warnings = append(warnings, fmt.Sprintf("taxBrackets[%d] starts at %v but the previous bracket ends at %v", i, b.Min, prev.Max))
		}
	}

	if last := brackets[len(brackets)-1]; last.Max > 0 {
		warnings = append(warnings, fmt.Sprintf("top tax bracket is bounded at %v - higher incomes reuse its rate", last.Max))
	}
	return warnings
}

// ValidateCategoryTable checks per-category values, warning on anything
// outside [min, max]. Categories are reported in sorted order.
func ValidateCategoryTable(name string, table map[string]float64, min, max float64) []string {
	categories := make([]string, 0, len(table))
	for category := range table {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var warnings []string
	for _, category := range categories {
		value := table[category]
		if value < min || value > max {
			warnings = append(warnings, fmt.Sprintf("%s for %s should be between %v and %v, got %v", name, category, min, max, value))
		}
	}
	return warnings
}

package tax

import "github.com/iwvelando/vehicle-decision/pkg/mathutil"

// TaxableIncome is income less expenses, floored at zero.
func TaxableIncome(income, expenses float64) float64 {
	return mathutil.NonNegative(income - expenses)
}

// MarginalRate returns the rate of the bracket containing taxableIncome.
// Income beyond the table takes the last bracket's rate.
func MarginalRate(taxableIncome float64, brackets []Bracket) float64 {
	for _, b := range brackets {
		if b.Contains(taxableIncome) {
			return b.Rate
		}
	}
	if len(brackets) == 0 {
		return 0
	}
	return brackets[len(brackets)-1].Rate
}

// ResolveRate returns the flat company rate for companies and the marginal
// rate of the taxable income for everyone else.
func ResolveRate(company bool, taxableIncome float64, table Table) float64 {
	if company {
		return table.CompanyTaxRate
	}
	return MarginalRate(taxableIncome, table.Brackets)
}

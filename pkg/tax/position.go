package tax

// Position is the combined tax outcome of a purchase.
type Position struct {
	HasLuxuryTax            bool               `json:"hasLuxuryTax"`
	LuxuryTaxAmount         float64            `json:"luxuryTaxAmount"`
	LuxuryTaxThreshold      float64            `json:"luxuryTaxThreshold"`
	InstantWriteOffEligible bool               `json:"instantWriteOffEligible"`
	TaxSavingsYear1         float64            `json:"taxSavingsYear1"`
	TotalTaxSavings         float64            `json:"totalTaxSavings"`
	TaxRate                 float64            `json:"taxRate"`
	Method                  string             `json:"method"`
	Schedule                []DepreciationYear `json:"schedule,omitempty"`
}

// NewPosition merges the luxury tax check with the depreciation outcome.
func NewPosition(lct LuxuryTaxResult, taxRate float64, dep Depreciation) Position {
	return Position{
		HasLuxuryTax:            lct.HasLuxuryTax,
		LuxuryTaxAmount:         lct.Amount,
		LuxuryTaxThreshold:      lct.Threshold,
		InstantWriteOffEligible: dep.InstantWriteOffEligible,
		TaxSavingsYear1:         dep.TaxSavingsYear1,
		TotalTaxSavings:         dep.TotalTaxSavings,
		TaxRate:                 taxRate,
		Method:                  dep.Method,
		Schedule:                dep.Schedule,
	}
}

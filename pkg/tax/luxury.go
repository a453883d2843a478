package tax

// LuxuryTaxResult is the outcome of the luxury car tax check.
type LuxuryTaxResult struct {
	HasLuxuryTax bool    `json:"hasLuxuryTax"`
	Amount       float64 `json:"luxuryTaxAmount"`
	Threshold    float64 `json:"luxuryTaxThreshold"`
}

// LuxuryTax applies the standard threshold to luxury vehicles and to any
// vehicle priced above it; everything else is measured against the
// fuel-efficient threshold.
func LuxuryTax(price float64, luxury bool, rates LuxuryTaxRates) LuxuryTaxResult {
	threshold := rates.ThresholdFuelEfficient
	if luxury || price > rates.ThresholdStandard {
		threshold = rates.ThresholdStandard
	}

	result := LuxuryTaxResult{Threshold: threshold}
	if price > threshold {
		result.HasLuxuryTax = true
		result.Amount = (price - threshold) * rates.Rate
	}
	return result
}

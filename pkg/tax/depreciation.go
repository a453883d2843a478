package tax

import "github.com/iwvelando/vehicle-decision/pkg/constants"

// Depreciation method labels.
const (
	MethodInstantWriteOff = "Instant Write-Off"
	MethodDepreciation    = "Depreciation"
)

// DepreciationYear is one year of the diminishing-value schedule.
type DepreciationYear struct {
	Year         int     `json:"year"`
	OpeningValue float64 `json:"openingValue"`
	Depreciation float64 `json:"depreciation"`
	TaxSaving    float64 `json:"taxSaving"`
}

// DepreciationInput describes the business asset being claimed.
type DepreciationInput struct {
	Price            float64
	BusinessUse      float64 // percent, 0-100
	TaxRate          float64
	DepreciationRate float64
	OwnershipYears   int
	WriteOffLimit    float64
}

// Depreciation is the deduction outcome over the ownership period.
type Depreciation struct {
	BusinessPortion         float64            `json:"businessPortion"`
	InstantWriteOffEligible bool               `json:"instantWriteOffEligible"`
	TaxSavingsYear1         float64            `json:"taxSavingsYear1"`
	TotalTaxSavings         float64            `json:"totalTaxSavings"`
	Method                  string             `json:"method"`
	Schedule                []DepreciationYear `json:"schedule,omitempty"`
}

// Depreciate claims the business portion outright when it fits under the
// write-off limit and otherwise runs diminishing-value depreciation for each
// year of ownership.
func Depreciate(in DepreciationInput) Depreciation {
	businessPortion := in.Price * (in.BusinessUse / constants.PercentageMultiplier)
	result := Depreciation{
		BusinessPortion:         businessPortion,
		InstantWriteOffEligible: businessPortion > 0 && businessPortion <= in.WriteOffLimit,
		Method:                  MethodDepreciation,
	}

	if result.InstantWriteOffEligible {
		saving := businessPortion * in.TaxRate
		result.Method = MethodInstantWriteOff
		result.TaxSavingsYear1 = saving
		result.TotalTaxSavings = saving
		result.Schedule = []DepreciationYear{{
			Year:         1,
			OpeningValue: businessPortion,
			Depreciation: businessPortion,
			TaxSaving:    saving,
		}}
		return result
	}

	years := in.OwnershipYears
	if years > constants.MaxOwnershipYears {
		years = constants.MaxOwnershipYears
	}

	remaining := businessPortion
	for year := 1; year <= years; year++ {
		depreciation := remaining * in.DepreciationRate
		saving := depreciation * in.TaxRate
		result.Schedule = append(result.Schedule, DepreciationYear{
			Year:         year,
			OpeningValue: remaining,
			Depreciation: depreciation,
			TaxSaving:    saving,
		})
		result.TotalTaxSavings += saving
		if year == 1 {
			result.TaxSavingsYear1 = saving
		}
		remaining -= depreciation
	}
	return result
}

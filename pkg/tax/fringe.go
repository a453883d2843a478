package tax

import "github.com/iwvelando/vehicle-decision/pkg/constants"

// FringeBenefitEstimate is the potential FBT exposure from private use.
type FringeBenefitEstimate struct {
	Applies         bool    `json:"applies"`
	PrivateUse      float64 `json:"privateUse"`
	AnnualLiability float64 `json:"annualLiability"`
}

// FringeBenefit estimates the annual liability for vehicles held by a
// non-individual entity with any private use.
func FringeBenefit(price, businessUse float64, individual bool, rates FringeBenefitRates) FringeBenefitEstimate {
	if individual || businessUse >= constants.PercentageMultiplier {
		return FringeBenefitEstimate{}
	}

	privateUse := constants.PercentageMultiplier - businessUse
	return FringeBenefitEstimate{
		Applies:         true,
		PrivateUse:      privateUse,
		AnnualLiability: price * rates.StatutoryRate * rates.Rate * (privateUse / constants.PercentageMultiplier),
	}
}

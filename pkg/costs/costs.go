// Package costs estimates vehicle running costs and total cost of ownership.
package costs

import (
	"github.com/iwvelando/vehicle-decision/pkg/constants"
	"github.com/iwvelando/vehicle-decision/pkg/mathutil"
)

// RunningCost is the business share of operating the vehicle.
type RunningCost struct {
	CostPerKm                     float64 `json:"costPerKm"`
	AnnualRunningCost             float64 `json:"annualRunningCost"`
	MonthlyRunningCost            float64 `json:"monthlyRunningCost"`
	TotalRunningCostOverOwnership float64 `json:"totalRunningCosts"`
}

// TotalCost breaks down the cost of ownership.
type TotalCost struct {
	TotalOutlay float64 `json:"totalOutlay"`
	TaxSavings  float64 `json:"taxSavings"`
	NetCost     float64 `json:"netCost"`
}

// Running apportions per-km operating cost by business use (percent) over
// the ownership period.
func Running(annualKm, costPerKm, businessUse float64, ownershipYears int) RunningCost {
	businessCost := mathutil.ApplyPercentage(annualKm*costPerKm, businessUse)
	return RunningCost{
		CostPerKm:                     costPerKm,
		AnnualRunningCost:             businessCost,
		MonthlyRunningCost:            businessCost / constants.MonthsPerYear,
		TotalRunningCostOverOwnership: businessCost * float64(ownershipYears),
	}
}

// Total sums price, interest and running costs, then subtracts tax savings.
// Luxury car tax is reported separately and not included.
func Total(price, interest, runningCosts, taxSavings float64) TotalCost {
	outlay := price + interest + runningCosts
	return TotalCost{
		TotalOutlay: outlay,
		TaxSavings:  taxSavings,
		NetCost:     outlay - taxSavings,
	}
}

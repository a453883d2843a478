package costs

import (
	"math"
	"testing"
)

func TestRunning(t *testing.T) {
	tests := []struct {
		name            string
		annualKm        float64
		costPerKm       float64
		businessUse     float64
		years           int
		expectedAnnual  float64
		expectedMonthly float64
		expectedTotal   float64
	}{
		{"Sedan at 80% business", 15000, 0.65, 80, 5, 7800, 650, 39000},
		{"Truck fully business", 20000, 1.20, 100, 3, 24000, 2000, 72000},
		{"No business use", 15000, 0.65, 0, 5, 0, 0, 0},
		{"No distance", 0, 1.50, 100, 5, 0, 0, 0},
		{"Single year", 12000, 0.70, 50, 1, 4200, 350, 4200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Running(tt.annualKm, tt.costPerKm, tt.businessUse, tt.years)
			if math.Abs(result.AnnualRunningCost-tt.expectedAnnual) > 0.001 {
				t.Errorf("AnnualRunningCost = %.2f, expected %.2f", result.AnnualRunningCost, tt.expectedAnnual)
			}
			if math.Abs(result.MonthlyRunningCost-tt.expectedMonthly) > 0.001 {
				t.Errorf("MonthlyRunningCost = %.2f, expected %.2f", result.MonthlyRunningCost, tt.expectedMonthly)
			}
			if math.Abs(result.TotalRunningCostOverOwnership-tt.expectedTotal) > 0.001 {
				t.Errorf("TotalRunningCostOverOwnership = %.2f, expected %.2f", result.TotalRunningCostOverOwnership, tt.expectedTotal)
			}
		})
	}
}

func TestTotal(t *testing.T) {
	result := Total(65000, 13149, 39000, 10000)

	if result.TotalOutlay != 117149 {
		t.Errorf("TotalOutlay = %.2f, expected 117149", result.TotalOutlay)
	}
	if result.NetCost != 107149 {
		t.Errorf("NetCost = %.2f, expected 107149", result.NetCost)
	}
	if result.TaxSavings != 10000 {
		t.Errorf("TaxSavings = %.2f, expected 10000", result.TaxSavings)
	}
}

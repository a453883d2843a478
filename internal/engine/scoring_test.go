package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCashFlowScore(t *testing.T) {
	tests := []struct {
		ratio    float64
		expected float64
	}{
		{0, 100},
		{0.05, 95},
		{0.075, 90},
		{0.15, 70},
		{0.20, 57.5},
		{0.30, 30},
		{0.35, 20},
		{0.50, 10},
		{3, 10},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, cashFlowScore(tt.ratio), 1e-9, "ratio %v", tt.ratio)
	}
}

func TestCashFlowScoreIsNonIncreasing(t *testing.T) {
	previous := cashFlowScore(0)
	for ratio := 0.0; ratio <= 1; ratio += 0.005 {
		current := cashFlowScore(ratio)
		assert.LessOrEqual(t, current, previous+1e-9, "ratio %v", ratio)
		previous = current
	}
}

func TestSafetyScore(t *testing.T) {
	tests := []struct {
		months   float64
		expected float64
	}{
		{-4, 10},
		{0, 10},
		{0.5, 20},
		{2, 45},
		{6, 85},
		{9, 92.5},
		{12, 100},
		{99, 100},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, safetyScore(tt.months), 1e-9, "months %v", tt.months)
	}
}

func TestTaxScore(t *testing.T) {
	tests := []struct {
		name     string
		a        assessment
		expected float64
	}{
		{"Write-off at full business use", withTax(true, 100, 0.37), 95},
		{"Depreciation at 80%", withTax(false, 80, 0.325), 72},
		{"Low rate and no business use", withTax(false, 0, 0), 50},
		{"Business bonus is capped", withTax(false, 100, 0.45), 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, taxScore(tt.a), 1e-9)
		})
	}
}

func withTax(eligible bool, businessUse, rate float64) assessment {
	var a assessment
	a.dep.InstantWriteOffEligible = eligible
	a.inputs.businessUse = businessUse
	a.taxRate = rate
	return a
}

func TestScorePenalties(t *testing.T) {
	a := withTax(false, 80, 0.325)
	a.cashFlow.PaymentToIncomeRatio = 0.05
	a.cashFlow.MonthsOfReserves = 12

	clean := score(a, nil)
	penalised := score(a, []Flag{
		{Severity: SeverityCritical},
		{Severity: SeverityWarning},
		{Severity: SeverityAdvisory},
		{Severity: SeverityWarning},
	})
	assert.Equal(t, clean.Overall-18, penalised.Overall)
	assert.Equal(t, clean.TaxScore, penalised.TaxScore)
}

func TestScoreClampsAtZero(t *testing.T) {
	a := withTax(false, 0, 0)
	a.cashFlow.PaymentToIncomeRatio = 2
	a.cashFlow.MonthsOfReserves = -10

	risks := make([]Flag, 20)
	for i := range risks {
		risks[i].Severity = SeverityCritical
	}
	assert.Equal(t, 0, score(a, risks).Overall)
}

func TestVerdict(t *testing.T) {
	critical := []Flag{{Severity: SeverityCritical}}
	warning := []Flag{{Severity: SeverityWarning}}

	assert.Equal(t, VerdictSensible, verdictFor(80, critical))
	assert.Equal(t, VerdictCaution, verdictFor(79, nil))
	assert.Equal(t, VerdictCaution, verdictFor(60, critical))
	assert.Equal(t, VerdictRisky, verdictFor(59, critical))
	assert.Equal(t, VerdictAggressive, verdictFor(59, warning))
	assert.Equal(t, "This purchase looks quite risky - see critical concerns below.", summaries[VerdictRisky])
}

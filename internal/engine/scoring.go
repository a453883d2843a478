package engine

import (
	"math"

	"github.com/iwvelando/vehicle-decision/pkg/mathutil"
)

const (
	taxBase             = 60.0
	taxWriteOffBonus    = 20.0
	taxBusinessUseSlope = 0.15
	taxBusinessUseCap   = 15.0
	taxLowRatePenalty   = 10.0
	taxLowRate          = 0.19

	cashFlowTailSlope = 200.0
	cashFlowFloor     = 10.0
	safetyFloor       = 10.0

	weightTax      = 0.30
	weightCashFlow = 0.40
	weightSafety   = 0.30

	penaltyCritical = 8.0
	penaltyWarning  = 4.0
	penaltyAdvisory = 2.0

	sensibleScore = 80
	cautionScore  = 60
)

// cashFlowCurve maps payment-to-income ratio to score up to 30%.
var cashFlowCurve = []mathutil.Point{
	{X: 0, Y: 100},
	{X: 0.05, Y: 95},
	{X: 0.10, Y: 85},
	{X: 0.15, Y: 70},
	{X: 0.25, Y: 45},
	{X: 0.30, Y: 30},
}

// safetyCurve maps months of reserves to score; 12 months and over is full.
var safetyCurve = []mathutil.Point{
	{X: 0, Y: 10},
	{X: 1, Y: 30},
	{X: 3, Y: 60},
	{X: 6, Y: 85},
	{X: 12, Y: 100},
}

var summaries = map[Verdict]string{
	VerdictSensible:   "This looks like a sensible purchase based on the numbers.",
	VerdictCaution:    "This could work but be mindful of the risks highlighted below.",
	VerdictRisky:      "This purchase looks quite risky - see critical concerns below.",
	VerdictAggressive: "This purchase looks aggressive - consider adjusting price or timing.",
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return mathutil.Clamp(v, 0, 100)
}

func taxScore(a assessment) float64 {
	s := taxBase
	if a.dep.InstantWriteOffEligible {
		s += taxWriteOffBonus
	}
	s += math.Min(taxBusinessUseCap, taxBusinessUseSlope*a.inputs.businessUse)
	if a.taxRate < taxLowRate {
		s -= taxLowRatePenalty
	}
	return clampScore(s)
}

func cashFlowScore(ratio float64) float64 {
	if math.IsNaN(ratio) {
		return cashFlowFloor
	}
	last := cashFlowCurve[len(cashFlowCurve)-1]
	if ratio > last.X {
		return clampScore(math.Max(cashFlowFloor, last.Y-cashFlowTailSlope*(ratio-last.X)))
	}
	return clampScore(mathutil.Interpolate(cashFlowCurve, ratio))
}

func safetyScore(months float64) float64 {
	if math.IsNaN(months) || months < 0 {
		return safetyFloor
	}
	return clampScore(mathutil.Interpolate(safetyCurve, months))
}

// score combines the weighted sub-scores with flat penalties per risk flag.
func score(a assessment, risks []Flag) Scores {
	t := taxScore(a)
	c := cashFlowScore(a.cashFlow.PaymentToIncomeRatio)
	s := safetyScore(a.cashFlow.MonthsOfReserves)

	counts := countBySeverity(risks)
	overall := weightTax*t + weightCashFlow*c + weightSafety*s
	overall -= penaltyCritical*float64(counts[SeverityCritical]) +
		penaltyWarning*float64(counts[SeverityWarning]) +
		penaltyAdvisory*float64(counts[SeverityAdvisory])

	return Scores{
		Overall:       int(math.Round(clampScore(overall))),
		TaxScore:      int(math.Round(t)),
		CashFlowScore: int(math.Round(c)),
		SafetyScore:   int(math.Round(s)),
	}
}

func verdictFor(overall int, risks []Flag) Verdict {
	switch {
	case overall >= sensibleScore:
		return VerdictSensible
	case overall >= cautionScore:
		return VerdictCaution
	case countBySeverity(risks)[SeverityCritical] > 0:
		return VerdictRisky
	default:
		return VerdictAggressive
	}
}

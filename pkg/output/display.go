package output

import (
	"math"

	"github.com/iwvelando/vehicle-decision/internal/engine"
	"github.com/shopspring/decimal"
)

// Display is the flat view consumed by the form UI. Amounts are whole-dollar
// strings and reserves are rounded to one decimal.
type Display struct {
	Overall       int `json:"overall"`
	TaxScore      int `json:"taxScore"`
	CashFlowScore int `json:"cashFlowScore"`
	SafetyScore   int `json:"safetyScore"`

	MonthlyPayment string `json:"monthlyPayment"`
	TotalInterest  string `json:"totalInterest"`

	CashAfterPurchase string `json:"cashAfterPurchase"`
	MonthsOfReserves  string `json:"monthsOfReserves"`

	TotalCostOfOwnership string `json:"totalCostOfOwnership"`

	LuxuryTaxAmount string `json:"lctAmount"`
	HasLuxuryTax    bool   `json:"hasLCT"`

	InstantWriteOffEligible bool   `json:"instantWriteOffEligible"`
	TaxSavingsYear1         string `json:"taxSavingsYear1"`
	TotalTaxSavings         string `json:"totalTaxSavings"`

	MonthlyRunningCost string `json:"monthlyRunningCost"`
	TotalRunningCosts  string `json:"totalRunningCosts"`

	RiskFlags        []engine.Flag `json:"riskFlags"`
	PositiveFlags    []engine.Flag `json:"positiveFlags"`
	OpportunityFlags []engine.Flag `json:"opportunityFlags"`
	FbtWarnings      []engine.Flag `json:"fbtWarnings"`

	Summary string `json:"summary"`
}

// NewDisplay flattens r. A nil result has no display.
func NewDisplay(r *engine.Result) *Display {
	if r == nil {
		return nil
	}
	return &Display{
		Overall:       r.Scores.Overall,
		TaxScore:      r.Scores.TaxScore,
		CashFlowScore: r.Scores.CashFlowScore,
		SafetyScore:   r.Scores.SafetyScore,

		MonthlyPayment: round0(r.Finance.MonthlyPayment),
		TotalInterest:  round0(r.Finance.TotalInterest),

		CashAfterPurchase: round0(r.CashFlow.CashAfterPurchase),
		MonthsOfReserves:  round1(r.CashFlow.MonthsOfReserves),

		TotalCostOfOwnership: round0(r.TotalCostOfOwnership),

		LuxuryTaxAmount: round0(r.Tax.LuxuryTaxAmount),
		HasLuxuryTax:    r.Tax.HasLuxuryTax,

		InstantWriteOffEligible: r.Tax.InstantWriteOffEligible,
		TaxSavingsYear1:         round0(r.Tax.TaxSavingsYear1),
		TotalTaxSavings:         round0(r.Tax.TotalTaxSavings),

		MonthlyRunningCost: round0(r.Running.MonthlyRunningCost),
		TotalRunningCosts:  round0(r.Running.TotalRunningCostOverOwnership),

		RiskFlags:        nonNil(r.Flags.Risk),
		PositiveFlags:    nonNil(r.Flags.Positive),
		OpportunityFlags: nonNil(r.Flags.Opportunity),
		FbtWarnings:      nonNil(r.Flags.FringeBenefit),

		Summary: r.Summary,
	}
}

func round0(v float64) string {
	return roundTo(v, 0)
}

func round1(v float64) string {
	return roundTo(v, 1)
}

func roundTo(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func nonNil(flags []engine.Flag) []engine.Flag {
	if flags == nil {
		return []engine.Flag{}
	}
	return flags
}

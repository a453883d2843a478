package engine

import (
	"strings"
	"time"

	"github.com/iwvelando/vehicle-decision/pkg/cashflow"
	"github.com/iwvelando/vehicle-decision/pkg/costs"
	"github.com/iwvelando/vehicle-decision/pkg/loans"
	"github.com/iwvelando/vehicle-decision/pkg/numeric"
	"github.com/iwvelando/vehicle-decision/pkg/tax"
)

// PaymentMethod is how the purchase is funded.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentFinance PaymentMethod = "finance"
	PaymentSplit   PaymentMethod = "split"
)

// IsValid reports whether m is a known method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentFinance, PaymentSplit:
		return true
	}
	return false
}

// Financed reports whether any part of the price is borrowed.
func (m PaymentMethod) Financed() bool {
	return m == PaymentFinance || m == PaymentSplit
}

// ParsePaymentMethod normalises case and whitespace.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	return m, m.IsValid()
}

// EntityType is the legal owner of the vehicle.
type EntityType string

const (
	EntityIndividual  EntityType = "individual"
	EntityCompany     EntityType = "company"
	EntityTrust       EntityType = "trust"
	EntityPartnership EntityType = "partnership"
)

// IsValid reports whether e is a known entity type.
func (e EntityType) IsValid() bool {
	switch e {
	case EntityIndividual, EntityCompany, EntityTrust, EntityPartnership:
		return true
	}
	return false
}

// ParseEntityType normalises case and whitespace.
func ParseEntityType(s string) (EntityType, bool) {
	e := EntityType(strings.ToLower(strings.TrimSpace(s)))
	return e, e.IsValid()
}

// Category is the vehicle type. Unknown categories are allowed and use the
// default depreciation and running cost rates.
type Category string

const (
	CategorySedan  Category = "sedan"
	CategorySUV    Category = "suv"
	CategoryUte    Category = "ute"
	CategoryVan    Category = "van"
	CategoryTruck  Category = "truck"
	CategoryLuxury Category = "luxury"
)

// IsKnown reports whether c has its own rates.
func (c Category) IsKnown() bool {
	switch c {
	case CategorySedan, CategorySUV, CategoryUte, CategoryVan, CategoryTruck, CategoryLuxury:
		return true
	}
	return false
}

// ParseCategory normalises case and whitespace.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.IsKnown()
}

// SplitSide is the split field the user last controlled.
type SplitSide string

const (
	SplitSideNone    SplitSide = ""
	SplitSideCash    SplitSide = "cash"
	SplitSideFinance SplitSide = "finance"
)

// VehicleInputs is one raw snapshot of the purchase form. Numeric fields may
// be unset, numbers or text.
type VehicleInputs struct {
	DecisionID      string        `json:"decisionId,omitempty" yaml:"decisionId,omitempty"`
	DecisionName    string        `json:"decisionName,omitempty" yaml:"decisionName,omitempty"`
	Price           numeric.Value `json:"vehiclePrice" yaml:"vehiclePrice"`
	BusinessUse     numeric.Value `json:"businessUse" yaml:"businessUse"`
	PaymentMethod   PaymentMethod `json:"paymentMethod,omitempty" yaml:"paymentMethod,omitempty"`
	CashAmount      numeric.Value `json:"cashAmount" yaml:"cashAmount"`
	FinanceAmount   numeric.Value `json:"financeAmount" yaml:"financeAmount"`
	SplitAnchor     SplitSide     `json:"splitAnchor,omitempty" yaml:"splitAnchor,omitempty"`
	LoanTerm        numeric.Value `json:"loanTerm" yaml:"loanTerm"`
	InterestRate    numeric.Value `json:"interestRate" yaml:"interestRate"`
	AnnualIncome    numeric.Value `json:"annualIncome" yaml:"annualIncome"`
	AnnualExpenses  numeric.Value `json:"annualExpenses" yaml:"annualExpenses"`
	CashReserves    numeric.Value `json:"cashReserves" yaml:"cashReserves"`
	AnnualKm        numeric.Value `json:"annualKm" yaml:"annualKm"`
	VehicleType     Category      `json:"vehicleType,omitempty" yaml:"vehicleType,omitempty"`
	OwnershipPeriod numeric.Value `json:"ownershipPeriod" yaml:"ownershipPeriod"`
	EntityType      EntityType    `json:"entityType,omitempty" yaml:"entityType,omitempty"`
}

// Clone returns an independent copy. Every field is a value type, so a
// struct copy is a full copy.
func (in *VehicleInputs) Clone() *VehicleInputs {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}

// IssueSeverity grades a validation issue.
type IssueSeverity string

const (
	IssueError   IssueSeverity = "error"
	IssueWarning IssueSeverity = "warning"
	IssueInfo    IssueSeverity = "info"
)

// ValidationIssue is a non-blocking note about an input field.
type ValidationIssue struct {
	Field      string        `json:"field"`
	Severity   IssueSeverity `json:"severity"`
	Message    string        `json:"message"`
	Suggestion string        `json:"suggestion,omitempty"`
}

// HasErrors reports whether any issue is error severity.
func HasErrors(issues []ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == IssueError {
			return true
		}
	}
	return false
}

// Severity grades a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityAdvisory Severity = "advisory"
	SeverityPositive Severity = "positive"
	SeverityInfo     Severity = "info"
	SeverityNone     Severity = "none"
)

// Flag is one human-readable finding.
type Flag struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Flags groups the generated findings.
type Flags struct {
	Risk          []Flag `json:"riskFlags"`
	Positive      []Flag `json:"positiveFlags"`
	Opportunity   []Flag `json:"opportunityFlags"`
	FringeBenefit []Flag `json:"fbtWarnings"`
}

// StressTest is the outcome of one perturbed re-analysis.
type StressTest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Baseline float64  `json:"baseline"`
	Stressed float64  `json:"stressed"`
}

// Scores are integers in [0, 100].
type Scores struct {
	Overall       int `json:"overall"`
	TaxScore      int `json:"taxScore"`
	CashFlowScore int `json:"cashFlowScore"`
	SafetyScore   int `json:"safetyScore"`
}

// Verdict buckets the overall score.
type Verdict string

const (
	VerdictSensible   Verdict = "sensible"
	VerdictCaution    Verdict = "caution"
	VerdictRisky      Verdict = "risky"
	VerdictAggressive Verdict = "aggressive"
)

// Result is the full assessment of one purchase.
type Result struct {
	Scores               Scores              `json:"scores"`
	Finance              loans.FinanceDetail `json:"finance"`
	Tax                  tax.Position        `json:"tax"`
	Running              costs.RunningCost   `json:"running"`
	CashFlow             cashflow.Analysis   `json:"cashFlow"`
	Flags                Flags               `json:"flags"`
	StressTests          []StressTest        `json:"stressTests"`
	TotalCost            costs.TotalCost     `json:"totalCost"`
	TotalCostOfOwnership float64             `json:"totalCostOfOwnership"`
	Verdict              Verdict             `json:"verdict"`
	Summary              string              `json:"summary"`
	CalculatedAt         time.Time           `json:"calculatedAt"`
}

// Outcome pairs the validation issues with the result. Result is always set.
type Outcome struct {
	Issues []ValidationIssue `json:"issues"`
	Result *Result           `json:"result"`
}

package engine

import (
	"fmt"

	"github.com/iwvelando/vehicle-decision/pkg/constants"
	"github.com/iwvelando/vehicle-decision/pkg/mathutil"
	"github.com/iwvelando/vehicle-decision/pkg/numeric"
	"go.uber.org/zap"
)

// Validate annotates inputs with completeness and plausibility issues, in
// field order. It never blocks computation.
func (e *Engine) Validate(in *VehicleInputs) []ValidationIssue {
	if in == nil {
		return []ValidationIssue{{
			Field:      "inputs",
			Severity:   IssueError,
			Message:    "No inputs provided.",
			Suggestion: "Enter details before running the analysis.",
		}}
	}

	var issues []ValidationIssue
	add := func(field string, severity IssueSeverity, message, suggestion string) {
		issues = append(issues, ValidationIssue{Field: field, Severity: severity, Message: message, Suggestion: suggestion})
	}

	price, priceOK := in.Price.Float()
	if !priceOK || price <= 0 {
		add("vehiclePrice", IssueError, "Vehicle price must be a positive number.", "Enter a value greater than 0.")
	}

	if businessUse, ok := in.BusinessUse.Float(); !ok || businessUse < 0 || businessUse > constants.PercentageMultiplier {
		add("businessUse", IssueError, "Business use must be between 0 and 100.", "Use a percentage from 0 to 100.")
	}

	if missingOrNegative(in.AnnualIncome) {
		add("annualIncome", IssueWarning, "Annual income is missing or invalid.",
			"Enter a realistic annual income for better affordability signals.")
	}
	if missingOrNegative(in.AnnualExpenses) {
		add("annualExpenses", IssueWarning, "Annual expenses is missing or invalid.",
			"Enter annual expenses for a more accurate cash-flow check.")
	}
	if missingOrNegative(in.CashReserves) {
		add("cashReserves", IssueWarning, "Cash reserves is missing or invalid.",
			"Enter your cash buffer to assess safety after purchase.")
	}

	// Loan fields only matter for an explicitly financed purchase.
	method, methodOK := ParsePaymentMethod(string(in.PaymentMethod))
	if methodOK && method.Financed() {
		if term, ok := in.LoanTerm.Float(); !ok || term <= 0 {
			add("loanTerm", IssueError, "Loan term must be a positive number of years.", "Use 1–7 years typically.")
		}
		if rate, ok := in.InterestRate.Float(); !ok || rate < 0 || rate > constants.MaxPlausibleInterestRate {
			add("interestRate", IssueWarning, "Interest rate looks missing or unrealistic.",
				"Enter an annual interest rate in % (e.g., 7.5).")
		}
	}

	if methodOK && method == PaymentSplit {
		cash, cashOK := in.CashAmount.Float()
		finance, financeOK := in.FinanceAmount.Float()

		if cashOK && cash < 0 {
			add("cashAmount", IssueError, "Cash deposit cannot be negative.", "")
		}
		if financeOK && finance < 0 {
			add("financeAmount", IssueError, "Finance amount cannot be negative.", "")
		}
		if priceOK && cashOK && financeOK && !mathutil.WithinTolerance(cash+finance, price, constants.SplitTolerance) {
			add("financeAmount", IssueWarning, "Cash + finance does not match the vehicle price.",
				"Ensure cash deposit + finance amount equals the vehicle price.")
		}
	}

	if ownership, ok := in.OwnershipPeriod.Float(); !ok || ownership <= 0 || ownership > constants.MaxPlausibleOwnershipYears {
		add("ownershipPeriod", IssueWarning, "Ownership period looks missing or unusual.",
			"Use a realistic ownership period (e.g., 3–7 years).")
	}

	if in.PaymentMethod != "" && !methodOK {
		add("paymentMethod", IssueInfo,
			fmt.Sprintf("Payment method %q is not recognised - %s is assumed.", in.PaymentMethod, e.paymentMethod("")),
			"Choose cash, finance or split.")
	}
	if in.EntityType != "" {
		if _, ok := ParseEntityType(string(in.EntityType)); !ok {
			add("entityType", IssueInfo,
				fmt.Sprintf("Entity type %q is not recognised - %s is assumed.", in.EntityType, e.entityType("")),
				"Choose individual, company, trust or partnership.")
		}
	}
	if in.VehicleType != "" {
		if _, ok := ParseCategory(string(in.VehicleType)); !ok {
			add("vehicleType", IssueInfo,
				fmt.Sprintf("Vehicle type %q has no specific rates - default depreciation and running costs apply.", in.VehicleType),
				"")
		}
	}

	e.logger.Debug("validated vehicle inputs",
		zap.String("op", "engine.Validate"),
		zap.Int("issues", len(issues)),
	)
	return issues
}

func missingOrNegative(v numeric.Value) bool {
	f, ok := v.Float()
	return !ok || f < 0
}

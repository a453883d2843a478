package engine

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/vehicle-decision/pkg/format"
	"github.com/iwvelando/vehicle-decision/pkg/tax"
)

// Flag rule thresholds.
const (
	reservesCriticalMonths = 1.0
	reservesLowMonths      = 3.0
	reservesStrongMonths   = 6.0

	ratioCritical    = 0.25
	ratioHigh        = 0.15
	ratioManageable  = 0.10
	ratioComfortable = 0.20

	scrutinyBusinessUse = 80.0
	scrutinyBusinessKm  = 10000.0
	priceToIncomeLimit  = 0.70
	conservativeShare   = 0.50

	cheaperVehicleShare = 0.70
	targetBusinessUse   = 80.0
	minBusinessUseNudge = 50.0
	materialInterest    = 5000.0
	depositSavingShare  = 0.30
)

func percentText(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fringeBenefitFlags(fbt tax.FringeBenefitEstimate) []Flag {
	if !fbt.Applies {
		return nil
	}
	return []Flag{{
		Code:     "fbt_liability",
		Severity: SeverityWarning,
		Message: fmt.Sprintf("%s%% private use may trigger ~%s annual FBT liability.",
			percentText(fbt.PrivateUse), format.WholeCurrency(fbt.AnnualLiability)),
	}}
}

// riskFlags evaluates each metric independently; within a metric only the
// most severe tier fires. Fringe-benefit warnings are appended last.
func riskFlags(a assessment, fbt []Flag) []Flag {
	var flags []Flag
	cf := a.cashFlow
	in := a.inputs

	switch {
	case cf.MonthsOfReserves < reservesCriticalMonths:
		flags = append(flags, Flag{"reserves_critical", SeverityCritical,
			"Less than 1 month expenses in reserves after purchase - very risky."})
	case cf.MonthsOfReserves < reservesLowMonths:
		flags = append(flags, Flag{"reserves_low", SeverityWarning,
			"Less than 3 months expenses in reserves - limited buffer."})
	}

	switch {
	case cf.PaymentToIncomeRatio > ratioCritical:
		flags = append(flags, Flag{"ratio_critical", SeverityCritical,
			"Total vehicle costs exceed 25% of monthly income - serious strain."})
	case cf.PaymentToIncomeRatio > ratioHigh:
		flags = append(flags, Flag{"ratio_high", SeverityWarning,
			"Vehicle costs exceed 15% of income - above recommended level."})
	}

	if a.lct.HasLuxuryTax {
		flags = append(flags, Flag{"luxury_tax", SeverityWarning,
			fmt.Sprintf("Luxury car tax of %s applies - adds to total cost.", format.WholeCurrency(a.lct.Amount))})
	}

	businessKm := in.annualKm * (in.businessUse / 100)
	if in.businessUse > scrutinyBusinessUse && businessKm < scrutinyBusinessKm {
		flags = append(flags, Flag{"business_use_scrutiny", SeverityWarning,
			fmt.Sprintf("Claiming %s%% business use but only %skm - may face ATO scrutiny.",
				percentText(in.businessUse), format.Number(businessKm))})
	}

	if in.income > 0 && in.price/in.income > priceToIncomeLimit {
		flags = append(flags, Flag{"price_to_income", SeverityAdvisory,
			"Vehicle price exceeds 70% of annual income - consider if appropriate."})
	}

	return append(flags, fbt...)
}

func positiveFlags(a assessment) []Flag {
	var flags []Flag
	cf := a.cashFlow
	in := a.inputs

	if cf.MonthsOfReserves > reservesStrongMonths && cf.PaymentToIncomeRatio < ratioManageable {
		flags = append(flags, Flag{"strong_position", SeverityPositive,
			"Strong financial position - healthy reserves with manageable commitments."})
	}

	if a.dep.InstantWriteOffEligible && in.businessUse >= targetBusinessUse {
		flags = append(flags, Flag{"write_off_high_use", SeverityPositive,
			"Excellent tax position - instant write-off with high business use maximizes benefits."})
	}

	if in.price < in.reserves*conservativeShare {
		flags = append(flags, Flag{"conservative_purchase", SeverityPositive,
			"Conservative purchase - vehicle cost is less than half your reserves."})
	}

	if len(flags) == 0 && cf.MonthsOfReserves >= reservesLowMonths && cf.PaymentToIncomeRatio < ratioComfortable {
		flags = append(flags, Flag{"solid_position", SeverityPositive,
			"Solid position - reserves and vehicle costs are within comfortable limits."})
	}
	return flags
}

func opportunityFlags(a assessment) []Flag {
	var flags []Flag
	cf := a.cashFlow
	in := a.inputs

	if cf.PaymentToIncomeRatio > ratioHigh {
		flags = append(flags, Flag{"cheaper_vehicle", SeverityNone,
			fmt.Sprintf("A %s vehicle would significantly improve cash flow and reduce financial strain.",
				format.WholeCurrency(in.price*cheaperVehicleShare))})
	}

	if in.businessUse > minBusinessUseNudge && in.businessUse < targetBusinessUse && a.dep.InstantWriteOffEligible {
		flags = append(flags, Flag{"raise_business_use", SeverityNone,
			"Increasing business use to 80% could provide additional tax benefits while staying under instant write-off threshold."})
	}

	if a.finance.FinancePortion > 0 && cf.MonthsOfReserves > reservesStrongMonths && a.finance.TotalInterest > materialInterest {
		flags = append(flags, Flag{"larger_deposit", SeverityNone,
			fmt.Sprintf("With strong reserves, increasing cash deposit could save ~%s in interest.",
				format.WholeCurrency(a.finance.TotalInterest*depositSavingShare))})
	}

	if len(flags) > 0 {
		return flags
	}

	if in.businessUse < 100 {
		flags = append(flags, Flag{"review_business_use", SeverityNone,
			"Review your business-use percentage - a logbook supporting a higher share increases deductions."})
	}
	return append(flags, Flag{"compare_scenarios", SeverityNone,
		"Compare the scenarios to see how price, interest rate and business use change the outcome."})
}

// countBySeverity tallies risk flags for scoring and verdicts.
func countBySeverity(flags []Flag) map[Severity]int {
	counts := make(map[Severity]int, 3)
	for _, f := range flags {
		counts[f.Severity]++
	}
	return counts
}

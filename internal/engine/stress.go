package engine

import (
	"fmt"

	"github.com/iwvelando/vehicle-decision/pkg/cashflow"
	"github.com/iwvelando/vehicle-decision/pkg/format"
)

// Stress test perturbations.
const (
	stressIncomeDrop   = 0.20
	stressRateRise     = 0.02
	stressExpenseRise  = 0.15
	stressIncomeFreeMo = 3
)

func ratioSeverity(ratio float64) Severity {
	switch {
	case ratio > ratioCritical:
		return SeverityCritical
	case ratio > ratioHigh:
		return SeverityWarning
	}
	return SeverityPositive
}

func reservesSeverity(months float64) Severity {
	switch {
	case months < reservesCriticalMonths:
		return SeverityCritical
	case months < reservesLowMonths:
		return SeverityWarning
	}
	return SeverityPositive
}

func monthsText(months float64) string {
	return fmt.Sprintf("%.1f", months)
}

// stressTests re-runs the cash flow analysis under four independent shocks.
// Each shock works on its own copy of the resolved inputs.
func (e *Engine) stressTests(a assessment) []StressTest {
	return []StressTest{
		e.incomeDropTest(a),
		e.rateRiseTest(a),
		expenseRiseTest(a),
		incomeFreeTest(a),
	}
}

func reanalyze(a assessment, r resolvedInputs, loanPayment float64) cashflow.Analysis {
	return cashflow.Analyze(r.position(), cashflow.Commitment{
		LoanPayment:        loanPayment,
		MonthlyRunningCost: a.running.MonthlyRunningCost,
		CashPortion:        a.finance.CashPortion,
	})
}

func (e *Engine) incomeDropTest(a assessment) StressTest {
	r := a.inputs
	r.income *= 1 - stressIncomeDrop
	stressed := reanalyze(a, r, a.finance.MonthlyPayment)

	rate := e.taxRate(r)
	dep := e.depreciate(r, rate)

	message := fmt.Sprintf("A 20%% income drop puts vehicle costs at %s of income (from %s); year-one tax saving becomes %s.",
		format.Percent(stressed.PaymentToIncomeRatio), format.Percent(a.cashFlow.PaymentToIncomeRatio),
		format.WholeCurrency(dep.TaxSavingsYear1))
	severity := ratioSeverity(stressed.PaymentToIncomeRatio)
	if r.income <= 0 {
		message = "No income is recorded, so an income drop cannot be assessed."
		severity = SeverityInfo
	}

	return StressTest{
		ID:       "income_drop",
		Name:     "Income -20%",
		Severity: severity,
		Message:  message,
		Baseline: a.cashFlow.PaymentToIncomeRatio,
		Stressed: stressed.PaymentToIncomeRatio,
	}
}

func (e *Engine) rateRiseTest(a assessment) StressTest {
	test := StressTest{
		ID:       "rate_rise",
		Name:     "Interest +2%",
		Baseline: a.cashFlow.PaymentToIncomeRatio,
		Stressed: a.cashFlow.PaymentToIncomeRatio,
	}
	if a.finance.FinancePortion <= 0 {
		test.Severity = SeverityInfo
		test.Message = "Nothing is financed, so interest rate changes do not affect this purchase."
		return test
	}

	r := a.inputs
	r.interestRate += stressRateRise
	finance := e.finance(r)
	stressed := reanalyze(a, r, finance.MonthlyPayment)

	test.Severity = ratioSeverity(stressed.PaymentToIncomeRatio)
	test.Stressed = stressed.PaymentToIncomeRatio
	test.Message = fmt.Sprintf("A 2-point rate rise adds %s a month and %s interest over the loan; vehicle costs reach %s of income.",
		format.WholeCurrency(finance.MonthlyPayment-a.finance.MonthlyPayment),
		format.WholeCurrency(finance.TotalInterest-a.finance.TotalInterest),
		format.Percent(stressed.PaymentToIncomeRatio))
	return test
}

func expenseRiseTest(a assessment) StressTest {
	r := a.inputs
	r.expenses *= 1 + stressExpenseRise
	stressed := reanalyze(a, r, a.finance.MonthlyPayment)

	return StressTest{
		ID:       "expense_rise",
		Name:     "Expenses +15%",
		Severity: reservesSeverity(stressed.MonthsOfReserves),
		Message: fmt.Sprintf("A 15%% expense rise leaves %s months of reserves (from %s).",
			monthsText(stressed.MonthsOfReserves), monthsText(a.cashFlow.MonthsOfReserves)),
		Baseline: a.cashFlow.MonthsOfReserves,
		Stressed: stressed.MonthsOfReserves,
	}
}

func incomeFreeTest(a assessment) StressTest {
	remaining := cashflow.IncomeFreeWindow(a.cashFlow, stressIncomeFreeMo)

	test := StressTest{
		ID:       "income_free",
		Name:     "3 months without income",
		Baseline: a.cashFlow.CashAfterPurchase,
		Stressed: remaining,
	}
	switch {
	case remaining < 0:
		test.Severity = SeverityCritical
		test.Message = fmt.Sprintf("Three months without income would leave reserves %s short.", format.WholeCurrency(-remaining))
	case remaining < stressIncomeFreeMo*a.cashFlow.MonthlyExpenses:
		test.Severity = SeverityWarning
		test.Message = fmt.Sprintf("Three months without income would leave %s - less than 3 months of expenses.", format.WholeCurrency(remaining))
	default:
		test.Severity = SeverityPositive
		test.Message = fmt.Sprintf("Three months without income would still leave %s in reserves.", format.WholeCurrency(remaining))
	}
	return test
}

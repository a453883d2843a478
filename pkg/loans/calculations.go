// Package loans provides the finance calculator: split resolution and
// fixed-rate amortization.
package loans

import (
	"math"

	"github.com/iwvelando/vehicle-decision/pkg/constants"
	"github.com/iwvelando/vehicle-decision/pkg/mathutil"
)

// Method is how the purchase is paid for.
type Method string

const (
	MethodCash    Method = "cash"
	MethodFinance Method = "finance"
	MethodSplit   Method = "split"
)

// FinanceDetail holds the resolved funding split and loan cost.
type FinanceDetail struct {
	CashPortion     float64   `json:"cashPortion"`
	FinancePortion  float64   `json:"financePortion"`
	MonthlyPayment  float64   `json:"monthlyPayment"`
	TotalInterest   float64   `json:"totalInterest"`
	YearEndBalances []float64 `json:"yearEndBalances,omitempty"`
}

// Payment holds the values for a given payment.
type Payment struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// ResolveSplit determines the cash and financed portions of price. When only
// one split amount is positive the other side takes the remainder of the
// price; with neither, a split purchase defaults to a 20% deposit with the
// rest financed. Two positive amounts are used as given.
func ResolveSplit(price float64, method Method, cashAmount, financeAmount *float64) (cashPortion, financePortion float64) {
	switch method {
	case MethodCash:
		return price, 0
	case MethodFinance:
		return 0, price
	}

	hasCash := cashAmount != nil && *cashAmount > 0
	hasFinance := financeAmount != nil && *financeAmount > 0

	switch {
	case hasCash && hasFinance:
		return *cashAmount, *financeAmount
	case hasCash:
		return *cashAmount, mathutil.NonNegative(price - *cashAmount)
	case hasFinance:
		return mathutil.NonNegative(price - *financeAmount), *financeAmount
	}
	cash := mathutil.NonNegative(price * constants.DefaultDepositShare)
	return cash, mathutil.NonNegative(price - cash)
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard amortization formula. annualRate is a fraction (0.075 for 7.5%).
func CalculateMonthlyPayment(principal, annualRate float64, termMonths int) float64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}
	if annualRate <= 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	monthlyRate := annualRate / constants.MonthsPerYear
	pow := math.Pow(1+monthlyRate, float64(termMonths))
	if math.IsInf(pow, 1) {
		// Limit of the formula as pow grows without bound.
		return principal * monthlyRate
	}
	return principal * (monthlyRate * pow) / (pow - 1)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualRate float64) float64 {
	return remainingPrincipal * annualRate / constants.MonthsPerYear
}

// CalculateFinance resolves the split and prices the loan.
func CalculateFinance(price float64, method Method, termYears int, annualRate float64, cashAmount, financeAmount *float64) FinanceDetail {
	cashPortion, financePortion := ResolveSplit(price, method, cashAmount, financeAmount)
	detail := FinanceDetail{CashPortion: cashPortion, FinancePortion: financePortion}

	if financePortion <= 0 || termYears <= 0 {
		return detail
	}

	n := termYears * constants.MonthsPerYear
	detail.MonthlyPayment = CalculateMonthlyPayment(financePortion, annualRate, n)
	if annualRate > 0 {
		detail.TotalInterest = detail.MonthlyPayment*float64(n) - financePortion
	}
	detail.YearEndBalances = YearEndBalances(GenerateSchedule(financePortion, annualRate, n))
	return detail
}

// GenerateSchedule creates the month-by-month amortization schedule for a
// fixed-rate loan.
func GenerateSchedule(principal, annualRate float64, termMonths int) []Payment {
	if principal <= 0 || termMonths <= 0 {
		return nil
	}

	monthlyPayment := CalculateMonthlyPayment(principal, annualRate, termMonths)
	schedule := make([]Payment, 0, termMonths)
	remaining := principal
	for month := 1; month <= termMonths; month++ {
		var current Payment
		current.Month = month
		current.Payment = monthlyPayment
		current.Interest = CalculateInterestPayment(remaining, annualRate)
		current.Principal = monthlyPayment - current.Interest

		if month == termMonths || mathutil.Round(remaining-current.Principal) == 0 {
			// We will get machine error otherwise so just set to 0.
			current.RemainingPrincipal = 0
		} else {
			current.RemainingPrincipal = remaining - current.Principal
		}
		schedule = append(schedule, current)
		remaining = current.RemainingPrincipal
		if remaining == 0 {
			break
		}
	}
	return schedule
}

// YearEndBalances returns the remaining principal after each full year of
// the schedule.
func YearEndBalances(schedule []Payment) []float64 {
	var balances []float64
	for _, payment := range schedule {
		if payment.Month%constants.MonthsPerYear == 0 {
			balances = append(balances, payment.RemainingPrincipal)
		}
	}
	if n := len(schedule); n > 0 && schedule[n-1].Month%constants.MonthsPerYear != 0 {
		balances = append(balances, schedule[n-1].RemainingPrincipal)
	}
	return balances
}

// Package cashflow measures how a purchase sits against income, expenses and
// reserves.
package cashflow

import (
	"math"

	"github.com/iwvelando/vehicle-decision/pkg/constants"
	"github.com/iwvelando/vehicle-decision/pkg/mathutil"
)

// Position is the household or business position before the purchase.
type Position struct {
	AnnualIncome   float64
	AnnualExpenses float64
	CashReserves   float64
}

// Commitment is what the vehicle costs each month and up front.
type Commitment struct {
	LoanPayment        float64
	MonthlyRunningCost float64
	CashPortion        float64
}

// Analysis is the affordability picture. MonthsOfReserves and
// PaymentToIncomeRatio are always finite.
type Analysis struct {
	MonthlyIncome          float64 `json:"monthlyIncome"`
	MonthlyExpenses        float64 `json:"monthlyExpenses"`
	TotalMonthlyCommitment float64 `json:"totalMonthlyCommitment"`
	CashAfterPurchase      float64 `json:"cashAfterPurchase"`
	MonthsOfReserves       float64 `json:"monthsOfReserves"`
	PaymentToIncomeRatio   float64 `json:"paymentToIncomeRatio"`
}

// Analyze combines the position with the vehicle commitment.
func Analyze(p Position, c Commitment) Analysis {
	a := Analysis{
		MonthlyIncome:          p.AnnualIncome / constants.MonthsPerYear,
		MonthlyExpenses:        p.AnnualExpenses / constants.MonthsPerYear,
		TotalMonthlyCommitment: c.LoanPayment + c.MonthlyRunningCost,
		CashAfterPurchase:      p.CashReserves - c.CashPortion,
	}

	switch {
	case a.MonthlyExpenses > 0:
		a.MonthsOfReserves = bounded(a.CashAfterPurchase/a.MonthlyExpenses, constants.ReserveSentinelMonths)
	case a.CashAfterPurchase > 0:
		a.MonthsOfReserves = constants.ReserveSentinelMonths
	}

	a.PaymentToIncomeRatio = bounded(mathutil.SafeDivide(a.TotalMonthlyCommitment, a.MonthlyIncome, 0), constants.RatioSentinel)
	return a
}

// bounded replaces a quotient that overflowed with the signed sentinel.
func bounded(v, sentinel float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 0):
		return math.Copysign(sentinel, v)
	}
	return v
}

// IncomeFreeWindow returns the cash left after the given number of months
// with no income while expenses and vehicle commitments continue.
func IncomeFreeWindow(a Analysis, months int) float64 {
	outgoing := (a.MonthlyExpenses + a.TotalMonthlyCommitment) * float64(months)
	return a.CashAfterPurchase - outgoing
}

package engine

import (
	"testing"

	"github.com/iwvelando/vehicle-decision/pkg/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stressByID(t *testing.T, tests []StressTest, id string) StressTest {
	t.Helper()
	for _, st := range tests {
		if st.ID == id {
			return st
		}
	}
	require.Failf(t, "missing stress test", "id %s", id)
	return StressTest{}
}

func TestStressTestsBaseline(t *testing.T) {
	tests := testEngine().Run(baselineInputs()).Result.StressTests
	require.Len(t, tests, 4)

	ids := make([]string, 0, len(tests))
	for _, st := range tests {
		ids = append(ids, st.ID)
	}
	assert.Equal(t, []string{"income_drop", "rate_rise", "expense_rise", "income_free"}, ids)

	incomeDrop := stressByID(t, tests, "income_drop")
	assert.Equal(t, "Income -20%", incomeDrop.Name)
	assert.Equal(t, SeverityWarning, incomeDrop.Severity)
	assert.InDelta(t, 0.1627056, incomeDrop.Stressed, 1e-6)
	assert.Equal(t, "A 20% income drop puts vehicle costs at 16.3% of income (from 13.0%); year-one tax saving becomes $2,470.",
		incomeDrop.Message)

	rateRise := stressByID(t, tests, "rate_rise")
	assert.Equal(t, SeverityPositive, rateRise.Severity)
	assert.Greater(t, rateRise.Stressed, rateRise.Baseline)
	assert.InDelta(t, 0.1343, rateRise.Stressed, 1e-3)

	expenseRise := stressByID(t, tests, "expense_rise")
	assert.Equal(t, SeverityWarning, expenseRise.Severity)
	assert.InDelta(t, 30000.0/11500.0, expenseRise.Stressed, 1e-9)
	assert.Equal(t, "A 15% expense rise leaves 2.6 months of reserves (from 3.0).", expenseRise.Message)

	incomeFree := stressByID(t, tests, "income_free")
	assert.Equal(t, SeverityCritical, incomeFree.Severity)
	assert.InDelta(t, -5857.40, incomeFree.Stressed, 0.01)
	assert.Equal(t, "Three months without income would leave reserves $5,857 short.", incomeFree.Message)
}

func TestStressTestsCashPurchase(t *testing.T) {
	in := baselineInputs()
	in.PaymentMethod = PaymentCash
	in.CashReserves = numeric.Number(200000)

	tests := testEngine().Run(in).Result.StressTests

	rateRise := stressByID(t, tests, "rate_rise")
	assert.Equal(t, SeverityInfo, rateRise.Severity)
	assert.Equal(t, rateRise.Baseline, rateRise.Stressed)

	incomeFree := stressByID(t, tests, "income_free")
	assert.Equal(t, SeverityPositive, incomeFree.Severity)
}

func TestStressTestsWithoutIncome(t *testing.T) {
	in := baselineInputs()
	in.AnnualIncome = numeric.Number(0)

	incomeDrop := stressByID(t, testEngine().Run(in).Result.StressTests, "income_drop")
	assert.Equal(t, SeverityInfo, incomeDrop.Severity)
	assert.Equal(t, "No income is recorded, so an income drop cannot be assessed.", incomeDrop.Message)
}

func TestStressTestsDoNotChangeBaseline(t *testing.T) {
	result := testEngine().Run(baselineInputs()).Result
	for _, st := range result.StressTests[:2] {
		assert.Equal(t, result.CashFlow.PaymentToIncomeRatio, st.Baseline, st.ID)
	}
	assert.Equal(t, result.CashFlow.MonthsOfReserves, result.StressTests[2].Baseline)
	assert.Equal(t, result.CashFlow.CashAfterPurchase, result.StressTests[3].Baseline)
}

func TestReservesSeverity(t *testing.T) {
	assert.Equal(t, SeverityCritical, reservesSeverity(0.99))
	assert.Equal(t, SeverityWarning, reservesSeverity(1))
	assert.Equal(t, SeverityWarning, reservesSeverity(2.99))
	assert.Equal(t, SeverityPositive, reservesSeverity(3))
}

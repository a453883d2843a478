// Package testutil provides common utility functions for testing.
package testutil

import (
	"time"

	"github.com/iwvelando/vehicle-decision/internal/engine"
	"github.com/iwvelando/vehicle-decision/pkg/numeric"
	"go.uber.org/zap"
)

// FixedTime is the calculation timestamp injected by NewEngine.
var FixedTime = time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC)

// NewEngine returns a silent engine with default rate tables and a fixed clock.
func NewEngine() *engine.Engine {
	return engine.New(zap.NewNop(), nil, engine.WithFixedTime(FixedTime))
}

// BaselineInputs returns the financed $65,000 sedan used across the test
// suites: 80% business use, 5 years at 7.5%, $180k income, $120k expenses
// and $30k reserves. It scores 70 overall with a caution verdict.
func BaselineInputs() *engine.VehicleInputs {
	return &engine.VehicleInputs{
		DecisionID:      "baseline",
		Price:           numeric.Number(65000),
		BusinessUse:     numeric.Number(80),
		PaymentMethod:   engine.PaymentFinance,
		LoanTerm:        numeric.Number(5),
		InterestRate:    numeric.Number(7.5),
		AnnualIncome:    numeric.Number(180000),
		AnnualExpenses:  numeric.Number(120000),
		CashReserves:    numeric.Number(30000),
		AnnualKm:        numeric.Number(15000),
		VehicleType:     engine.CategorySedan,
		OwnershipPeriod: numeric.Number(5),
		EntityType:      engine.EntityIndividual,
	}
}

// FindFlag finds a flag by code. Returns a pointer to the flag if found, nil
// otherwise.
func FindFlag(flags []engine.Flag, code string) *engine.Flag {
	for i := range flags {
		if flags[i].Code == code {
			return &flags[i]
		}
	}
	return nil
}

// Package scenario builds alternate purchase snapshots from a baseline and
// runs each one through the decision engine for side-by-side comparison.
package scenario

import (
	"math"

	"github.com/iwvelando/vehicle-decision/internal/engine"
	"github.com/iwvelando/vehicle-decision/pkg/constants"
	"github.com/iwvelando/vehicle-decision/pkg/mathutil"
	"github.com/iwvelando/vehicle-decision/pkg/numeric"
	"go.uber.org/zap"
)

// Variant adjustments.
const (
	PriceReductionShare = 0.20
	RateStressPoints    = 2.0
	ExtraDeposit        = 10000.0
	TermReductionYears  = 2
)

// Result is one evaluated scenario. Deltas are relative to the current
// scenario.
type Result struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Inputs     *engine.VehicleInputs    `json:"inputs"`
	Issues     []engine.ValidationIssue `json:"issues"`
	Result     *engine.Result           `json:"result"`
	ScoreDelta int                      `json:"scoreDelta"`
	CostDelta  float64                  `json:"costDelta"`
}

type variant struct {
	id     string
	name   string
	inputs *engine.VehicleInputs
}

// Generator derives and evaluates scenarios.
type Generator struct {
	logger *zap.Logger
	engine *engine.Engine
}

// New constructs a Generator. A nil engine uses the built-in configuration.
func New(logger *zap.Logger, eng *engine.Engine) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if eng == nil {
		eng = engine.New(logger, nil)
	}
	return &Generator{logger: logger, engine: eng}
}

var defaultGenerator = New(nil, nil)

// Generate evaluates the scenarios for in with the built-in configuration.
func Generate(in *engine.VehicleInputs) []Result {
	return defaultGenerator.Generate(in)
}

// Generate returns the current scenario followed by the variants. The
// current scenario evaluates in exactly as supplied. When the price is not a
// positive number only the current scenario is returned.
func (g *Generator) Generate(in *engine.VehicleInputs) []Result {
	raw := in.Clone()
	if raw == nil {
		raw = &engine.VehicleInputs{}
	}

	variants := []variant{{id: "current", name: "Current", inputs: raw}}

	price, ok := raw.Price.Float()
	if ok && price > 0 {
		variants = append(variants, g.variants(g.rebalance(raw.Clone()), price)...)
	} else {
		g.logger.Debug("skipping scenario variants for invalid price",
			zap.String("op", "scenario.Generate"),
			zap.String("price", raw.Price.String()),
		)
	}

	results := make([]Result, 0, len(variants))
	for _, v := range variants {
		outcome := g.engine.Run(v.inputs)
		results = append(results, Result{
			ID:     v.id,
			Name:   v.name,
			Inputs: v.inputs,
			Issues: outcome.Issues,
			Result: outcome.Result,
		})
	}

	current := results[0].Result
	for i := range results[1:] {
		r := &results[i+1]
		r.ScoreDelta = r.Result.Scores.Overall - current.Scores.Overall
		r.CostDelta = r.Result.TotalCostOfOwnership - current.TotalCostOfOwnership
	}

	g.logger.Debug("generated scenarios",
		zap.String("op", "scenario.Generate"),
		zap.String("decisionId", raw.DecisionID),
		zap.Int("scenarios", len(results)),
	)
	return results
}

func (g *Generator) variants(base *engine.VehicleInputs, price float64) []variant {
	variants := []variant{
		{id: "price_20pct", name: "20% Cheaper", inputs: g.withPrice(base, price*(1-PriceReductionShare))},
		{id: "rate_stress", name: "Interest +2%", inputs: g.withInterestDelta(base, RateStressPoints)},
		{id: "business_max", name: "Max Business Use", inputs: g.withBusinessUse(base, constants.PercentageMultiplier)},
	}

	if !g.engine.PaymentMethodFor(base.PaymentMethod).Financed() {
		return variants
	}

	variants = append(variants, variant{id: "extra_deposit", name: "+$10,000 Deposit", inputs: g.withExtraDeposit(base, price, ExtraDeposit)})
	if term := g.loanTerm(base); term > 1 {
		variants = append(variants, variant{id: "shorter_term", name: "Shorter Term", inputs: g.withLoanTerm(base, term-TermReductionYears)})
	}
	return variants
}

// rebalance reconciles split amounts with the price. The anchored side is
// held when present, then cash, then finance; with neither the default
// deposit share applies. Amounts are whole dollars within [0, price]. The
// held side becomes the anchor so later price changes keep it.
func (g *Generator) rebalance(in *engine.VehicleInputs) *engine.VehicleInputs {
	if g.engine.PaymentMethodFor(in.PaymentMethod) != engine.PaymentSplit {
		return in
	}
	price, ok := in.Price.Float()
	if !ok || price <= 0 {
		return in
	}

	cash, hasCash := in.CashAmount.Float()
	fin, hasFin := in.FinanceAmount.Float()
	holdCash := hasCash
	if in.SplitAnchor == engine.SplitSideFinance && hasFin {
		holdCash = false
	}

	switch {
	case holdCash:
		c := mathutil.Clamp(math.Round(cash), 0, price)
		setSplit(in, c, price-c)
		in.SplitAnchor = engine.SplitSideCash
	case hasFin:
		f := mathutil.Clamp(math.Round(fin), 0, price)
		setSplit(in, price-f, f)
		in.SplitAnchor = engine.SplitSideFinance
	default:
		c := mathutil.Clamp(math.Round(price*constants.DefaultDepositShare), 0, price)
		setSplit(in, c, price-c)
	}
	return in
}

func setSplit(in *engine.VehicleInputs, cash, fin float64) {
	in.CashAmount = numeric.Number(cash)
	in.FinanceAmount = numeric.Number(mathutil.NonNegative(fin))
}

func (g *Generator) withPrice(base *engine.VehicleInputs, price float64) *engine.VehicleInputs {
	next := base.Clone()
	next.Price = numeric.Number(math.Max(0, math.Round(price)))
	return g.rebalance(next)
}

func (g *Generator) withInterestDelta(base *engine.VehicleInputs, points float64) *engine.VehicleInputs {
	next := base.Clone()
	current := next.InterestRate.Or(g.engine.Config().Defaults.InterestRate)
	next.InterestRate = numeric.Number(current + points)
	return g.rebalance(next)
}

func (g *Generator) withBusinessUse(base *engine.VehicleInputs, pct float64) *engine.VehicleInputs {
	next := base.Clone()
	next.BusinessUse = numeric.Number(mathutil.Clamp(math.Round(pct), 0, constants.PercentageMultiplier))
	return g.rebalance(next)
}

// withExtraDeposit moves amount from the loan to cash. A fully financed
// purchase becomes a split anchored on cash.
func (g *Generator) withExtraDeposit(base *engine.VehicleInputs, price, amount float64) *engine.VehicleInputs {
	next := base.Clone()
	deposit := 0.0
	if g.engine.PaymentMethodFor(next.PaymentMethod) == engine.PaymentSplit {
		deposit = next.CashAmount.Or(0)
	}
	next.PaymentMethod = engine.PaymentSplit
	next.SplitAnchor = engine.SplitSideCash
	next.CashAmount = numeric.Number(mathutil.Clamp(deposit+amount, 0, price))
	next.FinanceAmount = numeric.Value{}
	return g.rebalance(next)
}

func (g *Generator) loanTerm(in *engine.VehicleInputs) int {
	return int(math.Max(1, math.Round(in.LoanTerm.Or(g.engine.Config().Defaults.LoanTerm))))
}

func (g *Generator) withLoanTerm(base *engine.VehicleInputs, years int) *engine.VehicleInputs {
	next := base.Clone()
	if years < 1 {
		years = 1
	}
	next.LoanTerm = numeric.Number(float64(years))
	return g.rebalance(next)
}

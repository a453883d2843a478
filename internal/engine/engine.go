// Package engine implements the vehicle purchase decision engine: input
// validation, the calculators, flag generation, scoring and stress tests.
// The engine performs no I/O and never fails; malformed input produces
// validation issues alongside a result built from fallbacks.
package engine

import (
	"math"
	"time"

	"github.com/iwvelando/vehicle-decision/internal/config"
	"github.com/iwvelando/vehicle-decision/pkg/cashflow"
	"github.com/iwvelando/vehicle-decision/pkg/constants"
	"github.com/iwvelando/vehicle-decision/pkg/costs"
	"github.com/iwvelando/vehicle-decision/pkg/loans"
	"github.com/iwvelando/vehicle-decision/pkg/mathutil"
	"github.com/iwvelando/vehicle-decision/pkg/tax"
	"go.uber.org/zap"
)

// Engine evaluates purchases against one read-only configuration. It is safe
// for concurrent use.
type Engine struct {
	logger *zap.Logger
	conf   *config.Configuration
	now    func() time.Time
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock used for CalculatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithFixedTime stamps every result with t.
func WithFixedTime(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

// New constructs an Engine. A nil configuration uses config.Default.
func New(logger *zap.Logger, conf *config.Configuration, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		conf = config.Default()
	}
	e := &Engine{logger: logger, conf: conf, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New(nil, nil)

// Validate checks inputs with the built-in configuration.
func Validate(in *VehicleInputs) []ValidationIssue {
	return defaultEngine.Validate(in)
}

// Run evaluates inputs with the built-in configuration.
func Run(in *VehicleInputs) Outcome {
	return defaultEngine.Run(in)
}

// Config returns the configuration the engine reads.
func (e *Engine) Config() *config.Configuration {
	return e.conf
}

// resolvedInputs is a VehicleInputs snapshot with every fallback applied.
type resolvedInputs struct {
	price          float64
	businessUse    float64 // percent, 0-100
	income         float64
	expenses       float64
	reserves       float64
	annualKm       float64
	interestRate   float64 // fraction
	loanTerm       int
	ownershipYears int
	method         PaymentMethod
	category       Category
	entity         EntityType
	cashAmount     *float64
	financeAmount  *float64
}

func (e *Engine) resolve(in *VehicleInputs) resolvedInputs {
	d := e.conf.Defaults

	r := resolvedInputs{
		price:          mathutil.NonNegative(in.Price.Or(0)),
		businessUse:    mathutil.Clamp(in.BusinessUse.Or(0), 0, constants.PercentageMultiplier),
		income:         mathutil.NonNegative(in.AnnualIncome.Or(0)),
		expenses:       mathutil.NonNegative(in.AnnualExpenses.Or(0)),
		reserves:       mathutil.NonNegative(in.CashReserves.Or(0)),
		annualKm:       mathutil.NonNegative(in.AnnualKm.Or(d.AnnualKm)),
		interestRate:   in.InterestRate.Or(d.InterestRate) / constants.PercentageMultiplier,
		loanTerm:       wholeYears(in.LoanTerm.Or(d.LoanTerm), constants.MaxLoanTermYears),
		ownershipYears: wholeYears(in.OwnershipPeriod.Or(d.OwnershipPeriod), constants.MaxOwnershipYears),
		method:         e.paymentMethod(in.PaymentMethod),
		category:       e.category(in.VehicleType),
		entity:         e.entityType(in.EntityType),
	}

	if v, ok := in.CashAmount.Float(); ok {
		r.cashAmount = &v
	}
	if v, ok := in.FinanceAmount.Float(); ok {
		r.financeAmount = &v
	}
	return r
}

// wholeYears rounds to at least one year and at most limit.
func wholeYears(v float64, limit int) int {
	years := math.Max(1, math.Round(v))
	if years > float64(limit) {
		return limit
	}
	return int(years)
}

// PaymentMethodFor returns the method a computation uses for m, applying the
// configured default to unknown values.
func (e *Engine) PaymentMethodFor(m PaymentMethod) PaymentMethod {
	return e.paymentMethod(m)
}

func (e *Engine) paymentMethod(m PaymentMethod) PaymentMethod {
	if parsed, ok := ParsePaymentMethod(string(m)); ok {
		return parsed
	}
	if parsed, ok := ParsePaymentMethod(e.conf.Defaults.PaymentMethod); ok {
		return parsed
	}
	return PaymentFinance
}

func (e *Engine) entityType(t EntityType) EntityType {
	if parsed, ok := ParseEntityType(string(t)); ok {
		return parsed
	}
	if parsed, ok := ParseEntityType(e.conf.Defaults.EntityType); ok {
		return parsed
	}
	return EntityIndividual
}

func (e *Engine) category(c Category) Category {
	parsed, _ := ParseCategory(string(c))
	if parsed != "" {
		return parsed
	}
	parsed, _ = ParseCategory(e.conf.Defaults.VehicleType)
	if parsed != "" {
		return parsed
	}
	return CategorySedan
}

// assessment carries every calculator output of one computation.
type assessment struct {
	inputs   resolvedInputs
	finance  loans.FinanceDetail
	lct      tax.LuxuryTaxResult
	taxRate  float64
	dep      tax.Depreciation
	running  costs.RunningCost
	fbt      tax.FringeBenefitEstimate
	total    costs.TotalCost
	cashFlow cashflow.Analysis
}

func (r resolvedInputs) position() cashflow.Position {
	return cashflow.Position{
		AnnualIncome:   r.income,
		AnnualExpenses: r.expenses,
		CashReserves:   r.reserves,
	}
}

func (e *Engine) finance(r resolvedInputs) loans.FinanceDetail {
	return loans.CalculateFinance(r.price, loans.Method(r.method), r.loanTerm, r.interestRate, r.cashAmount, r.financeAmount)
}

func (e *Engine) taxRate(r resolvedInputs) float64 {
	return tax.ResolveRate(r.entity == EntityCompany, tax.TaxableIncome(r.income, r.expenses), e.conf.Table)
}

func (e *Engine) depreciate(r resolvedInputs, taxRate float64) tax.Depreciation {
	return tax.Depreciate(tax.DepreciationInput{
		Price:            r.price,
		BusinessUse:      r.businessUse,
		TaxRate:          taxRate,
		DepreciationRate: e.conf.DepreciationRate(string(r.category)),
		OwnershipYears:   r.ownershipYears,
		WriteOffLimit:    e.conf.InstantWriteOffThreshold,
	})
}

func (e *Engine) assess(r resolvedInputs) assessment {
	a := assessment{inputs: r}
	a.finance = e.finance(r)
	a.lct = tax.LuxuryTax(r.price, r.category == CategoryLuxury, e.conf.LuxuryTax)
	a.taxRate = e.taxRate(r)
	a.dep = e.depreciate(r, a.taxRate)
	a.running = costs.Running(r.annualKm, e.conf.CostPerKm(string(r.category)), r.businessUse, r.ownershipYears)
	a.fbt = tax.FringeBenefit(r.price, r.businessUse, r.entity == EntityIndividual, e.conf.FringeBenefit)
	a.total = costs.Total(r.price, a.finance.TotalInterest, a.running.TotalRunningCostOverOwnership, a.dep.TotalTaxSavings)
	a.cashFlow = cashflow.Analyze(r.position(), cashflow.Commitment{
		LoanPayment:        a.finance.MonthlyPayment,
		MonthlyRunningCost: a.running.MonthlyRunningCost,
		CashPortion:        a.finance.CashPortion,
	})
	return a
}

// Run validates inputs and computes the full assessment. Validation issues
// never stop the computation; a nil snapshot is evaluated as all fallbacks.
func (e *Engine) Run(in *VehicleInputs) Outcome {
	issues := e.Validate(in)
	if in == nil {
		in = &VehicleInputs{}
	}

	a := e.assess(e.resolve(in))

	flags := Flags{FringeBenefit: fringeBenefitFlags(a.fbt)}
	flags.Risk = riskFlags(a, flags.FringeBenefit)
	flags.Positive = positiveFlags(a)
	flags.Opportunity = opportunityFlags(a)

	scores := score(a, flags.Risk)
	verdict := verdictFor(scores.Overall, flags.Risk)

	result := &Result{
		Scores:               scores,
		Finance:              a.finance,
		Tax:                  tax.NewPosition(a.lct, a.taxRate, a.dep),
		Running:              a.running,
		CashFlow:             a.cashFlow,
		Flags:                flags,
		StressTests:          e.stressTests(a),
		TotalCost:            a.total,
		TotalCostOfOwnership: a.total.NetCost,
		Verdict:              verdict,
		Summary:              summaries[verdict],
		CalculatedAt:         e.now(),
	}

	e.logger.Debug("computed vehicle decision",
		zap.String("op", "engine.Run"),
		zap.String("decisionId", in.DecisionID),
		zap.Int("overall", scores.Overall),
		zap.String("verdict", string(verdict)),
		zap.Int("issues", len(issues)),
		zap.Int("riskFlags", len(flags.Risk)),
	)

	return Outcome{Issues: issues, Result: result}
}

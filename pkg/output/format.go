// Package output provides utilities for formatting and displaying decision results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/vehicle-decision/internal/engine"
	"github.com/iwvelando/vehicle-decision/internal/scenario"
	"github.com/iwvelando/vehicle-decision/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report is one named evaluation to render.
type Report struct {
	Name   string                   `json:"name"`
	Issues []engine.ValidationIssue `json:"issues"`
	Result *engine.Result           `json:"result"`
}

// FromOutcome wraps a single engine run.
func FromOutcome(name string, outcome engine.Outcome) Report {
	return Report{Name: name, Issues: outcome.Issues, Result: outcome.Result}
}

// FromScenarios wraps generated scenarios in order.
func FromScenarios(results []scenario.Result) []Report {
	reports := make([]Report, 0, len(results))
	for _, r := range results {
		reports = append(reports, Report{Name: r.Name, Issues: r.Issues, Result: r.Result})
	}
	return reports
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, reports []Report) {
	p := message.NewPrinter(language.English)
	for i, report := range reports {
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", report.Name)
		for _, issue := range report.Issues {
			_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", issue.Severity, issue.Field, issue.Message)
		}

		r := report.Result
		if r == nil {
			continue
		}

		_, _ = fmt.Fprintf(w, "Verdict: %s (overall %d/100)\n", r.Verdict, r.Scores.Overall)
		_, _ = fmt.Fprintf(w, "%s\n", r.Summary)
		_, _ = fmt.Fprintf(w, "Tax %d | Cash flow %d | Safety %d\n\n", r.Scores.TaxScore, r.Scores.CashFlowScore, r.Scores.SafetyScore)

		_, _ = fmt.Fprintf(w, "Item                    | Amount\n")
		_, _ = fmt.Fprintf(w, "____                    | ______\n")
		line := func(label string, amount float64) {
			_, _ = fmt.Fprintf(w, "%-23s | %s\n", label, format.Currency(amount))
		}
		line("Cash portion", r.Finance.CashPortion)
		line("Finance portion", r.Finance.FinancePortion)
		line("Monthly payment", r.Finance.MonthlyPayment)
		line("Total interest", r.Finance.TotalInterest)
		if r.Tax.HasLuxuryTax {
			line("Luxury car tax", r.Tax.LuxuryTaxAmount)
		}
		line("Tax saving (year 1)", r.Tax.TaxSavingsYear1)
		line("Total tax savings", r.Tax.TotalTaxSavings)
		line("Monthly running cost", r.Running.MonthlyRunningCost)
		line("Total running costs", r.Running.TotalRunningCostOverOwnership)
		line("Cash after purchase", r.CashFlow.CashAfterPurchase)
		line("Total cost of ownership", r.TotalCostOfOwnership)
		_, _ = p.Fprintf(w, "%-23s | %.1f\n", "Months of reserves", r.CashFlow.MonthsOfReserves)
		_, _ = fmt.Fprintf(w, "%-23s | %s\n", "Costs to income", format.Percent(r.CashFlow.PaymentToIncomeRatio))
		_, _ = fmt.Fprintf(w, "%-23s | %s at %s\n", "Deduction method", r.Tax.Method, format.Percent(r.Tax.TaxRate))

		if len(r.Finance.YearEndBalances) > 0 {
			_, _ = fmt.Fprintf(w, "\nYear | Loan balance\n")
			_, _ = fmt.Fprintf(w, "____ | ____________\n")
			for year, balance := range r.Finance.YearEndBalances {
				_, _ = fmt.Fprintf(w, "%-4d | %s\n", year+1, format.Currency(balance))
			}
		}

		writeFlags(w, "Risks", r.Flags.Risk)
		writeFlags(w, "Positives", r.Flags.Positive)
		writeFlags(w, "Opportunities", r.Flags.Opportunity)

		if len(r.StressTests) > 0 {
			_, _ = fmt.Fprintf(w, "\nStress tests:\n")
			for _, st := range r.StressTests {
				_, _ = fmt.Fprintf(w, "  [%s] %s: %s\n", st.Severity, st.Name, st.Message)
			}
		}

		if i < len(reports)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

func writeFlags(w io.Writer, title string, flags []engine.Flag) {
	if len(flags) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "\n%s:\n", title)
	for _, f := range flags {
		_, _ = fmt.Fprintf(w, "  - %s\n", f.Message)
	}
}

type csvMetric struct {
	name  string
	value func(r *engine.Result) string
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

var csvMetrics = []csvMetric{
	{"overall", func(r *engine.Result) string { return strconv.Itoa(r.Scores.Overall) }},
	{"taxScore", func(r *engine.Result) string { return strconv.Itoa(r.Scores.TaxScore) }},
	{"cashFlowScore", func(r *engine.Result) string { return strconv.Itoa(r.Scores.CashFlowScore) }},
	{"safetyScore", func(r *engine.Result) string { return strconv.Itoa(r.Scores.SafetyScore) }},
	{"verdict", func(r *engine.Result) string { return string(r.Verdict) }},
	{"cashPortion", func(r *engine.Result) string { return amount(r.Finance.CashPortion) }},
	{"financePortion", func(r *engine.Result) string { return amount(r.Finance.FinancePortion) }},
	{"monthlyPayment", func(r *engine.Result) string { return amount(r.Finance.MonthlyPayment) }},
	{"totalInterest", func(r *engine.Result) string { return amount(r.Finance.TotalInterest) }},
	{"luxuryTax", func(r *engine.Result) string { return amount(r.Tax.LuxuryTaxAmount) }},
	{"taxSavingsYear1", func(r *engine.Result) string { return amount(r.Tax.TaxSavingsYear1) }},
	{"totalTaxSavings", func(r *engine.Result) string { return amount(r.Tax.TotalTaxSavings) }},
	{"monthlyRunningCost", func(r *engine.Result) string { return amount(r.Running.MonthlyRunningCost) }},
	{"totalRunningCosts", func(r *engine.Result) string { return amount(r.Running.TotalRunningCostOverOwnership) }},
	{"cashAfterPurchase", func(r *engine.Result) string { return amount(r.CashFlow.CashAfterPurchase) }},
	{"monthsOfReserves", func(r *engine.Result) string { return strconv.FormatFloat(r.CashFlow.MonthsOfReserves, 'f', 1, 64) }},
	{"paymentToIncomeRatio", func(r *engine.Result) string {
		return strconv.FormatFloat(r.CashFlow.PaymentToIncomeRatio, 'f', 4, 64)
	}},
	{"totalCostOfOwnership", func(r *engine.Result) string { return amount(r.TotalCostOfOwnership) }},
	{"riskFlags", func(r *engine.Result) string { return strconv.Itoa(len(r.Flags.Risk)) }},
}

// CsvFormat outputs in comma-separated value format with one column per
// report and one row per metric.
func CsvFormat(w io.Writer, reports []Report) error {
	cw := csv.NewWriter(w)
	header := []string{"metric"}
	for _, report := range reports {
		header = append(header, report.Name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("error writing csv header, %w", err)
	}

	for _, metric := range csvMetrics {
		row := []string{metric.name}
		for _, report := range reports {
			if report.Result == nil {
				row = append(row, "")
				continue
			}
			row = append(row, metric.value(report.Result))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("error writing csv row %s, %w", metric.name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

type jsonReport struct {
	Report
	Display *Display `json:"display"`
}

// JSONFormat outputs the full results with their flat display view.
func JSONFormat(w io.Writer, reports []Report) error {
	out := make([]jsonReport, 0, len(reports))
	for _, report := range reports {
		out = append(out, jsonReport{Report: report, Display: NewDisplay(report.Result)})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("error encoding json output, %w", err)
	}
	return nil
}

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/finplan/finance-planner/internal/plan"
	"github.com/finplan/finance-planner/internal/simulation"
	"github.com/finplan/finance-planner/pkg/money"
)

// WritePlanReport renders the deterministic calculator results as a
// console report.
func WritePlanReport(w io.Writer, name string, result *plan.Result) {
	fmt.Fprintf(w, "RETIREMENT PLAN: %s\n", name)
	fmt.Fprintln(w, strings.Repeat("=", 50))

	fmt.Fprintln(w, "\nBUDGET")
	fmt.Fprintf(w, "  Monthly income:    %12s\n", result.Budget.MonthlyIncome.Format())
	fmt.Fprintf(w, "  Monthly expenses:  %12s\n", result.Budget.MonthlyExpenses.Format())
	fmt.Fprintf(w, "  Monthly surplus:   %12s\n", result.Budget.MonthlySurplus.Format())

	fmt.Fprintln(w, "\nACCUMULATION")
	fmt.Fprintf(w, "  Annual contribution: %10s\n", result.AnnualContribution.Round().Format())
	fmt.Fprintf(w, "  Balance at retirement: %8s\n", result.RetirementBalance.Round().Format())

	fmt.Fprintln(w, "\nGUARANTEED INCOME")
	fmt.Fprintf(w, "  Social Security (monthly, claiming at %d): %s\n",
		result.SocialSecurity.ClaimingAge, result.SocialSecurity.MonthlyBenefit.Format())
	if result.Pension.AnnualBenefit.IsPositive() {
		fmt.Fprintf(w, "  Pension (monthly): %s\n", result.Pension.MonthlyBenefit.Format())
	}
	fmt.Fprintf(w, "  Net annual need from savings: %s\n", result.NetAnnualNeed.Round().Format())

	fmt.Fprintln(w, "\nDETERMINISTIC DRAWDOWN")
	if result.Drawdown.Depleted {
		fmt.Fprintf(w, "  Portfolio depletes in year %d of %d\n",
			result.Drawdown.DepletionYear, len(result.Drawdown.Schedule))
	} else {
		fmt.Fprintf(w, "  Portfolio lasts all %d years, ending at %s\n",
			len(result.Drawdown.Schedule), result.Drawdown.EndingBalance.Round().Format())
	}
}

// WriteSimulationReport renders aggregated Monte Carlo results as a
// console report. Dollar figures cross back over the float boundary here,
// into exact decimals, for display only.
func WriteSimulationReport(w io.Writer, results *simulation.Results) {
	fmt.Fprintln(w, "MONTE CARLO SIMULATION")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "  Iterations:        %d\n", results.Iterations)
	fmt.Fprintf(w, "  Years simulated:   %d\n", results.YearsInRetirement)
	fmt.Fprintf(w, "  Success rate:      %.1f%%\n", results.SuccessRatePct)
	fmt.Fprintf(w, "  Median final:      %s\n", money.New(results.MedianFinalBalance).Round().Format())
	fmt.Fprintf(w, "  Worst case (p5):   %s\n", money.New(results.WorstCase).Round().Format())
	fmt.Fprintf(w, "  Best case (p95):   %s\n", money.New(results.BestCase).Round().Format())

	fmt.Fprintln(w, "\n  Balance bands by year (p5 / p50 / p95):")
	bands := results.PercentileBands
	for y := 0; y < len(bands.P50); y += yearStep(len(bands.P50)) {
		fmt.Fprintf(w, "    year %2d: %s / %s / %s\n", y,
			money.New(bands.P5[y]).Round().Format(),
			money.New(bands.P50[y]).Round().Format(),
			money.New(bands.P95[y]).Round().Format())
	}
}

// yearStep thins long band tables to roughly ten rows.
func yearStep(n int) int {
	step := n / 10
	if step < 1 {
		return 1
	}
	return step
}

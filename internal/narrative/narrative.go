// Package narrative renders a plain-English summary of a plan evaluation
// and its simulation outcome.
package narrative

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/finplan/finance-planner/internal/plan"
	"github.com/finplan/finance-planner/internal/simulation"
	"github.com/finplan/finance-planner/pkg/money"
)

const summaryTemplate = `{{.Name}}, here is where your plan stands.

Saving: your budget leaves {{.MonthlySurplus}} a month after expenses, and your
portfolio is on track to grow from {{.StartingBalance}} to about {{.RetirementBalance}}
by age {{.RetirementAge}}.

Guaranteed income: Social Security pays {{.SocialSecurityMonthly}} a month starting
at {{.ClaimingAge}}{{if .HasPension}}, and your pension adds {{.PensionMonthly}} a month{{end}}.
That leaves about {{.NetAnnualNeed}} a year to draw from savings.
{{if .HasSimulation}}
Outlook: across {{.Iterations}} simulated retirements, your savings lasted the full
{{.Years}} years in {{.SuccessRate}} of them. The median outcome left {{.MedianFinal}}
at the end; the weakest runs left {{.WorstCase}} and the strongest {{.BestCase}}.

Verdict: {{.Verdict}}
{{end}}`

// Verdict tiers by simulation success rate.
func verdict(successRatePct float64) string {
	switch {
	case successRatePct >= 90:
		return "your plan is on track. Keep doing what you are doing."
	case successRatePct >= 75:
		return "your plan is mostly on track, but a few bad market years early in retirement could strain it. A modestly lower withdrawal would add margin."
	case successRatePct >= 50:
		return "your plan needs attention. Consider saving more, retiring later, or planning a smaller withdrawal."
	default:
		return "your plan is at serious risk of running out of money. Revisit the retirement age, savings rate, and spending assumptions together."
	}
}

type summaryData struct {
	Name                  string
	MonthlySurplus        string
	StartingBalance       string
	RetirementBalance     string
	RetirementAge         int
	SocialSecurityMonthly string
	ClaimingAge           int
	HasPension            bool
	PensionMonthly        string
	NetAnnualNeed         string

	HasSimulation bool
	Iterations    int
	Years         int
	SuccessRate   string
	MedianFinal   string
	WorstCase     string
	BestCase      string
	Verdict       string
}

// Summarize renders the narrative for an evaluated plan. results may be
// nil when no simulation has been run; the outlook section is omitted.
func Summarize(name string, retirementAge int, result *plan.Result, results *simulation.Results) (string, error) {
	tmpl, err := template.New("summary").Parse(summaryTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse narrative template: %w", err)
	}

	startingBalance := result.RetirementBalance
	if len(result.Projection.Schedule) > 0 {
		startingBalance = result.Projection.Schedule[0].OpeningBalance
	}

	data := summaryData{
		Name:                  name,
		MonthlySurplus:        result.Budget.MonthlySurplus.Format(),
		StartingBalance:       startingBalance.Round().Format(),
		RetirementBalance:     result.RetirementBalance.Round().Format(),
		RetirementAge:         retirementAge,
		SocialSecurityMonthly: result.SocialSecurity.MonthlyBenefit.Format(),
		ClaimingAge:           result.SocialSecurity.ClaimingAge,
		HasPension:            result.Pension.AnnualBenefit.IsPositive(),
		PensionMonthly:        result.Pension.MonthlyBenefit.Format(),
		NetAnnualNeed:         result.NetAnnualNeed.Round().Format(),
	}
	if results != nil {
		data.HasSimulation = true
		data.Iterations = results.Iterations
		data.Years = results.YearsInRetirement
		data.SuccessRate = fmt.Sprintf("%.1f%%", results.SuccessRatePct)
		data.MedianFinal = money.New(results.MedianFinalBalance).Round().Format()
		data.WorstCase = money.New(results.WorstCase).Round().Format()
		data.BestCase = money.New(results.BestCase).Round().Format()
		data.Verdict = verdict(results.SuccessRatePct)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render narrative: %w", err)
	}
	return sb.String(), nil
}

package plan

import (
	"fmt"

	"github.com/finplan/finance-planner/internal/calculation"
	"github.com/finplan/finance-planner/internal/domain"
	"github.com/finplan/finance-planner/internal/simulation"
	"github.com/finplan/finance-planner/pkg/money"
)

// Result bundles the outputs of every deterministic calculator plus the
// derived Monte Carlo parameters. The calculators share state through the
// derivation step: one calculator's output becomes another's default
// input, but a value the planner set explicitly is never overwritten.
type Result struct {
	Budget         calculation.BudgetSummary
	Projection     *calculation.ProjectionResult
	SocialSecurity calculation.SocialSecurityResult
	Pension        calculation.PensionResult
	Drawdown       *calculation.DrawdownResult

	// Derived inputs, after auto-population.
	AnnualContribution money.Money
	RetirementBalance  money.Money
	NetAnnualNeed      money.Money

	SimulationParams simulation.Parameters
}

// Evaluate runs every deterministic calculator over the plan, wiring
// outputs into unset inputs:
//
//	budget surplus            -> investment annual contribution
//	projection ending balance -> simulation starting balance
//	pension + social security -> reduces the simulated first-year withdrawal
//
// Evaluate does not run the Monte Carlo simulation itself; the returned
// SimulationParams are ready to hand to a simulation.Session.
func Evaluate(p *domain.Plan) (*Result, error) {
	budget := calculation.SummarizeBudget(p.Budget)

	investment := p.Investment
	contribution := money.FromDecimal(investment.AnnualContribution)
	if contribution.IsZero() && budget.AnnualSurplus.IsPositive() {
		contribution = budget.AnnualSurplus
		investment.AnnualContribution = contribution.Decimal
	}

	projection, err := calculation.ProjectInvestment(investment, p.Profile.YearsToRetirement())
	if err != nil {
		return nil, fmt.Errorf("investment projection failed: %w", err)
	}

	socialSecurity := calculation.CalculateSocialSecurity(p.SocialSecurity, p.Profile.BirthYear)
	pension := calculation.CalculatePension(p.Pension)

	// Retirement balance: explicit setting wins, else the projection.
	balance := money.FromDecimal(p.Simulation.StartingBalance)
	if balance.IsZero() {
		balance = projection.EndingBalance
	}

	// First-year withdrawal: explicit setting wins, else expenses net of
	// guaranteed income, floored at zero.
	withdrawal := money.FromDecimal(p.Simulation.AnnualWithdrawal)
	if withdrawal.IsZero() {
		withdrawal = budget.AnnualExpenses.Sub(socialSecurity.AnnualBenefit).Sub(pension.AnnualBenefit)
		if withdrawal.IsNegative() {
			withdrawal = money.Zero()
		}
	}

	drawdown, err := calculation.RunDrawdown(
		balance,
		p.Investment.AnnualReturnPct,
		p.Profile.YearsInRetirement,
		calculation.InflationAdjusted{FirstYear: withdrawal, InflationPct: p.Simulation.InflationRatePct},
	)
	if err != nil {
		return nil, fmt.Errorf("drawdown failed: %w", err)
	}

	return &Result{
		Budget:             budget,
		Projection:         projection,
		SocialSecurity:     socialSecurity,
		Pension:            pension,
		Drawdown:           drawdown,
		AnnualContribution: contribution,
		RetirementBalance:  balance,
		NetAnnualNeed:      withdrawal,
		SimulationParams:   simulationParams(p, balance, withdrawal),
	}, nil
}

// simulationParams is the decimal-to-float boundary: the exact plan
// amounts cross into float64 exactly once, here.
func simulationParams(p *domain.Plan, balance, withdrawal money.Money) simulation.Parameters {
	equities, _ := p.Simulation.EquitiesPct.Float64()
	bonds, _ := p.Simulation.BondsPct.Float64()
	cash, _ := p.Simulation.CashPct.Float64()
	inflation, _ := p.Simulation.InflationRatePct.Float64()

	return simulation.Parameters{
		Iterations: p.Simulation.Iterations,
		Allocation: simulation.AssetAllocation{
			EquitiesPct: equities,
			BondsPct:    bonds,
			CashPct:     cash,
		},
		StartingBalance:     balance.Float64(),
		FirstYearWithdrawal: withdrawal.Float64(),
		YearsInRetirement:   p.Profile.YearsInRetirement,
		InflationRatePct:    inflation,
	}
}

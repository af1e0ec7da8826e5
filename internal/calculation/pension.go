package calculation

import (
	"github.com/finplan/finance-planner/internal/domain"
	"github.com/finplan/finance-planner/pkg/money"
	"github.com/shopspring/decimal"
)

// earlyReductionPctPerYear is the benefit reduction applied per year of
// retirement before the plan's normal retirement age.
var earlyReductionPctPerYear = decimal.NewFromInt(5)

// PensionResult holds the computed defined-benefit pension.
type PensionResult struct {
	AnnualBenefit   money.Money
	MonthlyBenefit  money.Money
	ReductionPct    decimal.Decimal
	SurvivorAnnual  money.Money
	SurvivorMonthly money.Money
}

// CalculatePension computes a defined-benefit pension as years of service
// times the plan multiplier times final-average salary, with an early
// retirement reduction of 5% per year before normal retirement age and an
// optional survivor election that reduces the retiree benefit by the
// elected percentage.
func CalculatePension(p domain.Pension) PensionResult {
	salary := money.FromDecimal(p.FinalAverageSalary)

	// Base: service x multiplier% x salary.
	annual := salary.Pct(p.MultiplierPct).Mul(p.YearsOfService)

	reduction := decimal.Zero
	if p.EarlyRetirement && p.YearsBeforeNormal > 0 {
		reduction = earlyReductionPctPerYear.Mul(decimal.NewFromInt(int64(p.YearsBeforeNormal)))
		if reduction.GreaterThan(decimal.NewFromInt(100)) {
			reduction = decimal.NewFromInt(100)
		}
		annual = annual.Sub(annual.Pct(reduction))
	}

	// Survivor election reduces the retiree's own benefit; the survivor
	// later receives the elected percentage of the unreduced benefit.
	survivorAnnual := money.Zero()
	if p.SurvivorElectionPct.IsPositive() {
		survivorAnnual = annual.Pct(p.SurvivorElectionPct)
		annual = annual.Sub(survivorAnnual.Pct(decimal.NewFromInt(10)))
	}

	return PensionResult{
		AnnualBenefit:   annual.Round(),
		MonthlyBenefit:  annual.Monthly().Round(),
		ReductionPct:    reduction,
		SurvivorAnnual:  survivorAnnual.Round(),
		SurvivorMonthly: survivorAnnual.Monthly().Round(),
	}
}

package config

import (
	"fmt"
	"os"

	"github.com/finplan/finance-planner/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PlanParser handles loading and validating plan files.
type PlanParser struct{}

// NewPlanParser creates a new plan parser.
func NewPlanParser() *PlanParser {
	return &PlanParser{}
}

// LoadFromFile loads a plan from a YAML file and validates it. Validation
// happens here, before any simulation is dispatched: the engine treats
// bad parameters as a precondition violation, not something it diagnoses.
func (pp *PlanParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := pp.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan validates a loaded plan.
func (pp *PlanParser) ValidatePlan(plan *domain.Plan) error {
	if err := pp.validateProfile(&plan.Profile); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	if err := pp.validateBudget(&plan.Budget); err != nil {
		return fmt.Errorf("budget validation failed: %w", err)
	}
	if err := pp.validateInvestment(&plan.Investment); err != nil {
		return fmt.Errorf("investment validation failed: %w", err)
	}
	if err := pp.validateSocialSecurity(&plan.SocialSecurity); err != nil {
		return fmt.Errorf("social security validation failed: %w", err)
	}
	if err := pp.validatePension(&plan.Pension); err != nil {
		return fmt.Errorf("pension validation failed: %w", err)
	}
	if err := pp.validateSimulation(&plan.Simulation); err != nil {
		return fmt.Errorf("simulation settings validation failed: %w", err)
	}
	return nil
}

func (pp *PlanParser) validateProfile(profile *domain.Profile) error {
	if profile.BirthYear < 1900 || profile.BirthYear > 2100 {
		return fmt.Errorf("birth year %d is implausible", profile.BirthYear)
	}
	if profile.CurrentAge <= 0 || profile.CurrentAge > 110 {
		return fmt.Errorf("current age must be between 1 and 110, got %d", profile.CurrentAge)
	}
	if profile.RetirementAge < profile.CurrentAge {
		return fmt.Errorf("retirement age %d cannot be before current age %d", profile.RetirementAge, profile.CurrentAge)
	}
	if profile.YearsInRetirement < 1 || profile.YearsInRetirement > 60 {
		return fmt.Errorf("years in retirement must be between 1 and 60, got %d", profile.YearsInRetirement)
	}
	return nil
}

func (pp *PlanParser) validateBudget(budget *domain.Budget) error {
	for _, item := range budget.Income {
		if item.Monthly.IsNegative() {
			return fmt.Errorf("income item %q cannot be negative", item.Name)
		}
	}
	for _, item := range budget.Expenses {
		if item.Monthly.IsNegative() {
			return fmt.Errorf("expense item %q cannot be negative", item.Name)
		}
	}
	return nil
}

func (pp *PlanParser) validateInvestment(inv *domain.Investment) error {
	if inv.StartingBalance.IsNegative() {
		return fmt.Errorf("starting balance cannot be negative")
	}
	if inv.AnnualContribution.IsNegative() {
		return fmt.Errorf("annual contribution cannot be negative")
	}
	if inv.AnnualReturnPct.LessThan(decimal.NewFromInt(-100)) {
		return fmt.Errorf("annual return cannot be less than -100%%")
	}
	return nil
}

func (pp *PlanParser) validateSocialSecurity(ss *domain.SocialSecurity) error {
	if ss.MonthlyAtFRA.IsNegative() {
		return fmt.Errorf("benefit at full retirement age cannot be negative")
	}
	if ss.ClaimingAge != 0 && (ss.ClaimingAge < 62 || ss.ClaimingAge > 70) {
		return fmt.Errorf("claiming age must be between 62 and 70, got %d", ss.ClaimingAge)
	}
	if ss.COLAPct.IsNegative() {
		return fmt.Errorf("COLA rate cannot be negative")
	}
	return nil
}

func (pp *PlanParser) validatePension(pension *domain.Pension) error {
	if pension.YearsOfService.IsNegative() {
		return fmt.Errorf("years of service cannot be negative")
	}
	if pension.MultiplierPct.IsNegative() {
		return fmt.Errorf("multiplier cannot be negative")
	}
	if pension.FinalAverageSalary.IsNegative() {
		return fmt.Errorf("final average salary cannot be negative")
	}
	if pension.SurvivorElectionPct.IsNegative() || pension.SurvivorElectionPct.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("survivor election must be between 0 and 100 percent")
	}
	return nil
}

func (pp *PlanParser) validateSimulation(sim *domain.SimulationSettings) error {
	if sim.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", sim.Iterations)
	}
	if sim.EquitiesPct.IsNegative() || sim.BondsPct.IsNegative() || sim.CashPct.IsNegative() {
		return fmt.Errorf("allocation percentages cannot be negative")
	}
	total := sim.EquitiesPct.Add(sim.BondsPct).Add(sim.CashPct)
	if !total.Equal(decimal.NewFromInt(100)) {
		return fmt.Errorf("asset allocation must sum to 100, got %s", total)
	}
	if sim.StartingBalance.IsNegative() {
		return fmt.Errorf("starting balance cannot be negative")
	}
	if sim.AnnualWithdrawal.IsNegative() {
		return fmt.Errorf("annual withdrawal cannot be negative")
	}
	return nil
}

// ExamplePlan creates a complete example plan, used by the example
// command to seed a starting file.
func (pp *PlanParser) ExamplePlan() *domain.Plan {
	return &domain.Plan{
		Profile: domain.Profile{
			Name:              "Sam",
			BirthYear:         1980,
			CurrentAge:        45,
			RetirementAge:     65,
			YearsInRetirement: 30,
		},
		Budget: domain.Budget{
			Income: []domain.LineItem{
				{Name: "Salary", Monthly: decimal.NewFromInt(8500)},
			},
			Expenses: []domain.LineItem{
				{Name: "Housing", Monthly: decimal.NewFromInt(2400)},
				{Name: "Food", Monthly: decimal.NewFromInt(900)},
				{Name: "Transportation", Monthly: decimal.NewFromInt(600)},
				{Name: "Healthcare", Monthly: decimal.NewFromInt(500)},
				{Name: "Everything else", Monthly: decimal.NewFromInt(1100)},
			},
		},
		Investment: domain.Investment{
			StartingBalance:       decimal.NewFromInt(350000),
			ContributionGrowthPct: decimal.NewFromInt(2),
			AnnualReturnPct:       decimal.NewFromFloat(6.5),
		},
		SocialSecurity: domain.SocialSecurity{
			MonthlyAtFRA: decimal.NewFromInt(2400),
			ClaimingAge:  67,
			COLAPct:      decimal.NewFromFloat(2.5),
		},
		Pension: domain.Pension{
			YearsOfService:      decimal.NewFromInt(20),
			MultiplierPct:       decimal.NewFromFloat(1.1),
			FinalAverageSalary:  decimal.NewFromInt(100000),
			SurvivorElectionPct: decimal.NewFromInt(50),
		},
		Simulation: domain.SimulationSettings{
			Iterations:       100000,
			EquitiesPct:      decimal.NewFromInt(60),
			BondsPct:         decimal.NewFromInt(30),
			CashPct:          decimal.NewFromInt(10),
			InflationRatePct: decimal.NewFromInt(3),
		},
	}
}

// WriteExampleFile writes the example plan as YAML to the given path.
func (pp *PlanParser) WriteExampleFile(path string) error {
	data, err := yaml.Marshal(pp.ExamplePlan())
	if err != nil {
		return fmt.Errorf("failed to marshal example plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

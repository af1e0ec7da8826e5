package domain

import (
	"github.com/shopspring/decimal"
)

// Plan is the complete input bundle for the planning tool: one household's
// budget, savings, benefit entitlements, and simulation settings. All
// dollar amounts are exact decimals; conversion to float64 happens only at
// the Monte Carlo boundary.
type Plan struct {
	Profile        Profile            `yaml:"profile"`
	Budget         Budget             `yaml:"budget"`
	Investment     Investment         `yaml:"investment"`
	SocialSecurity SocialSecurity     `yaml:"social_security"`
	Pension        Pension            `yaml:"pension"`
	Simulation     SimulationSettings `yaml:"simulation"`
}

// Profile identifies the planner and the retirement horizon.
type Profile struct {
	Name              string `yaml:"name"`
	BirthYear         int    `yaml:"birth_year"`
	CurrentAge        int    `yaml:"current_age"`
	RetirementAge     int    `yaml:"retirement_age"`
	YearsInRetirement int    `yaml:"years_in_retirement"`
}

// YearsToRetirement returns the accumulation horizon.
func (p Profile) YearsToRetirement() int {
	years := p.RetirementAge - p.CurrentAge
	if years < 0 {
		return 0
	}
	return years
}

// LineItem is one budget row, stated monthly.
type LineItem struct {
	Name    string          `yaml:"name"`
	Monthly decimal.Decimal `yaml:"monthly"`
}

// Budget holds categorized monthly income and expense items.
type Budget struct {
	Income   []LineItem `yaml:"income"`
	Expenses []LineItem `yaml:"expenses"`
}

// Investment describes the current portfolio and accumulation assumptions.
// A zero AnnualContribution is auto-populated from the budget surplus.
type Investment struct {
	StartingBalance       decimal.Decimal `yaml:"starting_balance"`
	AnnualContribution    decimal.Decimal `yaml:"annual_contribution"`
	ContributionGrowthPct decimal.Decimal `yaml:"contribution_growth_pct"`
	AnnualReturnPct       decimal.Decimal `yaml:"annual_return_pct"`
}

// SocialSecurity holds the planner's benefit entitlement. MonthlyAtFRA is
// the monthly benefit at full retirement age from the SSA statement.
type SocialSecurity struct {
	MonthlyAtFRA decimal.Decimal `yaml:"monthly_at_fra"`
	ClaimingAge  int             `yaml:"claiming_age"`
	COLAPct      decimal.Decimal `yaml:"cola_pct"`
}

// Pension describes a defined-benefit entitlement, if any.
type Pension struct {
	YearsOfService      decimal.Decimal `yaml:"years_of_service"`
	MultiplierPct       decimal.Decimal `yaml:"multiplier_pct"`
	FinalAverageSalary  decimal.Decimal `yaml:"final_average_salary"`
	EarlyRetirement     bool            `yaml:"early_retirement"`
	YearsBeforeNormal   int             `yaml:"years_before_normal"`
	SurvivorElectionPct decimal.Decimal `yaml:"survivor_election_pct"`
}

// SimulationSettings configures the Monte Carlo run. Zero StartingBalance
// and AnnualWithdrawal are auto-populated from the other calculators.
type SimulationSettings struct {
	Iterations       int             `yaml:"iterations"`
	EquitiesPct      decimal.Decimal `yaml:"equities_pct"`
	BondsPct         decimal.Decimal `yaml:"bonds_pct"`
	CashPct          decimal.Decimal `yaml:"cash_pct"`
	StartingBalance  decimal.Decimal `yaml:"starting_balance"`
	AnnualWithdrawal decimal.Decimal `yaml:"annual_withdrawal"`
	InflationRatePct decimal.Decimal `yaml:"inflation_rate_pct"`
}

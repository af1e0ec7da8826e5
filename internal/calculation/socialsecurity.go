package calculation

import (
	"github.com/finplan/finance-planner/internal/domain"
	"github.com/finplan/finance-planner/pkg/dateutil"
	"github.com/finplan/finance-planner/pkg/money"
	"github.com/shopspring/decimal"
)

// SocialSecurityResult holds the claiming-age-adjusted benefit.
type SocialSecurityResult struct {
	FullRetirementAge int
	ClaimingAge       int
	MonthlyBenefit    money.Money
	AnnualBenefit     money.Money
}

// CalculateSocialSecurity adjusts the full-retirement-age benefit for the
// chosen claiming age using the SSA schedule: early claiming reduces by
// 5/9 of 1% per month for the first 36 months and 5/12 of 1% for each
// additional month; delayed claiming earns 2/3 of 1% per month, capped at
// age 70. Claiming before 62 yields no benefit.
func CalculateSocialSecurity(ss domain.SocialSecurity, birthYear int) SocialSecurityResult {
	fra := dateutil.FullRetirementAge(birthYear)
	monthly := claimingAdjustedBenefit(money.FromDecimal(ss.MonthlyAtFRA), fra, ss.ClaimingAge)

	return SocialSecurityResult{
		FullRetirementAge: fra,
		ClaimingAge:       ss.ClaimingAge,
		MonthlyBenefit:    monthly.Round(),
		AnnualBenefit:     monthly.Annual().Round(),
	}
}

func claimingAdjustedBenefit(atFRA money.Money, fra, claimingAge int) money.Money {
	if claimingAge < 62 {
		return money.Zero()
	}

	if claimingAge < fra {
		monthsEarly := (fra - claimingAge) * 12
		var reduction decimal.Decimal
		if monthsEarly <= 36 {
			reduction = decimal.NewFromFloat(5.0 / 9.0 / 100.0).Mul(decimal.NewFromInt(int64(monthsEarly)))
		} else {
			first := decimal.NewFromFloat(5.0 / 9.0 / 100.0).Mul(decimal.NewFromInt(36))
			rest := decimal.NewFromFloat(5.0 / 12.0 / 100.0).Mul(decimal.NewFromInt(int64(monthsEarly - 36)))
			reduction = first.Add(rest)
		}
		return atFRA.Mul(decimal.NewFromInt(1).Sub(reduction))
	}

	if claimingAge > fra {
		monthsDelayed := (claimingAge - fra) * 12
		if maxMonths := (70 - fra) * 12; monthsDelayed > maxMonths {
			monthsDelayed = maxMonths
		}
		credit := decimal.NewFromFloat(2.0 / 3.0 / 100.0).Mul(decimal.NewFromInt(int64(monthsDelayed)))
		return atFRA.Mul(decimal.NewFromInt(1).Add(credit))
	}

	return atFRA
}

// ApplyCOLA grows a benefit by one year's cost-of-living adjustment.
func ApplyCOLA(benefit money.Money, colaPct decimal.Decimal) money.Money {
	return benefit.GrowPct(colaPct)
}

// ProjectSocialSecurity projects the annual benefit over the retirement
// horizon with annual COLA growth. Index 0 is the first retirement year.
func ProjectSocialSecurity(ss domain.SocialSecurity, birthYear, years int) []money.Money {
	result := CalculateSocialSecurity(ss, birthYear)
	annual := result.AnnualBenefit

	projections := make([]money.Money, years)
	for year := 0; year < years; year++ {
		projections[year] = annual.Round()
		annual = ApplyCOLA(annual, ss.COLAPct)
	}
	return projections
}

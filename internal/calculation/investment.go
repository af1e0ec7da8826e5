package calculation

import (
	"fmt"

	"github.com/finplan/finance-planner/internal/domain"
	"github.com/finplan/finance-planner/pkg/money"
)

// ProjectionYear is one year of deterministic accumulation.
type ProjectionYear struct {
	Year           int
	OpeningBalance money.Money
	Contribution   money.Money
	Growth         money.Money
	ClosingBalance money.Money
}

// ProjectionResult is the outcome of a deterministic investment
// projection over the accumulation horizon.
type ProjectionResult struct {
	Schedule           []ProjectionYear
	EndingBalance      money.Money
	TotalContributions money.Money
	TotalGrowth        money.Money
}

// ProjectInvestment compounds the portfolio year by year: growth at the
// assumed return on the opening balance, then the year's contribution,
// which itself grows annually. Exact decimal arithmetic throughout; this
// is the deterministic counterpart of the Monte Carlo engine.
func ProjectInvestment(inv domain.Investment, years int) (*ProjectionResult, error) {
	if years < 0 {
		return nil, fmt.Errorf("projection years cannot be negative, got %d", years)
	}
	if inv.StartingBalance.IsNegative() {
		return nil, fmt.Errorf("starting balance cannot be negative, got %s", inv.StartingBalance)
	}

	balance := money.FromDecimal(inv.StartingBalance)
	contribution := money.FromDecimal(inv.AnnualContribution)
	totalContrib := money.Zero()
	totalGrowth := money.Zero()

	schedule := make([]ProjectionYear, 0, years)
	for year := 1; year <= years; year++ {
		opening := balance
		growth := balance.GrowPct(inv.AnnualReturnPct).Sub(balance)
		balance = balance.Add(growth).Add(contribution)

		schedule = append(schedule, ProjectionYear{
			Year:           year,
			OpeningBalance: opening,
			Contribution:   contribution,
			Growth:         growth,
			ClosingBalance: balance,
		})

		totalContrib = totalContrib.Add(contribution)
		totalGrowth = totalGrowth.Add(growth)
		contribution = contribution.GrowPct(inv.ContributionGrowthPct)
	}

	return &ProjectionResult{
		Schedule:           schedule,
		EndingBalance:      balance,
		TotalContributions: totalContrib,
		TotalGrowth:        totalGrowth,
	}, nil
}

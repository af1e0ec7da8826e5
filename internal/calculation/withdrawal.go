package calculation

import (
	"fmt"

	"github.com/finplan/finance-planner/pkg/money"
	"github.com/shopspring/decimal"
)

// WithdrawalStrategy determines the amount withdrawn in a given drawdown
// year.
type WithdrawalStrategy interface {
	Withdrawal(balance money.Money, year int) money.Money
	Name() string
}

// FixedAmount withdraws the same dollar amount every year.
type FixedAmount struct {
	Amount money.Money
}

func (s FixedAmount) Withdrawal(balance money.Money, year int) money.Money {
	return money.Min(s.Amount, balance)
}

func (s FixedAmount) Name() string { return "fixed_amount" }

// FixedPercentage withdraws a fixed percentage of the current balance.
type FixedPercentage struct {
	Pct decimal.Decimal
}

func (s FixedPercentage) Withdrawal(balance money.Money, year int) money.Money {
	return balance.Pct(s.Pct)
}

func (s FixedPercentage) Name() string { return "fixed_percentage" }

// InflationAdjusted withdraws a first-year amount grown by inflation each
// subsequent year, the shape assumed by the 4% rule.
type InflationAdjusted struct {
	FirstYear    money.Money
	InflationPct decimal.Decimal
}

func (s InflationAdjusted) Withdrawal(balance money.Money, year int) money.Money {
	withdrawal := s.FirstYear
	for i := 1; i < year; i++ {
		withdrawal = withdrawal.GrowPct(s.InflationPct)
	}
	return money.Min(withdrawal, balance)
}

func (s InflationAdjusted) Name() string { return "inflation_adjusted" }

// DrawdownYear is one year of a deterministic drawdown schedule.
type DrawdownYear struct {
	Year           int
	OpeningBalance money.Money
	Growth         money.Money
	Withdrawal     money.Money
	ClosingBalance money.Money
}

// DrawdownResult is the outcome of a deterministic drawdown: the schedule,
// whether the portfolio depleted, and in which year.
type DrawdownResult struct {
	Schedule       []DrawdownYear
	EndingBalance  money.Money
	Depleted       bool
	DepletionYear  int // zero when the portfolio lasted
	TotalWithdrawn money.Money
}

// RunDrawdown spends the portfolio down under a fixed assumed return. The
// deterministic twin of the Monte Carlo path: same recurrence, no
// randomness.
func RunDrawdown(startingBalance money.Money, annualReturnPct decimal.Decimal, years int, strategy WithdrawalStrategy) (*DrawdownResult, error) {
	if years < 0 {
		return nil, fmt.Errorf("drawdown years cannot be negative, got %d", years)
	}
	if strategy == nil {
		return nil, fmt.Errorf("withdrawal strategy is required")
	}

	balance := startingBalance
	totalWithdrawn := money.Zero()
	depletionYear := 0

	schedule := make([]DrawdownYear, 0, years)
	for year := 1; year <= years; year++ {
		opening := balance
		growth := money.Zero()
		withdrawal := money.Zero()

		if balance.IsPositive() {
			growth = balance.GrowPct(annualReturnPct).Sub(balance)
			balance = balance.Add(growth)
			withdrawal = strategy.Withdrawal(balance, year)
			balance = balance.Sub(withdrawal)
			if balance.IsNegative() {
				balance = money.Zero()
			}
			if balance.IsZero() && depletionYear == 0 {
				depletionYear = year
			}
			totalWithdrawn = totalWithdrawn.Add(withdrawal)
		}

		schedule = append(schedule, DrawdownYear{
			Year:           year,
			OpeningBalance: opening,
			Growth:         growth,
			Withdrawal:     withdrawal,
			ClosingBalance: balance,
		})
	}

	return &DrawdownResult{
		Schedule:       schedule,
		EndingBalance:  balance,
		Depleted:       depletionYear != 0,
		DepletionYear:  depletionYear,
		TotalWithdrawn: totalWithdrawn,
	}, nil
}

package calculation

import (
	"testing"

	"github.com/finplan/finance-planner/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedAmountCappedAtBalance(t *testing.T) {
	s := FixedAmount{Amount: money.FromInt(40000)}

	assert.True(t, s.Withdrawal(money.FromInt(100000), 1).Equal(money.FromInt(40000)))
	assert.True(t, s.Withdrawal(money.FromInt(25000), 5).Equal(money.FromInt(25000)),
		"withdrawal should never exceed the remaining balance")
}

func TestFixedPercentageScalesWithBalance(t *testing.T) {
	s := FixedPercentage{Pct: decimal.NewFromInt(4)}

	assert.True(t, s.Withdrawal(money.FromInt(1000000), 1).Equal(money.FromInt(40000)))
	assert.True(t, s.Withdrawal(money.FromInt(500000), 10).Equal(money.FromInt(20000)))
}

func TestInflationAdjustedGrowsEachYear(t *testing.T) {
	s := InflationAdjusted{
		FirstYear:    money.FromInt(10000),
		InflationPct: decimal.NewFromInt(3),
	}
	balance := money.FromInt(1000000)

	assert.True(t, s.Withdrawal(balance, 1).Equal(money.FromInt(10000)))
	assert.True(t, s.Withdrawal(balance, 2).Equal(money.FromInt(10300)))
	assert.True(t, s.Withdrawal(balance, 3).Equal(money.FromInt(10609)))
}

func TestRunDrawdownSchedule(t *testing.T) {
	// 100000 at 10% with 20000 fixed: 110000-20000=90000, 99000-20000=79000.
	result, err := RunDrawdown(money.FromInt(100000), decimal.NewFromInt(10), 2,
		FixedAmount{Amount: money.FromInt(20000)})
	require.NoError(t, err)
	require.Len(t, result.Schedule, 2)

	assert.True(t, result.Schedule[0].ClosingBalance.Equal(money.FromInt(90000)))
	assert.True(t, result.Schedule[1].ClosingBalance.Equal(money.FromInt(79000)))
	assert.False(t, result.Depleted)
	assert.True(t, result.TotalWithdrawn.Equal(money.FromInt(40000)))
}

func TestRunDrawdownDepletion(t *testing.T) {
	result, err := RunDrawdown(money.FromInt(50000), decimal.Zero, 5,
		FixedAmount{Amount: money.FromInt(30000)})
	require.NoError(t, err)

	assert.True(t, result.Depleted)
	assert.Equal(t, 2, result.DepletionYear)
	assert.True(t, result.EndingBalance.IsZero())

	// Once depleted the remaining years neither grow nor withdraw.
	for _, y := range result.Schedule[2:] {
		assert.True(t, y.Withdrawal.IsZero(), "year %d withdrew after depletion", y.Year)
		assert.True(t, y.Growth.IsZero(), "year %d grew after depletion", y.Year)
	}
	// Total withdrawn is the whole portfolio, not 5 x 30000.
	assert.True(t, result.TotalWithdrawn.Equal(money.FromInt(50000)))
}

func TestRunDrawdownPercentageNeverDepletes(t *testing.T) {
	result, err := RunDrawdown(money.FromInt(100000), decimal.Zero, 30,
		FixedPercentage{Pct: decimal.NewFromInt(5)})
	require.NoError(t, err)

	assert.False(t, result.Depleted, "percentage withdrawals shrink but never zero the balance")
	assert.True(t, result.EndingBalance.IsPositive())
}

func TestRunDrawdownRejectsBadInput(t *testing.T) {
	_, err := RunDrawdown(money.FromInt(100), decimal.Zero, -1, FixedAmount{})
	assert.Error(t, err)

	_, err = RunDrawdown(money.FromInt(100), decimal.Zero, 5, nil)
	assert.Error(t, err)
}

func TestStrategyNames(t *testing.T) {
	assert.Equal(t, "fixed_amount", FixedAmount{}.Name())
	assert.Equal(t, "fixed_percentage", FixedPercentage{}.Name())
	assert.Equal(t, "inflation_adjusted", InflationAdjusted{}.Name())
}

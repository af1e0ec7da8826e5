package calculation

import (
	"github.com/finplan/finance-planner/internal/domain"
	"github.com/finplan/finance-planner/pkg/money"
)

// BudgetSummary totals a household budget and derives the investable
// surplus other calculators auto-populate from.
type BudgetSummary struct {
	MonthlyIncome   money.Money
	MonthlyExpenses money.Money
	MonthlySurplus  money.Money
	AnnualIncome    money.Money
	AnnualExpenses  money.Money
	AnnualSurplus   money.Money
}

// SummarizeBudget totals the income and expense line items. A negative
// surplus is reported as-is; the caller decides whether a deficit plan is
// worth simulating.
func SummarizeBudget(budget domain.Budget) BudgetSummary {
	income := money.Zero()
	for _, item := range budget.Income {
		income = income.Add(money.FromDecimal(item.Monthly))
	}
	expenses := money.Zero()
	for _, item := range budget.Expenses {
		expenses = expenses.Add(money.FromDecimal(item.Monthly))
	}
	surplus := income.Sub(expenses)

	return BudgetSummary{
		MonthlyIncome:   income,
		MonthlyExpenses: expenses,
		MonthlySurplus:  surplus,
		AnnualIncome:    income.Annual(),
		AnnualExpenses:  expenses.Annual(),
		AnnualSurplus:   surplus.Annual(),
	}
}

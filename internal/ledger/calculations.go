// Package ledger provides the pure aggregation functions that fold entity
// collections into financial summaries. Every function is total: empty input
// yields zero or empty output, and nothing here validates or fails —
// validation is the entry form's job.
package ledger

import "github.com/jkonate/solde/internal/model"

// TotalIncome sums all income amounts.
func TotalIncome(incomes []model.Income) float64 {
	var total float64
	for _, income := range incomes {
		total += income.Amount
	}
	return total
}

// TotalExpenses sums all expense amounts, paid or not.
func TotalExpenses(expenses []model.Expense) float64 {
	var total float64
	for _, expense := range expenses {
		total += expense.Amount
	}
	return total
}

// PaidExpenses sums expenses that have been settled.
func PaidExpenses(expenses []model.Expense) float64 {
	var total float64
	for _, expense := range expenses {
		if expense.IsPaid {
			total += expense.Amount
		}
	}
	return total
}

// UnpaidExpenses sums expenses still pending.
func UnpaidExpenses(expenses []model.Expense) float64 {
	var total float64
	for _, expense := range expenses {
		if !expense.IsPaid {
			total += expense.Amount
		}
	}
	return total
}

// TotalLoans sums all loan amounts.
func TotalLoans(loans []model.Loan) float64 {
	var total float64
	for _, loan := range loans {
		total += loan.Amount
	}
	return total
}

// PaidLoans sums loans that have been repaid.
func PaidLoans(loans []model.Loan) float64 {
	var total float64
	for _, loan := range loans {
		if loan.IsPaid {
			total += loan.Amount
		}
	}
	return total
}

// UnpaidLoans sums loans still outstanding.
func UnpaidLoans(loans []model.Loan) float64 {
	var total float64
	for _, loan := range loans {
		if !loan.IsPaid {
			total += loan.Amount
		}
	}
	return total
}

// Balance is total income minus all expenses, paid or not.
func Balance(incomes []model.Income, expenses []model.Expense) float64 {
	return TotalIncome(incomes) - TotalExpenses(expenses)
}

// RemainingBudget is total income minus paid expenses only. It reflects
// realized cash flow: unpaid expenses do not reduce it, so the figure is the
// actual current balance rather than a full-period forecast.
func RemainingBudget(incomes []model.Income, expenses []model.Expense) float64 {
	return TotalIncome(incomes) - PaidExpenses(expenses)
}

// RemainingBudgetWithLoans nets all expenses against income and treats loans
// as incoming funds that offset obligations. This is a distinct metric from
// RemainingBudget; callers choose based on context.
func RemainingBudgetWithLoans(incomes []model.Income, expenses []model.Expense, loans []model.Loan) float64 {
	return TotalIncome(incomes) - TotalExpenses(expenses) + TotalLoans(loans)
}

// ProjectedBalance is a forward-looking estimate: RemainingBudgetWithLoans
// minus every known future expense.
func ProjectedBalance(incomes []model.Income, expenses []model.Expense, loans []model.Loan, futureExpenses []model.FutureExpense) float64 {
	balance := RemainingBudgetWithLoans(incomes, expenses, loans)
	for _, fe := range futureExpenses {
		balance -= fe.Amount
	}
	return balance
}

// SavingsRate is the balance as a percentage of total income, or 0 when there
// is no income.
func SavingsRate(incomes []model.Income, expenses []model.Expense) float64 {
	totalIncome := TotalIncome(incomes)
	if totalIncome <= 0 {
		return 0
	}
	return Balance(incomes, expenses) / totalIncome * 100
}

// TotalPlanned sums the caps of all budget lines.
func TotalPlanned(lines []model.BudgetLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.PlannedAmount
	}
	return total
}

// TotalDailySpent sums all daily expenses across every budget line.
func TotalDailySpent(dailyExpenses []model.DailyExpense) float64 {
	var total float64
	for _, de := range dailyExpenses {
		total += de.Amount
	}
	return total
}

// PlannedRemaining is the planned budget left across all lines.
func PlannedRemaining(lines []model.BudgetLine, dailyExpenses []model.DailyExpense) float64 {
	return TotalPlanned(lines) - TotalDailySpent(dailyExpenses)
}

// fallbackColor is used for expenses whose category no longer exists.
const fallbackColor = "#6B7280"

// CategoryColor returns the color of the named category, or a neutral gray
// when the category is unknown.
func CategoryColor(name string, categories []model.CustomCategory) string {
	for _, cat := range categories {
		if cat.Name == name {
			return cat.Color
		}
	}
	return fallbackColor
}

// CategoryStats computes the spending distribution over paid expenses only;
// unpaid spend is not yet real for distribution purposes. Entries with zero
// amount are excluded. Order is by first-encountered category name, which
// keeps output deterministic for deterministic input — it is not a ranking.
func CategoryStats(expenses []model.Expense, categories []model.CustomCategory) []model.CategoryStat {
	paidTotal := PaidExpenses(expenses)
	if paidTotal <= 0 {
		return nil
	}

	amounts := make(map[string]float64)
	var order []string
	for _, expense := range expenses {
		if !expense.IsPaid {
			continue
		}
		if _, seen := amounts[expense.Category]; !seen {
			order = append(order, expense.Category)
		}
		amounts[expense.Category] += expense.Amount
	}

	stats := make([]model.CategoryStat, 0, len(order))
	for _, name := range order {
		amount := amounts[name]
		if amount <= 0 {
			continue
		}
		stats = append(stats, model.CategoryStat{
			Category:   name,
			Amount:     amount,
			Percentage: amount / paidTotal * 100,
			Color:      CategoryColor(name, categories),
		})
	}
	return stats
}

// DefaultCategories returns the seed category set for a fresh store.
func DefaultCategories() []model.CustomCategory {
	return []model.CustomCategory{
		{ID: "1", Name: "Logement", Icon: "🏠", Color: "#3B82F6", IsDefault: true},
		{ID: "2", Name: "Transport", Icon: "🚗", Color: "#10B981", IsDefault: true},
		{ID: "3", Name: "Alimentation", Icon: "🍽️", Color: "#F59E0B", IsDefault: true},
		{ID: "4", Name: "Loisirs", Icon: "🎯", Color: "#EF4444", IsDefault: true},
		{ID: "5", Name: "Divers", Icon: "📦", Color: "#8B5CF6", IsDefault: true},
	}
}

// Package guard implements the budget-line spending policy: whether a
// monetary movement against a budget line is permitted, and what warning tier
// applies. Everything here is a pure function of the collections passed in;
// tiers are recomputed on every read and never persisted, so they cannot go
// stale.
package guard

import (
	"fmt"

	"github.com/jkonate/solde/internal/ledger"
	"github.com/jkonate/solde/internal/model"
)

// Status classifies a budget line's utilization.
type Status string

const (
	// StatusUnder means utilization is below the warning threshold.
	StatusUnder Status = "under"
	// StatusWarning means utilization is near the cap; the operation is
	// permitted but the caller must surface a near-limit alert.
	StatusWarning Status = "warning"
	// StatusOver means the cap is reached or exceeded; the operation is
	// rejected.
	StatusOver Status = "over"
)

// Tier thresholds, in percent of the planned amount.
const (
	warningThreshold = 80
	blockedThreshold = 100
)

// SpentAmount sums the daily expenses recorded against a budget line.
func SpentAmount(budgetLineID string, dailyExpenses []model.DailyExpense) float64 {
	var total float64
	for _, de := range dailyExpenses {
		if de.BudgetLineID == budgetLineID {
			total += de.Amount
		}
	}
	return total
}

// Percentage is the spend ratio against the planned amount, as a percentage.
// A non-positive planned amount yields 0.
func Percentage(budgetLineID string, plannedAmount float64, dailyExpenses []model.DailyExpense) float64 {
	if plannedAmount <= 0 {
		return 0
	}
	return SpentAmount(budgetLineID, dailyExpenses) / plannedAmount * 100
}

// StatusOf maps a utilization percentage to its tier.
func StatusOf(percentage float64) Status {
	switch {
	case percentage >= blockedThreshold:
		return StatusOver
	case percentage >= warningThreshold:
		return StatusWarning
	default:
		return StatusUnder
	}
}

// Decision is the outcome of evaluating a prospective spend.
type Decision struct {
	Status     Status
	Percentage float64 // utilization after the hypothetical spend
	Allowed    bool
}

// EvaluateSpend decides whether adding amount to a budget line's spend is
// permitted. The percentage is computed after the hypothetical addition:
// below 80% the spend is fine, from 80% the caller must warn, and at or past
// 100% the spend is rejected and no daily expense may be created.
func EvaluateSpend(line model.BudgetLine, dailyExpenses []model.DailyExpense, amount float64) Decision {
	spent := SpentAmount(line.ID, dailyExpenses) + amount

	var pct float64
	if line.PlannedAmount > 0 {
		pct = spent / line.PlannedAmount * 100
	}

	status := StatusOf(pct)
	return Decision{
		Status:     status,
		Percentage: pct,
		Allowed:    status != StatusOver,
	}
}

// CheckPlannedCap enforces the global invariant that the sum of planned
// amounts across budget lines never exceeds total income. The line being
// edited (excludeID, empty for a new line) is left out of the existing sum.
// On violation the returned error carries the computed excess.
func CheckPlannedCap(lines []model.BudgetLine, excludeID string, newPlannedAmount, totalIncome float64) error {
	var planned float64
	for _, line := range lines {
		if line.ID == excludeID {
			continue
		}
		planned += line.PlannedAmount
	}

	if total := planned + newPlannedAmount; total > totalIncome {
		return fmt.Errorf("planned budget %s exceeds total income %s by %s",
			ledger.FormatCurrency(total),
			ledger.FormatCurrency(totalIncome),
			ledger.FormatCurrency(total-totalIncome))
	}
	return nil
}

// CategoryUsage counts the records referencing a category by name. Any
// positive count blocks deletion of the category.
type CategoryUsage struct {
	Expenses       int
	FutureExpenses int
	BudgetLines    int
}

// Total is the overall reference count.
func (u CategoryUsage) Total() int {
	return u.Expenses + u.FutureExpenses + u.BudgetLines
}

// InUse reports whether any record references the category.
func (u CategoryUsage) InUse() bool {
	return u.Total() > 0
}

// CategoryUsageOf scans the referencing collections for a category name.
func CategoryUsageOf(name string, expenses []model.Expense, futureExpenses []model.FutureExpense, lines []model.BudgetLine) CategoryUsage {
	var usage CategoryUsage
	for _, e := range expenses {
		if e.Category == name {
			usage.Expenses++
		}
	}
	for _, fe := range futureExpenses {
		if fe.Category == name {
			usage.FutureExpenses++
		}
	}
	for _, l := range lines {
		if l.Category == name {
			usage.BudgetLines++
		}
	}
	return usage
}

// BudgetLineUsageOf counts the daily expenses attached to a budget line. A
// line with any attached daily expense cannot be deleted.
func BudgetLineUsageOf(budgetLineID string, dailyExpenses []model.DailyExpense) int {
	var count int
	for _, de := range dailyExpenses {
		if de.BudgetLineID == budgetLineID {
			count++
		}
	}
	return count
}

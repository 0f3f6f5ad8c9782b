package service

import (
	"context"
	"fmt"

	"github.com/jkonate/solde/internal/common"
	"github.com/jkonate/solde/internal/guard"
	"github.com/jkonate/solde/internal/ledger"
	"github.com/jkonate/solde/internal/model"
	"github.com/jkonate/solde/internal/storage"
)

func (r *Repository) saveBudgetLines(ctx context.Context, lines []model.BudgetLine) error {
	if err := r.store.Save(ctx, storage.KeyBudgetLines, lines); err != nil {
		return common.NewUserError("could not save budget lines", err)
	}
	return nil
}

func (r *Repository) saveDailyExpenses(ctx context.Context, daily []model.DailyExpense) error {
	if err := r.store.Save(ctx, storage.KeyDailyExpenses, daily); err != nil {
		return common.NewUserError("could not save daily expenses", err)
	}
	return nil
}

func (r *Repository) findBudgetLine(ctx context.Context, id string) (model.BudgetLine, error) {
	for _, line := range r.BudgetLines(ctx) {
		if line.ID == id {
			return line, nil
		}
	}
	return model.BudgetLine{}, common.NewUserError(fmt.Sprintf("budget line %s", id), common.ErrNotFound)
}

// AddBudgetLine creates a planned spending bucket. The global cap invariant
// applies: planned amounts across all lines may never exceed total income.
func (r *Repository) AddBudgetLine(ctx context.Context, description, category string, plannedAmount float64) ([]model.BudgetLine, error) {
	lines := r.BudgetLines(ctx)
	totalIncome := ledger.TotalIncome(r.Incomes(ctx))
	if err := guard.CheckPlannedCap(lines, "", plannedAmount, totalIncome); err != nil {
		return nil, common.NewUserError(err.Error(), common.ErrBudgetExceeded)
	}

	lines = append(lines, model.BudgetLine{
		ID:            newID(),
		Description:   description,
		Category:      category,
		PlannedAmount: plannedAmount,
		CreatedAt:     nowISO(),
	})
	if err := r.saveBudgetLines(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// UpdateBudgetLine replaces the mutable fields of a budget line, re-checking
// the global cap with the edited line excluded from the existing sum.
func (r *Repository) UpdateBudgetLine(ctx context.Context, id, description, category string, plannedAmount float64) ([]model.BudgetLine, error) {
	lines := r.BudgetLines(ctx)

	idx := -1
	for i, line := range lines {
		if line.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, common.NewUserError(fmt.Sprintf("budget line %s", id), common.ErrNotFound)
	}

	totalIncome := ledger.TotalIncome(r.Incomes(ctx))
	if err := guard.CheckPlannedCap(lines, id, plannedAmount, totalIncome); err != nil {
		return nil, common.NewUserError(err.Error(), common.ErrBudgetExceeded)
	}

	lines[idx].Description = description
	lines[idx].Category = category
	lines[idx].PlannedAmount = plannedAmount
	if err := r.saveBudgetLines(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// DeleteBudgetLine removes a budget line. A line with any daily expense
// attached cannot be deleted; the error reports the attached count.
func (r *Repository) DeleteBudgetLine(ctx context.Context, id string) ([]model.BudgetLine, error) {
	lines := r.BudgetLines(ctx)

	idx := -1
	for i, line := range lines {
		if line.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, common.NewUserError(fmt.Sprintf("budget line %s", id), common.ErrNotFound)
	}

	if count := guard.BudgetLineUsageOf(id, r.DailyExpenses(ctx)); count > 0 {
		return nil, common.NewUserError(
			fmt.Sprintf("cannot delete budget line %q: %d daily expense(s) attached", lines[idx].Description, count),
			common.ErrBudgetLineInUse)
	}

	lines = append(lines[:idx], lines[idx+1:]...)
	if err := r.saveBudgetLines(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// SpendResult is the outcome of a guarded spend against a budget line.
type SpendResult struct {
	DailyExpenses []model.DailyExpense
	Decision      guard.Decision
}

// AddDailyExpense records a spend against a budget line, gated by the tier
// policy: past the cap the spend is rejected and nothing is written; in the
// warning band it is recorded and the decision carries the near-limit state
// for the caller to surface.
func (r *Repository) AddDailyExpense(ctx context.Context, budgetLineID, description, expenseDate string, amount float64) (*SpendResult, error) {
	line, err := r.findBudgetLine(ctx, budgetLineID)
	if err != nil {
		return nil, err
	}

	daily := r.DailyExpenses(ctx)
	decision := guard.EvaluateSpend(line, daily, amount)
	if !decision.Allowed {
		return nil, common.NewUserError(
			fmt.Sprintf("budget exceeded for %q: spend would reach %.1f%% of %s",
				line.Description, decision.Percentage, ledger.FormatCurrency(line.PlannedAmount)),
			common.ErrBudgetExceeded)
	}

	daily = append(daily, model.DailyExpense{
		ID:           newID(),
		BudgetLineID: budgetLineID,
		Description:  description,
		ExpenseDate:  expenseDate,
		Amount:       amount,
		CreatedAt:    nowISO(),
	})
	if err := r.saveDailyExpenses(ctx, daily); err != nil {
		return nil, err
	}
	return &SpendResult{DailyExpenses: daily, Decision: decision}, nil
}

// DeleteDailyExpense removes a single daily expense.
func (r *Repository) DeleteDailyExpense(ctx context.Context, id string) ([]model.DailyExpense, error) {
	daily := r.DailyExpenses(ctx)
	filtered := daily[:0:0]
	for _, de := range daily {
		if de.ID != id {
			filtered = append(filtered, de)
		}
	}
	if len(filtered) == len(daily) {
		return nil, common.NewUserError(fmt.Sprintf("daily expense %s", id), common.ErrNotFound)
	}
	if err := r.saveDailyExpenses(ctx, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

// PayFutureExpense settles a planned expense. When the expense is linked to
// a budget line the payment is routed through the guard as a daily expense;
// a blocked line rejects the payment and nothing changes.
func (r *Repository) PayFutureExpense(ctx context.Context, id string) (*SpendResult, error) {
	futures := r.FutureExpenses(ctx)

	idx := -1
	for i, fe := range futures {
		if fe.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, common.NewUserError(fmt.Sprintf("future expense %s", id), common.ErrNotFound)
	}
	fe := futures[idx]
	if fe.IsPaid {
		return nil, common.NewUserError(fmt.Sprintf("future expense %q is already paid", fe.Description), nil)
	}

	var result *SpendResult
	if fe.BudgetLineID != "" {
		var err error
		result, err = r.AddDailyExpense(ctx, fe.BudgetLineID, fe.Description, fe.TargetDate, fe.Amount)
		if err != nil {
			return nil, err
		}
	}

	futures[idx].IsPaid = true
	if err := r.saveFutureExpenses(ctx, futures); err != nil {
		return nil, err
	}
	if result == nil {
		result = &SpendResult{DailyExpenses: r.DailyExpenses(ctx)}
	}
	return result, nil
}

// PayLoan marks a loan repaid. When the loan is linked to a budget line the
// repayment is routed through the guard as a daily expense first.
func (r *Repository) PayLoan(ctx context.Context, id string) (*SpendResult, error) {
	loans := r.Loans(ctx)

	idx := -1
	for i, loan := range loans {
		if loan.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, common.NewUserError(fmt.Sprintf("loan %s", id), common.ErrNotFound)
	}
	loan := loans[idx]
	if loan.IsPaid {
		return nil, common.NewUserError(fmt.Sprintf("loan %q is already repaid", loan.Description), nil)
	}

	var result *SpendResult
	if loan.BudgetLineID != "" {
		var err error
		result, err = r.AddDailyExpense(ctx, loan.BudgetLineID, loan.Description, loan.Date, loan.Amount)
		if err != nil {
			return nil, err
		}
	}

	loans[idx].IsPaid = true
	if err := r.saveLoans(ctx, loans); err != nil {
		return nil, err
	}
	if result == nil {
		result = &SpendResult{DailyExpenses: r.DailyExpenses(ctx)}
	}
	return result, nil
}

// LineStatus describes a budget line's current utilization for display.
type LineStatus struct {
	Line       model.BudgetLine
	Status     guard.Status
	Spent      float64
	Percentage float64
}

// LineStatuses computes utilization for every budget line. Status is derived
// on every read and never persisted, so it cannot go stale.
func (r *Repository) LineStatuses(ctx context.Context) []LineStatus {
	daily := r.DailyExpenses(ctx)
	lines := r.BudgetLines(ctx)

	statuses := make([]LineStatus, 0, len(lines))
	for _, line := range lines {
		spent := guard.SpentAmount(line.ID, daily)
		pct := guard.Percentage(line.ID, line.PlannedAmount, daily)
		statuses = append(statuses, LineStatus{
			Line:       line,
			Spent:      spent,
			Percentage: pct,
			Status:     guard.StatusOf(pct),
		})
	}
	return statuses
}

package service

import (
	"context"
	"fmt"

	"github.com/jkonate/solde/internal/common"
	"github.com/jkonate/solde/internal/model"
	"github.com/jkonate/solde/internal/storage"
)

func (r *Repository) saveIncomes(ctx context.Context, incomes []model.Income) error {
	if err := r.store.Save(ctx, storage.KeyIncomes, incomes); err != nil {
		return common.NewUserError("could not save incomes", err)
	}
	return nil
}

// AddIncome records a new income source and returns the updated collection.
func (r *Repository) AddIncome(ctx context.Context, description string, amount float64) ([]model.Income, error) {
	incomes := append(r.Incomes(ctx), model.Income{
		ID:          newID(),
		Description: description,
		Amount:      amount,
		Date:        nowISO(),
	})
	if err := r.saveIncomes(ctx, incomes); err != nil {
		return nil, err
	}
	return incomes, nil
}

// UpdateIncome replaces the description and amount of an existing income.
func (r *Repository) UpdateIncome(ctx context.Context, id, description string, amount float64) ([]model.Income, error) {
	incomes := r.Incomes(ctx)
	found := false
	for i := range incomes {
		if incomes[i].ID == id {
			incomes[i].Description = description
			incomes[i].Amount = amount
			found = true
			break
		}
	}
	if !found {
		return nil, common.NewUserError(fmt.Sprintf("income %s", id), common.ErrNotFound)
	}
	if err := r.saveIncomes(ctx, incomes); err != nil {
		return nil, err
	}
	return incomes, nil
}

// DeleteIncome removes an income by id.
func (r *Repository) DeleteIncome(ctx context.Context, id string) ([]model.Income, error) {
	incomes := r.Incomes(ctx)
	filtered := incomes[:0:0]
	for _, income := range incomes {
		if income.ID != id {
			filtered = append(filtered, income)
		}
	}
	if len(filtered) == len(incomes) {
		return nil, common.NewUserError(fmt.Sprintf("income %s", id), common.ErrNotFound)
	}
	if err := r.saveIncomes(ctx, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

func (r *Repository) saveExpenses(ctx context.Context, expenses []model.Expense) error {
	if err := r.store.Save(ctx, storage.KeyExpenses, expenses); err != nil {
		return common.NewUserError("could not save expenses", err)
	}
	return nil
}

// AddExpense records a new expense, paid or pending.
func (r *Repository) AddExpense(ctx context.Context, description, category string, amount float64, isPaid bool) ([]model.Expense, error) {
	expenses := append(r.Expenses(ctx), model.Expense{
		ID:          newID(),
		Description: description,
		Category:    category,
		Amount:      amount,
		IsPaid:      isPaid,
		Date:        nowISO(),
	})
	if err := r.saveExpenses(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// UpdateExpense replaces the mutable fields of an existing expense.
func (r *Repository) UpdateExpense(ctx context.Context, id, description, category string, amount float64) ([]model.Expense, error) {
	expenses := r.Expenses(ctx)
	found := false
	for i := range expenses {
		if expenses[i].ID == id {
			expenses[i].Description = description
			expenses[i].Category = category
			expenses[i].Amount = amount
			found = true
			break
		}
	}
	if !found {
		return nil, common.NewUserError(fmt.Sprintf("expense %s", id), common.ErrNotFound)
	}
	if err := r.saveExpenses(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// ToggleExpensePaid flips the paid flag of an expense.
func (r *Repository) ToggleExpensePaid(ctx context.Context, id string) ([]model.Expense, error) {
	expenses := r.Expenses(ctx)
	found := false
	for i := range expenses {
		if expenses[i].ID == id {
			expenses[i].IsPaid = !expenses[i].IsPaid
			found = true
			break
		}
	}
	if !found {
		return nil, common.NewUserError(fmt.Sprintf("expense %s", id), common.ErrNotFound)
	}
	if err := r.saveExpenses(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// DeleteExpense removes an expense by id. Confirmation of the delete is the
// caller's responsibility; seed records are not protected.
func (r *Repository) DeleteExpense(ctx context.Context, id string) ([]model.Expense, error) {
	expenses := r.Expenses(ctx)
	filtered := expenses[:0:0]
	for _, expense := range expenses {
		if expense.ID != id {
			filtered = append(filtered, expense)
		}
	}
	if len(filtered) == len(expenses) {
		return nil, common.NewUserError(fmt.Sprintf("expense %s", id), common.ErrNotFound)
	}
	if err := r.saveExpenses(ctx, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

func (r *Repository) saveLoans(ctx context.Context, loans []model.Loan) error {
	if err := r.store.Save(ctx, storage.KeyLoans, loans); err != nil {
		return common.NewUserError("could not save loans", err)
	}
	return nil
}

// AddLoan records borrowed money, optionally linked to a budget line for
// guarded repayment.
func (r *Repository) AddLoan(ctx context.Context, description string, amount float64, budgetLineID string) ([]model.Loan, error) {
	loans := append(r.Loans(ctx), model.Loan{
		ID:           newID(),
		Description:  description,
		Amount:       amount,
		BudgetLineID: budgetLineID,
		Date:         nowISO(),
	})
	if err := r.saveLoans(ctx, loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// ToggleLoanPaid flips the repaid flag of a loan.
func (r *Repository) ToggleLoanPaid(ctx context.Context, id string) ([]model.Loan, error) {
	loans := r.Loans(ctx)
	found := false
	for i := range loans {
		if loans[i].ID == id {
			loans[i].IsPaid = !loans[i].IsPaid
			found = true
			break
		}
	}
	if !found {
		return nil, common.NewUserError(fmt.Sprintf("loan %s", id), common.ErrNotFound)
	}
	if err := r.saveLoans(ctx, loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// DeleteLoan removes a loan by id.
func (r *Repository) DeleteLoan(ctx context.Context, id string) ([]model.Loan, error) {
	loans := r.Loans(ctx)
	filtered := loans[:0:0]
	for _, loan := range loans {
		if loan.ID != id {
			filtered = append(filtered, loan)
		}
	}
	if len(filtered) == len(loans) {
		return nil, common.NewUserError(fmt.Sprintf("loan %s", id), common.ErrNotFound)
	}
	if err := r.saveLoans(ctx, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

func (r *Repository) saveFutureExpenses(ctx context.Context, futures []model.FutureExpense) error {
	if err := r.store.Save(ctx, storage.KeyFutureExpenses, futures); err != nil {
		return common.NewUserError("could not save future expenses", err)
	}
	return nil
}

// AddFutureExpense records a planned expense with a target date.
func (r *Repository) AddFutureExpense(ctx context.Context, description, category, targetDate string, amount float64, budgetLineID string) ([]model.FutureExpense, error) {
	futures := append(r.FutureExpenses(ctx), model.FutureExpense{
		ID:           newID(),
		Description:  description,
		Category:     category,
		TargetDate:   targetDate,
		Amount:       amount,
		BudgetLineID: budgetLineID,
	})
	if err := r.saveFutureExpenses(ctx, futures); err != nil {
		return nil, err
	}
	return futures, nil
}

// ToggleFutureExpensePaid flips the paid flag of a planned expense without
// touching budget lines. Use PayFutureExpense for guarded settlement.
func (r *Repository) ToggleFutureExpensePaid(ctx context.Context, id string) ([]model.FutureExpense, error) {
	futures := r.FutureExpenses(ctx)
	found := false
	for i := range futures {
		if futures[i].ID == id {
			futures[i].IsPaid = !futures[i].IsPaid
			found = true
			break
		}
	}
	if !found {
		return nil, common.NewUserError(fmt.Sprintf("future expense %s", id), common.ErrNotFound)
	}
	if err := r.saveFutureExpenses(ctx, futures); err != nil {
		return nil, err
	}
	return futures, nil
}

// DeleteFutureExpense removes a planned expense by id.
func (r *Repository) DeleteFutureExpense(ctx context.Context, id string) ([]model.FutureExpense, error) {
	futures := r.FutureExpenses(ctx)
	filtered := futures[:0:0]
	for _, fe := range futures {
		if fe.ID != id {
			filtered = append(filtered, fe)
		}
	}
	if len(filtered) == len(futures) {
		return nil, common.NewUserError(fmt.Sprintf("future expense %s", id), common.ErrNotFound)
	}
	if err := r.saveFutureExpenses(ctx, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

// Package service implements the repository owning the canonical entity
// collections. Every mutation validates through the guard, persists through
// the store, and returns the updated collection; presentation code never
// writes to storage directly.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jkonate/solde/internal/ledger"
	"github.com/jkonate/solde/internal/model"
	"github.com/jkonate/solde/internal/storage"
)

// Repository mediates between callers and the persistence store.
type Repository struct {
	store *storage.Store
}

// New creates a repository over the given store.
func New(store *storage.Store) *Repository {
	return &Repository{store: store}
}

func newID() string {
	return uuid.NewString()
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Incomes returns all recorded incomes.
func (r *Repository) Incomes(ctx context.Context) []model.Income {
	var incomes []model.Income
	r.store.Load(ctx, storage.KeyIncomes, &incomes)
	return incomes
}

// Expenses returns all recorded expenses.
func (r *Repository) Expenses(ctx context.Context) []model.Expense {
	var expenses []model.Expense
	r.store.Load(ctx, storage.KeyExpenses, &expenses)
	return expenses
}

// Loans returns all recorded loans.
func (r *Repository) Loans(ctx context.Context) []model.Loan {
	var loans []model.Loan
	r.store.Load(ctx, storage.KeyLoans, &loans)
	return loans
}

// FutureExpenses returns all planned future expenses.
func (r *Repository) FutureExpenses(ctx context.Context) []model.FutureExpense {
	var futures []model.FutureExpense
	r.store.Load(ctx, storage.KeyFutureExpenses, &futures)
	return futures
}

// Categories returns the category list, falling back to the default seed set
// when none has been saved yet.
func (r *Repository) Categories(ctx context.Context) []model.CustomCategory {
	var categories []model.CustomCategory
	if found := r.store.Load(ctx, storage.KeyCategories, &categories); !found {
		return ledger.DefaultCategories()
	}
	return categories
}

// BudgetLines returns all budget lines.
func (r *Repository) BudgetLines(ctx context.Context) []model.BudgetLine {
	var lines []model.BudgetLine
	r.store.Load(ctx, storage.KeyBudgetLines, &lines)
	return lines
}

// DailyExpenses returns all daily expenses across every budget line.
func (r *Repository) DailyExpenses(ctx context.Context) []model.DailyExpense {
	var daily []model.DailyExpense
	r.store.Load(ctx, storage.KeyDailyExpenses, &daily)
	return daily
}

// Summary holds the dashboard figures derived from the full entity set.
type Summary struct {
	TotalIncome              float64
	TotalExpenses            float64
	PaidExpenses             float64
	UnpaidExpenses           float64
	TotalLoans               float64
	RemainingBudget          float64
	RemainingBudgetWithLoans float64
	ProjectedBalance         float64
	SavingsRate              float64
	TotalPlanned             float64
	TotalDailySpent          float64
	PlannedRemaining         float64
	CategoryStats            []model.CategoryStat
}

// Summary computes every dashboard metric from the current collections.
func (r *Repository) Summary(ctx context.Context) Summary {
	incomes := r.Incomes(ctx)
	expenses := r.Expenses(ctx)
	loans := r.Loans(ctx)
	futures := r.FutureExpenses(ctx)
	categories := r.Categories(ctx)
	lines := r.BudgetLines(ctx)
	daily := r.DailyExpenses(ctx)

	return Summary{
		TotalIncome:              ledger.TotalIncome(incomes),
		TotalExpenses:            ledger.TotalExpenses(expenses),
		PaidExpenses:             ledger.PaidExpenses(expenses),
		UnpaidExpenses:           ledger.UnpaidExpenses(expenses),
		TotalLoans:               ledger.TotalLoans(loans),
		RemainingBudget:          ledger.RemainingBudget(incomes, expenses),
		RemainingBudgetWithLoans: ledger.RemainingBudgetWithLoans(incomes, expenses, loans),
		ProjectedBalance:         ledger.ProjectedBalance(incomes, expenses, loans, futures),
		SavingsRate:              ledger.SavingsRate(incomes, expenses),
		TotalPlanned:             ledger.TotalPlanned(lines),
		TotalDailySpent:          ledger.TotalDailySpent(daily),
		PlannedRemaining:         ledger.PlannedRemaining(lines, daily),
		CategoryStats:            ledger.CategoryStats(expenses, categories),
	}
}

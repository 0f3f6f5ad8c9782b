package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkonate/solde/internal/common"
	"github.com/jkonate/solde/internal/guard"
	"github.com/jkonate/solde/internal/storage"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return New(store)
}

func TestIncomeLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	incomes, err := repo.AddIncome(ctx, "Salaire", 5000)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.NotEmpty(t, incomes[0].ID)
	assert.NotEmpty(t, incomes[0].Date)

	incomes, err = repo.UpdateIncome(ctx, incomes[0].ID, "Salaire net", 4800)
	require.NoError(t, err)
	assert.Equal(t, "Salaire net", incomes[0].Description)
	assert.Equal(t, 4800.0, incomes[0].Amount)

	incomes, err = repo.DeleteIncome(ctx, incomes[0].ID)
	require.NoError(t, err)
	assert.Empty(t, incomes)

	_, err = repo.DeleteIncome(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestExpenseTogglePaid(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	expenses, err := repo.AddExpense(ctx, "Loyer", "Logement", 1200, false)
	require.NoError(t, err)
	require.False(t, expenses[0].IsPaid)

	expenses, err = repo.ToggleExpensePaid(ctx, expenses[0].ID)
	require.NoError(t, err)
	assert.True(t, expenses[0].IsPaid)

	expenses, err = repo.ToggleExpensePaid(ctx, expenses[0].ID)
	require.NoError(t, err)
	assert.False(t, expenses[0].IsPaid)
}

func TestCategoriesDefaultSeed(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	categories := repo.Categories(ctx)
	require.Len(t, categories, 5)
	assert.Equal(t, "Logement", categories[0].Name)

	// Adding one persists the whole list; the defaults survive.
	categories, err := repo.AddCategory(ctx, "Santé", "💊", "#22C55E")
	require.NoError(t, err)
	assert.Len(t, categories, 6)
	assert.Len(t, repo.Categories(ctx), 6)
}

func TestAddCategoryRejectsDuplicateName(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddCategory(ctx, "Transport", "🚗", "#10B981")
	assert.ErrorIs(t, err, common.ErrDuplicateName)
}

func TestDeleteCategoryInUse(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	categories := repo.Categories(ctx)
	transport := categories[1]
	require.Equal(t, "Transport", transport.Name)

	_, err := repo.AddExpense(ctx, "Essence", "Transport", 60, true)
	require.NoError(t, err)

	assert.True(t, repo.IsCategoryInUse(ctx, "Transport"))

	_, err = repo.DeleteCategory(ctx, transport.ID)
	require.ErrorIs(t, err, common.ErrCategoryInUse)
	assert.Contains(t, err.Error(), "1 record(s)")

	// An unused category deletes cleanly.
	loisirs := categories[3]
	require.Equal(t, "Loisirs", loisirs.Name)
	updated, err := repo.DeleteCategory(ctx, loisirs.ID)
	require.NoError(t, err)
	assert.Len(t, updated, 4)
}

func TestRenameCategoryCascades(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	categories := repo.Categories(ctx)
	alimentation := categories[2]
	require.Equal(t, "Alimentation", alimentation.Name)

	_, err := repo.AddExpense(ctx, "Courses", "Alimentation", 150, true)
	require.NoError(t, err)
	_, err = repo.AddFutureExpense(ctx, "Fête", "Alimentation", "2025-06-01", 300, "")
	require.NoError(t, err)
	_, err = repo.AddIncome(ctx, "Salaire", 5000)
	require.NoError(t, err)
	_, err = repo.AddBudgetLine(ctx, "Marché", "Alimentation", 1000)
	require.NoError(t, err)

	_, err = repo.RenameCategory(ctx, alimentation.ID, "Nourriture")
	require.NoError(t, err)

	assert.Equal(t, "Nourriture", repo.Expenses(ctx)[0].Category)
	assert.Equal(t, "Nourriture", repo.FutureExpenses(ctx)[0].Category)
	assert.Equal(t, "Nourriture", repo.BudgetLines(ctx)[0].Category)
	assert.False(t, repo.IsCategoryInUse(ctx, "Alimentation"))
}

func TestBudgetLineCap(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddIncome(ctx, "Salaire", 5000)
	require.NoError(t, err)

	lines, err := repo.AddBudgetLine(ctx, "Courses", "Alimentation", 3000)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	// 3000 + 2500 > 5000: rejected with the excess in the message.
	_, err = repo.AddBudgetLine(ctx, "Transport", "Transport", 2500)
	require.ErrorIs(t, err, common.ErrBudgetExceeded)
	assert.Contains(t, err.Error(), "exceeds total income")

	// Raising the existing line to 5000 is allowed: the old value is
	// excluded from the sum.
	_, err = repo.UpdateBudgetLine(ctx, lines[0].ID, "Courses", "Alimentation", 5000)
	require.NoError(t, err)

	_, err = repo.UpdateBudgetLine(ctx, lines[0].ID, "Courses", "Alimentation", 5001)
	assert.ErrorIs(t, err, common.ErrBudgetExceeded)
}

func TestGuardedDailyExpenseScenario(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddIncome(ctx, "Salaire", 5000)
	require.NoError(t, err)
	lines, err := repo.AddBudgetLine(ctx, "Nourriture", "Alimentation", 3000)
	require.NoError(t, err)
	lineID := lines[0].ID

	// Spend up to 2500: the last spend lands in the warning band.
	_, err = repo.AddDailyExpense(ctx, lineID, "Marché", "2025-01-10", 2000)
	require.NoError(t, err)
	result, err := repo.AddDailyExpense(ctx, lineID, "Marché", "2025-01-12", 500)
	require.NoError(t, err)
	assert.Equal(t, guard.StatusWarning, result.Decision.Status)
	assert.InDelta(t, 83.33, result.Decision.Percentage, 0.01)

	// A further 600 would reach 3100 of 3000: blocked, nothing written.
	_, err = repo.AddDailyExpense(ctx, lineID, "Restaurant", "2025-01-13", 600)
	require.ErrorIs(t, err, common.ErrBudgetExceeded)
	assert.Contains(t, err.Error(), "Nourriture")

	assert.InDelta(t, 2500, guard.SpentAmount(lineID, repo.DailyExpenses(ctx)), 1e-9)

	statuses := repo.LineStatuses(ctx)
	require.Len(t, statuses, 1)
	assert.Equal(t, guard.StatusWarning, statuses[0].Status)
}

func TestAddDailyExpenseUnknownLine(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddDailyExpense(ctx, "missing", "x", "2025-01-01", 10)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Empty(t, repo.DailyExpenses(ctx))
}

func TestDeleteBudgetLineGuard(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddIncome(ctx, "Salaire", 5000)
	require.NoError(t, err)
	lines, err := repo.AddBudgetLine(ctx, "Courses", "Alimentation", 1000)
	require.NoError(t, err)
	lineID := lines[0].ID

	_, err = repo.AddDailyExpense(ctx, lineID, "Marché", "2025-01-10", 100)
	require.NoError(t, err)

	_, err = repo.DeleteBudgetLine(ctx, lineID)
	require.ErrorIs(t, err, common.ErrBudgetLineInUse)
	assert.Contains(t, err.Error(), "1 daily expense(s)")

	// Removing the daily expense unblocks the delete.
	daily := repo.DailyExpenses(ctx)
	_, err = repo.DeleteDailyExpense(ctx, daily[0].ID)
	require.NoError(t, err)

	remaining, err := repo.DeleteBudgetLine(ctx, lineID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestPayFutureExpenseThroughBudgetLine(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddIncome(ctx, "Salaire", 5000)
	require.NoError(t, err)
	lines, err := repo.AddBudgetLine(ctx, "Équipement", "Divers", 1000)
	require.NoError(t, err)

	futures, err := repo.AddFutureExpense(ctx, "Réparation", "Divers", "2025-02-01", 900, lines[0].ID)
	require.NoError(t, err)

	result, err := repo.PayFutureExpense(ctx, futures[0].ID)
	require.NoError(t, err)
	assert.Equal(t, guard.StatusWarning, result.Decision.Status)
	assert.True(t, repo.FutureExpenses(ctx)[0].IsPaid)
	require.Len(t, result.DailyExpenses, 1)
	assert.Equal(t, 900.0, result.DailyExpenses[0].Amount)

	// Paying again is rejected.
	_, err = repo.PayFutureExpense(ctx, futures[0].ID)
	assert.Error(t, err)
}

func TestPayFutureExpenseBlockedLeavesState(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddIncome(ctx, "Salaire", 5000)
	require.NoError(t, err)
	lines, err := repo.AddBudgetLine(ctx, "Équipement", "Divers", 500)
	require.NoError(t, err)

	futures, err := repo.AddFutureExpense(ctx, "Réparation", "Divers", "2025-02-01", 600, lines[0].ID)
	require.NoError(t, err)

	_, err = repo.PayFutureExpense(ctx, futures[0].ID)
	require.ErrorIs(t, err, common.ErrBudgetExceeded)
	assert.False(t, repo.FutureExpenses(ctx)[0].IsPaid)
	assert.Empty(t, repo.DailyExpenses(ctx))
}

func TestToggleLoanAndFutureExpensePaid(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	loans, err := repo.AddLoan(ctx, "Avance", 300, "")
	require.NoError(t, err)

	loans, err = repo.ToggleLoanPaid(ctx, loans[0].ID)
	require.NoError(t, err)
	assert.True(t, loans[0].IsPaid)

	loans, err = repo.ToggleLoanPaid(ctx, loans[0].ID)
	require.NoError(t, err)
	assert.False(t, loans[0].IsPaid)

	futures, err := repo.AddFutureExpense(ctx, "Assurance", "Divers", "2025-06-30", 600, "")
	require.NoError(t, err)

	futures, err = repo.ToggleFutureExpensePaid(ctx, futures[0].ID)
	require.NoError(t, err)
	assert.True(t, futures[0].IsPaid)

	_, err = repo.ToggleFutureExpensePaid(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPayLoanWithoutBudgetLine(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	loans, err := repo.AddLoan(ctx, "Prêt ami", 200, "")
	require.NoError(t, err)

	_, err = repo.PayLoan(ctx, loans[0].ID)
	require.NoError(t, err)
	assert.True(t, repo.Loans(ctx)[0].IsPaid)
	assert.Empty(t, repo.DailyExpenses(ctx))
}

func TestSummary(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddIncome(ctx, "Salaire", 5000)
	require.NoError(t, err)
	_, err = repo.AddExpense(ctx, "Loyer", "Logement", 1200, true)
	require.NoError(t, err)
	_, err = repo.AddExpense(ctx, "Internet", "Logement", 300, false)
	require.NoError(t, err)
	_, err = repo.AddLoan(ctx, "Avance", 500, "")
	require.NoError(t, err)
	_, err = repo.AddFutureExpense(ctx, "Voyage", "Loisirs", "2025-08-01", 800, "")
	require.NoError(t, err)

	s := repo.Summary(ctx)
	assert.InDelta(t, 5000, s.TotalIncome, 1e-9)
	assert.InDelta(t, 1500, s.TotalExpenses, 1e-9)
	assert.InDelta(t, 1200, s.PaidExpenses, 1e-9)
	assert.InDelta(t, 300, s.UnpaidExpenses, 1e-9)
	// Realized cash flow only.
	assert.InDelta(t, 3800, s.RemainingBudget, 1e-9)
	// All expenses netted, loans offset.
	assert.InDelta(t, 4000, s.RemainingBudgetWithLoans, 1e-9)
	assert.InDelta(t, 3200, s.ProjectedBalance, 1e-9)
	require.Len(t, s.CategoryStats, 1)
	assert.Equal(t, "Logement", s.CategoryStats[0].Category)
	assert.InDelta(t, 100, s.CategoryStats[0].Percentage, 1e-9)
}

func TestUserErrorsUnwrap(t *testing.T) {
	err := common.NewUserError("wrapped", common.ErrBudgetExceeded)
	assert.True(t, errors.Is(err, common.ErrBudgetExceeded))
	assert.Contains(t, err.Error(), "wrapped")
}

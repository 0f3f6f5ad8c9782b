// Package model defines the ledger entity types shared across the application.
//
// JSON tags on these types are the persisted wire format: collections are
// stored as JSON arrays in the local store and round-trip through export
// files, so field names must stay stable.
package model

// Income represents a single source of income.
type Income struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // ISO-8601 creation timestamp
	Amount      float64 `json:"amount"`
}

// Expense represents a recorded expense, paid or pending.
type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Category    string  `json:"category"` // category name, not id
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	IsPaid      bool    `json:"isPaid"`
	IsDefault   bool    `json:"isDefault,omitempty"` // seed data marker
}

// Loan represents borrowed money. When linked to a budget line via
// BudgetLineID, repayment is routed through the budget-line guard.
type Loan struct {
	ID           string  `json:"id"`
	Description  string  `json:"description"`
	Date         string  `json:"date"`
	BudgetLineID string  `json:"budgetLineId,omitempty"`
	Amount       float64 `json:"amount"`
	IsPaid       bool    `json:"isPaid"`
}

// FutureExpense is a planned expense with a target date.
type FutureExpense struct {
	ID           string  `json:"id"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	TargetDate   string  `json:"targetDate"`
	BudgetLineID string  `json:"budgetLineId,omitempty"`
	Amount       float64 `json:"amount"`
	IsPaid       bool    `json:"isPaid,omitempty"`
}

// CustomCategory is a spending category. Name is the join field used by
// Expense, FutureExpense and BudgetLine; it must be unique.
type CustomCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// BudgetLine is a planned spending bucket with a cap, against which daily
// expenses are tracked.
type BudgetLine struct {
	ID            string  `json:"id"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	CreatedAt     string  `json:"createdAt"`
	PlannedAmount float64 `json:"plannedAmount"`
}

// DailyExpense is an individual spend event attributed to a budget line.
// It always references an existing BudgetLine.
type DailyExpense struct {
	ID           string  `json:"id"`
	BudgetLineID string  `json:"budgetLineId"`
	Description  string  `json:"description"`
	ExpenseDate  string  `json:"expenseDate"`
	CreatedAt    string  `json:"createdAt"`
	Amount       float64 `json:"amount"`
}

// CategoryStat is one row of the per-category spending distribution.
type CategoryStat struct {
	Category   string  `json:"category"`
	Color      string  `json:"color"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

package model

// BackupVersion is the format version written into every backup and export.
const BackupVersion = "1"

// BackupData holds every primary collection of the store.
type BackupData struct {
	Incomes        []Income         `json:"incomes"`
	Expenses       []Expense        `json:"expenses"`
	Loans          []Loan           `json:"loans"`
	FutureExpenses []FutureExpense  `json:"futureExpenses"`
	Categories     []CustomCategory `json:"categories"`
	BudgetLines    []BudgetLine     `json:"budgetLines"`
	DailyExpenses  []DailyExpense   `json:"dailyExpenses"`
}

// Backup is a timestamped full snapshot of the store. The same shape is used
// for on-disk backups and export files.
type Backup struct {
	Version   string     `json:"version"`
	Timestamp string     `json:"timestamp"` // ISO-8601
	Data      BackupData `json:"data"`
}

// BackupInfo describes a stored backup for listing.
type BackupInfo struct {
	Key       string
	CreatedAt string
	Size      int64
}

// StorageStats is an estimate of local store utilization. The total is an
// assumed ceiling, not a true device quota, so the percentage is only
// trend-accurate.
type StorageStats struct {
	Used       int64   `json:"used"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
	ItemCount  int     `json:"itemCount"`
}

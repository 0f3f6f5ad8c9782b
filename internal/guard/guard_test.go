package guard

import (
	"math"
	"strings"
	"testing"

	"github.com/jkonate/solde/internal/model"
)

func TestSpentAmount(t *testing.T) {
	daily := []model.DailyExpense{
		{ID: "d1", BudgetLineID: "l1", Amount: 100},
		{ID: "d2", BudgetLineID: "l2", Amount: 50},
		{ID: "d3", BudgetLineID: "l1", Amount: 25.50},
	}

	if got := SpentAmount("l1", daily); math.Abs(got-125.50) > 1e-9 {
		t.Errorf("SpentAmount(l1) = %v, want 125.50", got)
	}
	if got := SpentAmount("l3", daily); got != 0 {
		t.Errorf("SpentAmount(l3) = %v, want 0", got)
	}
	if got := SpentAmount("l1", nil); got != 0 {
		t.Errorf("SpentAmount with no expenses = %v, want 0", got)
	}
}

func TestPercentage(t *testing.T) {
	daily := []model.DailyExpense{
		{ID: "d1", BudgetLineID: "l1", Amount: 250},
	}

	tests := []struct {
		name    string
		lineID  string
		planned float64
		want    float64
	}{
		{name: "half spent", lineID: "l1", planned: 500, want: 50},
		{name: "zero planned guards division", lineID: "l1", planned: 0, want: 0},
		{name: "negative planned guards division", lineID: "l1", planned: -10, want: 0},
		{name: "no expenses", lineID: "l2", planned: 500, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.lineID, tt.planned, daily); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Percentage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		want Status
		pct  float64
	}{
		{want: StatusUnder, pct: 0},
		{want: StatusUnder, pct: 79.99},
		{want: StatusWarning, pct: 80},
		{want: StatusWarning, pct: 99.99},
		{want: StatusOver, pct: 100},
		{want: StatusOver, pct: 150},
	}

	for _, tt := range tests {
		if got := StatusOf(tt.pct); got != tt.want {
			t.Errorf("StatusOf(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestEvaluateSpend(t *testing.T) {
	line := model.BudgetLine{ID: "l1", PlannedAmount: 3000, Category: "Alimentation"}
	daily := []model.DailyExpense{
		{ID: "d1", BudgetLineID: "l1", Amount: 2500},
	}

	t.Run("near limit warns but permits", func(t *testing.T) {
		d := EvaluateSpend(line, daily, 0)
		if !d.Allowed || d.Status != StatusWarning {
			t.Errorf("EvaluateSpend() = %+v, want allowed warning", d)
		}
		if math.Abs(d.Percentage-83.33) > 0.01 {
			t.Errorf("Percentage = %v, want ~83.33", d.Percentage)
		}
	})

	t.Run("crossing the cap blocks", func(t *testing.T) {
		d := EvaluateSpend(line, daily, 600)
		if d.Allowed || d.Status != StatusOver {
			t.Errorf("EvaluateSpend() = %+v, want blocked", d)
		}
	})

	t.Run("small spend stays under", func(t *testing.T) {
		d := EvaluateSpend(line, nil, 100)
		if !d.Allowed || d.Status != StatusUnder {
			t.Errorf("EvaluateSpend() = %+v, want allowed under", d)
		}
	})

	t.Run("zero planned amount never warns", func(t *testing.T) {
		d := EvaluateSpend(model.BudgetLine{ID: "l2"}, daily, 100)
		if !d.Allowed || d.Status != StatusUnder || d.Percentage != 0 {
			t.Errorf("EvaluateSpend() = %+v, want allowed under at 0%%", d)
		}
	})

	t.Run("monotone in spend", func(t *testing.T) {
		// Raising the spend never moves the tier backward.
		rank := map[Status]int{StatusUnder: 0, StatusWarning: 1, StatusOver: 2}
		prev := StatusUnder
		for amount := 0.0; amount <= 4000; amount += 100 {
			d := EvaluateSpend(line, nil, amount)
			if rank[d.Status] < rank[prev] {
				t.Fatalf("tier went backward at amount %v: %v after %v", amount, d.Status, prev)
			}
			prev = d.Status
		}
	})
}

func TestCheckPlannedCap(t *testing.T) {
	lines := []model.BudgetLine{
		{ID: "l1", PlannedAmount: 2000},
		{ID: "l2", PlannedAmount: 1500},
	}

	t.Run("within income", func(t *testing.T) {
		if err := CheckPlannedCap(lines, "", 1000, 5000); err != nil {
			t.Errorf("CheckPlannedCap() = %v, want nil", err)
		}
	})

	t.Run("exceeds income reports excess", func(t *testing.T) {
		err := CheckPlannedCap(lines, "", 2000, 5000)
		if err == nil {
			t.Fatal("CheckPlannedCap() = nil, want error")
		}
		if !strings.Contains(err.Error(), "exceeds total income") {
			t.Errorf("unexpected error message: %v", err)
		}
	})

	t.Run("edited line is excluded from the sum", func(t *testing.T) {
		// Raising l2 from 1500 to 3000 against 5000 income is fine because
		// the old value is not double-counted.
		if err := CheckPlannedCap(lines, "l2", 3000, 5000); err != nil {
			t.Errorf("CheckPlannedCap() = %v, want nil", err)
		}
	})
}

func TestCategoryUsageOf(t *testing.T) {
	expenses := []model.Expense{
		{ID: "e1", Category: "Transport"},
		{ID: "e2", Category: "Logement"},
	}
	futures := []model.FutureExpense{
		{ID: "f1", Category: "Transport"},
	}
	lines := []model.BudgetLine{
		{ID: "l1", Category: "Transport"},
	}

	usage := CategoryUsageOf("Transport", expenses, futures, lines)
	if usage.Expenses != 1 || usage.FutureExpenses != 1 || usage.BudgetLines != 1 {
		t.Errorf("CategoryUsageOf() = %+v, want 1/1/1", usage)
	}
	if !usage.InUse() || usage.Total() != 3 {
		t.Errorf("InUse/Total = %v/%v, want true/3", usage.InUse(), usage.Total())
	}

	unused := CategoryUsageOf("Loisirs", expenses, futures, lines)
	if unused.InUse() {
		t.Errorf("CategoryUsageOf(Loisirs) = %+v, want unused", unused)
	}
}

func TestBudgetLineUsageOf(t *testing.T) {
	daily := []model.DailyExpense{
		{ID: "d1", BudgetLineID: "l1"},
		{ID: "d2", BudgetLineID: "l1"},
		{ID: "d3", BudgetLineID: "l2"},
	}

	if got := BudgetLineUsageOf("l1", daily); got != 2 {
		t.Errorf("BudgetLineUsageOf(l1) = %v, want 2", got)
	}
	if got := BudgetLineUsageOf("l3", daily); got != 0 {
		t.Errorf("BudgetLineUsageOf(l3) = %v, want 0", got)
	}
}

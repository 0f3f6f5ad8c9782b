package ledger

import (
	"strings"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
	}{
		{name: "zero", amount: 0},
		{name: "small", amount: 42},
		{name: "grouped", amount: 1234567},
		{name: "fractional rounds away", amount: 99.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCurrency(tt.amount)
			if !strings.HasSuffix(got, "F CFA") {
				t.Errorf("FormatCurrency(%v) = %q, missing currency marker", tt.amount, got)
			}
			if strings.Contains(got, ",") {
				t.Errorf("FormatCurrency(%v) = %q, expected zero decimal places", tt.amount, got)
			}
			// Idempotent for a given amount.
			if again := FormatCurrency(tt.amount); again != got {
				t.Errorf("FormatCurrency(%v) not stable: %q vs %q", tt.amount, got, again)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		iso  string
		want string
	}{
		{name: "date only", iso: "2025-03-15", want: "15 mars 2025"},
		{name: "full timestamp", iso: "2025-12-01T09:30:00Z", want: "1 décembre 2025"},
		{name: "unparseable passes through", iso: "not-a-date", want: "not-a-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.iso); got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.iso, got, tt.want)
			}
		})
	}
}

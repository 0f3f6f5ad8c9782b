package ledger

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.French)

// FormatCurrency renders an amount with French digit grouping, no decimal
// places and a trailing currency marker. Repeated calls for the same amount
// always produce the same string.
func FormatCurrency(amount float64) string {
	return printer.Sprintf("%v F CFA", number.Decimal(amount,
		number.MaxFractionDigits(0),
		number.MinFractionDigits(0)))
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDate renders an ISO-8601 date or timestamp as a long-form French
// date, e.g. "15 mars 2025". Unparseable input is returned unchanged.
func FormatDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		t, err = time.Parse("2006-01-02", iso)
		if err != nil {
			return iso
		}
	}
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatIDR formats an amount as whole rupiah with Indonesian digit grouping,
// e.g. "Rp 1.000.000".
func FormatIDR(amount decimal.Decimal) string {
	p := message.NewPrinter(language.Indonesian)
	whole := amount.Round(0).IntPart()
	if whole < 0 {
		return "-Rp " + p.Sprintf("%d", -whole)
	}
	return "Rp " + p.Sprintf("%d", whole)
}

// FormatDate formats a date as "2 Januari 2006".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

// FormatPeriod formats a project's start and end dates.
func FormatPeriod(start, end time.Time) string {
	return FormatDate(start) + " - " + FormatDate(end)
}

// Package report contains read-only reporting use cases and the pure
// aggregation functions behind them.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// DeadlineWarningDays is the default look-ahead window for upcoming deadlines.
const DeadlineWarningDays = 30

// MonthKeyLayout formats the keys of MonthlyBreakdown.
const MonthKeyLayout = "2006-01"

var hundred = decimal.NewFromInt(100)

// Totals summarises a set of transactions.
type Totals struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Balance      decimal.Decimal
	Margin       decimal.Decimal // Balance / Income * 100, one decimal place
	IncomeCount  int
	ExpenseCount int
}

// MonthTotals holds the income and expense of one calendar month.
type MonthTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// CategoryTotals holds the sums for one transaction category.
type CategoryTotals struct {
	Category string
	Type     entity.TransactionType
	Amount   decimal.Decimal
	Count    int
}

// ProjectDeadline pairs a project with its days remaining.
type ProjectDeadline struct {
	Project       *entity.Project
	DaysRemaining int
}

// ProjectStatistics is the per-project summary shown on the detail view and in reports.
type ProjectStatistics struct {
	Totals
	TaxAmount        decimal.Decimal
	TotalWithTax     decimal.Decimal
	RemainingPayment decimal.Decimal
	Progress         int
	TransactionCount int
}

// PortfolioTotals summarises a set of projects.
type PortfolioTotals struct {
	Count      int
	ByStatus   map[entity.ProjectStatus]int
	Value      decimal.Decimal
	PaidAmount decimal.Decimal
	TaxAmount  decimal.Decimal
}

// ProjectProgress returns round(paid / value * 100) clamped to [0, 100].
// A completed project is always 100 and a project without value is 0.
func ProjectProgress(project *entity.Project) int {
	if project.Status == entity.ProjectStatusComplete {
		return 100
	}
	if !project.Value.IsPositive() {
		return 0
	}

	pct := project.PaidAmount.Div(project.Value).Mul(hundred).Round(0).IntPart()
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return int(pct)
	}
}

// DaysRemaining returns the whole calendar days from today to the project's
// end date. It is negative once the project is overdue.
func DaysRemaining(project *entity.Project, today time.Time) int {
	return calendarDaysBetween(today, project.EndDate)
}

func calendarDaysBetween(from, to time.Time) int {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// TransactionTotals partitions transactions by type and sums them.
func TransactionTotals(transactions []*entity.Transaction) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range transactions {
		if t.IsIncome() {
			totals.Income = totals.Income.Add(t.Amount)
			totals.IncomeCount++
		} else {
			totals.Expense = totals.Expense.Add(t.Amount)
			totals.ExpenseCount++
		}
	}
	totals.Balance = totals.Income.Sub(totals.Expense)
	totals.Margin = Margin(totals.Income, totals.Balance)
	return totals
}

// Margin returns profit as a percentage of income, rounded to one decimal place.
func Margin(income, profit decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(income).Mul(hundred).Round(1)
}

// MonthlyBreakdown groups transactions by the "YYYY-MM" of their date.
func MonthlyBreakdown(transactions []*entity.Transaction) map[string]MonthTotals {
	months := make(map[string]MonthTotals)
	for _, t := range transactions {
		key := t.Date.Format(MonthKeyLayout)
		month := months[key]
		if t.IsIncome() {
			month.Income = month.Income.Add(t.Amount)
		} else {
			month.Expense = month.Expense.Add(t.Amount)
		}
		months[key] = month
	}
	return months
}

// SortedMonths returns the keys of a breakdown in chronological order.
func SortedMonths(breakdown map[string]MonthTotals) []string {
	keys := make([]string, 0, len(breakdown))
	for key := range breakdown {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CategoryBreakdown sums transactions per type and category, largest amount first.
func CategoryBreakdown(transactions []*entity.Transaction) []CategoryTotals {
	type key struct {
		t        entity.TransactionType
		category string
	}

	index := make(map[key]int)
	var out []CategoryTotals
	for _, t := range transactions {
		k := key{t.Type, t.Category}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, CategoryTotals{Category: t.Category, Type: t.Type, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(t.Amount)
		out[i].Count++
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

// UpcomingDeadlines returns ongoing projects due within (0, windowDays] days,
// soonest first.
func UpcomingDeadlines(projects []*entity.Project, today time.Time, windowDays int) []ProjectDeadline {
	var out []ProjectDeadline
	for _, p := range projects {
		if p.Status != entity.ProjectStatusOngoing {
			continue
		}
		if days := DaysRemaining(p, today); days > 0 && days <= windowDays {
			out = append(out, ProjectDeadline{Project: p, DaysRemaining: days})
		}
	}
	sortByEndDate(out)
	return out
}

// OverdueProjects returns ongoing projects whose end date has passed, most overdue first.
func OverdueProjects(projects []*entity.Project, today time.Time) []ProjectDeadline {
	var out []ProjectDeadline
	for _, p := range projects {
		if p.Status != entity.ProjectStatusOngoing {
			continue
		}
		if days := DaysRemaining(p, today); days < 0 {
			out = append(out, ProjectDeadline{Project: p, DaysRemaining: days})
		}
	}
	sortByEndDate(out)
	return out
}

func sortByEndDate(deadlines []ProjectDeadline) {
	sort.SliceStable(deadlines, func(i, j int) bool {
		return deadlines[i].Project.EndDate.Before(deadlines[j].Project.EndDate)
	})
}

// ProjectStats summarises one project from its own transactions.
func ProjectStats(project *entity.Project, transactions []*entity.Transaction) ProjectStatistics {
	return ProjectStatistics{
		Totals:           TransactionTotals(transactions),
		TaxAmount:        project.TaxAmount(),
		TotalWithTax:     project.TotalWithTax(),
		RemainingPayment: project.RemainingPayment(),
		Progress:         ProjectProgress(project),
		TransactionCount: len(transactions),
	}
}

// ProjectTotals summarises a set of projects.
func ProjectTotals(projects []*entity.Project) PortfolioTotals {
	totals := PortfolioTotals{
		ByStatus:   make(map[entity.ProjectStatus]int, len(entity.ProjectStatuses)),
		Value:      decimal.Zero,
		PaidAmount: decimal.Zero,
		TaxAmount:  decimal.Zero,
	}
	for _, p := range projects {
		totals.Count++
		totals.ByStatus[p.Status]++
		totals.Value = totals.Value.Add(p.Value)
		totals.PaidAmount = totals.PaidAmount.Add(p.PaidAmount)
		totals.TaxAmount = totals.TaxAmount.Add(p.TaxAmount())
	}
	return totals
}

// InDateRange returns the transactions dated on or after start's day and on or
// before the end of end's day.
func InDateRange(transactions []*entity.Transaction, start, end time.Time) []*entity.Transaction {
	from, until := DayBounds(start, end)

	var out []*entity.Transaction
	for _, t := range transactions {
		if !t.Date.Before(from) && t.Date.Before(until) {
			out = append(out, t)
		}
	}
	return out
}

// DayBounds returns the start of start's day and the start of the day after end.
func DayBounds(start, end time.Time) (time.Time, time.Time) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	until := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1)
	return from, until
}

// DateRangeTotals totals the transactions falling inside [start, end], whole end day included.
func DateRangeTotals(transactions []*entity.Transaction, start, end time.Time) Totals {
	return TransactionTotals(InDateRange(transactions, start, end))
}

// RecentTransactions returns the n most recent transactions by date.
func RecentTransactions(transactions []*entity.Transaction, n int) []*entity.Transaction {
	sorted := make([]*entity.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].Date.After(sorted[j].Date)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

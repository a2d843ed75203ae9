package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-ledger/backend/internal/domain/entity"
)

var today = time.Date(2024, 6, 15, 16, 45, 0, 0, time.UTC)

func project(status entity.ProjectStatus, value, paid int64, end time.Time) *entity.Project {
	return &entity.Project{
		ID:         uuid.New(),
		Name:       "Instalasi Panel " + string(status),
		Partner:    "PT Mitra",
		Status:     status,
		Value:      decimal.NewFromInt(value),
		TaxRate:    entity.TaxRateStandard,
		PaidAmount: decimal.NewFromInt(paid),
		StartDate:  end.AddDate(0, -6, 0),
		EndDate:    end,
	}
}

func txn(kind entity.TransactionType, category string, amount int64, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:        uuid.New(),
		ProjectID: uuid.New(),
		Date:      date,
		Type:      kind,
		Category:  category,
		Amount:    decimal.NewFromInt(amount),
		CreatedAt: date,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProjectProgress(t *testing.T) {
	tests := []struct {
		name     string
		project  *entity.Project
		expected int
	}{
		{"zero value returns zero", project(entity.ProjectStatusOngoing, 0, 500_000, today), 0},
		{"nothing paid", project(entity.ProjectStatusOngoing, 1_000_000, 0, today), 0},
		{"rounds half up", project(entity.ProjectStatusOngoing, 1_000, 305, today), 31},
		{"rounds down", project(entity.ProjectStatusOngoing, 1_000, 304, today), 30},
		{"overpayment clamps to 100", project(entity.ProjectStatusOngoing, 1_000_000, 1_500_000, today), 100},
		{"complete overrides numbers", project(entity.ProjectStatusComplete, 1_000_000, 10, today), 100},
		{"complete with zero value", project(entity.ProjectStatusComplete, 0, 0, today), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectProgress(tt.project)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		name     string
		end      time.Time
		expected int
	}{
		{"same day ignores time of day", time.Date(2024, 6, 15, 1, 0, 0, 0, time.UTC), 0},
		{"tomorrow", time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), 1},
		{"across month end", day(2024, 7, 15), 30},
		{"overdue", day(2024, 6, 10), -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := project(entity.ProjectStatusOngoing, 1, 0, tt.end)
			assert.Equal(t, tt.expected, DaysRemaining(p, today))
		})
	}
}

func TestTransactionTotals(t *testing.T) {
	transactions := []*entity.Transaction{
		txn(entity.TransactionTypeIncome, entity.CategoryPayment, 800_000, day(2024, 5, 1)),
		txn(entity.TransactionTypeIncome, entity.CategoryProject, 200_000, day(2024, 5, 3)),
		txn(entity.TransactionTypeExpense, entity.CategoryMaterial, 350_000, day(2024, 5, 4)),
	}

	totals := TransactionTotals(transactions)

	assert.True(t, decimal.NewFromInt(1_000_000).Equal(totals.Income))
	assert.True(t, decimal.NewFromInt(350_000).Equal(totals.Expense))
	assert.True(t, decimal.NewFromInt(650_000).Equal(totals.Balance))
	assert.True(t, decimal.NewFromInt(65).Equal(totals.Margin), "margin: %s", totals.Margin)
	assert.Equal(t, 2, totals.IncomeCount)
	assert.Equal(t, 1, totals.ExpenseCount)
}

func TestTransactionTotals_Empty(t *testing.T) {
	totals := TransactionTotals(nil)

	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expense.IsZero())
	assert.True(t, totals.Balance.IsZero())
	assert.True(t, totals.Margin.IsZero())
}

func TestMargin(t *testing.T) {
	assert.True(t, Margin(decimal.Zero, decimal.NewFromInt(-10)).IsZero())
	assert.Equal(t, "33.3", Margin(decimal.NewFromInt(3), decimal.NewFromInt(1)).String())
	assert.Equal(t, "-50", Margin(decimal.NewFromInt(100), decimal.NewFromInt(-50)).String())
}

func TestMonthlyBreakdown(t *testing.T) {
	transactions := []*entity.Transaction{
		txn(entity.TransactionTypeIncome, entity.CategoryPayment, 100, day(2024, 5, 1)),
		txn(entity.TransactionTypeExpense, entity.CategoryMaterial, 40, time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC)),
		txn(entity.TransactionTypeIncome, entity.CategoryPayment, 70, day(2024, 6, 1)),
		txn(entity.TransactionTypeIncome, entity.CategoryPayment, 5, day(2023, 12, 9)),
	}

	breakdown := MonthlyBreakdown(transactions)

	require.Len(t, breakdown, 3)
	assert.True(t, decimal.NewFromInt(100).Equal(breakdown["2024-05"].Income))
	assert.True(t, decimal.NewFromInt(40).Equal(breakdown["2024-05"].Expense))
	assert.True(t, decimal.NewFromInt(70).Equal(breakdown["2024-06"].Income))
	assert.True(t, breakdown["2024-06"].Expense.IsZero())
	assert.Equal(t, []string{"2023-12", "2024-05", "2024-06"}, SortedMonths(breakdown))
}

func TestUpcomingDeadlines(t *testing.T) {
	in10 := project(entity.ProjectStatusOngoing, 1, 0, today.AddDate(0, 0, 10))
	in30 := project(entity.ProjectStatusOngoing, 1, 0, today.AddDate(0, 0, 30))
	in3 := project(entity.ProjectStatusOngoing, 1, 0, today.AddDate(0, 0, 3))
	in31 := project(entity.ProjectStatusOngoing, 1, 0, today.AddDate(0, 0, 31))
	dueToday := project(entity.ProjectStatusOngoing, 1, 0, today)
	overdue := project(entity.ProjectStatusOngoing, 1, 0, today.AddDate(0, 0, -2))
	retention := project(entity.ProjectStatusRetention, 1, 0, today.AddDate(0, 0, 5))

	upcoming := UpcomingDeadlines([]*entity.Project{in10, in30, in3, in31, dueToday, overdue, retention}, today, DeadlineWarningDays)

	require.Len(t, upcoming, 3)
	assert.Equal(t, in3.ID, upcoming[0].Project.ID)
	assert.Equal(t, 3, upcoming[0].DaysRemaining)
	assert.Equal(t, in10.ID, upcoming[1].Project.ID)
	assert.Equal(t, in30.ID, upcoming[2].Project.ID)
	assert.Equal(t, 30, upcoming[2].DaysRemaining)
}

func TestOverdueProjects(t *testing.T) {
	late2 := project(entity.ProjectStatusOngoing, 1, 0, today.AddDate(0, 0, -2))
	late9 := project(entity.ProjectStatusOngoing, 1, 0, today.AddDate(0, 0, -9))
	done := project(entity.ProjectStatusComplete, 1, 1, today.AddDate(0, 0, -9))
	dueToday := project(entity.ProjectStatusOngoing, 1, 0, today)

	overdue := OverdueProjects([]*entity.Project{late2, done, late9, dueToday}, today)

	require.Len(t, overdue, 2)
	assert.Equal(t, late9.ID, overdue[0].Project.ID)
	assert.Equal(t, -9, overdue[0].DaysRemaining)
	assert.Equal(t, late2.ID, overdue[1].Project.ID)
}

func TestCategoryBreakdown(t *testing.T) {
	transactions := []*entity.Transaction{
		txn(entity.TransactionTypeExpense, entity.CategoryMaterial, 100, day(2024, 5, 1)),
		txn(entity.TransactionTypeExpense, entity.CategoryWages, 300, day(2024, 5, 1)),
		txn(entity.TransactionTypeExpense, entity.CategoryMaterial, 250, day(2024, 5, 2)),
		txn(entity.TransactionTypeIncome, entity.CategoryPayment, 1_000, day(2024, 5, 2)),
	}

	breakdown := CategoryBreakdown(transactions)

	require.Len(t, breakdown, 3)
	assert.Equal(t, entity.CategoryPayment, breakdown[0].Category)
	assert.Equal(t, entity.CategoryMaterial, breakdown[1].Category)
	assert.True(t, decimal.NewFromInt(350).Equal(breakdown[1].Amount))
	assert.Equal(t, 2, breakdown[1].Count)
	assert.Equal(t, entity.CategoryWages, breakdown[2].Category)
}

func TestProjectStats(t *testing.T) {
	p := project(entity.ProjectStatusOngoing, 1_000_000, 300_000, today.AddDate(0, 1, 0))
	transactions := []*entity.Transaction{
		txn(entity.TransactionTypeIncome, entity.CategoryPayment, 300_000, day(2024, 5, 1)),
		txn(entity.TransactionTypeExpense, entity.CategoryMaterial, 120_000, day(2024, 5, 2)),
	}

	stats := ProjectStats(p, transactions)

	assert.True(t, decimal.NewFromInt(110_000).Equal(stats.TaxAmount))
	assert.True(t, decimal.NewFromInt(1_110_000).Equal(stats.TotalWithTax))
	assert.True(t, decimal.NewFromInt(700_000).Equal(stats.RemainingPayment))
	assert.True(t, decimal.NewFromInt(180_000).Equal(stats.Balance))
	assert.Equal(t, 30, stats.Progress)
	assert.Equal(t, 2, stats.TransactionCount)
}

func TestProjectTotals(t *testing.T) {
	a := project(entity.ProjectStatusOngoing, 1_000_000, 250_000, today)
	b := project(entity.ProjectStatusComplete, 500_000, 500_000, today)
	b.TaxRate = entity.TaxRateNone

	totals := ProjectTotals([]*entity.Project{a, b})

	assert.Equal(t, 2, totals.Count)
	assert.Equal(t, 1, totals.ByStatus[entity.ProjectStatusOngoing])
	assert.Equal(t, 1, totals.ByStatus[entity.ProjectStatusComplete])
	assert.True(t, decimal.NewFromInt(1_500_000).Equal(totals.Value))
	assert.True(t, decimal.NewFromInt(750_000).Equal(totals.PaidAmount))
	assert.True(t, decimal.NewFromInt(110_000).Equal(totals.TaxAmount))
}

func TestDateRangeTotals_IncludesWholeEndDay(t *testing.T) {
	transactions := []*entity.Transaction{
		txn(entity.TransactionTypeIncome, entity.CategoryPayment, 1, time.Date(2024, 4, 30, 23, 59, 0, 0, time.UTC)),
		txn(entity.TransactionTypeIncome, entity.CategoryPayment, 10, day(2024, 5, 1)),
		txn(entity.TransactionTypeExpense, entity.CategoryMaterial, 4, time.Date(2024, 5, 31, 23, 30, 0, 0, time.UTC)),
		txn(entity.TransactionTypeIncome, entity.CategoryPayment, 100, day(2024, 6, 1)),
	}

	totals := DateRangeTotals(transactions, day(2024, 5, 1), day(2024, 5, 31))

	assert.True(t, decimal.NewFromInt(10).Equal(totals.Income))
	assert.True(t, decimal.NewFromInt(4).Equal(totals.Expense))
}

func TestRecentTransactions(t *testing.T) {
	oldest := txn(entity.TransactionTypeIncome, entity.CategoryPayment, 1, day(2024, 1, 1))
	middle := txn(entity.TransactionTypeIncome, entity.CategoryPayment, 1, day(2024, 2, 1))
	newest := txn(entity.TransactionTypeIncome, entity.CategoryPayment, 1, day(2024, 3, 1))
	input := []*entity.Transaction{middle, oldest, newest}

	recent := RecentTransactions(input, 2)

	require.Len(t, recent, 2)
	assert.Equal(t, newest.ID, recent[0].ID)
	assert.Equal(t, middle.ID, recent[1].ID)
	assert.Equal(t, middle.ID, input[0].ID, "input must not be reordered")
	assert.Len(t, RecentTransactions(input, 10), 3)
}

package dto

import (
	"github.com/project-ledger/backend/internal/application/usecase/report"
)

// TotalsResponse summarises a set of transactions.
type TotalsResponse struct {
	Income       string `json:"income"`
	Expense      string `json:"expense"`
	Balance      string `json:"balance"`
	Margin       string `json:"margin"`
	IncomeCount  int    `json:"income_count"`
	ExpenseCount int    `json:"expense_count"`
}

// PortfolioResponse summarises all projects.
type PortfolioResponse struct {
	Count      int            `json:"count"`
	ByStatus   map[string]int `json:"by_status"`
	Value      string         `json:"value"`
	PaidAmount string         `json:"paid_amount"`
	TaxAmount  string         `json:"tax_amount"`
}

// MonthResponse is one month of the income/expense chart.
type MonthResponse struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// CategoryTotalsResponse holds the sums of one category.
type CategoryTotalsResponse struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Count    int    `json:"count"`
}

// DeadlineResponse is a project with its days until the end date.
// DaysRemaining is negative for overdue projects.
type DeadlineResponse struct {
	ProjectID     string `json:"project_id"`
	Name          string `json:"name"`
	Partner       string `json:"partner"`
	EndDate       string `json:"end_date"`
	DaysRemaining int    `json:"days_remaining"`
	Progress      int    `json:"progress"`
}

// DashboardResponse represents the dashboard API response.
type DashboardResponse struct {
	Totals     TotalsResponse           `json:"totals"`
	Projects   PortfolioResponse        `json:"projects"`
	Months     []MonthResponse          `json:"months"`
	Categories []CategoryTotalsResponse `json:"categories"`
	Upcoming   []DeadlineResponse       `json:"upcoming_deadlines"`
	Overdue    []DeadlineResponse       `json:"overdue_projects"`
	Recent     []TransactionResponse    `json:"recent_transactions"`
}

// DeadlinesResponse represents the deadlines API response.
type DeadlinesResponse struct {
	WindowDays int                `json:"window_days"`
	Upcoming   []DeadlineResponse `json:"upcoming"`
	Overdue    []DeadlineResponse `json:"overdue"`
}

// DateRangeResponse represents totals over a date range.
type DateRangeResponse struct {
	StartDate    string                   `json:"start_date"`
	EndDate      string                   `json:"end_date"`
	Totals       TotalsResponse           `json:"totals"`
	Categories   []CategoryTotalsResponse `json:"categories"`
	Transactions []TransactionResponse    `json:"transactions"`
}

// RemindersResponse reports a manual reminder run.
type RemindersResponse struct {
	Upcoming   int `json:"upcoming"`
	Overdue    int `json:"overdue"`
	Recipients int `json:"recipients"`
}

// ToTotalsResponse converts report totals.
func ToTotalsResponse(t report.Totals) TotalsResponse {
	return TotalsResponse{
		Income:       t.Income.StringFixed(2),
		Expense:      t.Expense.StringFixed(2),
		Balance:      t.Balance.StringFixed(2),
		Margin:       t.Margin.StringFixed(1),
		IncomeCount:  t.IncomeCount,
		ExpenseCount: t.ExpenseCount,
	}
}

func toCategoryResponses(categories []report.CategoryTotals) []CategoryTotalsResponse {
	responses := make([]CategoryTotalsResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, CategoryTotalsResponse{
			Category: c.Category,
			Type:     string(c.Type),
			Amount:   c.Amount.StringFixed(2),
			Count:    c.Count,
		})
	}
	return responses
}

func toDeadlineResponses(deadlines []report.ProjectDeadline) []DeadlineResponse {
	responses := make([]DeadlineResponse, 0, len(deadlines))
	for _, d := range deadlines {
		responses = append(responses, DeadlineResponse{
			ProjectID:     d.Project.ID.String(),
			Name:          d.Project.Name,
			Partner:       d.Project.Partner,
			EndDate:       formatDay(d.Project.EndDate),
			DaysRemaining: d.DaysRemaining,
			Progress:      report.ProjectProgress(d.Project),
		})
	}
	return responses
}

// ToDashboardResponse converts the dashboard output.
func ToDashboardResponse(output *report.GetDashboardOutput) DashboardResponse {
	byStatus := make(map[string]int, len(output.Projects.ByStatus))
	for status, count := range output.Projects.ByStatus {
		byStatus[string(status)] = count
	}

	months := make([]MonthResponse, 0, len(output.Months))
	for _, m := range output.Months {
		months = append(months, MonthResponse{
			Month:   m.Month,
			Income:  m.Income.StringFixed(2),
			Expense: m.Expense.StringFixed(2),
		})
	}

	return DashboardResponse{
		Totals: ToTotalsResponse(output.Totals),
		Projects: PortfolioResponse{
			Count:      output.Projects.Count,
			ByStatus:   byStatus,
			Value:      output.Projects.Value.StringFixed(2),
			PaidAmount: output.Projects.PaidAmount.StringFixed(2),
			TaxAmount:  output.Projects.TaxAmount.StringFixed(2),
		},
		Months:     months,
		Categories: toCategoryResponses(output.Categories),
		Upcoming:   toDeadlineResponses(output.Upcoming),
		Overdue:    toDeadlineResponses(output.Overdue),
		Recent:     ToTransactionResponses(output.Recent),
	}
}

// ToDeadlinesResponse converts the deadlines output.
func ToDeadlinesResponse(output *report.GetDeadlinesOutput) DeadlinesResponse {
	return DeadlinesResponse{
		WindowDays: output.WindowDays,
		Upcoming:   toDeadlineResponses(output.Upcoming),
		Overdue:    toDeadlineResponses(output.Overdue),
	}
}

// ToDateRangeResponse converts the date range output.
func ToDateRangeResponse(output *report.GetDateRangeOutput) DateRangeResponse {
	return DateRangeResponse{
		StartDate:    output.StartDate.Format("2006-01-02"),
		EndDate:      output.EndDate.Format("2006-01-02"),
		Totals:       ToTotalsResponse(output.Totals),
		Categories:   toCategoryResponses(output.Categories),
		Transactions: ToTransactionResponses(output.Transactions),
	}
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/application/usecase/project"
	"github.com/project-ledger/backend/internal/application/usecase/report"
	"github.com/project-ledger/backend/internal/domain/entity"
)

// CreateProjectRequest represents the request body for project creation.
type CreateProjectRequest struct {
	Name           string          `json:"name" binding:"required,max=255"`
	Partner        string          `json:"partner" binding:"required,max=255"`
	Status         string          `json:"status" binding:"required,project_status"`
	Value          decimal.Decimal `json:"value"`
	TaxRate        int             `json:"tax_rate" binding:"tax_rate"`
	StartDate      string          `json:"start_date" binding:"required"`
	EndDate        string          `json:"end_date" binding:"required"`
	ContractNumber string          `json:"contract_number" binding:"max=100"`
	Description    string          `json:"description" binding:"max=2000"`
}

// UpdateProjectRequest represents the request body for project update. The
// paid amount is not accepted; it only changes through transactions.
type UpdateProjectRequest struct {
	Name           *string          `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Partner        *string          `json:"partner,omitempty" binding:"omitempty,min=1,max=255"`
	Status         *string          `json:"status,omitempty" binding:"omitempty,project_status"`
	Value          *decimal.Decimal `json:"value,omitempty"`
	TaxRate        *int             `json:"tax_rate,omitempty" binding:"omitempty,tax_rate"`
	StartDate      *string          `json:"start_date,omitempty"`
	EndDate        *string          `json:"end_date,omitempty"`
	ContractNumber *string          `json:"contract_number,omitempty" binding:"omitempty,max=100"`
	Description    *string          `json:"description,omitempty" binding:"omitempty,max=2000"`
}

// EmailReportRequest represents the request body for e-mailing a project report.
type EmailReportRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	RecipientName  string `json:"recipient_name" binding:"max=100"`
}

// AuditResponse tells who created and last changed a record.
type AuditResponse struct {
	CreatedBy string `json:"created_by"`
	UpdatedBy string `json:"updated_by"`
}

// ProjectResponse represents a single project in API responses.
type ProjectResponse struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Partner          string        `json:"partner"`
	Status           string        `json:"status"`
	StatusLabel      string        `json:"status_label"`
	Value            string        `json:"value"`
	TaxRate          int           `json:"tax_rate"`
	TaxAmount        string        `json:"tax_amount"`
	TotalWithTax     string        `json:"total_with_tax"`
	PaidAmount       string        `json:"paid_amount"`
	RemainingPayment string        `json:"remaining_payment"`
	Progress         int           `json:"progress"`
	StartDate        string        `json:"start_date"`
	EndDate          string        `json:"end_date"`
	ContractNumber   string        `json:"contract_number"`
	Description      string        `json:"description"`
	Audit            AuditResponse `json:"audit"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// ProjectStatsResponse is the financial summary of one project.
type ProjectStatsResponse struct {
	Income           string `json:"income"`
	Expense          string `json:"expense"`
	Balance          string `json:"balance"`
	Margin           string `json:"margin"`
	IncomeCount      int    `json:"income_count"`
	ExpenseCount     int    `json:"expense_count"`
	TaxAmount        string `json:"tax_amount"`
	TotalWithTax     string `json:"total_with_tax"`
	RemainingPayment string `json:"remaining_payment"`
	Progress         int    `json:"progress"`
	TransactionCount int    `json:"transaction_count"`
}

// ProjectDetailResponse is a project with its transactions and summary.
type ProjectDetailResponse struct {
	Project      ProjectResponse       `json:"project"`
	Stats        ProjectStatsResponse  `json:"stats"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ProjectListResponse represents the response for listing projects.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
}

// DeleteProjectResponse reports what a cascade delete removed.
type DeleteProjectResponse struct {
	DeletedTransactions int `json:"deleted_transactions"`
	OrphanedImages      int `json:"orphaned_images"`
}

// ShareResponse holds a WhatsApp share message and link.
type ShareResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// ToProjectResponse converts a Project entity to a ProjectResponse DTO.
func ToProjectResponse(p *entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		Partner:          p.Partner,
		Status:           string(p.Status),
		StatusLabel:      p.Status.Label(),
		Value:            p.Value.StringFixed(2),
		TaxRate:          p.TaxRate,
		TaxAmount:        p.TaxAmount().StringFixed(2),
		TotalWithTax:     p.TotalWithTax().StringFixed(2),
		PaidAmount:       p.PaidAmount.StringFixed(2),
		RemainingPayment: p.RemainingPayment().StringFixed(2),
		Progress:         report.ProjectProgress(p),
		StartDate:        formatDay(p.StartDate),
		EndDate:          formatDay(p.EndDate),
		ContractNumber:   p.ContractNumber,
		Description:      p.Description,
		Audit: AuditResponse{
			CreatedBy: p.Audit.CreatedByEmail,
			UpdatedBy: p.Audit.UpdatedByEmail,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProjectListResponse converts the list output to a ProjectListResponse DTO.
func ToProjectListResponse(output *project.ListProjectsOutput) ProjectListResponse {
	projects := make([]ProjectResponse, 0, len(output.Projects))
	for _, summary := range output.Projects {
		projects = append(projects, ToProjectResponse(summary.Project))
	}
	return ProjectListResponse{
		Projects: projects,
		Total:    len(projects),
	}
}

// ToProjectDetailResponse converts the detail output to a ProjectDetailResponse DTO.
func ToProjectDetailResponse(output *project.GetProjectOutput) ProjectDetailResponse {
	stats := output.Stats
	return ProjectDetailResponse{
		Project: ToProjectResponse(output.Project),
		Stats: ProjectStatsResponse{
			Income:           stats.Income.StringFixed(2),
			Expense:          stats.Expense.StringFixed(2),
			Balance:          stats.Balance.StringFixed(2),
			Margin:           stats.Margin.StringFixed(1),
			IncomeCount:      stats.IncomeCount,
			ExpenseCount:     stats.ExpenseCount,
			TaxAmount:        stats.TaxAmount.StringFixed(2),
			TotalWithTax:     stats.TotalWithTax.StringFixed(2),
			RemainingPayment: stats.RemainingPayment.StringFixed(2),
			Progress:         stats.Progress,
			TransactionCount: stats.TransactionCount,
		},
		Transactions: ToTransactionResponses(output.Transactions),
	}
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

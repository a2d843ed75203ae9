package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// projectSnapshot is a project together with its transactions, oldest first.
type projectSnapshot struct {
	project      *entity.Project
	transactions []*entity.Transaction
}

func loadProjectSnapshot(
	ctx context.Context,
	projectRepo adapter.ProjectRepository,
	transactionRepo adapter.TransactionRepository,
	projectID uuid.UUID,
) (*projectSnapshot, error) {
	project, err := projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProjectNotFound) {
			return nil, domainerror.NewReportError(
				domainerror.ErrCodeReportProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	transactions, err := transactionRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project transactions: %w", err)
	}

	// Reports read chronologically; the store returns newest first.
	ordered := make([]*entity.Transaction, len(transactions))
	for i, t := range transactions {
		ordered[len(transactions)-1-i] = t
	}
	return &projectSnapshot{project: project, transactions: ordered}, nil
}

// BuildProjectReportData formats a project and its transactions for rendering.
func BuildProjectReportData(project *entity.Project, transactions []*entity.Transaction, generatedAt time.Time) *adapter.ProjectReportData {
	stats := ProjectStats(project, transactions)

	contract := project.ContractNumber
	if contract == "" {
		contract = "-"
	}

	rows := make([]adapter.ProjectReportRow, 0, len(transactions))
	for _, t := range transactions {
		sign := "-"
		if t.IsIncome() {
			sign = "+"
		}
		rows = append(rows, adapter.ProjectReportRow{
			Date:        FormatDate(t.Date),
			Type:        t.Type.Label(),
			Category:    t.Category,
			Description: t.Description,
			Amount:      sign + FormatIDR(t.Amount),
		})
	}

	return &adapter.ProjectReportData{
		Name:           project.Name,
		Partner:        project.Partner,
		Status:         project.Status.Label(),
		ContractNumber: contract,
		Period:         FormatPeriod(project.StartDate, project.EndDate),
		TaxRate:        project.TaxRate,
		ProjectValue:   FormatIDR(project.Value),
		TaxAmount:      FormatIDR(stats.TaxAmount),
		TotalWithTax:   FormatIDR(stats.TotalWithTax),
		TotalIncome:    FormatIDR(stats.Income),
		TotalExpense:   FormatIDR(stats.Expense),
		Balance:        FormatIDR(stats.Balance),
		Progress:       stats.Progress,
		GeneratedAt:    generatedAt.Format("02/01/2006 15:04"),
		Rows:           rows,
	}
}

// ReportFileName returns the download name of a project's PDF report.
func ReportFileName(project *entity.Project, day time.Time) string {
	return fmt.Sprintf("Laporan_%s_%s.pdf", unsafeFileChars.ReplaceAllString(project.Name, "_"), day.Format("2006-01-02"))
}

// GenerateProjectReportOutput holds a rendered PDF.
type GenerateProjectReportOutput struct {
	FileName string
	Content  []byte
}

// GenerateProjectReportUseCase handles rendering a project's PDF report.
type GenerateProjectReportUseCase struct {
	projectRepo     adapter.ProjectRepository
	transactionRepo adapter.TransactionRepository
	renderer        adapter.ReportRenderer
}

// NewGenerateProjectReportUseCase creates a new GenerateProjectReportUseCase instance.
func NewGenerateProjectReportUseCase(
	projectRepo adapter.ProjectRepository,
	transactionRepo adapter.TransactionRepository,
	renderer adapter.ReportRenderer,
) *GenerateProjectReportUseCase {
	return &GenerateProjectReportUseCase{
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
		renderer:        renderer,
	}
}

// Execute renders the report of one project.
func (uc *GenerateProjectReportUseCase) Execute(ctx context.Context, projectID uuid.UUID) (*GenerateProjectReportOutput, error) {
	snapshot, err := loadProjectSnapshot(ctx, uc.projectRepo, uc.transactionRepo, projectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	data := BuildProjectReportData(snapshot.project, snapshot.transactions, now)

	var buf bytes.Buffer
	if err := uc.renderer.RenderProjectReport(&buf, data); err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeReportInternalError,
			"failed to render report",
			err,
		)
	}

	return &GenerateProjectReportOutput{
		FileName: ReportFileName(snapshot.project, now),
		Content:  buf.Bytes(),
	}, nil
}

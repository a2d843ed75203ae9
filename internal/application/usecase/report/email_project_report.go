package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// EmailProjectReportInput represents the input for e-mailing a project summary.
type EmailProjectReportInput struct {
	ProjectID      uuid.UUID
	RecipientEmail string
	RecipientName  string
}

// EmailProjectReportUseCase handles queueing a project summary e-mail.
type EmailProjectReportUseCase struct {
	projectRepo     adapter.ProjectRepository
	transactionRepo adapter.TransactionRepository
	emailService    adapter.EmailService
	appURL          string
}

// NewEmailProjectReportUseCase creates a new EmailProjectReportUseCase instance.
func NewEmailProjectReportUseCase(
	projectRepo adapter.ProjectRepository,
	transactionRepo adapter.TransactionRepository,
	emailService adapter.EmailService,
	appURL string,
) *EmailProjectReportUseCase {
	return &EmailProjectReportUseCase{
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
		emailService:    emailService,
		appURL:          appURL,
	}
}

// Execute queues the summary. Delivery happens in the e-mail worker.
func (uc *EmailProjectReportUseCase) Execute(ctx context.Context, input EmailProjectReportInput) error {
	if strings.TrimSpace(input.RecipientEmail) == "" {
		return domainerror.NewReportError(
			domainerror.ErrCodeMissingRecipient,
			"recipient email is required",
			domainerror.ErrMissingRecipient,
		)
	}

	snapshot, err := loadProjectSnapshot(ctx, uc.projectRepo, uc.transactionRepo, input.ProjectID)
	if err != nil {
		return err
	}

	projectURL := ProjectURL(uc.appURL, input.ProjectID)
	err = uc.emailService.QueueProjectReportEmail(ctx, adapter.QueueProjectReportInput{
		RecipientEmail: input.RecipientEmail,
		RecipientName:  input.RecipientName,
		ProjectName:    snapshot.project.Name,
		Summary:        ShareMessage(snapshot.project, snapshot.transactions, ""),
		ProjectURL:     projectURL,
	})
	if err != nil {
		return fmt.Errorf("failed to queue project report email: %w", err)
	}

	slog.Info("Project report email queued",
		"project_id", input.ProjectID,
		"recipient", input.RecipientEmail,
	)
	return nil
}

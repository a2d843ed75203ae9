package report

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
)

// ShareProjectOutput holds a WhatsApp share message and its link.
type ShareProjectOutput struct {
	Message string
	URL     string
}

// ShareProjectUseCase handles building a project's WhatsApp share link.
type ShareProjectUseCase struct {
	projectRepo     adapter.ProjectRepository
	transactionRepo adapter.TransactionRepository
	appURL          string
}

// NewShareProjectUseCase creates a new ShareProjectUseCase instance. appURL is
// the frontend origin used for the project detail link and may be empty.
func NewShareProjectUseCase(
	projectRepo adapter.ProjectRepository,
	transactionRepo adapter.TransactionRepository,
	appURL string,
) *ShareProjectUseCase {
	return &ShareProjectUseCase{
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
		appURL:          strings.TrimRight(appURL, "/"),
	}
}

// Execute builds the share message of one project.
func (uc *ShareProjectUseCase) Execute(ctx context.Context, projectID uuid.UUID) (*ShareProjectOutput, error) {
	snapshot, err := loadProjectSnapshot(ctx, uc.projectRepo, uc.transactionRepo, projectID)
	if err != nil {
		return nil, err
	}

	message := ShareMessage(snapshot.project, snapshot.transactions, ProjectURL(uc.appURL, projectID))
	return &ShareProjectOutput{
		Message: message,
		URL:     ShareURL(message),
	}, nil
}

// ProjectURL returns the frontend link to a project, or "" without an app URL.
func ProjectURL(appURL string, projectID uuid.UUID) string {
	if appURL == "" {
		return ""
	}
	return strings.TrimRight(appURL, "/") + "/projects/" + projectID.String()
}

package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
)

// SendDeadlineRemindersInput represents the input for queueing deadline digests.
type SendDeadlineRemindersInput struct {
	Today      time.Time
	WindowDays int
}

// SendDeadlineRemindersOutput reports what was queued.
type SendDeadlineRemindersOutput struct {
	Upcoming   int
	Overdue    int
	Recipients int
}

// SendDeadlineRemindersUseCase queues one deadline digest e-mail per admin.
type SendDeadlineRemindersUseCase struct {
	projectRepo  adapter.ProjectRepository
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
	appURL       string
}

// NewSendDeadlineRemindersUseCase creates a new SendDeadlineRemindersUseCase instance.
func NewSendDeadlineRemindersUseCase(
	projectRepo adapter.ProjectRepository,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
	appURL string,
) *SendDeadlineRemindersUseCase {
	return &SendDeadlineRemindersUseCase{
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		emailService: emailService,
		appURL:       appURL,
	}
}

// Execute queues the digest. Nothing is queued when no project is due or overdue.
func (uc *SendDeadlineRemindersUseCase) Execute(ctx context.Context, input SendDeadlineRemindersInput) (*SendDeadlineRemindersOutput, error) {
	if input.Today.IsZero() {
		input.Today = time.Now()
	}
	if input.WindowDays <= 0 {
		input.WindowDays = DeadlineWarningDays
	}

	status := entity.ProjectStatusOngoing
	projects, err := uc.projectRepo.FindAll(ctx, entity.ProjectFilter{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	upcoming := digestItems(UpcomingDeadlines(projects, input.Today, input.WindowDays))
	overdue := digestItems(OverdueProjects(projects, input.Today))

	output := &SendDeadlineRemindersOutput{Upcoming: len(upcoming), Overdue: len(overdue)}
	if len(upcoming) == 0 && len(overdue) == 0 {
		return output, nil
	}

	admins, err := uc.userRepo.FindByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	for _, admin := range admins {
		err := uc.emailService.QueueDeadlineDigestEmail(ctx, adapter.QueueDeadlineDigestInput{
			RecipientEmail: admin.Email,
			RecipientName:  admin.Name,
			Upcoming:       upcoming,
			Overdue:        overdue,
			DashboardURL:   uc.appURL,
		})
		if err != nil {
			slog.Error("Failed to queue deadline digest",
				"user_id", admin.ID,
				"error", err,
			)
			continue
		}
		output.Recipients++
	}

	slog.Info("Deadline digests queued",
		"upcoming", output.Upcoming,
		"overdue", output.Overdue,
		"recipients", output.Recipients,
	)
	return output, nil
}

func digestItems(deadlines []ProjectDeadline) []adapter.DeadlineDigestItem {
	items := make([]adapter.DeadlineDigestItem, 0, len(deadlines))
	for _, d := range deadlines {
		items = append(items, adapter.DeadlineDigestItem{
			ProjectName: d.Project.Name,
			Partner:     d.Project.Partner,
			EndDate:     FormatDate(d.Project.EndDate),
			Days:        d.DaysRemaining,
		})
	}
	return items
}

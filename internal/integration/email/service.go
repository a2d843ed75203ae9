// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{
		queue: queue,
	}
}

// QueueDeadlineDigestEmail queues a digest of upcoming and overdue project deadlines.
func (s *Service) QueueDeadlineDigestEmail(ctx context.Context, input adapter.QueueDeadlineDigestInput) error {
	subject := fmt.Sprintf("Pengingat tenggat: %d proyek mendekati tenggat, %d terlambat",
		len(input.Upcoming), len(input.Overdue))

	templateData := map[string]interface{}{
		"recipient_name": input.RecipientName,
		"upcoming":       digestItemsData(input.Upcoming),
		"overdue":        digestItemsData(input.Overdue),
		"dashboard_url":  input.DashboardURL,
	}

	job := entity.NewEmailJob(
		entity.TemplateDeadlineDigest,
		input.RecipientEmail,
		input.RecipientName,
		subject,
		templateData,
	)

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue deadline digest email",
			err,
		)
	}

	return nil
}

// QueueProjectReportEmail queues a project report summary.
func (s *Service) QueueProjectReportEmail(ctx context.Context, input adapter.QueueProjectReportInput) error {
	subject := fmt.Sprintf("Laporan Proyek %s - PT Permata Energi Borneo", input.ProjectName)

	templateData := map[string]interface{}{
		"recipient_name": input.RecipientName,
		"project_name":   input.ProjectName,
		"summary":        input.Summary,
		"project_url":    input.ProjectURL,
	}

	job := entity.NewEmailJob(
		entity.TemplateProjectReport,
		input.RecipientEmail,
		input.RecipientName,
		subject,
		templateData,
	)

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue project report email",
			err,
		)
	}

	return nil
}

func digestItemsData(items []adapter.DeadlineDigestItem) []interface{} {
	data := make([]interface{}, 0, len(items))
	for _, item := range items {
		data = append(data, map[string]interface{}{
			"project_name": item.ProjectName,
			"partner":      item.Partner,
			"end_date":     item.EndDate,
			"days":         item.Days,
		})
	}
	return data
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)

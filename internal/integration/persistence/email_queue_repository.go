package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
	"github.com/project-ledger/backend/internal/integration/persistence/model"
)

// emailQueueRepository stores the notification outbox in the email_queue table.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email outbox repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db: db,
	}
}

// Enqueue inserts a pending job.
func (r *emailQueueRepository) Enqueue(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Create(model.EmailJobFromEntity(job)).Error; err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to enqueue email", err)
	}
	return nil
}

// Due returns pending jobs whose schedule has passed.
func (r *emailQueueRepository) Due(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var rows []model.EmailJobModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, now.UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load due emails: %w", err)
	}

	jobs := make([]*entity.EmailJob, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, rows[i].ToEntity())
	}
	return jobs, nil
}

// Save writes the delivery state of a job. Recipient and template data are
// fixed at enqueue time and are not rewritten.
func (r *emailQueueRepository) Save(ctx context.Context, job *entity.EmailJob) error {
	err := r.db.WithContext(ctx).
		Model(&model.EmailJobModel{ID: job.ID}).
		Select("status", "attempts", "last_error", "resend_id", "scheduled_at", "processed_at").
		Updates(model.EmailJobFromEntity(job)).Error
	if err != nil {
		return fmt.Errorf("failed to save email job %s: %w", job.ID, err)
	}
	return nil
}

// PurgeSent deletes delivered jobs processed before the cutoff.
func (r *emailQueueRepository) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND processed_at < ?", entity.EmailStatusSent, before.UTC()).
		Delete(&model.EmailJobModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge sent emails: %w", result.Error)
	}
	return result.RowsAffected, nil
}

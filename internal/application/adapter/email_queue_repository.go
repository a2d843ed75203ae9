package adapter

import (
	"context"
	"time"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// EmailQueueRepository is the outbox of notification emails. Jobs are
// written by the reporting use cases and drained by the email worker.
type EmailQueueRepository interface {
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// Due returns pending jobs scheduled at or before now, oldest first.
	Due(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	Save(ctx context.Context, job *entity.EmailJob) error

	// PurgeSent deletes delivered jobs processed before the cutoff and
	// returns how many were removed. Failed jobs are kept for inspection.
	PurgeSent(ctx context.Context, before time.Time) (int64, error)
}

package adapter

import (
	"context"

	"github.com/google/uuid"
)

// ReconcileQueue holds the ids of projects whose paid amount must be recomputed.
// Enqueueing an id that is already present is a no-op.
type ReconcileQueue interface {
	// Enqueue adds project ids to the queue.
	Enqueue(ctx context.Context, projectIDs ...uuid.UUID) error

	// Remove deletes project ids from the queue.
	Remove(ctx context.Context, projectIDs ...uuid.UUID) error

	// Pending lists every queued project id.
	Pending(ctx context.Context) ([]uuid.UUID, error)
}

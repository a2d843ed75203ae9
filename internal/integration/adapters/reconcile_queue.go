package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/project-ledger/backend/internal/application/adapter"
)

// ReconcileQueueKey is the Redis set holding project ids awaiting a recompute.
const ReconcileQueueKey = "ledger:reconcile"

// RedisReconcileQueue implements adapter.ReconcileQueue on a Redis set, so
// queued ids survive restarts.
type RedisReconcileQueue struct {
	client *redis.Client
	key    string
}

// NewRedisReconcileQueue creates a new Redis backed queue.
func NewRedisReconcileQueue(client *redis.Client) *RedisReconcileQueue {
	return &RedisReconcileQueue{
		client: client,
		key:    ReconcileQueueKey,
	}
}

// Enqueue adds project ids to the set.
func (q *RedisReconcileQueue) Enqueue(ctx context.Context, projectIDs ...uuid.UUID) error {
	if len(projectIDs) == 0 {
		return nil
	}
	if err := q.client.SAdd(ctx, q.key, toMembers(projectIDs)...).Err(); err != nil {
		return fmt.Errorf("failed to enqueue projects: %w", err)
	}
	return nil
}

// Remove deletes project ids from the set.
func (q *RedisReconcileQueue) Remove(ctx context.Context, projectIDs ...uuid.UUID) error {
	if len(projectIDs) == 0 {
		return nil
	}
	if err := q.client.SRem(ctx, q.key, toMembers(projectIDs)...).Err(); err != nil {
		return fmt.Errorf("failed to dequeue projects: %w", err)
	}
	return nil
}

// Pending lists every queued project id. Malformed members are dropped.
func (q *RedisReconcileQueue) Pending(ctx context.Context) ([]uuid.UUID, error) {
	members, err := q.client.SMembers(ctx, q.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list queued projects: %w", err)
	}

	sort.Strings(members)
	ids := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			slog.Warn("Dropping malformed reconcile queue member", "member", member)
			if err := q.client.SRem(ctx, q.key, member).Err(); err != nil {
				slog.Error("Failed to drop malformed reconcile queue member",
					"member", member,
					"error", err,
				)
			}
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func toMembers(ids []uuid.UUID) []interface{} {
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id.String()
	}
	return members
}

// MemoryReconcileQueue is an in-process adapter.ReconcileQueue used when Redis
// is not configured. Its contents are lost on restart.
type MemoryReconcileQueue struct {
	mu  sync.Mutex
	ids map[uuid.UUID]struct{}
}

// NewMemoryReconcileQueue creates an empty in-process queue.
func NewMemoryReconcileQueue() *MemoryReconcileQueue {
	return &MemoryReconcileQueue{ids: make(map[uuid.UUID]struct{})}
}

// Enqueue adds project ids to the queue.
func (q *MemoryReconcileQueue) Enqueue(_ context.Context, projectIDs ...uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, id := range projectIDs {
		q.ids[id] = struct{}{}
	}
	return nil
}

// Remove deletes project ids from the queue.
func (q *MemoryReconcileQueue) Remove(_ context.Context, projectIDs ...uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, id := range projectIDs {
		delete(q.ids, id)
	}
	return nil
}

// Pending lists every queued project id.
func (q *MemoryReconcileQueue) Pending(_ context.Context) ([]uuid.UUID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(q.ids))
	for id := range q.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

var (
	_ adapter.ReconcileQueue = (*RedisReconcileQueue)(nil)
	_ adapter.ReconcileQueue = (*MemoryReconcileQueue)(nil)
)

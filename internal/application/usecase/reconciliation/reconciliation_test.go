package reconciliation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/project-ledger/backend/internal/application/adapter/mocks"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

type mockRecomputer struct {
	mock.Mock
}

func (m *mockRecomputer) RecomputeProjectBalance(ctx context.Context, projectID uuid.UUID) (*entity.RecomputeResult, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RecomputeResult), args.Error(1)
}

func result(id uuid.UUID, previous, paid int64) *entity.RecomputeResult {
	return &entity.RecomputeResult{
		ProjectID:  id,
		Previous:   decimal.NewFromInt(previous),
		PaidAmount: decimal.NewFromInt(paid),
	}
}

var errNotFound = domainerror.NewTransactionError(domainerror.ErrCodeTxnProjectNotFound, "project not found", domainerror.ErrProjectNotFound)

func TestRecomputeProjectUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	recomputer := new(mockRecomputer)
	queue := new(mocks.ReconcileQueue)
	id := uuid.New()

	recomputer.On("RecomputeProjectBalance", ctx, id).Return(result(id, 100, 300), nil).Once()
	queue.On("Remove", ctx, []uuid.UUID{id}).Return(errors.New("redis down")).Once()

	out, err := NewRecomputeProjectUseCase(recomputer, queue).Execute(ctx, id)

	require.NoError(t, err)
	assert.True(t, out.Result.Drifted())
	queue.AssertExpectations(t)
}

func TestRecomputeProjectUseCase_NotFound(t *testing.T) {
	ctx := context.Background()
	recomputer := new(mockRecomputer)
	queue := new(mocks.ReconcileQueue)
	id := uuid.New()

	queue.On("Remove", ctx, []uuid.UUID{id}).Return(nil).Once()
	recomputer.On("RecomputeProjectBalance", ctx, id).Return(nil, errNotFound).Once()

	_, err := NewRecomputeProjectUseCase(recomputer, queue).Execute(ctx, id)

	assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
	queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestRecomputeProjectUseCase_FailureRequeues(t *testing.T) {
	ctx := context.Background()
	recomputer := new(mockRecomputer)
	queue := new(mocks.ReconcileQueue)
	id := uuid.New()

	queue.On("Remove", ctx, []uuid.UUID{id}).Return(nil).Once()
	recomputer.On("RecomputeProjectBalance", ctx, id).Return(nil, domainerror.NewTransientError("db", errors.New("timeout"))).Once()
	queue.On("Enqueue", mock.Anything, []uuid.UUID{id}).Return(nil).Once()

	_, err := NewRecomputeProjectUseCase(recomputer, queue).Execute(ctx, id)

	assert.Equal(t, domainerror.KindTransient, domainerror.KindOf(err))
	queue.AssertExpectations(t)
}

func TestRecomputeProjectUseCase_WithoutQueue(t *testing.T) {
	ctx := context.Background()
	recomputer := new(mockRecomputer)
	id := uuid.New()
	recomputer.On("RecomputeProjectBalance", ctx, id).Return(result(id, 0, 0), nil).Once()

	out, err := NewRecomputeProjectUseCase(recomputer, nil).Execute(ctx, id)

	require.NoError(t, err)
	assert.False(t, out.Result.Drifted())
}

func TestRunReconciliationUseCase_ReportsDrift(t *testing.T) {
	ctx := context.Background()
	projectRepo := new(mocks.ProjectRepository)
	recomputer := new(mockRecomputer)
	clean, drifted, failing, deleted := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	projectRepo.On("FindAll", ctx, entity.ProjectFilter{}).Return([]*entity.Project{
		{ID: clean}, {ID: drifted}, {ID: failing}, {ID: deleted},
	}, nil).Once()
	recomputer.On("RecomputeProjectBalance", ctx, clean).Return(result(clean, 500, 500), nil).Once()
	recomputer.On("RecomputeProjectBalance", ctx, drifted).Return(result(drifted, 900, 400), nil).Once()
	recomputer.On("RecomputeProjectBalance", ctx, failing).Return(nil, domainerror.NewTransientError("db", errors.New("timeout"))).Once()
	recomputer.On("RecomputeProjectBalance", ctx, deleted).Return(nil, errNotFound).Once()

	out, err := NewRunReconciliationUseCase(projectRepo, recomputer).Execute(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, out.Checked)
	require.Len(t, out.Drifted, 1)
	assert.Equal(t, drifted, out.Drifted[0].ProjectID)
	assert.Equal(t, []uuid.UUID{failing}, out.Failed)
	recomputer.AssertExpectations(t)
}

func TestDrainQueueUseCase_KeepsFailedIDs(t *testing.T) {
	ctx := context.Background()
	queue := new(mocks.ReconcileQueue)
	recomputer := new(mockRecomputer)
	ok, failing, deleted := uuid.New(), uuid.New(), uuid.New()

	queue.On("Pending", ctx).Return([]uuid.UUID{ok, failing, deleted}, nil).Once()
	recomputer.On("RecomputeProjectBalance", ctx, ok).Return(result(ok, 0, 10), nil).Once()
	recomputer.On("RecomputeProjectBalance", ctx, failing).Return(nil, errors.New("db down")).Once()
	recomputer.On("RecomputeProjectBalance", ctx, deleted).Return(nil, errNotFound).Once()
	queue.On("Remove", ctx, []uuid.UUID{ok}).Return(nil).Once()
	queue.On("Remove", ctx, []uuid.UUID{failing}).Return(nil).Once()
	queue.On("Remove", ctx, []uuid.UUID{deleted}).Return(nil).Once()
	queue.On("Enqueue", mock.Anything, []uuid.UUID{failing}).Return(nil).Once()

	out, err := NewDrainQueueUseCase(queue, recomputer).Execute(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, out.Processed)
	assert.Equal(t, 1, out.Failed)
	queue.AssertExpectations(t)
	queue.AssertNotCalled(t, "Enqueue", mock.Anything, []uuid.UUID{ok})
	queue.AssertNotCalled(t, "Enqueue", mock.Anything, []uuid.UUID{deleted})
}

// setQueue is an in-process adapter.ReconcileQueue.
type setQueue struct {
	mu  sync.Mutex
	ids map[uuid.UUID]bool
}

func (q *setQueue) Enqueue(_ context.Context, ids ...uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, id := range ids {
		q.ids[id] = true
	}
	return nil
}

func (q *setQueue) Remove(_ context.Context, ids ...uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, id := range ids {
		delete(q.ids, id)
	}
	return nil
}

func (q *setQueue) Pending(_ context.Context) ([]uuid.UUID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]uuid.UUID, 0, len(q.ids))
	for id := range q.ids {
		out = append(out, id)
	}
	return out, nil
}

// racingRecomputer queues the project again while its recompute is running,
// as a failed write on another request would.
type racingRecomputer struct {
	queue *setQueue
}

func (r *racingRecomputer) RecomputeProjectBalance(ctx context.Context, projectID uuid.UUID) (*entity.RecomputeResult, error) {
	if err := r.queue.Enqueue(ctx, projectID); err != nil {
		return nil, err
	}
	return result(projectID, 0, 0), nil
}

func TestDrainQueueUseCase_KeepsIDsQueuedDuringRecompute(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	queue := &setQueue{ids: map[uuid.UUID]bool{id: true}}

	out, err := NewDrainQueueUseCase(queue, &racingRecomputer{queue: queue}).Execute(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, out.Processed)
	pending, err := queue.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, pending, "the second failure must still be repaired")
}

func TestGetPendingUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	queue := new(mocks.ReconcileQueue)
	ids := []uuid.UUID{uuid.New()}
	queue.On("Pending", ctx).Return(ids, nil).Once()

	pending, err := NewGetPendingUseCase(queue).Execute(ctx)

	require.NoError(t, err)
	assert.Equal(t, ids, pending)
}

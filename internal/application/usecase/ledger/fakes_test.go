package ledger

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

var errStoreDown = errors.New("connection refused")

// memDB is an in-memory project and transaction store. failOn lets a test
// inject an error into the nth call of a named operation.
type memDB struct {
	mu           sync.Mutex
	projects     map[uuid.UUID]*entity.Project
	transactions map[uuid.UUID]*entity.Transaction
	calls        map[string]int
	failOn       map[string]map[int]error
	onRecompute  func(projectID uuid.UUID)
}

func newMemDB() *memDB {
	return &memDB{
		projects:     make(map[uuid.UUID]*entity.Project),
		transactions: make(map[uuid.UUID]*entity.Transaction),
		calls:        make(map[string]int),
		failOn:       make(map[string]map[int]error),
	}
}

// fail makes the nth (1-based) call of op return err.
func (m *memDB) fail(op string, nth int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn[op] == nil {
		m.failOn[op] = make(map[int]error)
	}
	m.failOn[op][nth] = err
}

func (m *memDB) hit(op string) error {
	m.calls[op]++
	return m.failOn[op][m.calls[op]]
}

func (m *memDB) addProject(paid decimal.Decimal) *entity.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &entity.Project{ID: uuid.New(), Name: "P", Status: entity.ProjectStatusOngoing, Value: decimal.NewFromInt(1_000_000), PaidAmount: paid}
	m.projects[p.ID] = p
	return p
}

func (m *memDB) paid(id uuid.UUID) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.projects[id].PaidAmount
}

func (m *memDB) incomeSum(id uuid.UUID) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sumLocked(id)
}

func (m *memDB) sumLocked(id uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, t := range m.transactions {
		if t.ProjectID == id && t.IsIncome() {
			total = total.Add(t.Amount)
		}
	}
	return total
}

func (m *memDB) adjustLocked(id uuid.UUID, delta decimal.Decimal) error {
	p, ok := m.projects[id]
	if !ok {
		return domainerror.ErrProjectNotFound
	}
	next := p.PaidAmount.Add(delta)
	if next.IsNegative() {
		return domainerror.ErrPaidAmountUnderflow
	}
	p.PaidAmount = next
	return nil
}

func (m *memDB) matchLocked(expected *entity.Transaction) error {
	stored, ok := m.transactions[expected.ID]
	if !ok {
		return domainerror.ErrTransactionNotFound
	}
	if !stored.SameLedgerState(expected) {
		return domainerror.ErrTransactionChanged
	}
	return nil
}

func clone(t *entity.Transaction) *entity.Transaction {
	c := *t
	return &c
}

// snapshot and restore give the atomic fake its rollback.
func (m *memDB) snapshot() (map[uuid.UUID]decimal.Decimal, map[uuid.UUID]*entity.Transaction) {
	paid := make(map[uuid.UUID]decimal.Decimal, len(m.projects))
	for id, p := range m.projects {
		paid[id] = p.PaidAmount
	}
	txns := make(map[uuid.UUID]*entity.Transaction, len(m.transactions))
	for id, t := range m.transactions {
		txns[id] = clone(t)
	}
	return paid, txns
}

func (m *memDB) restore(paid map[uuid.UUID]decimal.Decimal, txns map[uuid.UUID]*entity.Transaction) {
	for id, amount := range paid {
		m.projects[id].PaidAmount = amount
	}
	m.transactions = txns
}

// memProjects implements adapter.ProjectRepository.
type memProjects struct{ db *memDB }

var _ adapter.ProjectRepository = memProjects{}

func (r memProjects) Create(_ context.Context, p *entity.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c := *p
	r.db.projects[p.ID] = &c
	return nil
}

func (r memProjects) FindByID(_ context.Context, id uuid.UUID) (*entity.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.hit("project.find"); err != nil {
		return nil, err
	}
	p, ok := r.db.projects[id]
	if !ok {
		return nil, domainerror.ErrProjectNotFound
	}
	c := *p
	return &c, nil
}

func (r memProjects) FindAll(_ context.Context, _ entity.ProjectFilter) ([]*entity.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Project
	for _, p := range r.db.projects {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r memProjects) Update(_ context.Context, p *entity.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.projects[p.ID]
	if !ok {
		return domainerror.ErrProjectNotFound
	}
	paid := stored.PaidAmount
	c := *p
	c.PaidAmount = paid
	r.db.projects[p.ID] = &c
	return nil
}

func (r memProjects) DeleteCascade(_ context.Context, id uuid.UUID) ([]*entity.Transaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.projects[id]; !ok {
		return nil, domainerror.ErrProjectNotFound
	}
	var deleted []*entity.Transaction
	for tid, t := range r.db.transactions {
		if t.ProjectID == id {
			deleted = append(deleted, t)
			delete(r.db.transactions, tid)
		}
	}
	delete(r.db.projects, id)
	return deleted, nil
}

func (r memProjects) AdjustPaidAmount(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.hit("project.adjust"); err != nil {
		return err
	}
	return r.db.adjustLocked(id, delta)
}

func (r memProjects) SetPaidAmount(_ context.Context, id uuid.UUID, amount decimal.Decimal) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.hit("project.set"); err != nil {
		return err
	}
	p, ok := r.db.projects[id]
	if !ok {
		return domainerror.ErrProjectNotFound
	}
	p.PaidAmount = amount
	return nil
}

// memTransactions implements adapter.TransactionRepository.
type memTransactions struct{ db *memDB }

var _ adapter.TransactionRepository = memTransactions{}

func (r memTransactions) Create(_ context.Context, t *entity.Transaction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.hit("txn.create"); err != nil {
		return err
	}
	r.db.transactions[t.ID] = clone(t)
	return nil
}

func (r memTransactions) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.hit("txn.find"); err != nil {
		return nil, err
	}
	t, ok := r.db.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return clone(t), nil
}

func (r memTransactions) FindByFilter(ctx context.Context, filter entity.TransactionFilter, p adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	all, _ := r.FindAll(ctx, filter)
	return &entity.TransactionListResult{Transactions: all, Total: int64(len(all)), Page: p.Page, Limit: p.Limit, TotalPages: 1}, nil
}

func (r memTransactions) FindAll(_ context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range r.db.transactions {
		if filter.ProjectID != nil && t.ProjectID != *filter.ProjectID {
			continue
		}
		out = append(out, clone(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r memTransactions) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Transaction, error) {
	return r.FindAll(ctx, entity.TransactionFilter{ProjectID: &projectID})
}

func (r memTransactions) FindRecent(ctx context.Context, limit int) ([]*entity.Transaction, error) {
	all, _ := r.FindAll(ctx, entity.TransactionFilter{})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r memTransactions) Update(_ context.Context, t *entity.Transaction, expected *entity.Transaction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.hit("txn.update"); err != nil {
		return err
	}
	if err := r.db.matchLocked(expected); err != nil {
		return err
	}
	r.db.transactions[t.ID] = clone(t)
	return nil
}

func (r memTransactions) Delete(_ context.Context, expected *entity.Transaction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.hit("txn.delete"); err != nil {
		return err
	}
	if err := r.db.matchLocked(expected); err != nil {
		return err
	}
	delete(r.db.transactions, expected.ID)
	return nil
}

func (r memTransactions) SumIncomeByProject(_ context.Context, projectID uuid.UUID) (decimal.Decimal, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.hit("txn.sum"); err != nil {
		return decimal.Zero, err
	}
	return r.db.sumLocked(projectID), nil
}

// memLedger implements adapter.LedgerStore with all-or-nothing writes.
type memLedger struct{ db *memDB }

var _ adapter.LedgerStore = memLedger{}

func (s memLedger) atomically(op string, fn func() error) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.hit(op); err != nil {
		return err
	}
	paid, txns := s.db.snapshot()
	if err := fn(); err != nil {
		s.db.restore(paid, txns)
		return err
	}
	return nil
}

func (s memLedger) applyLocked(adjustments []entity.BalanceAdjustment) error {
	for _, adj := range adjustments {
		if err := s.db.hit("ledger.adjust"); err != nil {
			return err
		}
		if err := s.db.adjustLocked(adj.ProjectID, adj.Delta); err != nil {
			return err
		}
	}
	return nil
}

func (s memLedger) CreateWithAdjustments(_ context.Context, t *entity.Transaction, adjustments []entity.BalanceAdjustment) error {
	return s.atomically("ledger.create", func() error {
		s.db.transactions[t.ID] = clone(t)
		return s.applyLocked(adjustments)
	})
}

func (s memLedger) UpdateWithAdjustments(_ context.Context, previous, next *entity.Transaction, adjustments []entity.BalanceAdjustment) error {
	return s.atomically("ledger.update", func() error {
		if err := s.db.matchLocked(previous); err != nil {
			return err
		}
		s.db.transactions[next.ID] = clone(next)
		return s.applyLocked(adjustments)
	})
}

func (s memLedger) DeleteWithAdjustments(_ context.Context, previous *entity.Transaction, adjustments []entity.BalanceAdjustment) error {
	return s.atomically("ledger.delete", func() error {
		if err := s.db.matchLocked(previous); err != nil {
			return err
		}
		delete(s.db.transactions, previous.ID)
		return s.applyLocked(adjustments)
	})
}

func (s memLedger) RecomputePaidAmount(_ context.Context, projectID uuid.UUID) (*entity.RecomputeResult, error) {
	if s.db.onRecompute != nil {
		s.db.onRecompute(projectID)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.hit("ledger.recompute"); err != nil {
		return nil, err
	}
	p, ok := s.db.projects[projectID]
	if !ok {
		return nil, domainerror.ErrProjectNotFound
	}
	result := &entity.RecomputeResult{ProjectID: projectID, Previous: p.PaidAmount, PaidAmount: s.db.sumLocked(projectID)}
	p.PaidAmount = result.PaidAmount
	return result, nil
}

// memQueue implements adapter.ReconcileQueue.
type memQueue struct {
	mu      sync.Mutex
	ids     map[uuid.UUID]bool
	failErr error
}

var _ adapter.ReconcileQueue = (*memQueue)(nil)

func newMemQueue() *memQueue {
	return &memQueue{ids: make(map[uuid.UUID]bool)}
}

func (q *memQueue) Enqueue(_ context.Context, ids ...uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.failErr != nil {
		return q.failErr
	}
	for _, id := range ids {
		q.ids[id] = true
	}
	return nil
}

func (q *memQueue) Remove(_ context.Context, ids ...uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, id := range ids {
		delete(q.ids, id)
	}
	return nil
}

func (q *memQueue) Pending(_ context.Context) ([]uuid.UUID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]uuid.UUID, 0, len(q.ids))
	for id := range q.ids {
		out = append(out, id)
	}
	return out, nil
}

func (q *memQueue) has(id uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ids[id]
}

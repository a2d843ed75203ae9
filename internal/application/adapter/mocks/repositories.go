// Package mocks provides testify mocks of the adapter interfaces for use-case tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
)

// --- ProjectRepository ---

// ProjectRepository is a mock of adapter.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

var _ adapter.ProjectRepository = (*ProjectRepository)(nil)

func (m *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Project), args.Error(1)
}

func (m *ProjectRepository) FindAll(ctx context.Context, filter entity.ProjectFilter) ([]*entity.Project, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Project), args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ProjectRepository) DeleteCascade(ctx context.Context, id uuid.UUID) ([]*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *ProjectRepository) AdjustPaidAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *ProjectRepository) SetPaidAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

// --- TransactionRepository ---

// TransactionRepository is a mock of adapter.TransactionRepository.
type TransactionRepository struct {
	mock.Mock
}

var _ adapter.TransactionRepository = (*TransactionRepository)(nil)

func (m *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *TransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *TransactionRepository) FindByFilter(ctx context.Context, filter entity.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TransactionListResult), args.Error(1)
}

func (m *TransactionRepository) FindAll(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *TransactionRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Transaction, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *TransactionRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction, expected *entity.Transaction) error {
	args := m.Called(ctx, transaction, expected)
	return args.Error(0)
}

func (m *TransactionRepository) Delete(ctx context.Context, expected *entity.Transaction) error {
	args := m.Called(ctx, expected)
	return args.Error(0)
}

func (m *TransactionRepository) SumIncomeByProject(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- UserRepository ---

// UserRepository is a mock of adapter.UserRepository.
type UserRepository struct {
	mock.Mock
}

var _ adapter.UserRepository = (*UserRepository)(nil)

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) FindByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// --- AIAnalysisRepository ---

// AIAnalysisRepository is a mock of adapter.AIAnalysisRepository.
type AIAnalysisRepository struct {
	mock.Mock
}

var _ adapter.AIAnalysisRepository = (*AIAnalysisRepository)(nil)

func (m *AIAnalysisRepository) Create(ctx context.Context, analysis *entity.AIAnalysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *AIAnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AIAnalysis, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AIAnalysis), args.Error(1)
}

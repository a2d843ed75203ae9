package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

func TestProjectRepository_UpdateNeverWritesPaidAmount(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	project := seedProject(t, db, decimal.NewFromInt(40))

	project.Name = "Instalasi Panel Surya Tahap 2"
	project.PaidAmount = decimal.NewFromInt(1)
	require.NoError(t, repo.Update(ctx, project))

	stored, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Instalasi Panel Surya Tahap 2", stored.Name)
	requireDecimal(t, 40, stored.PaidAmount)
}

func TestProjectRepository_AdjustPaidAmount(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	project := seedProject(t, db, decimal.NewFromInt(100))

	require.NoError(t, repo.AdjustPaidAmount(ctx, project.ID, decimal.NewFromInt(50)))
	require.NoError(t, repo.AdjustPaidAmount(ctx, project.ID, decimal.NewFromInt(-150)))
	requireDecimal(t, 0, paidAmount(t, db, project.ID))

	err := repo.AdjustPaidAmount(ctx, project.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domainerror.ErrPaidAmountUnderflow)

	err = repo.AdjustPaidAmount(ctx, uuid.New(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domainerror.ErrProjectNotFound)
}

func TestProjectRepository_DeleteCascade(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	transactions := NewTransactionRepository(db)

	doomed := seedProject(t, db, decimal.Zero)
	kept := seedProject(t, db, decimal.Zero)
	require.NoError(t, transactions.Create(ctx, newIncome(doomed.ID, 10)))
	require.NoError(t, transactions.Create(ctx, newExpense(doomed.ID, 5)))
	survivor := newIncome(kept.ID, 7)
	require.NoError(t, transactions.Create(ctx, survivor))

	deleted, err := repo.DeleteCascade(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Len(t, deleted, 2)

	_, err = repo.FindByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, domainerror.ErrProjectNotFound)

	remaining, err := transactions.FindByProject(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = transactions.FindByID(ctx, survivor.ID)
	assert.NoError(t, err)
}

func TestProjectRepository_FindAllByStatus(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewProjectRepository(db)

	ongoing := seedProject(t, db, decimal.Zero)
	done := seedProject(t, db, decimal.Zero)
	done.Status = entity.ProjectStatusComplete
	require.NoError(t, repo.Update(ctx, done))

	status := entity.ProjectStatusOngoing
	projects, err := repo.FindAll(ctx, entity.ProjectFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, ongoing.ID, projects[0].ID)

	all, err := repo.FindAll(ctx, entity.ProjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/application/adapter/mocks"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) RecordCreate(ctx context.Context, t *entity.Transaction) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockLedger) RecordUpdate(ctx context.Context, previous, next *entity.Transaction) error {
	return m.Called(ctx, previous, next).Error(0)
}

func (m *mockLedger) RecordDelete(ctx context.Context, id uuid.UUID, previous *entity.Transaction) (*entity.Transaction, error) {
	args := m.Called(ctx, id, previous)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

var (
	creator = entity.Principal{UserID: uuid.New(), Email: "creator@permata.test", Role: entity.RoleAdmin}
	editor  = entity.Principal{UserID: uuid.New(), Email: "editor@permata.test", Role: entity.RoleAdmin}
)

func storedIncome() *entity.Transaction {
	return entity.NewTransaction(uuid.New(), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		entity.TransactionTypeIncome, entity.CategoryPayment, decimal.NewFromInt(300_000), "Termin 1", creator)
}

func TestCreateTransactionUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	ledger := new(mockLedger)
	projectID := uuid.New()

	ledger.On("RecordCreate", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
		return tx.ProjectID == projectID &&
			tx.Category == entity.CategoryPayment &&
			tx.Description == "Termin 1" &&
			tx.IsAIProcessed &&
			tx.Audit.CreatedBy == creator.UserID
	})).Return(nil).Once()

	out, err := NewCreateTransactionUseCase(ledger).Execute(ctx, CreateTransactionInput{
		ProjectID:     projectID,
		Date:          time.Now(),
		Type:          entity.TransactionTypeIncome,
		Category:      " Pembayaran ",
		Amount:        decimal.NewFromInt(300_000),
		Description:   " Termin 1 ",
		IsAIProcessed: true,
		Actor:         creator,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, out.Transaction.ID)
	ledger.AssertExpectations(t)
}

func TestCreateTransactionUseCase_PropagatesLedgerError(t *testing.T) {
	ctx := context.Background()
	ledger := new(mockLedger)
	consistencyErr := domainerror.NewConsistencyError(domainerror.ErrCodeBalanceNotApplied, "not applied", nil, nil)
	ledger.On("RecordCreate", ctx, mock.Anything).Return(consistencyErr).Once()

	_, err := NewCreateTransactionUseCase(ledger).Execute(ctx, CreateTransactionInput{Actor: creator})

	assert.Same(t, consistencyErr, err)
}

func TestUpdateTransactionUseCase_UsesStoredRowAsPrevious(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.TransactionRepository)
	ledger := new(mockLedger)
	stored := storedIncome()
	newType := entity.TransactionTypeExpense
	newCategory := entity.CategoryMaterial

	repo.On("FindByID", ctx, stored.ID).Return(stored, nil).Once()
	ledger.On("RecordUpdate", ctx, stored, mock.MatchedBy(func(next *entity.Transaction) bool {
		return next.Type == entity.TransactionTypeExpense &&
			next.Category == entity.CategoryMaterial &&
			next.Amount.Equal(stored.Amount) &&
			next.Audit.CreatedBy == creator.UserID &&
			next.Audit.UpdatedBy == editor.UserID
	})).Return(nil).Once()

	out, err := NewUpdateTransactionUseCase(repo, ledger).Execute(ctx, UpdateTransactionInput{
		TransactionID: stored.ID,
		Type:          &newType,
		Category:      &newCategory,
		Actor:         editor,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTypeExpense, out.Transaction.Type)
	assert.Equal(t, entity.TransactionTypeIncome, stored.Type, "stored snapshot must not be mutated")
	ledger.AssertExpectations(t)
}

func TestUpdateTransactionUseCase_PassesClientState(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.TransactionRepository)
	ledger := new(mockLedger)
	stored := storedIncome()
	expected := &LedgerState{ProjectID: stored.ProjectID, Type: entity.TransactionTypeIncome, Amount: decimal.NewFromInt(100)}
	stale := domainerror.NewConsistencyError(domainerror.ErrCodeStaleTransaction, "stale", nil, nil)

	repo.On("FindByID", ctx, stored.ID).Return(stored, nil).Once()
	ledger.On("RecordUpdate", ctx, mock.MatchedBy(func(previous *entity.Transaction) bool {
		return previous.ID == stored.ID && previous.Amount.Equal(decimal.NewFromInt(100))
	}), mock.Anything).Return(stale).Once()

	_, err := NewUpdateTransactionUseCase(repo, ledger).Execute(ctx, UpdateTransactionInput{
		TransactionID: stored.ID,
		Expected:      expected,
		Actor:         editor,
	})

	assert.Equal(t, domainerror.KindConsistency, domainerror.KindOf(err))
	assert.True(t, domainerror.IsRetryable(err))
}

func TestUpdateTransactionUseCase_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.TransactionRepository)
	id := uuid.New()
	repo.On("FindByID", ctx, id).Return(nil, domainerror.ErrTransactionNotFound).Once()

	_, err := NewUpdateTransactionUseCase(repo, new(mockLedger)).Execute(ctx, UpdateTransactionInput{TransactionID: id})

	var txnErr *domainerror.TransactionError
	require.ErrorAs(t, err, &txnErr)
	assert.Equal(t, domainerror.ErrCodeTransactionNotFound, txnErr.Code)
}

func TestDeleteTransactionUseCase_RemovesEvidence(t *testing.T) {
	ctx := context.Background()
	ledger := new(mockLedger)
	storage := new(mocks.BlobStorage)
	deleted := storedIncome()
	deleted.ImagePath = "transactions/1700000000000_bukti.png"

	ledger.On("RecordDelete", ctx, deleted.ID, (*entity.Transaction)(nil)).Return(deleted, nil).Once()
	storage.On("Delete", mock.Anything, deleted.ImagePath).Return(errors.New("not reachable")).Once()

	out, err := NewDeleteTransactionUseCase(ledger, storage).Execute(ctx, DeleteTransactionInput{TransactionID: deleted.ID})

	require.NoError(t, err)
	assert.True(t, out.Success)
	storage.AssertExpectations(t)
}

func TestListTransactionsUseCase_ClampsPagination(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.TransactionRepository)
	repo.On("FindByFilter", ctx, mock.Anything, adapter.TransactionPagination{Page: 1, Limit: MaxPageLimit}).
		Return(&entity.TransactionListResult{Page: 1, Limit: MaxPageLimit}, nil).Once()

	out, err := NewListTransactionsUseCase(repo).Execute(ctx, ListTransactionsInput{Page: -3, Limit: 5000})

	require.NoError(t, err)
	assert.Equal(t, MaxPageLimit, out.Limit)
	repo.AssertExpectations(t)
}

func TestListTransactionsUseCase_RejectsUnknownType(t *testing.T) {
	repo := new(mocks.TransactionRepository)
	kind := entity.TransactionType("transfer")

	_, err := NewListTransactionsUseCase(repo).Execute(context.Background(), ListTransactionsInput{Type: &kind})

	assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
}

func TestListRecentTransactionsUseCase_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.TransactionRepository)
	repo.On("FindRecent", ctx, DefaultRecentLimit).Return([]*entity.Transaction{}, nil).Once()

	_, err := NewListRecentTransactionsUseCase(repo).Execute(ctx, 0)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestImageContentType(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		size        int
		contentType string
		code        domainerror.TransactionErrorCode
	}{
		{"jpeg", "nota.jpeg", 100, "image/jpeg", ""},
		{"upper case jpg", "NOTA.JPG", 100, "image/jpeg", ""},
		{"png", "bukti.png", MaxImageSize, "image/png", ""},
		{"gif", "anim.gif", 1, "image/gif", ""},
		{"pdf rejected", "invoice.pdf", 100, "", domainerror.ErrCodeInvalidImage},
		{"webp rejected", "photo.webp", 100, "", domainerror.ErrCodeInvalidImage},
		{"too large", "big.png", MaxImageSize + 1, "", domainerror.ErrCodeImageTooLarge},
		{"empty", "empty.png", 0, "", domainerror.ErrCodeImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentType, err := ImageContentType(tt.fileName, tt.size)
			if tt.code == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.contentType, contentType)
				return
			}
			var txnErr *domainerror.TransactionError
			require.ErrorAs(t, err, &txnErr)
			assert.Equal(t, tt.code, txnErr.Code)
		})
	}
}

func TestEvidencePath(t *testing.T) {
	at := time.UnixMilli(1_717_000_000_123)

	assert.Equal(t, "transactions/1717000000123_bukti_transfer.png", EvidencePath("bukti transfer.png", at))
	assert.Equal(t, "transactions/1717000000123_x.jpg", EvidencePath("../../x.jpg", at))
}

func TestUploadEvidenceUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	storage := new(mocks.BlobStorage)
	data := []byte("\x89PNG")

	storage.On("Upload", ctx, mock.MatchedBy(func(path string) bool {
		return strings.HasPrefix(path, "transactions/") && strings.HasSuffix(path, "_nota.png")
	}), data, "image/png").Return(&adapter.StoredObject{Path: "transactions/1_nota.png", URL: "https://cdn/1_nota.png"}, nil).Once()

	out, err := NewUploadEvidenceUseCase(storage).Execute(ctx, UploadEvidenceInput{FileName: "nota.png", Data: data})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/1_nota.png", out.URL)
	storage.AssertExpectations(t)
}

func TestUploadEvidenceUseCase_StorageDown(t *testing.T) {
	ctx := context.Background()
	storage := new(mocks.BlobStorage)
	storage.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("503")).Once()

	_, err := NewUploadEvidenceUseCase(storage).Execute(ctx, UploadEvidenceInput{FileName: "nota.png", Data: []byte{1}})

	assert.Equal(t, domainerror.KindTransient, domainerror.KindOf(err))
}

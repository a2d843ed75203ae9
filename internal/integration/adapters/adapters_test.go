package adapters

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
)

type memoryTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]bool
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{tokens: map[string]bool{}}
}

func (r *memoryTokenRepository) SaveRefreshToken(_ context.Context, token string, _ uuid.UUID, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = true
	return nil
}

func (r *memoryTokenRepository) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokens[token], nil
}

func (r *memoryTokenRepository) InvalidateRefreshToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = false
	return nil
}

func TestTokenService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTokenRepository()
	svc := NewTokenService("test-secret", repo)
	principal := entity.Principal{UserID: uuid.New(), Email: "admin@permata.test", Role: entity.RoleAdmin}

	pair, err := svc.GenerateTokenPair(ctx, principal, false)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, principal.UserID, claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(defaultAccessTokenDuration), claims.ExpiresAt, time.Minute)

	valid, err := svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, valid)

	require.NoError(t, svc.InvalidateRefreshToken(ctx, pair.RefreshToken))
	valid, err = svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestTokenService_RejectsWrongTokenType(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("test-secret", newMemoryTokenRepository())
	principal := entity.Principal{UserID: uuid.New(), Email: "viewer@permata.test", Role: entity.RoleViewer}

	pair, err := svc.GenerateTokenPair(ctx, principal, true)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(ctx, pair.RefreshToken)
	assert.Error(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, claims.Role)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	principal := entity.Principal{UserID: uuid.New(), Email: "admin@permata.test", Role: entity.RoleAdmin}

	pair, err := NewTokenService("other-secret", newMemoryTokenRepository()).GenerateTokenPair(ctx, principal, false)
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", newMemoryTokenRepository()).ValidateAccessToken(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestPasswordService(t *testing.T) {
	svc := &passwordService{cost: bcrypt.MinCost}

	hash, err := svc.HashPassword("rahasia123")
	require.NoError(t, err)

	assert.NoError(t, svc.VerifyPassword(hash, "rahasia123"))
	assert.Error(t, svc.VerifyPassword(hash, "salah"))
}

func TestGeminiService_Prompt(t *testing.T) {
	prompt := buildImagePrompt(&adapter.ImageAnalysisRequest{
		IncomeCategories:  entity.CategoriesFor(entity.TransactionTypeIncome),
		ExpenseCategories: entity.CategoriesFor(entity.TransactionTypeExpense),
	})

	assert.Contains(t, prompt, "- Upah Karyawan/Tukang\n")
	assert.Contains(t, prompt, "- Pembayaran\n")
	assert.Contains(t, prompt, `"date": "YYYY-MM-DDTHH:mm"`)
	assert.Equal(t, "png", imageFormat("image/png"))
	assert.False(t, NewGeminiService("", "").IsAvailable())
}

func TestPDFReportRenderer(t *testing.T) {
	data := &adapter.ProjectReportData{
		Name:           "Gardu Induk Sangatta",
		Partner:        "PLN UIP Kalbagtim",
		Status:         "Berjalan",
		ContractNumber: "0021/KTR/2026",
		Period:         "1 Januari 2026 - 31 Desember 2026",
		TaxRate:        11,
		ProjectValue:   "Rp 100.000.000",
		TaxAmount:      "Rp 11.000.000",
		TotalWithTax:   "Rp 111.000.000",
		TotalIncome:    "Rp 50.000.000",
		TotalExpense:   "Rp 20.000.000",
		Balance:        "Rp 30.000.000",
		Progress:       45,
		GeneratedAt:    "16/10/2026 09:00",
	}
	for i := 0; i < 80; i++ {
		data.Rows = append(data.Rows, adapter.ProjectReportRow{
			Date:        "5 Maret 2026",
			Type:        "Pengeluaran",
			Category:    "Material",
			Description: fmt.Sprintf("Pembelian kabel dan panel distribusi tahap %d untuk gardu induk", i),
			Amount:      "-Rp 250.000",
		})
	}

	var buf bytes.Buffer
	err := NewPDFReportRenderer().RenderProjectReport(&buf, data)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFReportRenderer_NoTransactions(t *testing.T) {
	var buf bytes.Buffer
	err := NewPDFReportRenderer().RenderProjectReport(&buf, &adapter.ProjectReportData{Name: "Kosong"})

	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestDownloadURL(t *testing.T) {
	got := DownloadURL("ledger.appspot.com", "evidence/2026/10/a b.png", "tok")

	assert.Equal(t, "https://firebasestorage.googleapis.com/v0/b/ledger.appspot.com/o/evidence%2F2026%2F10%2Fa%20b.png?alt=media&token=tok", got)
}

package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/domain/entity"
)

// --- EmailService ---

// EmailService is a mock of adapter.EmailService.
type EmailService struct {
	mock.Mock
}

var _ adapter.EmailService = (*EmailService)(nil)

func (m *EmailService) QueueDeadlineDigestEmail(ctx context.Context, input adapter.QueueDeadlineDigestInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *EmailService) QueueProjectReportEmail(ctx context.Context, input adapter.QueueProjectReportInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

// --- ReportRenderer ---

// ReportRenderer is a mock of adapter.ReportRenderer. When Output is set it is
// written to w on every call.
type ReportRenderer struct {
	mock.Mock
	Output []byte
}

var _ adapter.ReportRenderer = (*ReportRenderer)(nil)

func (m *ReportRenderer) RenderProjectReport(w io.Writer, data *adapter.ProjectReportData) error {
	args := m.Called(w, data)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := w.Write(m.Output)
	return err
}

// --- BlobStorage ---

// BlobStorage is a mock of adapter.BlobStorage.
type BlobStorage struct {
	mock.Mock
}

var _ adapter.BlobStorage = (*BlobStorage)(nil)

func (m *BlobStorage) Upload(ctx context.Context, path string, data []byte, contentType string) (*adapter.StoredObject, error) {
	args := m.Called(ctx, path, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adapter.StoredObject), args.Error(1)
}

func (m *BlobStorage) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// --- ImageAnalyzer ---

// ImageAnalyzer is a mock of adapter.ImageAnalyzer.
type ImageAnalyzer struct {
	mock.Mock
}

var _ adapter.ImageAnalyzer = (*ImageAnalyzer)(nil)

func (m *ImageAnalyzer) Analyze(ctx context.Context, request *adapter.ImageAnalysisRequest) (*adapter.ImageAnalysisResult, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adapter.ImageAnalysisResult), args.Error(1)
}

func (m *ImageAnalyzer) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

// --- TokenService ---

// TokenService is a mock of adapter.TokenService.
type TokenService struct {
	mock.Mock
}

var _ adapter.TokenService = (*TokenService)(nil)

func (m *TokenService) GenerateTokenPair(ctx context.Context, principal entity.Principal, rememberMe bool) (*adapter.TokenPair, error) {
	args := m.Called(ctx, principal, rememberMe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adapter.TokenPair), args.Error(1)
}

func (m *TokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adapter.TokenClaims), args.Error(1)
}

func (m *TokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adapter.TokenClaims), args.Error(1)
}

func (m *TokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *TokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// --- PasswordService ---

// PasswordService is a mock of adapter.PasswordService.
type PasswordService struct {
	mock.Mock
}

var _ adapter.PasswordService = (*PasswordService)(nil)

func (m *PasswordService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordService) VerifyPassword(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}

// --- ReconcileQueue ---

// ReconcileQueue is a mock of adapter.ReconcileQueue.
type ReconcileQueue struct {
	mock.Mock
}

var _ adapter.ReconcileQueue = (*ReconcileQueue)(nil)

func (m *ReconcileQueue) Enqueue(ctx context.Context, projectIDs ...uuid.UUID) error {
	args := m.Called(ctx, projectIDs)
	return args.Error(0)
}

func (m *ReconcileQueue) Remove(ctx context.Context, projectIDs ...uuid.UUID) error {
	args := m.Called(ctx, projectIDs)
	return args.Error(0)
}

func (m *ReconcileQueue) Pending(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

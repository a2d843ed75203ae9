package aianalysis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/application/usecase/ledger"
	"github.com/project-ledger/backend/internal/application/usecase/transaction"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// AnalyzeImageInput represents an image to extract a transaction from.
type AnalyzeImageInput struct {
	FileName string
	Data     []byte
	// ProjectID is the project the user is entering the transaction for, if known.
	ProjectID *uuid.UUID
	Actor     entity.Principal
}

// AnalyzeImageOutput represents the suggestion extracted from an image. The
// suggestion is never saved; the client submits it as a normal transaction.
type AnalyzeImageOutput struct {
	AnalysisID uuid.UUID
	Suggestion *entity.TransactionSuggestion
	Issues     []*domainerror.TransactionError
	ImageURL   string
	ImagePath  string
}

// AnalyzeImageUseCase handles AI extraction of transaction fields from evidence images.
type AnalyzeImageUseCase struct {
	analyzer     adapter.ImageAnalyzer
	storage      adapter.BlobStorage
	analysisRepo adapter.AIAnalysisRepository
}

// NewAnalyzeImageUseCase creates a new AnalyzeImageUseCase instance.
func NewAnalyzeImageUseCase(
	analyzer adapter.ImageAnalyzer,
	storage adapter.BlobStorage,
	analysisRepo adapter.AIAnalysisRepository,
) *AnalyzeImageUseCase {
	return &AnalyzeImageUseCase{
		analyzer:     analyzer,
		storage:      storage,
		analysisRepo: analysisRepo,
	}
}

// Execute uploads the image, asks the model for a suggestion and validates it
// with the manual entry rules.
func (uc *AnalyzeImageUseCase) Execute(ctx context.Context, input AnalyzeImageInput) (*AnalyzeImageOutput, error) {
	if len(input.Data) == 0 {
		return nil, newError(domainerror.ErrCodeAIMissingImage, nil)
	}

	contentType, err := transaction.ImageContentType(input.FileName, len(input.Data))
	if err != nil {
		return nil, imageError(err)
	}

	if uc.analyzer == nil || !uc.analyzer.IsAvailable() {
		return nil, newError(domainerror.ErrCodeAIUnavailable, domainerror.ErrAIServiceUnavailable)
	}
	if uc.storage == nil {
		return nil, domainerror.NewAIAnalysisError(
			domainerror.ErrCodeStorageUnavailable,
			"Penyimpanan gambar belum dikonfigurasi.",
			domainerror.ErrStorageUnavailable,
		)
	}

	path := transaction.EvidencePath(input.FileName, time.Now())
	stored, err := uc.storage.Upload(ctx, path, input.Data, contentType)
	if err != nil {
		slog.Error("Failed to upload image for analysis", "path", path, "error", err)
		return nil, newError(domainerror.ErrCodeUploadFailed, errors.Join(domainerror.ErrUploadFailed, err))
	}

	analysis := entity.NewAIAnalysis(input.Actor.UserID, stored.URL, stored.Path, contentType)

	result, err := uc.analyzer.Analyze(ctx, &adapter.ImageAnalysisRequest{
		Image:             input.Data,
		MimeType:          contentType,
		IncomeCategories:  entity.CategoriesFor(entity.TransactionTypeIncome),
		ExpenseCategories: entity.CategoriesFor(entity.TransactionTypeExpense),
	})
	if err != nil {
		classified := classifyError(err)
		slog.Warn("Image analysis failed",
			"analysis_id", analysis.ID,
			"code", classified.Code,
			"error", err,
		)
		analysis.MarkFailed(string(classified.Code))
		uc.save(ctx, analysis)
		return nil, classified
	}
	analysis.RawResponse = result.RawResponse

	suggestion, err := ParseSuggestion(result.RawResponse)
	if err != nil {
		slog.Warn("Unparseable AI response", "analysis_id", analysis.ID, "error", err)
		analysis.MarkFailed(string(domainerror.ErrCodeAIUnparseable))
		uc.save(ctx, analysis)
		return nil, newError(domainerror.ErrCodeAIUnparseable, errors.Join(domainerror.ErrAIUnparseableResponse, err))
	}
	analysis.Suggestion = suggestion

	issues := SuggestionIssues(suggestion, input.ProjectID)
	for _, issue := range issues {
		analysis.Issues = append(analysis.Issues, issue.Message)
	}
	uc.save(ctx, analysis)

	slog.Info("Image analyzed",
		"analysis_id", analysis.ID,
		"user_id", input.Actor.UserID,
		"issues", len(issues),
	)

	return &AnalyzeImageOutput{
		AnalysisID: analysis.ID,
		Suggestion: suggestion,
		Issues:     issues,
		ImageURL:   stored.URL,
		ImagePath:  stored.Path,
	}, nil
}

// The audit row is best effort; a failed insert must not hide the suggestion.
func (uc *AnalyzeImageUseCase) save(ctx context.Context, analysis *entity.AIAnalysis) {
	if uc.analysisRepo == nil {
		return
	}
	if err := uc.analysisRepo.Create(ctx, analysis); err != nil {
		slog.Error("Failed to store AI analysis", "analysis_id", analysis.ID, "error", err)
	}
}

// SuggestionIssues validates a suggestion with the rules used for manual
// input. Without a project the missing-project issue is left out, since the
// user picks the project before saving.
func SuggestionIssues(suggestion *entity.TransactionSuggestion, projectID *uuid.UUID) []*domainerror.TransactionError {
	candidate := &entity.Transaction{
		Type:        suggestion.Type,
		Category:    suggestion.Category,
		Amount:      suggestion.Amount,
		Description: suggestion.Description,
	}
	if suggestion.Date != nil {
		candidate.Date = *suggestion.Date
	}
	if projectID != nil {
		candidate.ProjectID = *projectID
	}

	var issues []*domainerror.TransactionError
	for _, issue := range ledger.ValidationIssues(candidate) {
		if projectID == nil && issue.Code == domainerror.ErrCodeMissingProject {
			continue
		}
		issues = append(issues, issue)
	}
	return issues
}

func imageError(err error) error {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) && txnErr.Code == domainerror.ErrCodeImageTooLarge {
		return newError(domainerror.ErrCodeAIAnalysisImageLarge, err)
	}
	return newError(domainerror.ErrCodeAIInvalidImage, err)
}

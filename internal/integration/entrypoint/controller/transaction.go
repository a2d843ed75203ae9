package controller

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	aianalysis "github.com/project-ledger/backend/internal/application/usecase/ai_analysis"
	"github.com/project-ledger/backend/internal/application/usecase/transaction"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
	"github.com/project-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/project-ledger/backend/internal/integration/entrypoint/middleware"
)

// imageFormField is the multipart field carrying evidence images.
const imageFormField = "image"

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase     *transaction.ListTransactionsUseCase
	recentUseCase   *transaction.ListRecentTransactionsUseCase
	createUseCase   *transaction.CreateTransactionUseCase
	updateUseCase   *transaction.UpdateTransactionUseCase
	deleteUseCase   *transaction.DeleteTransactionUseCase
	evidenceUseCase *transaction.UploadEvidenceUseCase
	analyzeUseCase  *aianalysis.AnalyzeImageUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	recentUseCase *transaction.ListRecentTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	evidenceUseCase *transaction.UploadEvidenceUseCase,
	analyzeUseCase *aianalysis.AnalyzeImageUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:     listUseCase,
		recentUseCase:   recentUseCase,
		createUseCase:   createUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		evidenceUseCase: evidenceUseCase,
		analyzeUseCase:  analyzeUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	input := transaction.ListTransactionsInput{
		Category: ctx.Query("category"),
	}

	if projectStr := ctx.Query("project_id"); projectStr != "" {
		projectID, err := uuid.Parse(projectStr)
		if err != nil {
			badRequest(ctx, "Invalid project_id", string(domainerror.ErrCodeMissingProject))
			return
		}
		input.ProjectID = &projectID
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		if !txnType.IsValid() {
			badRequest(ctx, "Invalid transaction type", string(domainerror.ErrCodeInvalidTransactionType))
			return
		}
		input.Type = &txnType
	}

	var err error
	if input.StartDate, err = dto.ParseOptionalDate(ctx.Query("start_date")); err != nil {
		badRequest(ctx, "Invalid start_date", string(domainerror.ErrCodeInvalidDateFormat))
		return
	}
	if input.EndDate, err = dto.ParseOptionalDate(ctx.Query("end_date")); err != nil {
		badRequest(ctx, "Invalid end_date", string(domainerror.ErrCodeInvalidDateFormat))
		return
	}

	if page, err := strconv.Atoi(ctx.Query("page")); err == nil {
		input.Page = page
	}
	if limit, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Recent handles GET /transactions/recent requests.
func (c *TransactionController) Recent(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.Query("limit"))
	if err != nil {
		limit = transaction.DefaultRecentLimit
	}

	transactions, err := c.recentUseCase.Execute(ctx.Request.Context(), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionResponses(transactions)})
}

// Categories handles GET /transactions/categories requests.
func (c *TransactionController) Categories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.CategoriesResponse{
		Income:  entity.CategoriesFor(entity.TransactionTypeIncome),
		Expense: entity.CategoriesFor(entity.TransactionTypeExpense),
	})
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidTransactionBody(ctx, err)
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		badRequest(ctx, "Invalid date", string(domainerror.ErrCodeInvalidTransactionDate))
		return
	}

	principal, _ := middleware.GetPrincipalFromContext(ctx)
	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		ProjectID:     uuid.MustParse(req.ProjectID),
		Date:          date,
		Type:          entity.TransactionType(req.Type),
		Category:      req.Category,
		Amount:        req.Amount,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		ImagePath:     req.ImagePath,
		IsAIProcessed: req.IsAIProcessed,
		Actor:         principal,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	transactionID, ok := c.transactionID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidTransactionBody(ctx, err)
		return
	}

	principal, _ := middleware.GetPrincipalFromContext(ctx)
	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		Category:      req.Category,
		Amount:        req.Amount,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		ImagePath:     req.ImagePath,
		Expected:      toLedgerState(req.Expected),
		Actor:         principal,
	}
	if req.ProjectID != nil {
		projectID := uuid.MustParse(*req.ProjectID)
		input.ProjectID = &projectID
	}
	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			badRequest(ctx, "Invalid date", string(domainerror.ErrCodeInvalidTransactionDate))
			return
		}
		input.Date = &date
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests. The body is optional.
func (c *TransactionController) Delete(ctx *gin.Context) {
	transactionID, ok := c.transactionID(ctx)
	if !ok {
		return
	}

	var req dto.DeleteTransactionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Invalid request body",
				Code:    string(domainerror.ErrCodeMissingTransactionFields),
				Details: err.Error(),
			})
			return
		}
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		Expected:      toLedgerState(req.Expected),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UploadEvidence handles POST /transactions/evidence multipart requests.
func (c *TransactionController) UploadEvidence(ctx *gin.Context) {
	fileName, data, ok := readImage(ctx)
	if !ok {
		return
	}

	output, err := c.evidenceUseCase.Execute(ctx.Request.Context(), transaction.UploadEvidenceInput{
		FileName: fileName,
		Data:     data,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.EvidenceResponse{
		URL:  output.URL,
		Path: output.Path,
	})
}

// Analyze handles POST /transactions/analyze multipart requests. The answer is
// a suggestion only; nothing is recorded in the ledger.
func (c *TransactionController) Analyze(ctx *gin.Context) {
	fileName, data, ok := readImage(ctx)
	if !ok {
		return
	}

	input := aianalysis.AnalyzeImageInput{
		FileName: fileName,
		Data:     data,
	}
	if projectStr := ctx.PostForm("project_id"); projectStr != "" {
		projectID, err := uuid.Parse(projectStr)
		if err != nil {
			badRequest(ctx, "Invalid project_id", string(domainerror.ErrCodeMissingProject))
			return
		}
		input.ProjectID = &projectID
	}
	input.Actor, _ = middleware.GetPrincipalFromContext(ctx)

	output, err := c.analyzeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnalyzeImageResponse(output))
}

func (c *TransactionController) transactionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Transaction not found",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return uuid.Nil, false
	}
	return id, true
}

// readImage reads the uploaded image, refusing anything past the size limit.
func readImage(ctx *gin.Context) (string, []byte, bool) {
	header, err := ctx.FormFile(imageFormField)
	if err != nil {
		badRequest(ctx, "Image file is required", string(domainerror.ErrCodeAIMissingImage))
		return "", nil, false
	}
	if header.Size > transaction.MaxImageSize {
		badRequest(ctx, "Image must not exceed 10 MB", string(domainerror.ErrCodeImageTooLarge))
		return "", nil, false
	}

	data, err := readFormFile(header)
	if err != nil {
		badRequest(ctx, "Failed to read image", string(domainerror.ErrCodeInvalidImage))
		return "", nil, false
	}
	return header.Filename, data, true
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(io.LimitReader(file, transaction.MaxImageSize+1))
}

func toLedgerState(req *dto.LedgerStateRequest) *transaction.LedgerState {
	if req == nil {
		return nil
	}
	return &transaction.LedgerState{
		ProjectID: uuid.MustParse(req.ProjectID),
		Type:      entity.TransactionType(req.Type),
		Amount:    req.Amount,
	}
}

func invalidTransactionBody(ctx *gin.Context, err error) {
	code := domainerror.ErrCodeMissingTransactionFields
	if dto.FailedOn(err, "money") {
		code = domainerror.ErrCodeAmountPrecision
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(code),
		Details: err.Error(),
	})
}

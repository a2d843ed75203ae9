package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/project-ledger/backend/internal/domain/error"
	"github.com/project-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/project-ledger/backend/internal/integration/entrypoint/middleware"
)

// respondError maps a use case error to an HTTP response. Coded errors keep
// their message and code; everything else becomes a generic 500.
func respondError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(statusForAuthError(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	var consistencyErr *domainerror.ConsistencyError
	if errors.As(err, &consistencyErr) {
		middleware.GetLoggerFromContext(ctx).Warn("Ledger write not confirmed",
			"code", consistencyErr.Code,
			"project_ids", consistencyErr.ProjectIDs,
			"reconciled", consistencyErr.Reconciled,
			"error", err,
		)
		ids := make([]string, 0, len(consistencyErr.ProjectIDs))
		for _, id := range consistencyErr.ProjectIDs {
			ids = append(ids, id.String())
		}
		ctx.JSON(http.StatusConflict, dto.ConsistencyErrorResponse{
			Error:       consistencyErr.Message,
			Code:        string(consistencyErr.Code),
			ProjectIDs:  ids,
			Reconciling: !consistencyErr.Reconciled,
			Retryable:   true,
		})
		return
	}

	var aiErr *domainerror.AIAnalysisError
	if errors.As(err, &aiErr) && aiErr.Code == domainerror.ErrCodeAIRateLimited {
		ctx.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
			Error: aiErr.Message,
			Code:  string(aiErr.Code),
		})
		return
	}

	message, code, ok := codedError(err)
	if !ok {
		middleware.GetLoggerFromContext(ctx).Error("Request failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	status := statusForKind(domainerror.KindOf(err))
	if status >= http.StatusInternalServerError {
		middleware.GetLoggerFromContext(ctx).Error("Request failed", "code", code, "error", err)
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// codedError extracts the message and code of the first coded error in err's chain.
func codedError(err error) (string, string, bool) {
	var projectErr *domainerror.ProjectError
	if errors.As(err, &projectErr) {
		return projectErr.Message, string(projectErr.Code), true
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		return txnErr.Message, string(txnErr.Code), true
	}

	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		return reportErr.Message, string(reportErr.Code), true
	}

	var aiErr *domainerror.AIAnalysisError
	if errors.As(err, &aiErr) {
		return aiErr.Message, string(aiErr.Code), true
	}

	var transientErr *domainerror.TransientError
	if errors.As(err, &transientErr) {
		return transientErr.Message, string(transientErr.Code), true
	}

	return "", "", false
}

func statusForKind(kind domainerror.ErrorKind) int {
	switch kind {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindConsistency:
		return http.StatusConflict
	case domainerror.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// statusForAuthError maps auth error codes to HTTP status codes.
func statusForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeForbidden:
		return http.StatusForbidden
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// badRequest answers a request that failed binding or parsing.
func badRequest(ctx *gin.Context, message, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

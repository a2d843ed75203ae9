package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/usecase/reconciliation"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
	"github.com/project-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/project-ledger/backend/internal/integration/entrypoint/middleware"
)

// ReconciliationController handles paid amount reconciliation endpoints.
type ReconciliationController struct {
	recomputeUseCase  *reconciliation.RecomputeProjectUseCase
	runUseCase        *reconciliation.RunReconciliationUseCase
	getPendingUseCase *reconciliation.GetPendingUseCase
}

// NewReconciliationController creates a new reconciliation controller instance.
func NewReconciliationController(
	recomputeUseCase *reconciliation.RecomputeProjectUseCase,
	runUseCase *reconciliation.RunReconciliationUseCase,
	getPendingUseCase *reconciliation.GetPendingUseCase,
) *ReconciliationController {
	return &ReconciliationController{
		recomputeUseCase:  recomputeUseCase,
		runUseCase:        runUseCase,
		getPendingUseCase: getPendingUseCase,
	}
}

// RecomputeProject handles POST /reconciliation/projects/:id requests.
func (c *ReconciliationController) RecomputeProject(ctx *gin.Context) {
	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Project not found",
			Code:  string(domainerror.ErrCodeProjectNotFound),
		})
		return
	}

	output, err := c.recomputeUseCase.Execute(ctx.Request.Context(), projectID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if output.Result.Drifted() {
		middleware.GetLoggerFromContext(ctx).Warn("Paid amount corrected",
			"project_id", projectID,
			"previous", output.Result.Previous.String(),
			"paid_amount", output.Result.PaidAmount.String(),
		)
	}

	ctx.JSON(http.StatusOK, dto.ToRecomputeResponse(output.Result))
}

// Run handles POST /reconciliation/run requests.
func (c *ReconciliationController) Run(ctx *gin.Context) {
	output, err := c.runUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReconciliationRunResponse(output))
}

// GetPending handles GET /reconciliation/pending requests.
func (c *ReconciliationController) GetPending(ctx *gin.Context) {
	ids, err := c.getPendingUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPendingReconciliationResponse(ids))
}

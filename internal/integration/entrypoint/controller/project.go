package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/usecase/project"
	"github.com/project-ledger/backend/internal/application/usecase/report"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
	"github.com/project-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/project-ledger/backend/internal/integration/entrypoint/middleware"
)

// ProjectController handles project endpoints.
type ProjectController struct {
	listUseCase        *project.ListProjectsUseCase
	getUseCase         *project.GetProjectUseCase
	createUseCase      *project.CreateProjectUseCase
	updateUseCase      *project.UpdateProjectUseCase
	deleteUseCase      *project.DeleteProjectUseCase
	pdfUseCase         *report.GenerateProjectReportUseCase
	shareUseCase       *report.ShareProjectUseCase
	emailReportUseCase *report.EmailProjectReportUseCase
}

// NewProjectController creates a new project controller instance.
func NewProjectController(
	listUseCase *project.ListProjectsUseCase,
	getUseCase *project.GetProjectUseCase,
	createUseCase *project.CreateProjectUseCase,
	updateUseCase *project.UpdateProjectUseCase,
	deleteUseCase *project.DeleteProjectUseCase,
	pdfUseCase *report.GenerateProjectReportUseCase,
	shareUseCase *report.ShareProjectUseCase,
	emailReportUseCase *report.EmailProjectReportUseCase,
) *ProjectController {
	return &ProjectController{
		listUseCase:        listUseCase,
		getUseCase:         getUseCase,
		createUseCase:      createUseCase,
		updateUseCase:      updateUseCase,
		deleteUseCase:      deleteUseCase,
		pdfUseCase:         pdfUseCase,
		shareUseCase:       shareUseCase,
		emailReportUseCase: emailReportUseCase,
	}
}

// List handles GET /projects requests.
func (c *ProjectController) List(ctx *gin.Context) {
	var input project.ListProjectsInput
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.ProjectStatus(statusStr)
		if !status.IsValid() {
			badRequest(ctx, "Invalid project status", string(domainerror.ErrCodeInvalidProjectStatus))
			return
		}
		input.Status = &status
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectListResponse(output))
}

// Get handles GET /projects/:id requests.
func (c *ProjectController) Get(ctx *gin.Context) {
	projectID, ok := c.projectID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), projectID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectDetailResponse(output))
}

// Create handles POST /projects requests.
func (c *ProjectController) Create(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingProjectFields),
			Details: err.Error(),
		})
		return
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		badRequest(ctx, "Invalid start_date", string(domainerror.ErrCodeInvalidDateRange))
		return
	}
	endDate, err := dto.ParseDate(req.EndDate)
	if err != nil {
		badRequest(ctx, "Invalid end_date", string(domainerror.ErrCodeInvalidDateRange))
		return
	}

	principal, _ := middleware.GetPrincipalFromContext(ctx)
	output, err := c.createUseCase.Execute(ctx.Request.Context(), project.CreateProjectInput{
		Name:           req.Name,
		Partner:        req.Partner,
		Status:         entity.ProjectStatus(req.Status),
		Value:          req.Value,
		TaxRate:        req.TaxRate,
		StartDate:      startDate,
		EndDate:        endDate,
		ContractNumber: req.ContractNumber,
		Description:    req.Description,
		Actor:          principal,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProjectResponse(output.Project))
}

// Update handles PATCH /projects/:id requests.
func (c *ProjectController) Update(ctx *gin.Context) {
	projectID, ok := c.projectID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingProjectFields),
			Details: err.Error(),
		})
		return
	}

	principal, _ := middleware.GetPrincipalFromContext(ctx)
	input := project.UpdateProjectInput{
		ProjectID:      projectID,
		Name:           req.Name,
		Partner:        req.Partner,
		Value:          req.Value,
		TaxRate:        req.TaxRate,
		ContractNumber: req.ContractNumber,
		Description:    req.Description,
		Actor:          principal,
	}
	if req.Status != nil {
		status := entity.ProjectStatus(*req.Status)
		input.Status = &status
	}
	if req.StartDate != nil {
		startDate, err := dto.ParseDate(*req.StartDate)
		if err != nil {
			badRequest(ctx, "Invalid start_date", string(domainerror.ErrCodeInvalidDateRange))
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := dto.ParseDate(*req.EndDate)
		if err != nil {
			badRequest(ctx, "Invalid end_date", string(domainerror.ErrCodeInvalidDateRange))
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectResponse(output.Project))
}

// Delete handles DELETE /projects/:id requests. The project's transactions go with it.
func (c *ProjectController) Delete(ctx *gin.Context) {
	projectID, ok := c.projectID(ctx)
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), projectID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteProjectResponse{
		DeletedTransactions: output.DeletedTransactions,
		OrphanedImages:      output.OrphanedImages,
	})
}

// ReportPDF handles GET /projects/:id/report.pdf requests.
func (c *ProjectController) ReportPDF(ctx *gin.Context) {
	projectID, ok := c.projectID(ctx)
	if !ok {
		return
	}

	output, err := c.pdfUseCase.Execute(ctx.Request.Context(), projectID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName))
	ctx.Data(http.StatusOK, "application/pdf", output.Content)
}

// Share handles GET /projects/:id/share requests.
func (c *ProjectController) Share(ctx *gin.Context) {
	projectID, ok := c.projectID(ctx)
	if !ok {
		return
	}

	output, err := c.shareUseCase.Execute(ctx.Request.Context(), projectID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ShareResponse{
		Message: output.Message,
		URL:     output.URL,
	})
}

// EmailReport handles POST /projects/:id/report/email requests.
func (c *ProjectController) EmailReport(ctx *gin.Context) {
	projectID, ok := c.projectID(ctx)
	if !ok {
		return
	}

	var req dto.EmailReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingRecipient))
		return
	}

	err := c.emailReportUseCase.Execute(ctx.Request.Context(), report.EmailProjectReportInput{
		ProjectID:      projectID,
		RecipientEmail: req.RecipientEmail,
		RecipientName:  req.RecipientName,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.MessageResponse{
		Message: fmt.Sprintf("Laporan akan dikirim ke %s", req.RecipientEmail),
	})
}

func (c *ProjectController) projectID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Project not found",
			Code:  string(domainerror.ErrCodeProjectNotFound),
		})
		return uuid.Nil, false
	}
	return id, true
}

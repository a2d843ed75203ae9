package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/usecase/report"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
	"github.com/project-ledger/backend/internal/integration/entrypoint/dto"
)

// ReportController handles portfolio reporting endpoints.
type ReportController struct {
	dashboardUseCase *report.GetDashboardUseCase
	deadlinesUseCase *report.GetDeadlinesUseCase
	dateRangeUseCase *report.GetDateRangeUseCase
	remindersUseCase *report.SendDeadlineRemindersUseCase
	windowDays       int
}

// NewReportController creates a new report controller instance. windowDays is
// the default deadline look-ahead.
func NewReportController(
	dashboardUseCase *report.GetDashboardUseCase,
	deadlinesUseCase *report.GetDeadlinesUseCase,
	dateRangeUseCase *report.GetDateRangeUseCase,
	remindersUseCase *report.SendDeadlineRemindersUseCase,
	windowDays int,
) *ReportController {
	return &ReportController{
		dashboardUseCase: dashboardUseCase,
		deadlinesUseCase: deadlinesUseCase,
		dateRangeUseCase: dateRangeUseCase,
		remindersUseCase: remindersUseCase,
		windowDays:       windowDays,
	}
}

// Dashboard handles GET /reports/dashboard requests.
func (c *ReportController) Dashboard(ctx *gin.Context) {
	output, err := c.dashboardUseCase.Execute(ctx.Request.Context(), report.GetDashboardInput{
		Today:       time.Now(),
		WindowDays:  c.window(ctx),
		RecentLimit: queryInt(ctx, "recent_limit", report.DefaultRecentLimit),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}

// Deadlines handles GET /reports/deadlines requests.
func (c *ReportController) Deadlines(ctx *gin.Context) {
	output, err := c.deadlinesUseCase.Execute(ctx.Request.Context(), report.GetDeadlinesInput{
		Today:      time.Now(),
		WindowDays: c.window(ctx),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDeadlinesResponse(output))
}

// DateRange handles GET /reports/date-range requests.
func (c *ReportController) DateRange(ctx *gin.Context) {
	var input report.GetDateRangeInput

	if startStr := ctx.Query("start_date"); startStr != "" {
		startDate, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			badRequest(ctx, domainerror.ErrInvalidDateFormat.Error(), string(domainerror.ErrCodeInvalidDateFormat))
			return
		}
		input.StartDate = startDate
	}
	if endStr := ctx.Query("end_date"); endStr != "" {
		endDate, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			badRequest(ctx, domainerror.ErrInvalidDateFormat.Error(), string(domainerror.ErrCodeInvalidDateFormat))
			return
		}
		input.EndDate = endDate
	}
	if projectStr := ctx.Query("project_id"); projectStr != "" {
		projectID, err := uuid.Parse(projectStr)
		if err != nil {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: "Project not found",
				Code:  string(domainerror.ErrCodeReportProjectNotFound),
			})
			return
		}
		input.ProjectID = &projectID
	}

	output, err := c.dateRangeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDateRangeResponse(output))
}

// SendReminders handles POST /reports/reminders requests.
func (c *ReportController) SendReminders(ctx *gin.Context) {
	output, err := c.remindersUseCase.Execute(ctx.Request.Context(), report.SendDeadlineRemindersInput{
		Today:      time.Now(),
		WindowDays: c.window(ctx),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.RemindersResponse{
		Upcoming:   output.Upcoming,
		Overdue:    output.Overdue,
		Recipients: output.Recipients,
	})
}

func (c *ReportController) window(ctx *gin.Context) int {
	return queryInt(ctx, "window_days", c.windowDays)
}

// queryInt reads a positive integer query parameter.
func queryInt(ctx *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(ctx.Query(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// Package router sets up the HTTP routing for the application.
package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/project-ledger/backend/internal/domain/entity"
	"github.com/project-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/project-ledger/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers mounted by the router.
type Controllers struct {
	Health         *controller.HealthController
	Auth           *controller.AuthController
	User           *controller.UserController
	Project        *controller.ProjectController
	Transaction    *controller.TransactionController
	Report         *controller.ReportController
	Reconciliation *controller.ReconciliationController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	controllers         Controllers
	authMiddleware      *middleware.AuthMiddleware
	loginRateLimiter    *middleware.RateLimiter
	analysisRateLimiter *middleware.RateLimiter
	logger              *slog.Logger
	corsOrigins         []string
}

// NewRouter creates a new router instance with all dependencies.
// Nil rate limiters leave the matching routes unthrottled.
func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	loginRateLimiter *middleware.RateLimiter,
	analysisRateLimiter *middleware.RateLimiter,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	return &Router{
		controllers:         controllers,
		authMiddleware:      authMiddleware,
		loginRateLimiter:    loginRateLimiter,
		analysisRateLimiter: analysisRateLimiter,
		logger:              logger,
		corsOrigins:         corsOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware (logger and recovery)
	r.engine = gin.Default()
	r.engine.Use(cors.New(r.corsConfig()))
	r.engine.Use(middleware.StructuredLoggingMiddleware(r.logger))

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) corsConfig() cors.Config {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(r.corsOrigins) == 0 {
		config.AllowAllOrigins = true
		config.AllowCredentials = false
	} else {
		config.AllowOrigins = r.corsOrigins
	}
	return config
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
	r.engine.GET("/api/v1/health", r.controllers.Health.Check)
}

// setupAPIRoutes configures the main API routes. Reads need any signed-in
// user; anything that changes data needs the admin role.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	adminOnly := middleware.RequireRole(entity.RoleAdmin)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", chain(limit(r.loginRateLimiter), r.controllers.Auth.Login)...)
		auth.POST("/refresh", r.controllers.Auth.RefreshToken)
		auth.POST("/logout", r.controllers.Auth.Logout)
	}

	authenticated := v1.Group("")
	authenticated.Use(r.authMiddleware.Authenticate())

	users := authenticated.Group("/users")
	{
		users.GET("/me", r.controllers.User.Me)
	}

	projects := authenticated.Group("/projects")
	{
		projects.GET("", r.controllers.Project.List)
		projects.POST("", adminOnly, r.controllers.Project.Create)
		projects.GET("/:id", r.controllers.Project.Get)
		projects.PATCH("/:id", adminOnly, r.controllers.Project.Update)
		projects.DELETE("/:id", adminOnly, r.controllers.Project.Delete)
		projects.GET("/:id/report.pdf", r.controllers.Project.ReportPDF)
		projects.GET("/:id/share", r.controllers.Project.Share)
		projects.POST("/:id/report/email", adminOnly, r.controllers.Project.EmailReport)
	}

	transactions := authenticated.Group("/transactions")
	{
		transactions.GET("", r.controllers.Transaction.List)
		transactions.GET("/recent", r.controllers.Transaction.Recent)
		transactions.GET("/categories", r.controllers.Transaction.Categories)
		transactions.POST("", adminOnly, r.controllers.Transaction.Create)
		transactions.PATCH("/:id", adminOnly, r.controllers.Transaction.Update)
		transactions.DELETE("/:id", adminOnly, r.controllers.Transaction.Delete)
		transactions.POST("/evidence", adminOnly, r.controllers.Transaction.UploadEvidence)
		transactions.POST("/analyze", chain(
			[]gin.HandlerFunc{adminOnly},
			chain(limit(r.analysisRateLimiter), r.controllers.Transaction.Analyze)...,
		)...)
	}

	reports := authenticated.Group("/reports")
	{
		reports.GET("/dashboard", r.controllers.Report.Dashboard)
		reports.GET("/deadlines", r.controllers.Report.Deadlines)
		reports.GET("/date-range", r.controllers.Report.DateRange)
		reports.POST("/reminders", adminOnly, r.controllers.Report.SendReminders)
	}

	reconciliation := authenticated.Group("/reconciliation")
	reconciliation.Use(adminOnly)
	{
		reconciliation.POST("/projects/:id", r.controllers.Reconciliation.RecomputeProject)
		reconciliation.POST("/run", r.controllers.Reconciliation.Run)
		reconciliation.GET("/pending", r.controllers.Reconciliation.GetPending)
	}
}

func chain(handlers []gin.HandlerFunc, rest ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers)+len(rest))
	out = append(out, handlers...)
	return append(out, rest...)
}

// limit returns the limiter middleware, or nothing when rl is nil.
func limit(rl *middleware.RateLimiter) []gin.HandlerFunc {
	if rl == nil {
		return nil
	}
	return []gin.HandlerFunc{rl.Middleware()}
}

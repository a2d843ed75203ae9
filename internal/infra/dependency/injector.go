// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/project-ledger/backend/config"
	"github.com/project-ledger/backend/internal/application/adapter"
	aianalysis "github.com/project-ledger/backend/internal/application/usecase/ai_analysis"
	"github.com/project-ledger/backend/internal/application/usecase/auth"
	"github.com/project-ledger/backend/internal/application/usecase/ledger"
	"github.com/project-ledger/backend/internal/application/usecase/project"
	"github.com/project-ledger/backend/internal/application/usecase/reconciliation"
	"github.com/project-ledger/backend/internal/application/usecase/report"
	"github.com/project-ledger/backend/internal/application/usecase/transaction"
	"github.com/project-ledger/backend/internal/infra/server/router"
	"github.com/project-ledger/backend/internal/integration/adapters"
	"github.com/project-ledger/backend/internal/integration/email"
	"github.com/project-ledger/backend/internal/integration/email/templates"
	"github.com/project-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/project-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/project-ledger/backend/internal/integration/persistence"
	"github.com/project-ledger/backend/internal/integration/worker"
)

// Dependencies are the connections and external services the injector wires
// together. Redis, Storage and Analyzer are optional; EmailSender defaults to
// Resend when an API key is configured and to an in-memory sender otherwise.
type Dependencies struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Storage     adapter.BlobStorage
	Analyzer    adapter.ImageAnalyzer
	EmailSender adapter.EmailSender
	Logger      *slog.Logger
}

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *router.Router
	Engine    *ledger.Engine
	SeedAdmin *auth.SeedAdminUseCase

	// Workers are the background loops; each blocks until its context is cancelled.
	Workers map[string]func(ctx context.Context)
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, deps Dependencies) (*Injector, error) {
	db := deps.DB
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	projectRepo := persistence.NewProjectRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	analysisRepo := persistence.NewAIAnalysisRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	pdfRenderer := adapters.NewPDFReportRenderer()
	emailService := email.NewService(emailQueueRepo)

	var reconcileQueue adapter.ReconcileQueue
	if deps.Redis != nil {
		reconcileQueue = adapters.NewRedisReconcileQueue(deps.Redis)
	} else {
		slog.Warn("Redis not configured, reconcile queue is kept in memory")
		reconcileQueue = adapters.NewMemoryReconcileQueue()
	}

	analyzer := deps.Analyzer
	if analyzer == nil {
		analyzer = adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.Model).WithTimeout(cfg.AI.Timeout)
	}

	var ledgerStore adapter.LedgerStore
	switch ledger.Strategy(cfg.Ledger.Strategy) {
	case ledger.StrategyAtomic, "":
		ledgerStore = persistence.NewLedgerStore(db)
	case ledger.StrategySequential:
	default:
		return nil, fmt.Errorf("unknown ledger strategy %q", cfg.Ledger.Strategy)
	}
	engine := ledger.NewEngine(transactionRepo, projectRepo, ledgerStore, reconcileQueue)
	slog.Info("Ledger engine configured", "strategy", engine.Strategy())

	// Create auth use cases
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getCurrentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)
	seedAdminUseCase := auth.NewSeedAdminUseCase(userRepo, passwordService)

	// Create project use cases
	listProjectsUseCase := project.NewListProjectsUseCase(projectRepo)
	getProjectUseCase := project.NewGetProjectUseCase(projectRepo, transactionRepo)
	createProjectUseCase := project.NewCreateProjectUseCase(projectRepo)
	updateProjectUseCase := project.NewUpdateProjectUseCase(projectRepo)
	deleteProjectUseCase := project.NewDeleteProjectUseCase(projectRepo, deps.Storage, reconcileQueue)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	recentTransactionsUseCase := transaction.NewListRecentTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(engine)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, engine)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(engine, deps.Storage)
	uploadEvidenceUseCase := transaction.NewUploadEvidenceUseCase(deps.Storage)
	analyzeImageUseCase := aianalysis.NewAnalyzeImageUseCase(analyzer, deps.Storage, analysisRepo)

	// Create report use cases
	dashboardUseCase := report.NewGetDashboardUseCase(projectRepo, transactionRepo)
	deadlinesUseCase := report.NewGetDeadlinesUseCase(projectRepo)
	dateRangeUseCase := report.NewGetDateRangeUseCase(transactionRepo)
	projectReportUseCase := report.NewGenerateProjectReportUseCase(projectRepo, transactionRepo, pdfRenderer)
	shareProjectUseCase := report.NewShareProjectUseCase(projectRepo, transactionRepo, cfg.Email.AppBaseURL)
	emailReportUseCase := report.NewEmailProjectReportUseCase(projectRepo, transactionRepo, emailService, cfg.Email.AppBaseURL)
	remindersUseCase := report.NewSendDeadlineRemindersUseCase(projectRepo, userRepo, emailService, cfg.Email.AppBaseURL)

	// Create reconciliation use cases
	recomputeUseCase := reconciliation.NewRecomputeProjectUseCase(engine, reconcileQueue)
	runReconciliationUseCase := reconciliation.NewRunReconciliationUseCase(projectRepo, engine)
	pendingUseCase := reconciliation.NewGetPendingUseCase(reconcileQueue)
	drainQueueUseCase := reconciliation.NewDrainQueueUseCase(reconcileQueue, engine)

	// Create controllers
	checks := map[string]controller.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}
	}

	controllers := router.Controllers{
		Health: controller.NewHealthController(checks),
		Auth:   controller.NewAuthController(loginUseCase, refreshTokenUseCase, logoutUseCase),
		User:   controller.NewUserController(getCurrentUserUseCase),
		Project: controller.NewProjectController(
			listProjectsUseCase,
			getProjectUseCase,
			createProjectUseCase,
			updateProjectUseCase,
			deleteProjectUseCase,
			projectReportUseCase,
			shareProjectUseCase,
			emailReportUseCase,
		),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			recentTransactionsUseCase,
			createTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
			uploadEvidenceUseCase,
			analyzeImageUseCase,
		),
		Report: controller.NewReportController(
			dashboardUseCase,
			deadlinesUseCase,
			dateRangeUseCase,
			remindersUseCase,
			cfg.Reminder.WindowDays,
		),
		Reconciliation: controller.NewReconciliationController(
			recomputeUseCase,
			runReconciliationUseCase,
			pendingUseCase,
		),
	}

	// Create middleware
	loginRateLimiter, err := middleware.NewRateLimiter("login", cfg.RateLimit.Login, deps.Redis)
	if err != nil {
		return nil, err
	}
	analysisRateLimiter, err := middleware.NewRateLimiter("ai-analysis", cfg.RateLimit.Analysis, deps.Redis)
	if err != nil {
		return nil, err
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		controllers,
		authMiddleware,
		loginRateLimiter,
		analysisRateLimiter,
		logger,
		cfg.Server.CORSOrigins,
	)

	// Create background workers
	workers := make(map[string]func(ctx context.Context))

	if cfg.Email.WorkerEnabled {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to load email templates: %w", err)
		}

		sender := deps.EmailSender
		if sender == nil {
			if cfg.Email.ResendAPIKey != "" {
				sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
			} else {
				slog.Warn("RESEND_API_KEY not set, emails are only recorded in memory")
				sender = email.NewRecordingSender()
			}
		}

		emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
		workers["email"] = emailWorker.Start
	}

	if cfg.Ledger.ReconcileEnabled {
		workers["reconcile"] = worker.NewReconcileWorker(drainQueueUseCase, cfg.Ledger.ReconcileInterval).Start
	}

	if cfg.Reminder.Enabled {
		workers["reminder"] = worker.NewReminderScheduler(remindersUseCase, emailQueueRepo, worker.ReminderSchedulerConfig{
			Interval:           cfg.Reminder.Interval,
			WindowDays:         cfg.Reminder.WindowDays,
			EmailRetentionDays: cfg.Email.RetentionDays,
		}).Start
	}

	return &Injector{
		Config:    cfg,
		DB:        db,
		Router:    r,
		Engine:    engine,
		SeedAdmin: seedAdminUseCase,
		Workers:   workers,
	}, nil
}

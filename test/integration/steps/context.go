// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/project-ledger/backend/config"
	"github.com/project-ledger/backend/internal/domain/entity"
	"github.com/project-ledger/backend/internal/infra/dependency"
	"github.com/project-ledger/backend/internal/integration/email"
	"github.com/project-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/project-ledger/backend/internal/integration/persistence/model"
	"github.com/project-ledger/backend/test/integration/mock"
)

const (
	testJWTSecret     = "test-jwt-secret-key-for-testing-purposes"
	testAdminEmail    = "admin@permata.test"
	testAdminPassword = "Admin123!"
)

// tables lists the migrated models, parents before children.
var tables = []string{"users", "refresh_tokens", "projects", "transactions", "email_queue", "ai_analyses"}

// suite is the server shared by all scenarios; each scenario clears its data.
type suite struct {
	db       *mock.Db
	server   *httptest.Server
	injector *dependency.Injector
	storage  *memoryStorage
	analyzer *scriptedAnalyzer
	sender   *email.RecordingSender
}

var shared suite
var serverInit sync.Once

type testContext struct {
	*suite

	client      *http.Client
	timeMock    *mock.Time
	headers     map[string]string
	response    *response
	lastHeaders http.Header
	accessToken string

	refreshToken  string
	actor         entity.Principal
	projects      map[string]uuid.UUID
	lastProjectID uuid.UUID
	lastTxID      uuid.UUID
}

type response struct {
	status int
	body   any
	raw    []byte
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		if err := dto.RegisterValidators(); err != nil {
			panic(err)
		}
	})

	ctx.AfterSuite(func() {
		if shared.server != nil {
			shared.server.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		suite:  &shared,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	registerRequestSteps(ctx, test)
	registerLedgerSteps(ctx, test)
}

func (t *testContext) before() error {
	t.startServer()

	t.timeMock = mock.NewTime()
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.actor = entity.Principal{}
	t.projects = make(map[string]uuid.UUID)
	t.lastProjectID = uuid.Nil
	t.lastTxID = uuid.Nil

	t.storage.reset()
	t.analyzer.reset()
	t.sender.Reset()

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		shared.db = mock.NewDb("project_ledger", tables, map[string]any{
			"users":          &model.UserModel{},
			"refresh_tokens": &model.RefreshTokenModel{},
			"projects":       &model.ProjectModel{},
			"transactions":   &model.TransactionModel{},
			"email_queue":    &model.EmailJobModel{},
			"ai_analyses":    &model.AIAnalysisModel{},
		})
		shared.storage = newMemoryStorage()
		shared.analyzer = &scriptedAnalyzer{}
		shared.sender = email.NewRecordingSender()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.Ledger.Strategy = "atomic"
		cfg.RateLimit.Login = "100-M"
		cfg.RateLimit.Analysis = "100-H"
		cfg.Email.AppBaseURL = "https://ledger.permata.test"

		injector, err := dependency.NewInjector(cfg, dependency.Dependencies{
			DB:          shared.db.DbConn,
			Redis:       mock.NewRedis(),
			Storage:     shared.storage,
			Analyzer:    shared.analyzer,
			EmailSender: shared.sender,
			Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
		if err != nil {
			panic(fmt.Sprintf("failed to wire dependencies: %v", err))
		}

		shared.injector = injector
		shared.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})
}

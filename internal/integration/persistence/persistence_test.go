package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/project-ledger/backend/internal/domain/entity"
	"github.com/project-ledger/backend/internal/integration/persistence/model"
)

var testActor = entity.Principal{UserID: uuid.New(), Email: "admin@permata.test", Role: entity.RoleAdmin}

// openTestDB opens a private in-memory database with the ledger tables migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// openSharedTestDB opens a file database that several connections write to at
// once. Foreign keys are enforced and transactions take the write lock up front.
func openSharedTestDB(t *testing.T, maxConns int) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "ledger.db") +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	dbSQL, err := db.DB()
	require.NoError(t, err)
	dbSQL.SetMaxOpenConns(maxConns)
	t.Cleanup(func() { _ = dbSQL.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func seedProject(t *testing.T, db *gorm.DB, paid decimal.Decimal) *entity.Project {
	t.Helper()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	project := entity.NewProject(
		"Instalasi Panel Surya", "PT Mitra Energi", entity.ProjectStatusOngoing,
		decimal.NewFromInt(100_000_000), entity.TaxRateStandard,
		start, start.AddDate(0, 6, 0), "SPK-001", "", testActor,
	)
	project.PaidAmount = paid
	require.NoError(t, NewProjectRepository(db).Create(context.Background(), project))
	return project
}

func newIncome(projectID uuid.UUID, amount int64) *entity.Transaction {
	return entity.NewTransaction(
		projectID, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		entity.TransactionTypeIncome, entity.CategoryPayment,
		decimal.NewFromInt(amount), "Termin", testActor,
	)
}

func newExpense(projectID uuid.UUID, amount int64) *entity.Transaction {
	return entity.NewTransaction(
		projectID, time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC),
		entity.TransactionTypeExpense, entity.CategoryMaterial,
		decimal.NewFromInt(amount), "Kabel", testActor,
	)
}

func paidAmount(t *testing.T, db *gorm.DB, projectID uuid.UUID) decimal.Decimal {
	t.Helper()
	project, err := NewProjectRepository(db).FindByID(context.Background(), projectID)
	require.NoError(t, err)
	return project.PaidAmount
}

func requireDecimal(t *testing.T, expected int64, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.NewFromInt(expected).Equal(actual), "expected %d, got %s", expected, actual)
}

package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/project-ledger/backend/internal/application/usecase/auth"
	"github.com/project-ledger/backend/internal/domain/entity"
	"github.com/project-ledger/backend/internal/integration/persistence"
	"github.com/project-ledger/backend/internal/integration/persistence/model"
)

func registerLedgerSteps(ctx *godog.ScenarioContext, t *testContext) {
	// User setup steps
	ctx.Given(`^I am logged in as the admin$`, t.iAmLoggedInAsTheAdmin)
	ctx.Given(`^I am logged in as a viewer "([^"]*)"$`, t.iAmLoggedInAsAViewer)
	ctx.Given(`^the admin account is seeded$`, t.theAdminAccountIsSeeded)

	// Project setup steps
	ctx.Given(`^a project "([^"]*)" exists with value "([^"]*)"$`, t.aProjectExistsWithValue)
	ctx.Given(`^a project "([^"]*)" with status "([^"]*)" ends in (-?\d+) days$`, t.aProjectWithStatusEndsInDays)
	ctx.Given(`^the project "([^"]*)" has an? (income|expense) of "([^"]*)"$`, t.theProjectHasATransactionOf)
	ctx.Given(`^the paid amount of project "([^"]*)" is overwritten with "([^"]*)"$`, t.thePaidAmountIsOverwritten)

	// Collaborator steps
	ctx.Given(`^the analyzer answers:$`, t.theAnalyzerAnswers)
	ctx.Given(`^the analyzer fails with "([^"]*)"$`, t.theAnalyzerFailsWith)
	ctx.When(`^the email worker delivers pending emails$`, t.theEmailWorkerDeliversPendingEmails)

	// Ledger assertion steps
	ctx.Then(`^the project "([^"]*)" should have paid amount "([^"]*)"$`, t.theProjectShouldHavePaidAmount)
	ctx.Then(`^the project "([^"]*)" should have (\d+) transactions?$`, t.theProjectShouldHaveTransactions)
	ctx.Then(`^the ledger of project "([^"]*)" should be consistent$`, t.theLedgerShouldBeConsistent)

	// Database and collaborator assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the storage should contain (\d+) objects?$`, t.theStorageShouldContainObjects)
	ctx.Then(`^an email should have been sent to "([^"]*)" with subject containing "([^"]*)"$`, t.anEmailShouldHaveBeenSent)
}

func (t *testContext) theAdminAccountIsSeeded() error {
	_, err := t.injector.SeedAdmin.Execute(context.Background(), auth.SeedAdminInput{
		Email:    testAdminEmail,
		Name:     "Administrator",
		Password: testAdminPassword,
	})
	return err
}

func (t *testContext) iAmLoggedInAsTheAdmin() error {
	if err := t.theAdminAccountIsSeeded(); err != nil {
		return err
	}
	return t.login(testAdminEmail, testAdminPassword)
}

func (t *testContext) iAmLoggedInAsAViewer(email string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("Viewer123!"), bcrypt.MinCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Viewer",
		PasswordHash: string(hash),
		Role:         string(entity.RoleViewer),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := t.db.DbConn.Create(user).Error; err != nil {
		return err
	}

	return t.login(email, "Viewer123!")
}

func (t *testContext) login(email, password string) error {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	if err := t.executeRequest("POST", "/api/v1/auth/login", payload, "application/json"); err != nil {
		return err
	}
	if t.response.status != 200 {
		return fmt.Errorf("login as %s failed with %d: %v", email, t.response.status, t.response.body)
	}

	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	t.accessToken, _ = body["access_token"].(string)
	t.refreshToken, _ = body["refresh_token"].(string)

	userID, err := uuid.Parse(fmt.Sprint(getFieldValue(body, "user.id")))
	if err != nil {
		return fmt.Errorf("login response has no user id: %v", body)
	}
	t.actor = entity.Principal{
		UserID: userID,
		Email:  email,
		Role:   entity.Role(fmt.Sprint(getFieldValue(body, "user.role"))),
	}
	return nil
}

func (t *testContext) aProjectExistsWithValue(name, value string) error {
	return t.createProject(name, entity.ProjectStatusOngoing, value, t.timeMock.DaysFromToday(90))
}

func (t *testContext) aProjectWithStatusEndsInDays(name, status string, days int) error {
	return t.createProject(name, entity.ProjectStatus(status), "50000000", t.timeMock.DaysFromToday(days))
}

func (t *testContext) createProject(name string, status entity.ProjectStatus, value string, endDate time.Time) error {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("invalid project value %q: %w", value, err)
	}

	project := entity.NewProject(
		name, "PT Mitra "+name, status, amount, entity.TaxRateStandard,
		t.timeMock.DaysFromToday(-60), endDate, "SPK/"+strings.ToUpper(name[:1]), "", t.actor,
	)
	if err := persistence.NewProjectRepository(t.db.DbConn).Create(context.Background(), project); err != nil {
		return err
	}

	t.projects[name] = project.ID
	t.lastProjectID = project.ID
	return nil
}

// theProjectHasATransactionOf books through the ledger engine, as the API would.
func (t *testContext) theProjectHasATransactionOf(name, kind, value string) error {
	projectID, err := t.projectID(name)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return err
	}

	txType := entity.TransactionType(kind)
	category := entity.CategoryPayment
	if txType == entity.TransactionTypeExpense {
		category = entity.CategoryMaterial
	}

	transaction := entity.NewTransaction(
		projectID, t.timeMock.Today().Add(9*time.Hour), txType, category, amount, "Termin "+name, t.actor,
	)
	if err := t.injector.Engine.RecordCreate(context.Background(), transaction); err != nil {
		return err
	}

	t.lastTxID = transaction.ID
	return nil
}

func (t *testContext) thePaidAmountIsOverwritten(name, value string) error {
	projectID, err := t.projectID(name)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return err
	}
	return t.db.DbConn.Model(&model.ProjectModel{}).
		Where("id = ?", projectID).
		Update("paid_amount", amount).Error
}

func (t *testContext) theAnalyzerAnswers(body *godog.DocString) error {
	t.analyzer.script(body.Content, nil)
	return nil
}

func (t *testContext) theAnalyzerFailsWith(message string) error {
	t.analyzer.script("", fmt.Errorf("%s", message))
	return nil
}

// theEmailWorkerDeliversPendingEmails runs the email worker until the queue
// holds no pending jobs, then stops it.
func (t *testContext) theEmailWorkerDeliversPendingEmails() error {
	start, ok := t.injector.Workers["email"]
	if !ok {
		return fmt.Errorf("email worker is not enabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		start(ctx)
		close(done)
	}()

	deadline := time.Now().Add(5 * time.Second)
	var pending int64
	for time.Now().Before(deadline) {
		err := t.db.DbConn.Model(&model.EmailJobModel{}).
			Where("status IN ?", []string{string(entity.EmailStatusPending), string(entity.EmailStatusProcessing)}).
			Count(&pending).Error
		if err == nil && pending == 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	<-done

	if pending != 0 {
		return fmt.Errorf("%d emails still pending", pending)
	}
	return nil
}

func (t *testContext) theProjectShouldHavePaidAmount(name, expected string) error {
	project, err := t.loadProject(name)
	if err != nil {
		return err
	}
	if actual := project.PaidAmount.StringFixed(2); actual != expected {
		return fmt.Errorf("project %q paid amount expected %s, got %s", name, expected, actual)
	}
	return nil
}

func (t *testContext) theProjectShouldHaveTransactions(name string, count int) error {
	projectID, err := t.projectID(name)
	if err != nil {
		return err
	}

	var actual int64
	if err := t.db.DbConn.Model(&model.TransactionModel{}).Where("project_id = ?", projectID).Count(&actual).Error; err != nil {
		return err
	}
	if int(actual) != count {
		return fmt.Errorf("project %q expected %d transactions, got %d", name, count, actual)
	}
	return nil
}

// theLedgerShouldBeConsistent checks the stored paid amount against the sum of
// the project's income rows.
func (t *testContext) theLedgerShouldBeConsistent(name string) error {
	project, err := t.loadProject(name)
	if err != nil {
		return err
	}

	var rows []model.TransactionModel
	err = t.db.DbConn.
		Where("project_id = ? AND type = ?", project.ID, string(entity.TransactionTypeIncome)).
		Find(&rows).Error
	if err != nil {
		return err
	}

	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.Amount)
	}
	if !sum.Equal(project.PaidAmount) {
		return fmt.Errorf("project %q paid amount %s does not match income total %s",
			name, project.PaidAmount.StringFixed(2), sum.StringFixed(2))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entityModel, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	var count int64
	if err := t.db.DbConn.Model(entityModel).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theStorageShouldContainObjects(count int) error {
	if actual := t.storage.count(); actual != count {
		return fmt.Errorf("expected %d stored objects, got %d", count, actual)
	}
	return nil
}

func (t *testContext) anEmailShouldHaveBeenSent(recipient, subject string) error {
	for _, sent := range t.sender.SentEmails {
		if sent.To == recipient && strings.Contains(sent.Subject, subject) {
			return nil
		}
	}
	return fmt.Errorf("no email to %s with subject containing %q among %d sent", recipient, subject, len(t.sender.SentEmails))
}

func (t *testContext) projectID(name string) (uuid.UUID, error) {
	id, ok := t.projects[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("project %q was not created in this scenario", name)
	}
	return id, nil
}

func (t *testContext) loadProject(name string) (*model.ProjectModel, error) {
	projectID, err := t.projectID(name)
	if err != nil {
		return nil, err
	}

	var project model.ProjectModel
	if err := t.db.DbConn.Where("id = ?", projectID).First(&project).Error; err != nil {
		return nil, fmt.Errorf("failed to load project %q: %w", name, err)
	}
	return &project, nil
}

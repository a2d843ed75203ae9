package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/project-ledger/backend/internal/application/adapter"
	"github.com/project-ledger/backend/internal/application/adapter/mocks"
	"github.com/project-ledger/backend/internal/application/usecase/report"
	"github.com/project-ledger/backend/internal/domain/entity"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func ongoingProject(name string, daysLeft int) *entity.Project {
	return &entity.Project{
		ID:         uuid.New(),
		Name:       name,
		Partner:    "PT Mitra",
		Status:     entity.ProjectStatusOngoing,
		Value:      decimal.NewFromInt(1_000_000),
		TaxRate:    entity.TaxRateStandard,
		PaidAmount: decimal.Zero,
		StartDate:  now.AddDate(0, -3, 0),
		EndDate:    now.AddDate(0, 0, daysLeft),
	}
}

func TestGetDashboardUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	projects := new(mocks.ProjectRepository)
	transactions := new(mocks.TransactionRepository)

	soon := ongoingProject("Soon", 7)
	late := ongoingProject("Late", -3)
	projectID := soon.ID
	rows := []*entity.Transaction{
		{ID: uuid.New(), ProjectID: projectID, Type: entity.TransactionTypeIncome, Category: entity.CategoryPayment, Amount: decimal.NewFromInt(400), Date: now.AddDate(0, -1, 0)},
		{ID: uuid.New(), ProjectID: projectID, Type: entity.TransactionTypeExpense, Category: entity.CategoryMaterial, Amount: decimal.NewFromInt(100), Date: now},
	}

	projects.On("FindAll", ctx, entity.ProjectFilter{}).Return([]*entity.Project{soon, late}, nil).Once()
	transactions.On("FindAll", ctx, entity.TransactionFilter{}).Return(rows, nil).Once()

	uc := report.NewGetDashboardUseCase(projects, transactions)
	out, err := uc.Execute(ctx, report.GetDashboardInput{Today: now})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(out.Totals.Balance))
	assert.Equal(t, 2, out.Projects.Count)
	require.Len(t, out.Months, 2)
	assert.Equal(t, "2024-05", out.Months[0].Month)
	assert.Equal(t, "2024-06", out.Months[1].Month)
	require.Len(t, out.Upcoming, 1)
	assert.Equal(t, soon.ID, out.Upcoming[0].Project.ID)
	require.Len(t, out.Overdue, 1)
	assert.Equal(t, late.ID, out.Overdue[0].Project.ID)
	assert.Equal(t, rows[1].ID, out.Recent[0].ID)

	projects.AssertExpectations(t)
	transactions.AssertExpectations(t)
}

func TestGetDashboardUseCase_StoreError(t *testing.T) {
	ctx := context.Background()
	projects := new(mocks.ProjectRepository)
	transactions := new(mocks.TransactionRepository)
	projects.On("FindAll", ctx, entity.ProjectFilter{}).Return(nil, errors.New("connection refused")).Once()

	_, err := report.NewGetDashboardUseCase(projects, transactions).Execute(ctx, report.GetDashboardInput{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list projects")
	transactions.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestGetDateRangeUseCase_Validation(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		input    report.GetDateRangeInput
		expected domainerror.ReportErrorCode
	}{
		{"missing start", report.GetDateRangeInput{EndDate: start}, domainerror.ErrCodeMissingStartDate},
		{"missing end", report.GetDateRangeInput{StartDate: start}, domainerror.ErrCodeMissingEndDate},
		{"end before start", report.GetDateRangeInput{StartDate: start, EndDate: start.AddDate(0, 0, -1)}, domainerror.ErrCodeInvalidReportRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions := new(mocks.TransactionRepository)

			_, err := report.NewGetDateRangeUseCase(transactions).Execute(context.Background(), tt.input)

			var reportErr *domainerror.ReportError
			require.ErrorAs(t, err, &reportErr)
			assert.Equal(t, tt.expected, reportErr.Code)
			assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
			transactions.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
		})
	}
}

func TestGetDateRangeUseCase_IncludesEndDay(t *testing.T) {
	ctx := context.Background()
	transactions := new(mocks.TransactionRepository)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	nextMidnight := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := []*entity.Transaction{
		{ID: uuid.New(), Type: entity.TransactionTypeIncome, Category: entity.CategoryPayment, Amount: decimal.NewFromInt(50), Date: time.Date(2024, 5, 31, 22, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), Type: entity.TransactionTypeIncome, Category: entity.CategoryPayment, Amount: decimal.NewFromInt(7), Date: nextMidnight},
	}
	transactions.On("FindAll", ctx, mock.MatchedBy(func(f entity.TransactionFilter) bool {
		return f.StartDate.Equal(start) && f.EndDate.Equal(nextMidnight)
	})).Return(rows, nil).Once()

	out, err := report.NewGetDateRangeUseCase(transactions).Execute(ctx, report.GetDateRangeInput{StartDate: start, EndDate: end})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(out.Totals.Income))
	assert.Len(t, out.Transactions, 1)
	transactions.AssertExpectations(t)
}

func TestGenerateProjectReportUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	projects := new(mocks.ProjectRepository)
	transactions := new(mocks.TransactionRepository)
	renderer := &mocks.ReportRenderer{Output: []byte("%PDF-1.3")}

	p := ongoingProject("Gardu Induk", 40)
	p.PaidAmount = decimal.NewFromInt(250_000)
	older := &entity.Transaction{ID: uuid.New(), ProjectID: p.ID, Type: entity.TransactionTypeIncome, Category: entity.CategoryPayment, Amount: decimal.NewFromInt(250_000), Date: now.AddDate(0, 0, -10)}
	newer := &entity.Transaction{ID: uuid.New(), ProjectID: p.ID, Type: entity.TransactionTypeExpense, Category: entity.CategoryWages, Amount: decimal.NewFromInt(75_000), Date: now}

	projects.On("FindByID", ctx, p.ID).Return(p, nil).Once()
	transactions.On("FindByProject", ctx, p.ID).Return([]*entity.Transaction{newer, older}, nil).Once()
	renderer.On("RenderProjectReport", mock.Anything, mock.MatchedBy(func(d *adapter.ProjectReportData) bool {
		return d.Name == "Gardu Induk" &&
			d.ContractNumber == "-" &&
			d.TaxAmount == "Rp 110.000" &&
			d.TotalWithTax == "Rp 1.110.000" &&
			d.Balance == "Rp 175.000" &&
			d.Progress == 25 &&
			len(d.Rows) == 2 &&
			d.Rows[0].Amount == "+Rp 250.000" &&
			d.Rows[1].Amount == "-Rp 75.000"
	})).Return(nil).Once()

	out, err := report.NewGenerateProjectReportUseCase(projects, transactions, renderer).Execute(ctx, p.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), out.Content)
	assert.Contains(t, out.FileName, "Laporan_Gardu_Induk_")
	renderer.AssertExpectations(t)
}

func TestGenerateProjectReportUseCase_ProjectNotFound(t *testing.T) {
	ctx := context.Background()
	projects := new(mocks.ProjectRepository)
	transactions := new(mocks.TransactionRepository)
	id := uuid.New()
	projects.On("FindByID", ctx, id).Return(nil, domainerror.ErrProjectNotFound).Once()

	_, err := report.NewGenerateProjectReportUseCase(projects, transactions, &mocks.ReportRenderer{}).Execute(ctx, id)

	var reportErr *domainerror.ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, domainerror.ErrCodeReportProjectNotFound, reportErr.Code)
	assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
}

func TestShareProjectUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	projects := new(mocks.ProjectRepository)
	transactions := new(mocks.TransactionRepository)
	p := ongoingProject("Panel Surya", 20)

	projects.On("FindByID", ctx, p.ID).Return(p, nil).Once()
	transactions.On("FindByProject", ctx, p.ID).Return([]*entity.Transaction{}, nil).Once()

	out, err := report.NewShareProjectUseCase(projects, transactions, "https://ledger.example.com").Execute(ctx, p.ID)

	require.NoError(t, err)
	assert.Contains(t, out.Message, "*Panel Surya*")
	assert.Contains(t, out.Message, "https://ledger.example.com/projects/"+p.ID.String())
	assert.Equal(t, report.ShareURL(out.Message), out.URL)
}

func TestEmailProjectReportUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	projects := new(mocks.ProjectRepository)
	transactions := new(mocks.TransactionRepository)
	emails := new(mocks.EmailService)
	p := ongoingProject("Panel Surya", 20)

	projects.On("FindByID", ctx, p.ID).Return(p, nil).Once()
	transactions.On("FindByProject", ctx, p.ID).Return([]*entity.Transaction{}, nil).Once()
	emails.On("QueueProjectReportEmail", ctx, mock.MatchedBy(func(in adapter.QueueProjectReportInput) bool {
		return in.RecipientEmail == "owner@permata.test" &&
			in.ProjectName == "Panel Surya" &&
			in.ProjectURL == "https://ledger.example.com/projects/"+p.ID.String()
	})).Return(nil).Once()

	uc := report.NewEmailProjectReportUseCase(projects, transactions, emails, "https://ledger.example.com")
	err := uc.Execute(ctx, report.EmailProjectReportInput{ProjectID: p.ID, RecipientEmail: "owner@permata.test"})

	require.NoError(t, err)
	emails.AssertExpectations(t)
}

func TestEmailProjectReportUseCase_MissingRecipient(t *testing.T) {
	projects := new(mocks.ProjectRepository)
	emails := new(mocks.EmailService)

	uc := report.NewEmailProjectReportUseCase(projects, new(mocks.TransactionRepository), emails, "")
	err := uc.Execute(context.Background(), report.EmailProjectReportInput{ProjectID: uuid.New(), RecipientEmail: " "})

	var reportErr *domainerror.ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, domainerror.ErrCodeMissingRecipient, reportErr.Code)
	projects.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestSendDeadlineRemindersUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	projects := new(mocks.ProjectRepository)
	users := new(mocks.UserRepository)
	emails := new(mocks.EmailService)

	ongoing := entity.ProjectStatusOngoing
	soon := ongoingProject("Soon", 5)
	late := ongoingProject("Late", -1)
	far := ongoingProject("Far", 90)
	admins := []*entity.User{
		{ID: uuid.New(), Email: "a@permata.test", Name: "A", Role: entity.RoleAdmin},
		{ID: uuid.New(), Email: "b@permata.test", Name: "B", Role: entity.RoleAdmin},
	}

	projects.On("FindAll", ctx, entity.ProjectFilter{Status: &ongoing}).Return([]*entity.Project{soon, late, far}, nil).Once()
	users.On("FindByRole", ctx, entity.RoleAdmin).Return(admins, nil).Once()
	emails.On("QueueDeadlineDigestEmail", ctx, mock.MatchedBy(func(in adapter.QueueDeadlineDigestInput) bool {
		return in.RecipientEmail == "a@permata.test" && len(in.Upcoming) == 1 && len(in.Overdue) == 1 &&
			in.Upcoming[0].ProjectName == "Soon" && in.Upcoming[0].Days == 5
	})).Return(nil).Once()
	emails.On("QueueDeadlineDigestEmail", ctx, mock.MatchedBy(func(in adapter.QueueDeadlineDigestInput) bool {
		return in.RecipientEmail == "b@permata.test"
	})).Return(errors.New("queue full")).Once()

	uc := report.NewSendDeadlineRemindersUseCase(projects, users, emails, "https://ledger.example.com")
	out, err := uc.Execute(ctx, report.SendDeadlineRemindersInput{Today: now})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Upcoming)
	assert.Equal(t, 1, out.Overdue)
	assert.Equal(t, 1, out.Recipients)
	emails.AssertExpectations(t)
}

func TestSendDeadlineRemindersUseCase_NothingDue(t *testing.T) {
	ctx := context.Background()
	projects := new(mocks.ProjectRepository)
	users := new(mocks.UserRepository)
	emails := new(mocks.EmailService)

	ongoing := entity.ProjectStatusOngoing
	projects.On("FindAll", ctx, entity.ProjectFilter{Status: &ongoing}).Return([]*entity.Project{ongoingProject("Far", 90)}, nil).Once()

	out, err := report.NewSendDeadlineRemindersUseCase(projects, users, emails, "").Execute(ctx, report.SendDeadlineRemindersInput{Today: now})

	require.NoError(t, err)
	assert.Zero(t, out.Recipients)
	users.AssertNotCalled(t, "FindByRole", mock.Anything, mock.Anything)
}

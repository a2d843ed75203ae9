package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/project-ledger/backend/internal/application/usecase/reconciliation"
	"github.com/project-ledger/backend/internal/application/usecase/report"
)

type mockDrainer struct {
	mock.Mock
}

func (m *mockDrainer) Execute(ctx context.Context) (*reconciliation.DrainQueueOutput, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconciliation.DrainQueueOutput), args.Error(1)
}

type mockReminderSender struct {
	mock.Mock
}

func (m *mockReminderSender) Execute(ctx context.Context, input report.SendDeadlineRemindersInput) (*report.SendDeadlineRemindersOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.SendDeadlineRemindersOutput), args.Error(1)
}

func TestReconcileWorker_DrainsOnStartAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	drainer := new(mockDrainer)
	drained := make(chan struct{}, 1)

	drainer.On("Execute", mock.Anything).
		Return(&reconciliation.DrainQueueOutput{Processed: 2}, nil).
		Run(func(mock.Arguments) {
			select {
			case drained <- struct{}{}:
			default:
			}
		})

	done := make(chan struct{})
	go func() {
		NewReconcileWorker(drainer, time.Hour).Start(ctx)
		close(done)
	}()

	select {
	case <-drained:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not drain on start")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestReconcileWorker_SurvivesErrors(t *testing.T) {
	drainer := new(mockDrainer)
	drainer.On("Execute", mock.Anything).Return(nil, errors.New("redis down")).Once()

	assert.NotPanics(t, func() {
		NewReconcileWorker(drainer, 0).ProcessNow(context.Background())
	})
	drainer.AssertExpectations(t)
}

func TestReminderScheduler_RunOnce(t *testing.T) {
	ctx := context.Background()
	sender := new(mockReminderSender)
	today := time.Date(2024, 6, 15, 7, 0, 0, 0, time.UTC)

	sender.On("Execute", ctx, report.SendDeadlineRemindersInput{Today: today, WindowDays: 30}).
		Return(&report.SendDeadlineRemindersOutput{Upcoming: 1, Recipients: 2}, nil).Once()

	scheduler := NewReminderScheduler(sender, nil, ReminderSchedulerConfig{WindowDays: 30})
	scheduler.now = func() time.Time { return today }
	scheduler.RunOnce(ctx)

	sender.AssertExpectations(t)
	assert.Equal(t, 24*time.Hour, scheduler.interval)
}

type mockPurger struct {
	mock.Mock
}

func (m *mockPurger) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func TestReminderScheduler_PurgesSentEmails(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2024, 6, 15, 7, 0, 0, 0, time.UTC)

	t.Run("purges with the retention cutoff", func(t *testing.T) {
		sender := new(mockReminderSender)
		purger := new(mockPurger)
		sender.On("Execute", ctx, mock.Anything).
			Return(&report.SendDeadlineRemindersOutput{}, nil).Once()
		purger.On("PurgeSent", ctx, time.Date(2024, 5, 16, 7, 0, 0, 0, time.UTC)).
			Return(int64(4), nil).Once()

		scheduler := NewReminderScheduler(sender, purger, ReminderSchedulerConfig{WindowDays: 30, EmailRetentionDays: 30})
		scheduler.now = func() time.Time { return today }
		scheduler.RunOnce(ctx)

		sender.AssertExpectations(t)
		purger.AssertExpectations(t)
	})

	t.Run("digest failure still purges", func(t *testing.T) {
		sender := new(mockReminderSender)
		purger := new(mockPurger)
		sender.On("Execute", ctx, mock.Anything).
			Return(nil, errors.New("no recipients")).Once()
		purger.On("PurgeSent", ctx, today.AddDate(0, 0, -7)).
			Return(int64(0), errors.New("database is locked")).Once()

		scheduler := NewReminderScheduler(sender, purger, ReminderSchedulerConfig{EmailRetentionDays: 7})
		scheduler.now = func() time.Time { return today }
		scheduler.RunOnce(ctx)

		purger.AssertExpectations(t)
	})

	t.Run("zero retention keeps everything", func(t *testing.T) {
		sender := new(mockReminderSender)
		purger := new(mockPurger)
		sender.On("Execute", ctx, mock.Anything).
			Return(&report.SendDeadlineRemindersOutput{}, nil).Once()

		scheduler := NewReminderScheduler(sender, purger, ReminderSchedulerConfig{})
		scheduler.now = func() time.Time { return today }
		scheduler.RunOnce(ctx)

		purger.AssertNotCalled(t, "PurgeSent", mock.Anything, mock.Anything)
	})
}

func TestReminderScheduler_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sender := new(mockReminderSender)
	cancel()

	done := make(chan struct{})
	go func() {
		NewReminderScheduler(sender, nil, ReminderSchedulerConfig{Interval: time.Hour, WindowDays: 30}).Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	sender.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

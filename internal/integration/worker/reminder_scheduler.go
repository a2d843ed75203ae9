package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/project-ledger/backend/internal/application/usecase/report"
)

// ReminderSender queues the deadline digest.
type ReminderSender interface {
	Execute(ctx context.Context, input report.SendDeadlineRemindersInput) (*report.SendDeadlineRemindersOutput, error)
}

// SentEmailPurger deletes delivered outbox rows.
type SentEmailPurger interface {
	PurgeSent(ctx context.Context, before time.Time) (int64, error)
}

// ReminderSchedulerConfig configures the daily scheduler. EmailRetentionDays <= 0
// keeps delivered emails forever.
type ReminderSchedulerConfig struct {
	Interval           time.Duration
	WindowDays         int
	EmailRetentionDays int
}

// ReminderScheduler sends the deadline digest at a fixed interval and
// sweeps delivered emails out of the outbox on the same tick.
type ReminderScheduler struct {
	sender        ReminderSender
	purger        SentEmailPurger
	interval      time.Duration
	windowDays    int
	retentionDays int
	now           func() time.Time
}

// NewReminderScheduler creates a new reminder scheduler.
func NewReminderScheduler(sender ReminderSender, purger SentEmailPurger, cfg ReminderSchedulerConfig) *ReminderScheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &ReminderScheduler{
		sender:        sender,
		purger:        purger,
		interval:      interval,
		windowDays:    cfg.WindowDays,
		retentionDays: cfg.EmailRetentionDays,
		now:           time.Now,
	}
}

// Start begins the scheduler loop. It blocks until the context is cancelled.
// The first digest goes out one interval after start, so restarts do not resend it.
func (s *ReminderScheduler) Start(ctx context.Context) {
	slog.Info("Reminder scheduler started",
		"interval", s.interval,
		"window_days", s.windowDays,
		"email_retention_days", s.retentionDays,
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reminder scheduler shutting down")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce queues the digest for the current day, then purges old
// delivered emails. A failed digest does not skip the purge.
func (s *ReminderScheduler) RunOnce(ctx context.Context) {
	s.sendDigest(ctx)
	s.purgeSentEmails(ctx)
}

func (s *ReminderScheduler) sendDigest(ctx context.Context) {
	out, err := s.sender.Execute(ctx, report.SendDeadlineRemindersInput{
		Today:      s.now(),
		WindowDays: s.windowDays,
	})
	if err != nil {
		slog.Error("Failed to send deadline reminders", "error", err)
		return
	}

	slog.Info("Deadline reminders queued",
		"upcoming", out.Upcoming,
		"overdue", out.Overdue,
		"recipients", out.Recipients,
	)
}

func (s *ReminderScheduler) purgeSentEmails(ctx context.Context) {
	if s.purger == nil || s.retentionDays <= 0 {
		return
	}

	cutoff := s.now().AddDate(0, 0, -s.retentionDays)
	removed, err := s.purger.PurgeSent(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to purge sent emails", "cutoff", cutoff, "error", err)
		return
	}
	if removed > 0 {
		slog.Info("Purged sent emails", "removed", removed, "cutoff", cutoff)
	}
}

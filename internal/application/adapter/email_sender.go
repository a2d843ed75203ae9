package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueDeadlineDigestEmail queues a digest of upcoming and overdue project deadlines.
	QueueDeadlineDigestEmail(ctx context.Context, input QueueDeadlineDigestInput) error

	// QueueProjectReportEmail queues a project report summary.
	QueueProjectReportEmail(ctx context.Context, input QueueProjectReportInput) error
}

// DeadlineDigestItem is one project line of a deadline digest.
type DeadlineDigestItem struct {
	ProjectName string
	Partner     string
	EndDate     string
	Days        int
}

// QueueDeadlineDigestInput represents the input for queueing a deadline digest email.
type QueueDeadlineDigestInput struct {
	RecipientEmail string
	RecipientName  string
	Upcoming       []DeadlineDigestItem
	Overdue        []DeadlineDigestItem
	DashboardURL   string
}

// QueueProjectReportInput represents the input for queueing a project report email.
type QueueProjectReportInput struct {
	RecipientEmail string
	RecipientName  string
	ProjectName    string
	Summary        string
	ProjectURL     string
}

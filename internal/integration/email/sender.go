package email

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/project-ledger/backend/internal/application/adapter"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// ResendSender delivers rendered emails through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender that signs mail as "name <address>".
func NewResendSender(apiKey, fromName, fromEmail string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

// Send submits one email. Failures are EmailErrors whose code tells the
// worker whether to retry.
func (s *ResendSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	resp, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		return nil, deliveryError(err)
	}
	return &adapter.SendEmailResult{ResendID: resp.Id}, nil
}

// rejectionMarkers are fragments of Resend errors that another attempt
// cannot fix: bad credentials, unverified domains and invalid payloads.
// Rate limits and 5xx responses are retried.
var rejectionMarkers = []string{
	"401", "403", "422",
	"unauthorized", "forbidden", "validation", "invalid", "bad request",
}

func deliveryError(err error) *domainerror.EmailError {
	msg := strings.ToLower(err.Error())
	for _, marker := range rejectionMarkers {
		if strings.Contains(msg, marker) {
			return domainerror.NewEmailError(domainerror.ErrCodeEmailSendRejected, "email rejected by provider", err)
		}
	}
	return domainerror.NewEmailError(domainerror.ErrCodeEmailSendFailed, "email delivery failed", err)
}

// RecordingSender keeps emails in memory instead of delivering them. It is
// used when no Resend key is configured and by the acceptance tests.
type RecordingSender struct {
	mu         sync.Mutex
	SentEmails []adapter.SendEmailInput
	failWith   error
}

// NewRecordingSender creates an empty recording sender.
func NewRecordingSender() *RecordingSender {
	return &RecordingSender{}
}

// Send records the email, or fails with the configured provider error.
func (r *RecordingSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, deliveryError(r.failWith)
	}
	r.SentEmails = append(r.SentEmails, input)
	return &adapter.SendEmailResult{ResendID: fmt.Sprintf("recorded-%d", len(r.SentEmails))}, nil
}

// FailWith makes every following Send fail as if the provider returned err.
// Pass nil to deliver again.
func (r *RecordingSender) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

// Reset forgets recorded emails and any configured failure.
func (r *RecordingSender) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SentEmails = nil
	r.failWith = nil
}

var (
	_ adapter.EmailSender = (*ResendSender)(nil)
	_ adapter.EmailSender = (*RecordingSender)(nil)
)

package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// ResendClient sends email through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a Resend-backed sender. Mail is sent as
// "fromName <fromEmail>".
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

// Send delivers one email via Resend. Errors are classified so the
// queue worker knows whether a retry can help.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		return nil, classifySendError(err)
	}
	return &adapter.SendEmailResult{ResendID: resp.Id}, nil
}

// classifySendError maps a Resend failure onto the retry taxonomy.
// Client-side problems (bad key, rejected payload) are permanent;
// rate limits and server errors are worth retrying.
func classifySendError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"401", "403", "422",
		"unauthorized", "forbidden", "validation", "invalid", "bad request",
	} {
		if strings.Contains(msg, marker) {
			return domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"permanent email failure",
				err,
			)
		}
	}
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure,
		"temporary email failure",
		err,
	)
}

// MockEmailSender records sent mail in memory. It stands in for Resend
// when no API key is configured and in tests.
type MockEmailSender struct {
	SentEmails  []adapter.SendEmailInput
	ShouldFail  bool
	FailError   error
	IsPermanent bool
}

// NewMockEmailSender creates an empty in-memory sender.
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{SentEmails: []adapter.SendEmailInput{}}
}

// Send records the input, or fails if a failure has been configured.
func (m *MockEmailSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if m.ShouldFail {
		code := domainerror.ErrCodeTemporaryEmailFailure
		reason := "mock temporary failure"
		if m.IsPermanent {
			code = domainerror.ErrCodePermanentEmailFailure
			reason = "mock permanent failure"
		}
		return nil, domainerror.NewEmailError(code, reason, m.FailError)
	}

	m.SentEmails = append(m.SentEmails, input)
	return &adapter.SendEmailResult{
		ResendID: fmt.Sprintf("mock-%d", len(m.SentEmails)),
	}, nil
}

// SetFailure makes subsequent Send calls fail with the given error.
func (m *MockEmailSender) SetFailure(err error, permanent bool) {
	m.ShouldFail = true
	m.FailError = err
	m.IsPermanent = permanent
}

// Reset discards recorded mail and any configured failure.
func (m *MockEmailSender) Reset() {
	m.SentEmails = m.SentEmails[:0]
	m.ShouldFail = false
	m.FailError = nil
	m.IsPermanent = false
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*MockEmailSender)(nil)
)

package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
)

const resendTimeout = 10 * time.Second

// ResendClient delivers email through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return NewResendClientWithHTTPClient(&http.Client{Timeout: resendTimeout}, apiKey, fromName, fromEmail)
}

// NewResendClientWithHTTPClient sends requests through a copy of httpClient
// whose transport records response statuses.
func NewResendClientWithHTTPClient(httpClient *http.Client, apiKey, fromName, fromEmail string) *ResendClient {
	hc := *httpClient
	hc.Transport = statusRecorder{next: httpClient.Transport}
	return &ResendClient{
		client: resend.NewCustomClient(&hc, apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

// Send returns Resend's message id.
func (c *ResendClient) Send(ctx context.Context, email adapter.OutgoingEmail) (string, error) {
	status := new(int)
	ctx = context.WithValue(ctx, statusKey{}, status)

	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		if rejected(*status, err) {
			return "", domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, err)
		}
		return "", domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, err)
	}
	return resp.Id, nil
}

type statusKey struct{}

// statusRecorder stores the response status in the *int the request's
// context carries, if any.
type statusRecorder struct {
	next http.RoundTripper
}

func (s statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	next := s.next
	if next == nil {
		next = http.DefaultTransport
	}
	resp, err := next.RoundTrip(req)
	if resp != nil {
		if status, ok := req.Context().Value(statusKey{}).(*int); ok {
			*status = resp.StatusCode
		}
	}
	return resp, err
}

// rejected reports whether the provider refused the message for good. Client
// errors are final except timeouts, conflicts and rate limits. Without a
// status the error text is all there is to go on.
func rejected(status int, err error) bool {
	switch {
	case status == http.StatusRequestTimeout, status == http.StatusConflict, status == http.StatusTooManyRequests:
		return false
	case status >= 400 && status < 500:
		return true
	case status != 0:
		return false
	}
	return isPermanentError(err)
}

func isPermanentError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// LogSender logs emails instead of sending them. It stands in when no
// Resend API key is configured.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (LogSender) Send(ctx context.Context, email adapter.OutgoingEmail) (string, error) {
	slog.InfoContext(ctx, "Email delivery disabled, logging email instead",
		"to", email.To,
		"subject", email.Subject,
	)
	return "log", nil
}

// MockEmailSender records emails in memory and fails on demand.
type MockEmailSender struct {
	mu        sync.Mutex
	sent      []adapter.OutgoingEmail
	failWith  error
	permanent bool
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) Send(_ context.Context, email adapter.OutgoingEmail) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if m.permanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return "", domainerror.NewEmailError(code, m.failWith)
	}

	m.sent = append(m.sent, email)
	return fmt.Sprintf("mock-%d", len(m.sent)), nil
}

// SetFailure makes every following Send fail with err.
func (m *MockEmailSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
	m.permanent = permanent
}

func (m *MockEmailSender) ClearFailure() {
	m.SetFailure(nil, false)
}

// Sent returns a copy of the emails sent so far.
func (m *MockEmailSender) Sent() []adapter.OutgoingEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.OutgoingEmail(nil), m.sent...)
}

func (m *MockEmailSender) Reset() {
	m.mu.Lock()
	m.sent = nil
	m.mu.Unlock()
	m.ClearFailure()
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*MockEmailSender)(nil)
	_ adapter.EmailSender = (*LogSender)(nil)
)

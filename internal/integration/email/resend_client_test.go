package email

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
)

func resendStub(t *testing.T, status int, body string) *ResendClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)
	hc := &http.Client{Transport: redirect{target: target}}
	return NewResendClientWithHTTPClient(hc, "re_test", "Budgets", "alerts@example.com")
}

// redirect sends every request to target whatever host it names.
type redirect struct {
	target *url.URL
}

func (r redirect) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = r.target.Scheme
	out.URL.Host = r.target.Host
	out.Host = r.target.Host
	return http.DefaultTransport.RoundTrip(out)
}

func TestResendClientSend(t *testing.T) {
	msg := adapter.OutgoingEmail{To: "ana@example.com", Subject: "hi", HTML: "<p>hi</p>", Text: "hi"}

	tests := []struct {
		name      string
		status    int
		body      string
		wantID    string
		permanent bool
	}{
		{name: "accepted", status: http.StatusOK, body: `{"id":"resend-1"}`, wantID: "resend-1"},
		{name: "validation error", status: http.StatusUnprocessableEntity, body: `{"statusCode":422,"name":"validation_error","message":"bad to"}`, permanent: true},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"statusCode":429,"name":"rate_limit_exceeded","message":"slow down"}`},
		{name: "server error", status: http.StatusInternalServerError, body: `{"statusCode":500,"name":"internal_server_error","message":"invalid state"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := resendStub(t, tt.status, tt.body).Send(context.Background(), msg)
			if tt.wantID != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.permanent, domainerror.IsPermanent(err))
		})
	}
}

func TestRejectedFallsBackToMessage(t *testing.T) {
	assert.True(t, rejected(0, errors.New("422 validation_error")))
	assert.True(t, rejected(0, errors.New("Forbidden")))
	assert.False(t, rejected(0, errors.New("dial tcp: connection refused")))
	assert.False(t, rejected(http.StatusBadGateway, errors.New("invalid gateway response")))
	assert.True(t, rejected(http.StatusForbidden, errors.New("whatever")))
	assert.False(t, rejected(http.StatusConflict, errors.New("invalid idempotency key")))
}

package turnstile_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodesk/config"
	"studiodesk/infras/otel/mocks"
	"studiodesk/infras/turnstile"
)

func newVerifier(t *testing.T, handler http.HandlerFunc) (turnstile.Verifier, *int32) {
	t.Helper()

	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Turnstile.SecretKey = "secret-key"
	cfg.Turnstile.VerifyURL = server.URL

	return turnstile.NewWithClient(cfg, mocks.NewOtel(), server.Client()), &calls
}

func TestVerify_RejectsWithoutNetworkCall(t *testing.T) {
	verifier, calls := newVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "token too long", token: strings.Repeat("x", turnstile.MaxTokenLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := verifier.Verify(context.Background(), turnstile.Request{Token: tt.token})

			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Equal(t, []string{turnstile.CodeInvalidInputResponse}, res.ErrorCodes)
		})
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestVerify_PostsForm(t *testing.T) {
	verifier, _ := newVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "secret-key", r.PostForm.Get("secret"))
		assert.Equal(t, "token-1", r.PostForm.Get("response"))
		assert.Equal(t, "203.0.113.7", r.PostForm.Get("remoteip"))

		_, _ = w.Write([]byte(`{"success":true,"error-codes":[],"hostname":"studio.example","action":"booking"}`))
	})

	res, err := verifier.Verify(context.Background(), turnstile.Request{
		Token:            "token-1",
		RemoteIP:         "203.0.113.7",
		ExpectedAction:   "booking",
		ExpectedHostname: "studio.example",
	})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.ErrorCodes)
}

func TestVerify_Outcomes(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		request   turnstile.Request
		wantErr   bool
		wantOK    bool
		wantCodes []string
	}{
		{
			name:      "verifier rejects token",
			status:    http.StatusOK,
			body:      `{"success":false,"error-codes":["timeout-or-duplicate"]}`,
			request:   turnstile.Request{Token: "t"},
			wantCodes: []string{"timeout-or-duplicate"},
		},
		{
			name:      "action mismatch downgrades success",
			status:    http.StatusOK,
			body:      `{"success":true,"action":"login","hostname":"studio.example"}`,
			request:   turnstile.Request{Token: "t", ExpectedAction: "booking"},
			wantCodes: []string{turnstile.CodeActionMismatch},
		},
		{
			name:      "hostname mismatch downgrades success",
			status:    http.StatusOK,
			body:      `{"success":true,"action":"booking","hostname":"evil.example"}`,
			request:   turnstile.Request{Token: "t", ExpectedAction: "booking", ExpectedHostname: "studio.example"},
			wantCodes: []string{turnstile.CodeHostnameMismatch},
		},
		{
			name:    "no expectations accepts any action",
			status:  http.StatusOK,
			body:    `{"success":true,"action":"whatever"}`,
			request: turnstile.Request{Token: "t"},
			wantOK:  true,
		},
		{
			name:    "non-2xx is a hard failure",
			status:  http.StatusBadGateway,
			body:    `oops`,
			request: turnstile.Request{Token: "t"},
			wantErr: true,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `{"success":`,
			request: turnstile.Request{Token: "t"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier, _ := newVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			res, err := verifier.Verify(context.Background(), tt.request)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, res.Success)

			if tt.wantCodes != nil {
				assert.Equal(t, tt.wantCodes, res.ErrorCodes)
			}
		})
	}
}

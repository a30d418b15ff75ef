package turnstile

//go:generate go run go.uber.org/mock/mockgen -source=./turnstile.go -destination=./mocks/turnstile_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"studiodesk/config"
	"studiodesk/infras/otel"
	"studiodesk/shared/constant"
)

const (
	MaxTokenLength = 2048

	CodeInvalidInputResponse = "invalid-input-response"
	CodeActionMismatch       = "action-mismatch"
	CodeHostnameMismatch     = "hostname-mismatch"

	defaultTimeout = 10 * time.Second

	fieldSecret   = "secret"
	fieldResponse = "response"
	fieldRemoteIP = "remoteip"
)

var ErrVerifierStatus = errors.New("unexpected verifier status")

// Result is the siteverify response body after local checks were applied.
type Result struct {
	Success     bool     `json:"success"`
	ErrorCodes  []string `json:"error-codes"`
	ChallengeTS string   `json:"challenge_ts,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
	Action      string   `json:"action,omitempty"`
	CData       string   `json:"cdata,omitempty"`
}

type Request struct {
	Token            string
	RemoteIP         string
	ExpectedAction   string
	ExpectedHostname string
}

type Verifier interface {
	Verify(ctx context.Context, req Request) (Result, error)
}

type verifierImpl struct {
	client    *http.Client
	secret    string
	verifyURL string
	otel      otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Verifier {
	timeout := time.Duration(cfg.Turnstile.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return NewWithClient(cfg, otl, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewWithClient(cfg *config.Config, otl otel.Otel, client *http.Client) Verifier {
	return &verifierImpl{
		client:    client,
		secret:    cfg.Turnstile.SecretKey,
		verifyURL: cfg.Turnstile.VerifyURL,
		otel:      otl,
	}
}

// Verify checks a widget token. Transport failures and non-2xx answers are
// returned as errors; a rejected token is a Result with Success false.
func (v *verifierImpl) Verify(ctx context.Context, req Request) (res Result, err error) {
	ctx, scope := v.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".turnstile.Verify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Token == "" || len(req.Token) > MaxTokenLength {
		return Result{Success: false, ErrorCodes: []string{CodeInvalidInputResponse}}, nil
	}

	form := url.Values{}
	form.Set(fieldSecret, v.secret)
	form.Set(fieldResponse, req.Token)

	if req.RemoteIP != "" {
		form.Set(fieldRemoteIP, req.RemoteIP)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return res, fmt.Errorf("failed to build verify request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeFormURLEncoded)

	resp, err := v.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Msg("failed to call turnstile verifier")

		return res, fmt.Errorf("failed to call turnstile verifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", resp.StatusCode).Msg("turnstile verifier returned non-2xx")

		return res, fmt.Errorf("%w: %d", ErrVerifierStatus, resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		log.Error().Err(err).Msg("failed to decode turnstile response")

		return res, fmt.Errorf("failed to decode turnstile response: %w", err)
	}

	scope.SetAttributes(map[string]any{
		"turnstile.success": res.Success,
		"turnstile.action":  res.Action,
	})

	if !res.Success {
		return res, nil
	}

	// expectations are only enforced when the verifier reported the field
	if req.ExpectedAction != "" && res.Action != "" && res.Action != req.ExpectedAction {
		return mismatch(res, CodeActionMismatch), nil
	}

	if req.ExpectedHostname != "" && res.Hostname != "" && res.Hostname != req.ExpectedHostname {
		return mismatch(res, CodeHostnameMismatch), nil
	}

	return res, nil
}

func mismatch(res Result, code string) Result {
	res.Success = false
	res.ErrorCodes = []string{code}

	return res
}

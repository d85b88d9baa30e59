package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	authDomain "github.com/ngoinfo/copilot-gateway/internal/auth/domain"
	authUseCase "github.com/ngoinfo/copilot-gateway/internal/auth/usecase"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
)

// maxResponseBody bounds how much of a backend response is read.
const maxResponseBody = 1 << 20

// userAgent identifies this service on outbound calls.
const userAgent = "copilot-gateway/1.0"

// GatewaySettings supplies the backend location and call timeout.
type GatewaySettings interface {
	BaseURL(ctx context.Context) (string, error)
	HTTPTimeout(ctx context.Context) (time.Duration, error)
}

// Client performs authenticated outbound calls and returns envelopes.
//
// HTTP-level failures do not surface as Go errors: they come back as failure
// envelopes. An error return means the call could not even be attempted
// (no base URL, no signing secret, unserializable payload).
type Client struct {
	settings   GatewaySettings
	tokens     authUseCase.TokenIssuer
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a gateway client. A nil httpClient falls back to a plain
// http.Client; the per-call timeout always comes from settings.
func NewClient(
	settings GatewaySettings,
	tokens authUseCase.TokenIssuer,
	httpClient *http.Client,
	logger *slog.Logger,
) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		settings:   settings,
		tokens:     tokens,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Get performs an authenticated GET against path.
func (c *Client) Get(
	ctx context.Context,
	path string,
	principal principalDomain.Principal,
	profile authDomain.Profile,
) (Envelope, error) {
	return c.Request(ctx, http.MethodGet, path, nil, principal, profile)
}

// Post performs an authenticated POST with a JSON payload against path.
func (c *Client) Post(
	ctx context.Context,
	path string,
	payload any,
	principal principalDomain.Principal,
	profile authDomain.Profile,
) (Envelope, error) {
	return c.Request(ctx, http.MethodPost, path, payload, principal, profile)
}

// Request mints a token for profile, performs one attempt against the
// backend, and normalizes the response. There are no retries: generation is
// not idempotent upstream.
func (c *Client) Request(
	ctx context.Context,
	method, path string,
	payload any,
	principal principalDomain.Principal,
	profile authDomain.Profile,
) (Envelope, error) {
	baseURL, err := c.settings.BaseURL(ctx)
	if err != nil {
		return Envelope{}, err
	}
	timeout, err := c.settings.HTTPTimeout(ctx)
	if err != nil {
		return Envelope{}, err
	}

	token, err := c.tokens.Mint(ctx, principal, profile)
	if err != nil {
		return Envelope{}, err
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return Envelope{}, apperrors.Wrap(err, "failed to encode request payload")
		}
		body = bytes.NewReader(encoded)
	}

	url := baseURL + "/" + strings.TrimLeft(path, "/")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return Envelope{}, apperrors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+token.Value)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("outbound request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", Redact(err.Error())),
		)
		return NormalizeTransportFailure(err), nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return NormalizeTransportFailure(err), nil
	}

	env := Normalize(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)

	c.logger.Info("outbound request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Bool("success", env.Success),
		slog.Duration("duration", time.Since(started)),
	)
	return env, nil
}

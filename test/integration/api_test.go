// Package integration provides end-to-end tests for the gateway API surface:
// the full router, token minting, backend dispatch, and bookkeeping, with the
// backend played by a local test server that verifies the minted tokens.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authService "github.com/ngoinfo/copilot-gateway/internal/auth/service"
	authUseCase "github.com/ngoinfo/copilot-gateway/internal/auth/usecase"
	"github.com/ngoinfo/copilot-gateway/internal/clock"
	cryptoService "github.com/ngoinfo/copilot-gateway/internal/crypto/service"
	"github.com/ngoinfo/copilot-gateway/internal/gateway"
	generationHTTP "github.com/ngoinfo/copilot-gateway/internal/generation/http"
	generationUseCase "github.com/ngoinfo/copilot-gateway/internal/generation/usecase"
	healthHTTP "github.com/ngoinfo/copilot-gateway/internal/health/http"
	healthUseCase "github.com/ngoinfo/copilot-gateway/internal/health/usecase"
	internalHTTP "github.com/ngoinfo/copilot-gateway/internal/http"
	membershipUseCase "github.com/ngoinfo/copilot-gateway/internal/membership/usecase"
	"github.com/ngoinfo/copilot-gateway/internal/ratelimit"
	settingsUseCase "github.com/ngoinfo/copilot-gateway/internal/settings/usecase"
	"github.com/ngoinfo/copilot-gateway/internal/testutil"
)

const signingSecret = "Gp1!integration-Secret-0123456789AB"

// growthPlanID is inside the default growth tier mapping.
const growthPlanID = 2259

// testGateway wires the full stack against an in-process backend.
type testGateway struct {
	handler     http.Handler
	backend     *httptest.Server
	settings    settingsUseCase.UseCase
	memberships *testutil.MemoryMembershipRepository
}

// newBackend builds a fake proposal backend that verifies minted tokens with
// the same signer the gateway uses.
func newBackend(t *testing.T, signer authService.TokenSigner) *httptest.Server {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		claims, err := signer.Verify(token, signingSecret)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"bad token","request_id":"req-auth-1"}`))
			return
		}

		switch r.URL.Path {
		case "/api/proposals/generate":
			if claims["plan"] != "grantpilot" {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"message":"wrong claim profile"}`))
				return
			}
			if claims["sub"] == "throttled" {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"code":"RATE_LIMITED","message":"slow down","request_id":"abc-123"}`))
				return
			}
			_, _ = w.Write([]byte(`{"proposal_id":"p-100","preview":"A proposal outline","model":"gp-1"}`))
		case "/api/usage/summary":
			_, _ = w.Write([]byte(`{"generations_used":3,"generations_limit":50}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"no such endpoint"}`))
		}
	}))
	t.Cleanup(backend.Close)
	return backend
}

// setupGateway wires the full stack with in-memory stores. With configure set,
// the backend URL and signing secret are stored so the gateway is ready.
func setupGateway(t *testing.T, configure bool) *testGateway {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.System()
	signer := authService.NewHS256Signer()

	backend := newBackend(t, signer)

	settings := settingsUseCase.NewSettingsUseCase(
		testutil.NewMemorySettingRepository(),
		cryptoService.NewSiteKeySource("integration-site-key"),
		"staging",
		logger,
	)
	if configure {
		require.NoError(t, settings.SetBaseURL(ctx, backend.URL))
		require.NoError(t, settings.SetSigningSecret(ctx, signingSecret))
	}

	memberships := testutil.NewMemoryMembershipRepository()
	meta := testutil.NewMemoryPrincipalMetaRepository()

	tiers := membershipUseCase.NewTierUseCase(memberships, settings, meta, clk, logger)
	limiter := ratelimit.NewCooldownLimiter(settings, meta, clk, logger)
	tokens := authUseCase.NewTokenUseCase(settings, tiers, signer, clk, logger)
	client := gateway.NewClient(settings, tokens, backend.Client(), logger)
	generate := generationUseCase.NewGenerateUseCase(
		tiers, limiter, client, meta, settings, testutil.PassthroughTxManager{}, clk, logger,
	)
	status := healthUseCase.NewStatusUseCase(settings, client, logger)

	server := internalHTTP.NewServer(
		"127.0.0.1", 0,
		internalHTTP.RouterConfig{},
		generationHTTP.NewGenerationHandler(generate, logger),
		healthHTTP.NewStatusHandler(status, logger),
		logger,
	)

	return &testGateway{
		handler:     server.GetHandler(),
		backend:     backend,
		settings:    settings,
		memberships: memberships,
	}
}

// request performs a request against the router with optional principal headers.
func (g *testGateway) request(
	t *testing.T,
	method, path, principalID string,
	body any,
) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if principalID != "" {
		req.Header.Set(internalHTTP.HeaderPrincipalID, principalID)
		req.Header.Set(internalHTTP.HeaderPrincipalEmail, principalID+"@example.org")
	}

	recorder := httptest.NewRecorder()
	g.handler.ServeHTTP(recorder, req)

	var decoded map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

func generatePayload() map[string]any {
	return map[string]any{
		"donor":           "European Commission",
		"theme":           "Clean water access",
		"country":         "Kenya",
		"title":           "Community wells for arid regions",
		"budget":          250000,
		"duration_months": 24,
	}
}

func TestIntegration_GenerateFlow(t *testing.T) {
	g := setupGateway(t, true)
	g.memberships.SetActive("42", growthPlanID)

	// First generation goes through to the backend
	recorder, body := g.request(t, http.MethodPost, "/api/generate", "42", generatePayload())
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "p-100", body["proposal_id"])
	assert.Equal(t, "A proposal outline", body["preview"])

	// The attempt lands in history
	recorder, body = g.request(t, http.MethodGet, "/api/history", "42", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	entries, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "p-100", entry["proposal_id"])

	// A second attempt inside the cooldown window is refused
	recorder, body = g.request(t, http.MethodPost, "/api/generate", "42", generatePayload())
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "rate", body["code"])
	assert.NotEmpty(t, recorder.Header().Get("Retry-After"))

	// The diagnostic snapshot was recorded
	recorder, body = g.request(t, http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, true, body["ready"])
	assert.NotNil(t, body["last_attempt"])
}

func TestIntegration_GenerateValidation(t *testing.T) {
	g := setupGateway(t, true)
	g.memberships.SetActive("42", growthPlanID)

	payload := generatePayload()
	payload["duration_months"] = 0

	recorder, body := g.request(t, http.MethodPost, "/api/generate", "42", payload)
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Equal(t, "validation", body["code"])
}

func TestIntegration_GenerateRequiresPrincipal(t *testing.T) {
	g := setupGateway(t, true)

	recorder, _ := g.request(t, http.MethodPost, "/api/generate", "", generatePayload())
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestIntegration_GenerateWithoutSecret(t *testing.T) {
	g := setupGateway(t, false)
	require.NoError(t, g.settings.SetBaseURL(context.Background(), g.backend.URL))
	g.memberships.SetActive("42", growthPlanID)

	// No signing secret stored: minting fails before any backend call
	recorder, body := g.request(t, http.MethodPost, "/api/generate", "42", generatePayload())
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "auth", body["code"])
}

func TestIntegration_GenerateWithoutBaseURL(t *testing.T) {
	g := setupGateway(t, false)
	require.NoError(t, g.settings.SetSigningSecret(context.Background(), signingSecret))
	g.memberships.SetActive("42", growthPlanID)

	// No base URL stored: refused as a configuration problem, no backend call
	recorder, body := g.request(t, http.MethodPost, "/api/generate", "42", generatePayload())
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, "config", body["code"])
	assert.Contains(t, body["message"], "not configured")
}

func TestIntegration_GenerateUpstreamRateLimit(t *testing.T) {
	g := setupGateway(t, true)
	g.memberships.SetActive("throttled", growthPlanID)

	// A backend 429 keeps the backend's code and request id, and the local
	// cooldown window is not consumed
	recorder, body := g.request(t, http.MethodPost, "/api/generate", "throttled", generatePayload())
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "RATE_LIMITED", body["code"])
	assert.Equal(t, "abc-123", body["request_id"])

	// Still the backend refusing, not the local cooldown gate
	recorder, body = g.request(t, http.MethodPost, "/api/generate", "throttled", generatePayload())
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "RATE_LIMITED", body["code"])
}

func TestIntegration_UsageSummary(t *testing.T) {
	g := setupGateway(t, true)
	g.memberships.SetActive("42", growthPlanID)

	recorder, body := g.request(t, http.MethodGet, "/api/usage", "42", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), data["generations_used"])
}

func TestIntegration_StatusUnconfigured(t *testing.T) {
	g := setupGateway(t, false)

	recorder, body := g.request(t, http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, false, body["ready"])
	assert.Equal(t, false, body["base_url_configured"])
	assert.Equal(t, false, body["secret_configured"])
}

// Package http provides HTTP handlers for status and usage reporting.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	healthUseCase "github.com/ngoinfo/copilot-gateway/internal/health/usecase"
	"github.com/ngoinfo/copilot-gateway/internal/httputil"
)

// StatusHandler handles HTTP requests for connection status and usage.
type StatusHandler struct {
	useCase healthUseCase.UseCase
	logger  *slog.Logger
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(useCase healthUseCase.UseCase, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// StatusResponse reports gateway readiness. The base URL is included so
// operators can spot a wrong environment at a glance; secrets never appear.
type StatusResponse struct {
	Ready             bool   `json:"ready"`
	BaseURLConfigured bool   `json:"base_url_configured"`
	BaseURL           string `json:"base_url,omitempty"`
	SecretConfigured  bool   `json:"secret_configured"`
	Issuer            string `json:"issuer"`
	Audience          string `json:"audience"`
	TokenTTLMinutes   int    `json:"token_ttl_minutes"`
	Algorithm         string `json:"algorithm"`
	LastAttempt       any    `json:"last_attempt,omitempty"`
}

// StatusHandler reports configuration readiness and the last dispatch snapshot.
// GET /api/status
func (h *StatusHandler) StatusHandler(c *gin.Context) {
	status, err := h.useCase.Status(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := StatusResponse{
		Ready:             status.Ready,
		BaseURLConfigured: status.BaseURLConfigured,
		BaseURL:           status.BaseURL,
		SecretConfigured:  status.SecretConfigured,
		Issuer:            status.Issuer,
		Audience:          status.Audience,
		TokenTTLMinutes:   status.TokenTTLMinutes,
		Algorithm:         status.Algorithm,
	}
	if status.LastAttempt != nil {
		response.LastAttempt = status.LastAttempt
	}

	c.JSON(http.StatusOK, response)
}

// UsageHandler proxies the backend usage summary for the calling principal.
// GET /api/usage
func (h *StatusHandler) UsageHandler(c *gin.Context) {
	principal, ok := httputil.PrincipalFromContext(c)
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	env, err := h.useCase.UsageSummary(c.Request.Context(), principal)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// The normalized envelope is the response contract either way
	status := env.StatusCode
	if status == 0 {
		status = http.StatusBadGateway
	}
	c.JSON(status, env)
}

// Package http provides HTTP handlers for proposal generation and history.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	"github.com/ngoinfo/copilot-gateway/internal/generation/domain"
	"github.com/ngoinfo/copilot-gateway/internal/generation/http/dto"
	generationUseCase "github.com/ngoinfo/copilot-gateway/internal/generation/usecase"
	"github.com/ngoinfo/copilot-gateway/internal/httputil"
)

// GenerationHandler handles HTTP requests for proposal generation.
type GenerationHandler struct {
	useCase generationUseCase.UseCase
	logger  *slog.Logger
}

// NewGenerationHandler creates a new generation handler.
func NewGenerationHandler(useCase generationUseCase.UseCase, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// GenerateHandler runs one generation attempt for the calling principal.
// POST /api/generate
// Refusals and failures return the user-facing failure shape, never the raw
// backend error.
func (h *GenerationHandler) GenerateHandler(c *gin.Context) {
	principal, ok := httputil.PrincipalFromContext(c)
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	result, err := h.useCase.Generate(c.Request.Context(), principal, req.ToDomain())
	if err != nil {
		var failure *domain.Failure
		if apperrors.As(err, &failure) {
			h.writeFailure(c, failure)
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapResultToResponse(result))
}

// HistoryHandler returns the calling principal's generation history.
// GET /api/history?offset=N&limit=M
func (h *GenerationHandler) HistoryHandler(c *gin.Context) {
	principal, ok := httputil.PrincipalFromContext(c)
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	history, err := h.useCase.History(c.Request.Context(), principal.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if offset >= len(history) {
		history = nil
	} else {
		history = history[offset:]
	}
	if len(history) > limit {
		history = history[:limit]
	}

	c.JSON(http.StatusOK, dto.MapHistoryToResponse(history))
}

// writeFailure renders a failure with a status matching its code.
func (h *GenerationHandler) writeFailure(c *gin.Context, failure *domain.Failure) {
	status := http.StatusBadGateway
	switch failure.Code {
	case domain.FailureConfig:
		status = http.StatusServiceUnavailable
	case domain.FailureAuth:
		status = http.StatusUnauthorized
	case domain.FailurePlan:
		status = http.StatusForbidden
	case domain.FailureValidation:
		status = http.StatusUnprocessableEntity
	case domain.FailureRate:
		status = http.StatusTooManyRequests
	}

	if failure.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(failure.RetryAfter.Seconds())))
	}

	c.JSON(status, dto.MapFailureToResponse(failure))
}

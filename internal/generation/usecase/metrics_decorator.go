package usecase

import (
	"context"
	"time"

	"github.com/ngoinfo/copilot-gateway/internal/generation/domain"
	"github.com/ngoinfo/copilot-gateway/internal/metrics"
	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
)

// generateUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type generateUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewGenerateUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewGenerateUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &generateUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Generate records metrics for generation attempts.
func (g *generateUseCaseWithMetrics) Generate(
	ctx context.Context,
	principal principalDomain.Principal,
	input domain.GenerateInput,
) (domain.Result, error) {
	start := time.Now()
	result, err := g.next.Generate(ctx, principal, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, "generation", "generate", status)
	g.metrics.RecordDuration(ctx, "generation", "generate", time.Since(start), status)

	return result, err
}

// History records metrics for history reads.
func (g *generateUseCaseWithMetrics) History(
	ctx context.Context,
	principalID string,
) ([]domain.HistoryEntry, error) {
	start := time.Now()
	history, err := g.next.History(ctx, principalID)

	status := "success"
	if err != nil {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, "generation", "history", status)
	g.metrics.RecordDuration(ctx, "generation", "history", time.Since(start), status)

	return history, err
}

package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	validation "github.com/jellydator/validation"

	authDomain "github.com/ngoinfo/copilot-gateway/internal/auth/domain"
	"github.com/ngoinfo/copilot-gateway/internal/clock"
	"github.com/ngoinfo/copilot-gateway/internal/database"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	"github.com/ngoinfo/copilot-gateway/internal/gateway"
	"github.com/ngoinfo/copilot-gateway/internal/generation/domain"
	membershipDomain "github.com/ngoinfo/copilot-gateway/internal/membership/domain"
	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
	"github.com/ngoinfo/copilot-gateway/internal/ratelimit"
)

const generatePath = "/api/proposals/generate"

// Diagnostic snapshots keep only the head of what was sent and received.
const (
	snapshotRequestCap  = 120
	snapshotResponseCap = 200
)

// generateUseCase implements UseCase.
//
// The gate order is fixed: principal, tier, input, cooldown, dispatch. The
// cooldown is marked only after a successful dispatch, so refused and failed
// attempts never consume the window.
type generateUseCase struct {
	tiers      TierService
	limiter    ratelimit.Limiter
	dispatcher Dispatcher
	meta       PrincipalMetaRepository
	attempts   AttemptSettings
	txManager  database.TxManager
	clock      clock.Clock
	logger     *slog.Logger
}

// NewGenerateUseCase creates a new generation use case.
func NewGenerateUseCase(
	tiers TierService,
	limiter ratelimit.Limiter,
	dispatcher Dispatcher,
	meta PrincipalMetaRepository,
	attempts AttemptSettings,
	txManager database.TxManager,
	clk clock.Clock,
	logger *slog.Logger,
) UseCase {
	return &generateUseCase{
		tiers:      tiers,
		limiter:    limiter,
		dispatcher: dispatcher,
		meta:       meta,
		attempts:   attempts,
		txManager:  txManager,
		clock:      clk,
		logger:     logger,
	}
}

// Generate runs the gate sequence and dispatches one generation attempt.
func (g *generateUseCase) Generate(
	ctx context.Context,
	principal principalDomain.Principal,
	input domain.GenerateInput,
) (domain.Result, error) {
	if principal.ID == "" {
		return domain.Result{}, domain.NewFailure(domain.FailureAuth, "no authenticated principal")
	}

	tier := g.tiers.Resolve(ctx, principal.ID)
	if tier == membershipDomain.TierFree {
		eligible, err := g.tiers.HasFreeAccess(ctx, principal.ID)
		if err != nil {
			return domain.Result{}, apperrors.Wrap(err, "failed to check free access")
		}
		if !eligible {
			return domain.Result{}, domain.NewFailure(domain.FailurePlan, "free tier daily limit reached")
		}
	}

	if err := input.Validate(); err != nil {
		failure := domain.NewFailure(domain.FailureValidation, err.Error())
		failure.Fields = validationFields(err)
		return domain.Result{}, failure
	}

	allowed, retryAfter, err := g.limiter.Allow(ctx, principal.ID)
	if err != nil {
		return domain.Result{}, apperrors.Wrap(err, "failed to check cooldown")
	}
	if !allowed {
		failure := domain.NewFailure(domain.FailureRate, "cooldown active")
		failure.RetryAfter = retryAfter
		return domain.Result{}, failure
	}

	env, err := g.dispatcher.Post(ctx, generatePath, input, principal, authDomain.ProfileGeneration)
	if err != nil {
		g.logger.Error("generation dispatch could not be attempted",
			slog.String("principal_id", principal.ID),
			slog.Any("error", err),
		)
		return domain.Result{}, dispatchErrorFailure(err)
	}

	g.recordAttempt(ctx, input, env)

	if !env.Success {
		g.logger.Warn("generation rejected by backend",
			slog.String("principal_id", principal.ID),
			slog.Int("status", env.StatusCode),
			slog.String("code", env.Error.Code),
			slog.String("request_id", env.Error.RequestID),
		)
		return domain.Result{}, envelopeFailure(env)
	}

	result := resultFromEnvelope(env)

	// Only a successful dispatch consumes the cooldown window. The proposal
	// already exists upstream, so bookkeeping failures are logged, not fatal.
	err = g.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := g.limiter.Mark(ctx, principal.ID); err != nil {
			return apperrors.Wrap(err, "failed to mark cooldown")
		}
		if tier == membershipDomain.TierFree {
			if err := g.tiers.MarkFreeUse(ctx, principal.ID); err != nil {
				return apperrors.Wrap(err, "failed to mark free use")
			}
		}
		return g.appendHistory(ctx, principal.ID, domain.HistoryEntry{
			ProposalID: result.ProposalID,
			Title:      input.Title,
			CreatedAt:  g.clock.Now(),
		})
	})
	if err != nil {
		g.logger.Error("post-generation bookkeeping failed",
			slog.String("principal_id", principal.ID),
			slog.Any("error", err),
		)
	}

	g.logger.Info("generation succeeded",
		slog.String("principal_id", principal.ID),
		slog.String("proposal_id", result.ProposalID),
		slog.String("tier", string(tier)),
	)
	return result, nil
}

// History returns the principal's stored generations, newest first. A missing
// or unreadable history reads as empty.
func (g *generateUseCase) History(ctx context.Context, principalID string) ([]domain.HistoryEntry, error) {
	raw, err := g.meta.Get(ctx, principalID, principalDomain.MetaHistory)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var history []domain.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		g.logger.Warn("discarding unreadable history", slog.String("principal_id", principalID))
		return nil, nil
	}
	return history, nil
}

// appendHistory prepends entry to the stored history.
func (g *generateUseCase) appendHistory(ctx context.Context, principalID string, entry domain.HistoryEntry) error {
	history, err := g.History(ctx, principalID)
	if err != nil {
		return apperrors.Wrap(err, "failed to load history")
	}

	encoded, err := json.Marshal(domain.PrependHistory(history, entry))
	if err != nil {
		return apperrors.Wrap(err, "failed to encode history")
	}
	return g.meta.Set(ctx, principalID, principalDomain.MetaHistory, string(encoded))
}

// recordAttempt stores a truncated, redacted snapshot of the dispatch for
// the diagnostics view. Best effort.
func (g *generateUseCase) recordAttempt(ctx context.Context, input domain.GenerateInput, env gateway.Envelope) {
	requestJSON, _ := json.Marshal(input)
	responseJSON, _ := json.Marshal(env)

	snapshot, err := json.Marshal(map[string]any{
		"at":          g.clock.Now().Unix(),
		"success":     env.Success,
		"status_code": env.StatusCode,
		"request":     truncate(gateway.Redact(string(requestJSON)), snapshotRequestCap),
		"response":    truncate(gateway.Redact(string(responseJSON)), snapshotResponseCap),
	})
	if err != nil {
		return
	}
	if err := g.attempts.SetLastAttempt(ctx, string(snapshot)); err != nil {
		g.logger.Warn("failed to store attempt snapshot", slog.Any("error", err))
	}
}

// dispatchErrorFailure maps pre-dispatch errors (minting, configuration) to
// the failure taxonomy.
func dispatchErrorFailure(err error) *domain.Failure {
	switch {
	case apperrors.Is(err, apperrors.ErrConfigMissing):
		return domain.NewFailure(domain.FailureConfig, err.Error())
	case apperrors.Is(err, apperrors.ErrSecretUnavailable), apperrors.Is(err, apperrors.ErrUnauthorized):
		return domain.NewFailure(domain.FailureAuth, err.Error())
	default:
		return domain.NewFailure(domain.FailureAPI, err.Error())
	}
}

// envelopeFailure maps a failure envelope to the failure taxonomy.
func envelopeFailure(env gateway.Envelope) *domain.Failure {
	code := domain.FailureAPI
	switch {
	case env.StatusCode == 401 || env.StatusCode == 403:
		code = domain.FailureAuth
	case env.StatusCode == 429:
		code = domain.FailureRate
	case env.StatusCode == 400 || env.StatusCode == 422:
		code = domain.FailureValidation
	case env.Error != nil && strings.HasPrefix(env.Error.Code, "PLAN"):
		code = domain.FailurePlan
	}

	failure := domain.NewFailure(code, "")
	if env.Error != nil {
		// The backend's normalized code rides along verbatim so the caller
		// can distinguish upstream refusals from local gate refusals.
		failure.BackendCode = env.Error.Code
		failure.Detail = env.Error.Message
		failure.RequestID = env.Error.RequestID
		if code == domain.FailureValidation {
			failure.Fields = env.Error.Details
		}
	}
	return failure
}

// resultFromEnvelope extracts the proposal from a success envelope. Fields
// beyond the id and preview ride along as metadata.
func resultFromEnvelope(env gateway.Envelope) domain.Result {
	result := domain.Result{Meta: make(map[string]any)}
	for key, value := range env.Data {
		switch key {
		case "proposal_id":
			result.ProposalID, _ = value.(string)
		case "preview":
			result.Preview, _ = value.(string)
		default:
			result.Meta[key] = value
		}
	}
	return result
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

// validationFields flattens a validation error into a per-field message map.
func validationFields(err error) map[string]any {
	var fieldErrors validation.Errors
	if !apperrors.As(err, &fieldErrors) {
		return nil
	}

	fields := make(map[string]any, len(fieldErrors))
	for field, fieldErr := range fieldErrors {
		fields[field] = fieldErr.Error()
	}
	return fields
}

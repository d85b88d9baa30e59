// Package usecase reports service configuration status and proxies the
// backend usage summary.
package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	authDomain "github.com/ngoinfo/copilot-gateway/internal/auth/domain"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	"github.com/ngoinfo/copilot-gateway/internal/gateway"
	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
)

const usageSummaryPath = "/api/usage/summary"

// tokenAlgorithm is the only signing algorithm the service mints with.
const tokenAlgorithm = "HS256"

// StatusSettings exposes the configuration the status view reports on.
type StatusSettings interface {
	BaseURL(ctx context.Context) (string, error)
	HasSigningSecret(ctx context.Context) (bool, error)
	Issuer(ctx context.Context) (string, error)
	Audience(ctx context.Context) (string, error)
	TokenTTL(ctx context.Context) (time.Duration, error)
	LastAttempt(ctx context.Context) (string, error)
}

// Dispatcher performs authenticated calls against the backend.
type Dispatcher interface {
	Get(
		ctx context.Context,
		path string,
		principal principalDomain.Principal,
		profile authDomain.Profile,
	) (gateway.Envelope, error)
}

// Status is the connection readiness snapshot.
type Status struct {
	BaseURLConfigured bool
	BaseURL           string
	SecretConfigured  bool
	Ready             bool
	Issuer            string
	Audience          string
	TokenTTLMinutes   int
	Algorithm         string
	LastAttempt       json.RawMessage
}

// UseCase reports status and proxies usage.
type UseCase interface {
	Status(ctx context.Context) (Status, error)
	UsageSummary(ctx context.Context, principal principalDomain.Principal) (gateway.Envelope, error)
}

type statusUseCase struct {
	settings   StatusSettings
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewStatusUseCase creates a new status use case.
func NewStatusUseCase(settings StatusSettings, dispatcher Dispatcher, logger *slog.Logger) UseCase {
	return &statusUseCase{
		settings:   settings,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Status reports whether the gateway is ready to mint and dispatch. Missing
// configuration is part of the answer, not an error.
func (s *statusUseCase) Status(ctx context.Context) (Status, error) {
	var status Status

	baseURL, err := s.settings.BaseURL(ctx)
	switch {
	case err == nil:
		status.BaseURLConfigured = true
		status.BaseURL = baseURL
	case apperrors.Is(err, apperrors.ErrConfigMissing):
		// Reported below as not configured
	default:
		return Status{}, err
	}

	hasSecret, err := s.settings.HasSigningSecret(ctx)
	if err != nil {
		return Status{}, err
	}
	status.SecretConfigured = hasSecret
	status.Ready = status.BaseURLConfigured && status.SecretConfigured

	issuer, err := s.settings.Issuer(ctx)
	if err != nil {
		return Status{}, err
	}
	audience, err := s.settings.Audience(ctx)
	if err != nil {
		return Status{}, err
	}
	ttl, err := s.settings.TokenTTL(ctx)
	if err != nil {
		return Status{}, err
	}
	status.Issuer = issuer
	status.Audience = audience
	status.TokenTTLMinutes = int(ttl.Minutes())
	status.Algorithm = tokenAlgorithm

	lastAttempt, err := s.settings.LastAttempt(ctx)
	if err != nil {
		return Status{}, err
	}
	if lastAttempt != "" && json.Valid([]byte(lastAttempt)) {
		status.LastAttempt = json.RawMessage(lastAttempt)
	}

	return status, nil
}

// UsageSummary fetches the principal's usage from the backend.
func (s *statusUseCase) UsageSummary(
	ctx context.Context,
	principal principalDomain.Principal,
) (gateway.Envelope, error) {
	return s.dispatcher.Get(ctx, usageSummaryPath, principal, authDomain.ProfileAPI)
}

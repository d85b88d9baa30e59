package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	healthUseCase "github.com/ngoinfo/copilot-gateway/internal/health/usecase"
)

// RunStatus prints the gateway's configuration and readiness snapshot.
func RunStatus(
	ctx context.Context,
	status healthUseCase.UseCase,
	w io.Writer,
	format string,
) error {
	snapshot, err := status.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	switch format {
	case "json":
		output := struct {
			BaseURLConfigured bool            `json:"base_url_configured"`
			BaseURL           string          `json:"base_url,omitempty"`
			SecretConfigured  bool            `json:"secret_configured"`
			Ready             bool            `json:"ready"`
			Issuer            string          `json:"issuer"`
			Audience          string          `json:"audience"`
			TokenTTLMinutes   int             `json:"token_ttl_minutes"`
			Algorithm         string          `json:"algorithm"`
			LastAttempt       json.RawMessage `json:"last_attempt,omitempty"`
		}{
			BaseURLConfigured: snapshot.BaseURLConfigured,
			BaseURL:           snapshot.BaseURL,
			SecretConfigured:  snapshot.SecretConfigured,
			Ready:             snapshot.Ready,
			Issuer:            snapshot.Issuer,
			Audience:          snapshot.Audience,
			TokenTTLMinutes:   snapshot.TokenTTLMinutes,
			Algorithm:         snapshot.Algorithm,
			LastAttempt:       snapshot.LastAttempt,
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	default:
		fmt.Fprintf(w, "Base URL configured: %t\n", snapshot.BaseURLConfigured)
		if snapshot.BaseURLConfigured {
			fmt.Fprintf(w, "Base URL: %s\n", snapshot.BaseURL)
		}
		fmt.Fprintf(w, "Signing secret configured: %t\n", snapshot.SecretConfigured)
		fmt.Fprintf(w, "Ready: %t\n", snapshot.Ready)
		fmt.Fprintf(w, "Issuer: %s\n", snapshot.Issuer)
		fmt.Fprintf(w, "Audience: %s\n", snapshot.Audience)
		fmt.Fprintf(w, "Token TTL: %d minutes (%s)\n", snapshot.TokenTTLMinutes, snapshot.Algorithm)
		if len(snapshot.LastAttempt) > 0 {
			fmt.Fprintf(w, "Last attempt: %s\n", snapshot.LastAttempt)
		}
		return nil
	}
}

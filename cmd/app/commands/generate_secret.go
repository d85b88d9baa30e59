package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authService "github.com/ngoinfo/copilot-gateway/internal/auth/service"
	settingsUseCase "github.com/ngoinfo/copilot-gateway/internal/settings/usecase"
)

// RunGenerateSecret generates a random signing secret and prints it. With
// store set, the secret is also encrypted and persisted so token minting can
// use it immediately. The plaintext is printed exactly once either way; it is
// not recoverable from the encrypted blob without the site key.
func RunGenerateSecret(
	ctx context.Context,
	generator authService.SecretGenerator,
	settings settingsUseCase.UseCase,
	logger *slog.Logger,
	w io.Writer,
	length int,
	store bool,
) error {
	secret, err := generator.Generate(length)
	if err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}

	if store {
		if err := settings.SetSigningSecret(ctx, secret); err != nil {
			return fmt.Errorf("failed to store signing secret: %w", err)
		}
		logger.Info("signing secret stored", slog.Int("length", length))
	}

	fmt.Fprintln(w, "# Signing secret (shown once, store it somewhere safe)")
	fmt.Fprintln(w, secret)
	if store {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "# The secret was encrypted and stored; tokens can be minted now.")
	}

	return nil
}

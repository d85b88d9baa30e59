package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	settingsUseCase "github.com/ngoinfo/copilot-gateway/internal/settings/usecase"
)

// RunSetSecret reads a signing secret from r, encrypts it, and stores it.
// The secret comes from stdin rather than an argument so it never lands in
// shell history or process listings.
func RunSetSecret(
	ctx context.Context,
	settings settingsUseCase.UseCase,
	r io.Reader,
	w io.Writer,
) error {
	fmt.Fprintln(w, "Enter signing secret:")

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read secret: %w", err)
		}
		return fmt.Errorf("no secret provided")
	}

	secret := strings.TrimSpace(scanner.Text())
	if err := settings.SetSigningSecret(ctx, secret); err != nil {
		return fmt.Errorf("failed to store signing secret: %w", err)
	}

	fmt.Fprintln(w, "Signing secret stored.")
	return nil
}

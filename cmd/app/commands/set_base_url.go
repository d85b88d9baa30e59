package commands

import (
	"context"
	"fmt"
	"io"

	settingsUseCase "github.com/ngoinfo/copilot-gateway/internal/settings/usecase"
)

// RunSetBaseURL validates and stores the backend base URL, then prints the
// stored value. In production the scheme is forced to https, so the printed
// URL may differ from the input.
func RunSetBaseURL(
	ctx context.Context,
	settings settingsUseCase.UseCase,
	w io.Writer,
	rawURL string,
) error {
	if err := settings.SetBaseURL(ctx, rawURL); err != nil {
		return fmt.Errorf("failed to set base url: %w", err)
	}

	stored, err := settings.BaseURL(ctx)
	if err != nil {
		return fmt.Errorf("failed to read back base url: %w", err)
	}

	fmt.Fprintf(w, "Base URL set to %s\n", stored)
	return nil
}

package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	authService "github.com/ngoinfo/copilot-gateway/internal/auth/service"
	cryptoService "github.com/ngoinfo/copilot-gateway/internal/crypto/service"
	settingsUseCase "github.com/ngoinfo/copilot-gateway/internal/settings/usecase"
	"github.com/ngoinfo/copilot-gateway/internal/testutil"
)

func newTestSettings(siteKey string) settingsUseCase.UseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return settingsUseCase.NewSettingsUseCase(
		testutil.NewMemorySettingRepository(),
		cryptoService.NewSiteKeySource(siteKey),
		"staging",
		logger,
	)
}

func TestRunGenerateSecret(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	generator := authService.NewRandomSecretGenerator()

	t.Run("print-only", func(t *testing.T) {
		settings := newTestSettings("test-site-key")

		var out bytes.Buffer
		err := RunGenerateSecret(ctx, generator, settings, logger, &out, 48, false)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		require.Len(t, lines[1], 48)

		stored, err := settings.HasSigningSecret(ctx)
		require.NoError(t, err)
		require.False(t, stored)
	})

	t.Run("store", func(t *testing.T) {
		settings := newTestSettings("test-site-key")

		var out bytes.Buffer
		err := RunGenerateSecret(ctx, generator, settings, logger, &out, 48, true)
		require.NoError(t, err)

		secret, err := settings.SigningSecret(ctx)
		require.NoError(t, err)
		require.Len(t, secret, 48)
		require.Contains(t, out.String(), secret)
	})

	t.Run("store-without-site-key", func(t *testing.T) {
		settings := newTestSettings("")

		err := RunGenerateSecret(ctx, generator, settings, logger, &bytes.Buffer{}, 48, true)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to store signing secret")
	})
}

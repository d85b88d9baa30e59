package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunSetBaseURL(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		settings := newTestSettings("test-site-key")

		var out bytes.Buffer
		err := RunSetBaseURL(ctx, settings, &out, "https://api.example.org/")
		require.NoError(t, err)
		require.Contains(t, out.String(), "https://api.example.org")

		stored, err := settings.BaseURL(ctx)
		require.NoError(t, err)
		require.Equal(t, "https://api.example.org", stored)
	})

	t.Run("invalid-url", func(t *testing.T) {
		settings := newTestSettings("test-site-key")

		err := RunSetBaseURL(ctx, settings, &bytes.Buffer{}, "not a url")
		require.Error(t, err)
	})
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	authDomain "github.com/ngoinfo/copilot-gateway/internal/auth/domain"
	authUseCase "github.com/ngoinfo/copilot-gateway/internal/auth/usecase"
	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
)

// RunMintToken mints a token for the given principal and prints it. The
// profile selects the claim set: "generation" for backend generation calls,
// "api" for general API calls.
func RunMintToken(
	ctx context.Context,
	tokens authUseCase.TokenIssuer,
	w io.Writer,
	principalID, email, profile, format string,
) error {
	var claimProfile authDomain.Profile
	switch profile {
	case "generation":
		claimProfile = authDomain.ProfileGeneration
	case "api":
		claimProfile = authDomain.ProfileAPI
	default:
		return fmt.Errorf("invalid profile: %s (valid options: generation, api)", profile)
	}

	principal := principalDomain.Principal{ID: principalID, Email: email}
	token, err := tokens.Mint(ctx, principal, claimProfile)
	if err != nil {
		return fmt.Errorf("failed to mint token: %w", err)
	}

	switch format {
	case "json":
		output := struct {
			Token     string `json:"token"`
			ExpiresAt string `json:"expires_at"`
		}{
			Token:     token.Value,
			ExpiresAt: token.ExpiresAt.UTC().Format(time.RFC3339),
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	default:
		fmt.Fprintf(w, "Token: %s\n", token.Value)
		fmt.Fprintf(w, "Expires: %s\n", token.ExpiresAt.UTC().Format(time.RFC3339))
		return nil
	}
}

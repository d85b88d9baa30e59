package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/ngoinfo/copilot-gateway/cmd/app/commands"
	"github.com/ngoinfo/copilot-gateway/internal/app"
	"github.com/ngoinfo/copilot-gateway/internal/config"
)

func getSecretCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-secret",
			Usage: "Generate a strong signing secret and optionally store it",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "length",
					Aliases: []string{"l"},
					Value:   48,
					Usage:   "Secret length in characters (minimum 32)",
				},
				&cli.BoolFlag{
					Name:    "store",
					Aliases: []string{"s"},
					Value:   false,
					Usage:   "Encrypt and store the secret instead of only printing it",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				settingsUseCase, err := container.SettingsUseCase()
				if err != nil {
					return err
				}

				return commands.RunGenerateSecret(
					ctx,
					container.SecretGenerator(),
					settingsUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("length")),
					cmd.Bool("store"),
				)
			},
		},
		{
			Name:  "set-secret",
			Usage: "Read a signing secret from stdin, encrypt it, and store it",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				settingsUseCase, err := container.SettingsUseCase()
				if err != nil {
					return err
				}

				io := commands.DefaultIO()
				return commands.RunSetSecret(ctx, settingsUseCase, io.Reader, io.Writer)
			},
		},
		{
			Name:  "mint-token",
			Usage: "Mint a token for a principal and print it",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "principal-id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Principal identifier for the token subject",
				},
				&cli.StringFlag{
					Name:    "email",
					Aliases: []string{"e"},
					Usage:   "Principal email for the email claim",
				},
				&cli.StringFlag{
					Name:    "profile",
					Aliases: []string{"p"},
					Value:   "api",
					Usage:   "Claim profile: 'generation' or 'api'",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunMintToken(
					ctx,
					tokenUseCase,
					commands.DefaultIO().Writer,
					cmd.String("principal-id"),
					cmd.String("email"),
					cmd.String("profile"),
					cmd.String("format"),
				)
			},
		},
	}
}

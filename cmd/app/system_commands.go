package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/ngoinfo/copilot-gateway/cmd/app/commands"
	"github.com/ngoinfo/copilot-gateway/internal/app"
	"github.com/ngoinfo/copilot-gateway/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "status",
			Usage: "Show backend configuration and readiness",
			Flags: []cli.Flag{
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

				statusUseCase, err := container.StatusUseCase()
				if err != nil {
					return err
				}

				return commands.RunStatus(
					ctx,
					statusUseCase,
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}

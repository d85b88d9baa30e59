package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/ngoinfo/copilot-gateway/cmd/app/commands"
	"github.com/ngoinfo/copilot-gateway/internal/app"
	"github.com/ngoinfo/copilot-gateway/internal/config"
)

func getSettingsCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "set-base-url",
			Usage: "Validate and store the backend base URL",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "url",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Absolute http(s) base URL of the proposal backend",
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

				return commands.RunSetBaseURL(
					ctx,
					settingsUseCase,
					commands.DefaultIO().Writer,
					cmd.String("url"),
				)
			},
		},
	}
}

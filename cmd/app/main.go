// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/gatekeeper/cmd/app/commands"
	"github.com/allisson/gatekeeper/internal/app"
	"github.com/allisson/gatekeeper/internal/config"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "gatekeeper",
		Usage:   "Authentication, authorization and audit service",
		Version: version,
		Commands: []*cli.Command{
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
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				},
			},
			{
				Name:  "create-user",
				Usage: "Create a new user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Username (identity subject)",
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "Email address",
					},
					&cli.Int64Flag{
						Name:    "organization-id",
						Aliases: []string{"o"},
						Usage:   "Optional organization id",
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Optional local password (omit for bridge-only users)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					var orgID *int64
					if cmd.IsSet("organization-id") {
						value := cmd.Int64("organization-id")
						orgID = &value
					}
					return commands.WithContainer(ctx, func(ctx context.Context, deps commands.Deps) error {
						return commands.RunCreateUser(
							ctx,
							deps.RBACUseCase,
							deps.Logger,
							cmd.String("username"),
							cmd.String("email"),
							orgID,
							cmd.String("password"),
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "set-password",
				Usage: "Set a user's local password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Username",
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
						Usage:    "New password",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithContainer(ctx, func(ctx context.Context, deps commands.Deps) error {
						return commands.RunSetPassword(
							ctx,
							deps.RBACUseCase,
							deps.Logger,
							cmd.String("username"),
							cmd.String("password"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "deactivate-user",
				Usage: "Deactivate a user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Username",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithContainer(ctx, func(ctx context.Context, deps commands.Deps) error {
						return commands.RunDeactivateUser(
							ctx,
							deps.RBACUseCase,
							deps.Logger,
							cmd.String("username"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "create-role",
				Usage: "Create a new role",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Role name",
					},
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Role description",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithContainer(ctx, func(ctx context.Context, deps commands.Deps) error {
						return commands.RunCreateRole(
							ctx,
							deps.RBACUseCase,
							deps.Logger,
							cmd.String("name"),
							cmd.String("description"),
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "deactivate-role",
				Usage: "Deactivate a role",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Role name",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithContainer(ctx, func(ctx context.Context, deps commands.Deps) error {
						return commands.RunDeactivateRole(
							ctx,
							deps.RBACUseCase,
							deps.Logger,
							cmd.String("name"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "create-permission",
				Usage: "Create a new permission",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "resource",
						Aliases:  []string{"r"},
						Required: true,
						Usage:    "Resource name",
					},
					&cli.StringFlag{
						Name:     "action",
						Aliases:  []string{"a"},
						Required: true,
						Usage:    "Action name",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithContainer(ctx, func(ctx context.Context, deps commands.Deps) error {
						return commands.RunCreatePermission(
							ctx,
							deps.RBACUseCase,
							deps.Logger,
							cmd.String("resource"),
							cmd.String("action"),
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "assign-role",
				Usage: "Assign a role to a user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Username",
					},
					&cli.StringFlag{
						Name:     "role",
						Aliases:  []string{"r"},
						Required: true,
						Usage:    "Role name",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithContainer(ctx, func(ctx context.Context, deps commands.Deps) error {
						return commands.RunAssignRole(
							ctx,
							deps.RBACUseCase,
							deps.Logger,
							cmd.String("username"),
							cmd.String("role"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "grant-permission",
				Usage: "Grant a permission to a role",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "role",
						Aliases:  []string{"r"},
						Required: true,
						Usage:    "Role name",
					},
					&cli.StringFlag{
						Name:     "resource",
						Required: true,
						Usage:    "Resource name",
					},
					&cli.StringFlag{
						Name:     "action",
						Aliases:  []string{"a"},
						Required: true,
						Usage:    "Action name",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithContainer(ctx, func(ctx context.Context, deps commands.Deps) error {
						return commands.RunGrantPermission(
							ctx,
							deps.RBACUseCase,
							deps.Logger,
							cmd.String("role"),
							cmd.String("resource"),
							cmd.String("action"),
							commands.DefaultIO(),
						)
					})
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/app"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/database"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/migrations"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/utils"
)

// MigrateCommand returns the CLI command for database migrations
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Manage database migrations",
		Hidden: true,
		Subcommands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show the applied and the latest embedded schema version",
				Action: func(c *cli.Context) error {
					if err := openDatabase(c); err != nil {
						return err
					}

					current, err := database.SchemaVersion()
					if err != nil {
						return fmt.Errorf("failed to read schema version: %w", err)
					}
					latest, err := migrations.Latest()
					if err != nil {
						return fmt.Errorf("failed to read embedded migrations: %w", err)
					}

					utils.PrintKeyValue("Applied version", fmt.Sprintf("%d", current))
					utils.PrintKeyValue("Latest version", fmt.Sprintf("%d", latest))
					if current < latest {
						utils.PrintWarning(fmt.Sprintf("%d migration(s) pending, run migrate up", latest-current))
					} else {
						utils.PrintSuccess("Database schema is up to date")
					}
					return nil
				},
			},
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(c *cli.Context) error {
					if err := openDatabase(c); err != nil {
						return err
					}

					utils.PrintInfo("Applying embedded migrations")
					version, err := database.RunMigrations()
					if err != nil {
						utils.PrintError(fmt.Sprintf("Failed to apply migrations: %s", err))
						return fmt.Errorf("failed to apply migrations: %w", err)
					}

					utils.PrintSuccess(fmt.Sprintf("Database schema is at version %d", version))
					return nil
				},
			},
			{
				Name:  "down",
				Usage: "Revert the last migration",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "steps",
						Usage: "Number of migrations to revert",
						Value: 1,
					},
				},
				Action: func(c *cli.Context) error {
					steps := c.Int("steps")
					if steps <= 0 {
						return fmt.Errorf("steps must be positive")
					}
					if err := openDatabase(c); err != nil {
						return err
					}

					utils.PrintWarning(fmt.Sprintf("Reverting %d embedded migration(s)", steps))
					version, err := database.RevertMigrations(steps)
					if err != nil {
						utils.PrintError(fmt.Sprintf("Failed to revert migrations: %s", err))
						return fmt.Errorf("failed to revert migrations: %w", err)
					}

					utils.PrintSuccess(fmt.Sprintf("Database schema is at version %d", version))
					return nil
				},
			},
		},
	}
}

// openDatabase connects without migrating, so migrate down can run on an older schema
func openDatabase(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return fmt.Errorf("failed to get application from context: %w", err)
	}
	if err := database.InitDB(application.Config); err != nil {
		utils.PrintError(fmt.Sprintf("Failed to initialize database: %s", err))
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

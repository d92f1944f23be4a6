package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/app"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/commands"
)

// Version information - populated at build time
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
	Author     = "unknown"
	Email      = "unknown"
)

func main() {
	cliApp := &cli.App{
		Name:  "analyzer",
		Usage: "Heuristic structure extractor for JavaScript and TypeScript",
		Description: "analyzer recovers functions, classes, imports, exports, constants, interfaces,\n" +
			"type aliases, decorators and UI components from JavaScript and TypeScript source\n" +
			"without a full grammar. Scans can be stored in SQLite and queried later.",
		Version: fmt.Sprintf("%s (%s)", Version, CommitHash),
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Authors: []*cli.Author{
			{
				Name:  Author,
				Email: Email,
			},
		},
		Before: func(c *cli.Context) error {
			application, err := app.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			c.App.Metadata = map[string]interface{}{
				"app": application,
			}

			return nil
		},
		After: func(c *cli.Context) error {
			if app, ok := c.App.Metadata["app"].(*app.App); ok {
				return app.Shutdown()
			}
			return nil
		},
		Commands: []*cli.Command{
			commands.InitCommand(),
			commands.ParseCommand(),
			commands.ScanCommand(),
			commands.ScansCommand(),
			commands.EntitiesCommand(),
			commands.ShowCommand(),
			commands.DeleteScanCommand(),
			commands.MigrateCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/config"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/database"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/utils"
)

// InitCommand returns the CLI command for initializing the analyzer
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize or update the analyzer environment",
		Description: "Creates the configuration directory with a sample .env file and " +
			"brings the scan database schema up to date. Run it once after installing " +
			"or after upgrading to a version with new migrations.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Replace an existing .env with the sample, keeping a dated backup",
			},
		},
		Action: initAction,
	}
}

func initAction(c *cli.Context) error {
	utils.PrintHeading("Initializing analyzer")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to get user home directory: %s", err))
		return fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".analyzer")
	utils.PrintInfo("Configuration directory: " + color.YellowString("%s", configDir))

	configFilePath, err := config.SetupConfigDirectory(configDir, c.Bool("reset"))
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to set up config directory: %s", err))
		return fmt.Errorf("failed to set up config directory: %w", err)
	}

	cfg, err := config.LoadFromEnv(configDir, configFilePath)
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to load configuration: %s", err))
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	utils.PrintInfo("Initializing database...")
	if err := database.InitDB(cfg); err != nil {
		utils.PrintError(fmt.Sprintf("Failed to initialize database: %s", err))
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	utils.PrintInfo("Applying database migrations...")
	version, err := database.RunMigrations()
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to apply migrations: %s", err))
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	utils.PrintSuccess("Analyzer initialized")
	utils.PrintKeyValue("Schema version", fmt.Sprintf("%d", version))
	utils.PrintKeyValue("Configuration file", color.YellowString("%s", configFilePath))
	utils.PrintKeyValue("Database location", color.YellowString("%s", cfg.Database.Path))
	utils.PrintKeyValue("Scanner mode", cfg.Parser.ScannerMode)
	fmt.Fprintln(utils.Output)
	utils.PrintInfo("Run " + color.CyanString("analyzer scan <dir> --save") + " to record your first inventory.")

	return nil
}

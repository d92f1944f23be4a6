// Package app provides the application initialization and lifecycle management
package app

import (
	"fmt"
	"os"
	"sync"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/config"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/database"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/inventory"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/parser"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/store"
	"github.com/urfave/cli/v2"
)

// App represents the application instance with its dependencies
type App struct {
	Config  *config.Config
	Parser  *parser.Service
	Scanner *inventory.Scanner

	storeOnce sync.Once
	store     store.Repository
	storeErr  error
}

// New initializes a new application instance. The database is opened on
// first use of Store, so commands that only parse never touch it.
func New() (*App, error) {
	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	if err := initLogger(cfg); err != nil {
		return nil, err
	}

	loggy.Info("Application initializing",
		"version", os.Getenv("VERSION"),
		"log_level", cfg.Logging.Level,
		"scanner_mode", cfg.Parser.ScannerMode,
	)

	return newApp(cfg, loggy.GetGlobalLogger()), nil
}

func newApp(cfg *config.Config, logger *loggy.Logger) *App {
	parserService := parser.NewService(logger, parser.WithOptions(cfg.ParserOptions()))
	return &App{
		Config:  cfg,
		Parser:  parserService,
		Scanner: inventory.NewScanner(parserService, cfg.Scan, logger),
	}
}

// initConfig loads and sets up the application configuration
func initConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv("", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	config.Set(cfg)
	return cfg, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config) error {
	err := loggy.Init(loggy.Config{
		Level:      config.ParseLogLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// Store opens the database, applies pending migrations and returns the scan repository
func (app *App) Store() (store.Repository, error) {
	app.storeOnce.Do(func() {
		if err := database.InitDB(app.Config); err != nil {
			app.storeErr = fmt.Errorf("failed to initialize database: %w", err)
			return
		}

		version, err := database.RunMigrations()
		if err != nil {
			app.storeErr = fmt.Errorf("failed to apply migrations: %w", err)
			return
		}
		loggy.Debug("Database ready", "path", app.Config.Database.Path, "schema_version", version)

		db, err := database.DB()
		if err != nil {
			app.storeErr = fmt.Errorf("failed to get database connection: %w", err)
			return
		}

		app.store = store.NewSQLRepository(db, loggy.GetGlobalLogger(), app.Config.Database.SaveMaxElapsed,
			store.WithQueryTimeout(app.Config.Database.QueryTimeout))
	})

	return app.store, app.storeErr
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	loggy.Debug("Shutting down application")

	if err := database.CloseDB(); err != nil {
		loggy.Error("Error closing database connection", "error", err)
	}

	return nil
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	app, ok := c.App.Metadata["app"].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return app, nil
}

// Package database owns the SQLite connection that stores scans
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/config"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotInitialized is returned when the database has not been initialized
	ErrNotInitialized = errors.New("database not initialized")

	db     *sql.DB
	dbLock sync.Mutex
)

// DB returns the database connection
func DB() (*sql.DB, error) {
	dbLock.Lock()
	defer dbLock.Unlock()

	if db == nil {
		return nil, ErrNotInitialized
	}
	return db, nil
}

// InitDB opens the database connection; it is a no-op when already open
func InitDB(cfg *config.Config) error {
	dbLock.Lock()
	defer dbLock.Unlock()

	if db != nil {
		return nil
	}

	loggy.Info("Initializing database", "path", cfg.Database.Path)

	conn, err := sql.Open("sqlite3", buildSQLiteDSN(&cfg.Database))
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	conn.SetConnMaxLifetime(cfg.Database.ConnMaxLife)
	conn.SetMaxOpenConns(1) // SQLite supports only one writer at a time
	conn.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db = conn
	loggy.Debug("Database initialized", "path", cfg.Database.Path)
	return nil
}

// buildSQLiteDSN builds a SQLite DSN with the pragmas from cfg
func buildSQLiteDSN(cfg *config.DatabaseConfig) string {
	if cfg.Path == ":memory:" || strings.HasPrefix(cfg.Path, "file::memory:") {
		return cfg.Path
	}

	params := url.Values{}
	params.Add("_busy_timeout", strconv.Itoa(cfg.BusyTimeout))
	params.Add("_journal_mode", cfg.JournalMode)
	params.Add("_synchronous", cfg.SynchronousMode)
	if cfg.CacheSize != 0 {
		params.Add("_cache_size", strconv.Itoa(cfg.CacheSize))
	}
	params.Add("_foreign_keys", strconv.FormatBool(cfg.ForeignKeys))

	return fmt.Sprintf("%s?%s", cfg.Path, params.Encode())
}

// CloseDB closes the database connection
func CloseDB() error {
	dbLock.Lock()
	defer dbLock.Unlock()

	if db == nil {
		return nil
	}

	err := db.Close()
	db = nil
	return err
}

// WithTransaction runs fn inside a transaction on conn, committing on success
func WithTransaction(ctx context.Context, conn *sql.DB, fn func(*sql.Tx) error) error {
	if conn == nil {
		return ErrNotInitialized
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			loggy.Error("Failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// newMigrate builds a migrator over the embedded schema
func newMigrate() (*migrate.Migrate, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	src, err := migrations.GetSource()
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

// RunMigrations applies all pending migrations and returns the resulting version
func RunMigrations() (uint, error) {
	dbLock.Lock()
	defer dbLock.Unlock()

	m, err := newMigrate()
	if err != nil {
		return 0, err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return migrationVersion(m)
}

// RevertMigrations reverts the given number of migration steps
func RevertMigrations(steps int) (uint, error) {
	dbLock.Lock()
	defer dbLock.Unlock()

	m, err := newMigrate()
	if err != nil {
		return 0, err
	}

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to revert migrations: %w", err)
	}

	return migrationVersion(m)
}

// SchemaVersion reports the applied migration version without changing anything
func SchemaVersion() (uint, error) {
	dbLock.Lock()
	defer dbLock.Unlock()

	m, err := newMigrate()
	if err != nil {
		return 0, err
	}
	return migrationVersion(m)
}

func migrationVersion(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get migration version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("database schema is dirty at version %d", version)
	}

	loggy.Debug("Database schema version", "version", version)
	return version, nil
}

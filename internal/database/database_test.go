package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/config"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.New()
	cfg.Database = config.DatabaseConfig{
		Path:            filepath.Join(t.TempDir(), "analyzer.db"),
		JournalMode:     "WAL",
		SynchronousMode: "NORMAL",
		BusyTimeout:     1000,
		ForeignKeys:     true,
		ConnMaxLife:     time.Minute,
		QueryTimeout:    time.Second,
		SaveMaxElapsed:  time.Second,
	}
	return cfg
}

func openTestDB(t *testing.T) *sql.DB {
	loggy.NewNoopLogger()
	require.NoError(t, InitDB(testConfig(t)))
	t.Cleanup(func() { _ = CloseDB() })

	conn, err := DB()
	require.NoError(t, err)
	return conn
}

func TestDB_NotInitialized(t *testing.T) {
	require.NoError(t, CloseDB())

	_, err := DB()
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = RunMigrations()
	assert.ErrorIs(t, err, ErrNotInitialized)

	err = WithTransaction(context.Background(), nil, func(*sql.Tx) error { return nil })
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestBuildSQLiteDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.DatabaseConfig
		contains []string
		exact    string
	}{
		{
			name:  "memory",
			cfg:   config.DatabaseConfig{Path: ":memory:"},
			exact: ":memory:",
		},
		{
			name: "file with pragmas",
			cfg: config.DatabaseConfig{
				Path: "/tmp/a.db", BusyTimeout: 5000, JournalMode: "WAL",
				SynchronousMode: "NORMAL", CacheSize: -16000, ForeignKeys: true,
			},
			contains: []string{"/tmp/a.db?", "_busy_timeout=5000", "_journal_mode=WAL", "_cache_size=-16000", "_foreign_keys=true"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := buildSQLiteDSN(&tt.cfg)
			if tt.exact != "" {
				assert.Equal(t, tt.exact, dsn)
			}
			for _, c := range tt.contains {
				assert.Contains(t, dsn, c)
			}
		})
	}
}

func TestMigrations(t *testing.T) {
	conn := openTestDB(t)

	version, err := RunMigrations()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	for _, table := range []string{"scans", "files", "entities", "file_errors"} {
		var name string
		err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
	}

	// running again is a no-op
	version, err = RunMigrations()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	version, err = SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	version, err = RevertMigrations(1)
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)

	var count int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name='scans'").Scan(&count))
	assert.Zero(t, count)
}

func TestWithTransaction(t *testing.T) {
	conn := openTestDB(t)
	_, err := RunMigrations()
	require.NoError(t, err)

	ctx := context.Background()
	insert := func(tx *sql.Tx, id string) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO scans (id, label, root, created_at) VALUES (?, ?, ?, ?)", id, "l", "/r", time.Now())
		return err
	}

	err = WithTransaction(ctx, conn, func(tx *sql.Tx) error { return insert(tx, "scan-a") })
	require.NoError(t, err)

	boom := errors.New("boom")
	err = WithTransaction(ctx, conn, func(tx *sql.Tx) error {
		require.NoError(t, insert(tx, "scan-b"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM scans").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInitDB_Idempotent(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, InitDB(testConfig(t)))

	again, err := DB()
	require.NoError(t, err)
	assert.Same(t, conn, again)
}

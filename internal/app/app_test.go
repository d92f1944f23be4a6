package app

import (
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/config"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/database"
	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvPrefix+"DB_PATH", filepath.Join(dir, "analyzer.db"))
	t.Setenv(config.EnvPrefix+"PARSER_SCANNER_MODE", "hardened")

	cfg, err := config.LoadFromEnv(dir, filepath.Join(dir, ".env"))
	require.NoError(t, err)
	return cfg
}

func TestNewApp_StoreOpensLazily(t *testing.T) {
	cfg := testConfig(t)
	application := newApp(cfg, loggy.NewNoopLogger())
	t.Cleanup(func() { _ = application.Shutdown() })

	require.NotNil(t, application.Parser)
	require.NotNil(t, application.Scanner)

	_, err := database.DB()
	assert.ErrorIs(t, err, database.ErrNotInitialized)

	repo, err := application.Store()
	require.NoError(t, err)

	again, err := application.Store()
	require.NoError(t, err)
	assert.Same(t, repo, again)

	scans, err := repo.ListScans(context.Background())
	require.NoError(t, err)
	assert.Empty(t, scans)
}

func TestFromContext(t *testing.T) {
	cliApp := cli.NewApp()
	c := cli.NewContext(cliApp, flag.NewFlagSet("test", flag.ContinueOnError), nil)

	_, err := FromContext(c)
	assert.Error(t, err)

	application := &App{}
	cliApp.Metadata = map[string]interface{}{"app": application}
	got, err := FromContext(c)
	require.NoError(t, err)
	assert.Same(t, application, got)
}

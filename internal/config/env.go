package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every configuration variable
const EnvPrefix = "ANALYZER_"

// DefaultSkipDirs are never descended into while scanning
var DefaultSkipDirs = []string{"node_modules", "dist", "build", ".git", "vendor", "coverage"}

// LoadFromEnv loads configuration from environment variables
// Parameters:
// - configDir: Directory containing config files (or empty for default)
// - configFilePath: Path to .env file (or empty for default)
func LoadFromEnv(configDir string, configFilePath string) (*Config, error) {
	cfg := New()

	// If configDir is empty, use the default
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".analyzer")

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	cfg.configDir = configDir

	// Use provided config file path or default
	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	// Check if ENV_FILE_PATH is set to load from a custom .env file
	envFilePath := getEnvString(EnvPrefix+"ENV_FILE_PATH", "")
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else {
		// Try to load from config directory first
		if err := godotenv.Load(configFilePath); err != nil {
			// Then try current directory as fallback
			_ = godotenv.Load()
		}
	}

	cfg.Parser = ParserConfig{
		ScannerMode:  getEnvString(EnvPrefix+"PARSER_SCANNER_MODE", "naive"),
		DocWindow:    getEnvInt(EnvPrefix+"PARSER_DOC_WINDOW", 10),
		HeaderWindow: getEnvInt(EnvPrefix+"PARSER_HEADER_WINDOW", 8),
		Complexity:   getEnvBool(EnvPrefix+"PARSER_COMPLEXITY", true),
	}

	cfg.Scan = ScanConfig{
		Workers:          getEnvInt(EnvPrefix+"SCAN_WORKERS", 8),
		MaxFileSize:      getEnvInt64(EnvPrefix+"SCAN_MAX_FILE_SIZE", 1<<20),
		RespectGitignore: getEnvBool(EnvPrefix+"SCAN_RESPECT_GITIGNORE", true),
		SkipDirs:         getEnvList(EnvPrefix+"SCAN_SKIP_DIRS", DefaultSkipDirs),
	}

	cfg.Database = DatabaseConfig{
		Path:            getEnvString(EnvPrefix+"DB_PATH", filepath.Join(configDir, "analyzer.db")),
		BusyTimeout:     getEnvInt(EnvPrefix+"DB_BUSY_TIMEOUT", 5000),
		JournalMode:     getEnvString(EnvPrefix+"DB_JOURNAL_MODE", "WAL"),
		SynchronousMode: getEnvString(EnvPrefix+"DB_SYNCHRONOUS_MODE", "NORMAL"),
		CacheSize:       getEnvInt(EnvPrefix+"DB_CACHE_SIZE", -16000), // ~16MB
		ForeignKeys:     getEnvBool(EnvPrefix+"DB_FOREIGN_KEYS", true),
		ConnMaxLife:     getEnvDuration(EnvPrefix+"DB_CONN_MAX_LIFE", 5*time.Minute),
		QueryTimeout:    getEnvDuration(EnvPrefix+"DB_QUERY_TIMEOUT", 30*time.Second),
		SaveMaxElapsed:  getEnvDuration(EnvPrefix+"DB_SAVE_MAX_ELAPSED", 10*time.Second),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnvString(EnvPrefix+"LOG_LEVEL", "info"),
		Format:     getEnvString(EnvPrefix+"LOG_FORMAT", "text"),
		Output:     getEnvString(EnvPrefix+"LOG_OUTPUT", "stderr"),
		AddSource:  getEnvBool(EnvPrefix+"LOG_ADD_SOURCE", false),
		TimeFormat: getTimeFormat(getEnvString(EnvPrefix+"LOG_TIME_FORMAT", "RFC3339")),
	}

	return cfg, cfg.Validate()
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/parser"
)

var (
	// Global configuration instance
	globalConfig *Config
	configMutex  sync.RWMutex
)

// Get returns the global configuration instance
// If the configuration has not been initialized, it will return an error
func Get() (*Config, error) {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if globalConfig == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	return globalConfig, nil
}

// Set sets the global configuration instance
func Set(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()

	globalConfig = cfg
}

// Config represents the complete application configuration
type Config struct {
	Parser    ParserConfig
	Scan      ScanConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	configDir string // Internal: Directory where config was loaded from
}

// ParserConfig tunes the structural heuristics
type ParserConfig struct {
	ScannerMode  string // naive or hardened delimiter counting
	DocWindow    int    // Lines searched above a declaration for its comment
	HeaderWindow int    // Lines joined to recover a multi-line declaration header
	Complexity   bool   // Whether functions get a complexity score
}

// ScanConfig represents repository scanning configuration
type ScanConfig struct {
	Workers          int      // Files parsed in parallel
	MaxFileSize      int64    // Files larger than this many bytes are skipped
	RespectGitignore bool     // Whether .gitignore patterns exclude files
	SkipDirs         []string // Directory names never descended into
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Path            string        // Path to the SQLite database file
	JournalMode     string        // Journal mode (WAL recommended)
	SynchronousMode string        // Synchronous mode
	BusyTimeout     int           // Busy timeout in milliseconds
	CacheSize       int           // Cache size in KiB
	ForeignKeys     bool          // Whether to enforce foreign key constraints
	ConnMaxLife     time.Duration // Maximum connection lifetime
	QueryTimeout    time.Duration // Query timeout
	SaveMaxElapsed  time.Duration // How long saving retries while the database is busy
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // text or json
	Output     string // stdout, stderr, or file path
	AddSource  bool   // Include source code position in logs
	TimeFormat string // Time format for logs (empty uses RFC3339)
}

// New returns a new empty Config
func New() *Config {
	return &Config{
		Parser:   ParserConfig{},
		Scan:     ScanConfig{},
		Database: DatabaseConfig{},
		Logging:  LoggingConfig{},
	}
}

// ConfigDir returns the directory the configuration was loaded from
func (c *Config) ConfigDir() string {
	return c.configDir
}

// ParserOptions converts the parser section into parser options
func (c *Config) ParserOptions() parser.Options {
	return parser.Options{
		ScanMode:     ParseScannerMode(c.Parser.ScannerMode),
		DocWindow:    c.Parser.DocWindow,
		HeaderWindow: c.Parser.HeaderWindow,
		Complexity:   c.Parser.Complexity,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateParser(); err != nil {
		return fmt.Errorf("parser config: %w", err)
	}

	if err := c.validateScan(); err != nil {
		return fmt.Errorf("scan config: %w", err)
	}

	if err := c.validateDatabase(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ParseLogLevel parses a log level string to a slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		// Set to a very high level that won't be triggered
		return slog.Level(9999)
	default:
		return slog.LevelInfo
	}
}

// ParseScannerMode parses a scanner mode string, defaulting to naive
func ParseScannerMode(mode string) parser.ScanMode {
	return parser.ParseScanMode(strings.ToLower(strings.TrimSpace(mode)))
}

func (c *Config) validateParser() error {
	mode := strings.ToLower(c.Parser.ScannerMode)
	if mode != string(parser.ScanNaive) && mode != string(parser.ScanHardened) {
		return fmt.Errorf("invalid scanner mode: %s", c.Parser.ScannerMode)
	}

	if c.Parser.DocWindow <= 0 {
		return fmt.Errorf("doc window must be positive")
	}

	if c.Parser.HeaderWindow <= 0 {
		return fmt.Errorf("header window must be positive")
	}

	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}

	if c.Scan.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive")
	}

	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.Database.Path != ":memory:" {
		// Create the directory if it doesn't exist
		dir := filepath.Dir(c.Database.Path)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory for database: %w", err)
			}
		}

		// Check if directory is writable
		if err := checkDirectoryWritable(dir); err != nil {
			return fmt.Errorf("database directory: %w", err)
		}
	}

	if c.Database.BusyTimeout <= 0 {
		return fmt.Errorf("busy timeout must be positive")
	}

	if c.Database.ConnMaxLife <= 0 {
		return fmt.Errorf("connection max life must be positive")
	}

	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("query timeout must be positive")
	}

	if c.Database.SaveMaxElapsed <= 0 {
		return fmt.Errorf("save max elapsed must be positive")
	}

	return nil
}

func (c *Config) validateLogging() error {
	// Validate logging level
	level := strings.ToLower(c.Logging.Level)
	if level != "debug" && level != "info" && level != "warn" && level != "error" && level != "none" {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	// Validate format
	format := strings.ToLower(c.Logging.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// getEnvString returns a string from the environment variable
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an int from the environment variable
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 from the environment variable
func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool returns a bool from the environment variable
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration returns a time.Duration from the environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList returns a comma separated list from the environment variable
func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" && !strings.HasPrefix(item, "#") {
			out = append(out, item)
		}
	}
	return out
}

// getTimeFormat converts a named time format to its actual format string
func getTimeFormat(name string) string {
	switch name {
	case "RFC3339":
		return time.RFC3339
	case "RFC3339Nano":
		return time.RFC3339Nano
	case "RFC822":
		return time.RFC822
	case "RFC1123":
		return time.RFC1123
	case "Kitchen":
		return time.Kitchen
	case "Stamp":
		return time.Stamp
	case "StampMilli":
		return time.StampMilli
	case "DateTime":
		return "2006-01-02 15:04:05"
	case "DateTimeMS":
		return "2006-01-02 15:04:05.000"
	case "Date":
		return "2006-01-02"
	case "Time":
		return "15:04:05"
	default:
		return name
	}
}

// checkDirectoryWritable tests if a directory is writable
func checkDirectoryWritable(dir string) error {
	// Create a temporary file to test write permissions
	testFile := filepath.Join(dir, fmt.Sprintf("test_write_%d", time.Now().UnixNano()))
	f, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}

	// Clean up
	f.Close()
	os.Remove(testFile)

	return nil
}

// Package config provides configuration management for cpidb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write warnings via slog.
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with a warning - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: url, batch_size
//   - Fetch: timeout_sec, retry_max, user_agent
//   - Load: progress
//   - Log: level, format, destination
//
// Runtime-only fields (set by the CLI at startup):
//   - HomeDir
//
// # Environment Variables
//
// The database target keeps its historical name DATABASE_URL; the rest
// follow the field path with underscores:
//
//	DATABASE_URL=cpi-u.db
//	DATABASE_BATCH_SIZE=2000
//	FETCH_TIMEOUT_SEC=300
//	LOG_LEVEL=info
package config

// Config represents the complete cpidb configuration.
type Config struct {
	// Database contains storage target settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Fetch contains HTTP client settings for retrieving BLS flat files.
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`

	// Load contains settings for bulk loads.
	Load LoadConfig `mapstructure:"load" yaml:"load"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains storage target parameters.
type DatabaseConfig struct {
	// URL is the storage target location: a SQLite file path, or a
	// postgres:// / postgresql:// connection string.
	URL string `mapstructure:"url" yaml:"url"`

	// BatchSize defines the number of rows per bulk-insert statement.
	// An observation row binds 11 parameters, so the default of 2000
	// keeps a statement under the bind-parameter limits of both SQLite
	// (32766) and PostgreSQL (65535).
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// FetchConfig contains HTTP client parameters for source downloads.
type FetchConfig struct {
	// TimeoutSec is the number of seconds before an HTTP request is
	// abandoned. Zero disables the deadline.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// RetryMax is the number of extra attempts after a failed request.
	// Zero means a single attempt per fetch.
	RetryMax int `mapstructure:"retry_max" yaml:"retry_max"`

	// UserAgent is sent with every request. The BLS download host
	// rejects requests with anonymous agents.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// LoadConfig contains settings for bulk loads.
type LoadConfig struct {
	// Progress enables terminal progress bars during observation loads.
	Progress bool `mapstructure:"progress" yaml:"progress"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			BatchSize: 2000,
		},
		Fetch: FetchConfig{
			TimeoutSec: 300,
			RetryMax:   0, // single attempt per fetch
			UserAgent:  "cpidb/1.0 (+https://github.com/econdata/cpidb)",
		},
		Load: LoadConfig{
			Progress: true,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

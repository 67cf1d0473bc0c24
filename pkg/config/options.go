package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseURL sets the storage target location: a SQLite file path
// or a postgres:// connection string.
func OptDatabaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database URL", s) {
			c.Database.URL = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per bulk-insert statement.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptFetchTimeoutSec sets the HTTP request deadline in seconds.
func OptFetchTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Timeout", i) {
			c.Fetch.TimeoutSec = i
		}
	}
}

// OptFetchRetryMax sets how many extra attempts follow a failed request.
// Unlike most numeric options zero is meaningful here: it restores the
// single-attempt behavior.
func OptFetchRetryMax(i int) Option {
	return func(c *Config) {
		if i >= 0 {
			c.Fetch.RetryMax = i
		}
	}
}

// OptFetchUserAgent sets the User-Agent header for source downloads.
func OptFetchUserAgent(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Fetch User-Agent", s) {
			c.Fetch.UserAgent = s
		}
	}
}

// OptLoadProgress toggles terminal progress bars during bulk loads.
// Uses pointer to distinguish between unset (nil) and false.
func OptLoadProgress(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Load.Progress = *b
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

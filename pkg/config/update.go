package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Database.URL
	if s != "" {
		res = append(res, OptDatabaseURL(s))
	}
	i = c.Database.BatchSize
	if i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}

	i = c.Fetch.TimeoutSec
	if i > 0 {
		res = append(res, OptFetchTimeoutSec(i))
	}
	i = c.Fetch.RetryMax
	if i > 0 {
		res = append(res, OptFetchRetryMax(i))
	}
	s = c.Fetch.UserAgent
	if s != "" {
		res = append(res, OptFetchUserAgent(s))
	}

	res = append(res, OptLoadProgress(&c.Load.Progress))

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		slog.Warn("Option value cannot be empty, ignoring", "option", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		slog.Warn("Option value has to be a positive number, ignoring",
			"option", name, "value", i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	vals := make([]string, 0, len(data[name]))
	for k := range data[name] {
		vals = append(vals, k)
	}
	slices.Sort(vals)
	slog.Warn(fmt.Sprintf("Option %s does not support '%s' as a value. "+
		"Valid values are: %s. Ignoring...",
		name, val, strings.Join(vals, ", ")))
	return false
}

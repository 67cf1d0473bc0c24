package iodb

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// DisplayTarget renders a storage target for console messages.
// PostgreSQL URLs are reduced to user@host:port/dbname so passwords
// never reach the terminal; a SQLite path passes through unchanged.
func DisplayTarget(url string) string {
	if !strings.HasPrefix(url, "postgres://") &&
		!strings.HasPrefix(url, "postgresql://") {
		return url
	}

	cfg, err := pgx.ParseConfig(url)
	if err != nil {
		return "postgres"
	}
	return fmt.Sprintf("%s@%s:%d/%s",
		cfg.User, cfg.Host, cfg.Port, cfg.Database)
}

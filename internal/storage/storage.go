package storage

import (
	"net/url"
	"strings"

	"github.com/julianstephens/habitkit/internal/storage/postgres"
	"github.com/julianstephens/habitkit/internal/storage/sqlite"
)

// IsPostgresConfig reports whether the config string is a PostgreSQL
// connection string rather than a file path.
func IsPostgresConfig(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password inline. Such strings are rejected; credentials belong in
// the OS keyring, the environment or .pgpass.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

// New selects a provider for the given config string: a PostgreSQL connection
// string, a path ending in .json for the JSON file store, or a SQLite
// database path (the default).
func New(config string) Provider {
	switch {
	case IsPostgresConfig(config):
		return postgres.NewStore(config)
	case strings.HasSuffix(config, ".json"):
		return NewJSONStore(config)
	default:
		return sqlite.NewStore(config)
	}
}

// Package migrations embeds the versioned SQL schema migrations for the
// SQLite and PostgreSQL backends.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

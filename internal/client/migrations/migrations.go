// Package migrations embeds the goose schema migrations for the SQL state
// backends. Each dialect lives in its own directory.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SQLite embed.FS

//go:embed postgres/*.sql
var Postgres embed.FS

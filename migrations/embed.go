// Package migrations embeds the SQL schema migrations for the SQL-backed
// key-value stores. Files are named NNN_description.sql.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

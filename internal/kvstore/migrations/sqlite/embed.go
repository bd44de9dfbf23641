// Package sqlitemigrations embeds the SQLite schema migrations for the
// kv table, applied by goose at startup.
package sqlitemigrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

// Package pgmigrations embeds the PostgreSQL schema migrations for the
// kv table, applied by goose at startup.
package pgmigrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

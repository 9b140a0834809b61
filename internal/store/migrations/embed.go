package migrations

import "embed"

// FS contains embedded SQLite migrations for chapter storage.
//
//go:embed *.sql
var FS embed.FS

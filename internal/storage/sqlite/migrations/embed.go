package migrations

import "embed"

// FS contains embedded SQLite migrations for signing platform storage.
//
//go:embed *.sql
var FS embed.FS

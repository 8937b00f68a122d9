package migrations

import "embed"

// FS contains embedded SQLite migrations for range and result storage.
//
//go:embed *.sql
var FS embed.FS

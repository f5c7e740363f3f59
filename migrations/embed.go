package migrations

import "embed"

// Files holds the SQL migrations so the binary can migrate without the source tree.
//
//go:embed *.sql
var Files embed.FS

// AngelaMos | 2026
// migrations.go

// Package migrations embeds the goose SQL migration files applied at
// startup when database.migrate is enabled.
package migrations

import (
	"embed"
)

//go:embed *.sql
var FS embed.FS

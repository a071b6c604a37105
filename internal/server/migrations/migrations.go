// Package migrations embeds the goose SQL migrations applied to the
// PostgreSQL backend at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

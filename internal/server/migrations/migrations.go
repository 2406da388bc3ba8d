// Package migrations embeds the PostgreSQL schema of the admin API.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

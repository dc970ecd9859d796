// Package schemas provides embedded SQL schema files, one directory per SQL dialect.
package schemas

import "embed"

// Migrations contains the schema files for mysql, postgres and sqlite.
//
//go:embed migrations/*/*.sql
var Migrations embed.FS

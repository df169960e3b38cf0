package migrations

import "embed"

//go:embed sql/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "sql"

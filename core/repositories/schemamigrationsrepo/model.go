package schemamigrationsrepo

import "time"

// SchemaMigration is a row of the schema_migrations tracking table.
type SchemaMigration struct {
	Version   string    `db:"version"`
	Checksum  string    `db:"checksum"`
	AppliedAt time.Time `db:"applied_at"`
}

// Status pairs each known migration file with its applied record, if any.
type Status struct {
	Version string
	Applied *SchemaMigration
}

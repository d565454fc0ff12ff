package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database.
// It runs on startup to ensure the table exists. The persisted layout is a
// single serialized record per fixed key, so one kv table is the whole schema.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

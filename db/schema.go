// ABOUTME: Database schema definitions
// ABOUTME: One snapshot row holds the whole state; snapshot_log records each write
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS state_snapshot (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data BLOB NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	written_at DATETIME NOT NULL,
	size_bytes INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshot_log_written_at ON snapshot_log(written_at DESC);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

package storage

import (
	"database/sql"
)

// WrapForTesting wraps an already-open *sql.DB (typically an in-memory
// sqlite connection) as a *DB, letting report and repo tests exercise the
// trial-persistence layer without going through Open's file/pragma setup.
func WrapForTesting(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite cache schema.
func InitSqliteSchema(db *sql.DB) error {
	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL,
        display_name TEXT NOT NULL DEFAULT ''
    );
	`,
		`
	CREATE TABLE IF NOT EXISTS route_cache (
        coords_key TEXT PRIMARY KEY,
        payload BLOB NOT NULL
    );
	`,
	}

	return execSchema(db, statements)
}

// Initialize the Postgres cache schema.
func InitSQLSchema(db *sql.DB) error {
	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL,
        display_name TEXT NOT NULL DEFAULT ''
    );
	`,
		`
	CREATE TABLE IF NOT EXISTS route_cache (
        coords_key TEXT PRIMARY KEY,
        payload BYTEA NOT NULL
    );
	`,
	}

	return execSchema(db, statements)
}

func execSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// NewSQLiteDB opens (and creates if needed) the SQLite database file.
// The connection limit is 1 because the driver serializes writes.
func NewSQLiteDB(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	log.Println("Successfully opened SQLite database.")
	return db, nil
}

// CloseSQLiteDB closes the SQLite database.
func CloseSQLiteDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
		log.Println("SQLite database closed.")
	}
}

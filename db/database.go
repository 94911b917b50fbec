package db

import (
	"database/sql"
	"fmt"

	"beatstore/logger"

	_ "modernc.org/sqlite" // Pure Go sqlite driver, no CGO required
)

// Connect opens the sqlite catalog file and returns the handle. The handle
// is constructed once at process start and passed into every repository;
// nothing in this package holds global state.
func Connect(dbPath string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite supports a single writer; cap the pool so concurrent requests
	// queue on one connection instead of hitting SQLITE_BUSY.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to catalog database", logger.String("path", dbPath))
	return conn, nil
}

// InitSchema creates the catalog tables if they don't exist. Safe to call on
// every process start; existing data is never altered.
func InitSchema(conn *sql.DB) error {
	if err := createBeatsTable(conn); err != nil {
		return err
	}
	if err := createInquiriesTable(conn); err != nil {
		return err
	}
	logger.Info("Database schema initialized")
	return nil
}

func createBeatsTable(conn *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS beats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		description TEXT,
		genre TEXT,
		bpm INTEGER,
		duration INTEGER,
		file_name TEXT NOT NULL UNIQUE,
		file_type TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	`
	if _, err := conn.Exec(query); err != nil {
		return fmt.Errorf("failed to create beats table: %w", err)
	}
	return nil
}

func createInquiriesTable(conn *sql.DB) error {
	// beat_id is declared as a foreign key but not enforced: the
	// foreign_keys pragma stays off, so an inquiry can reference a beat
	// that was never catalogued.
	query := `
	CREATE TABLE IF NOT EXISTS exclusive_inquiries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		beat_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		offer TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		created_at TIMESTAMP NOT NULL,
		FOREIGN KEY(beat_id) REFERENCES beats(id)
	);
	`
	if _, err := conn.Exec(query); err != nil {
		return fmt.Errorf("failed to create exclusive_inquiries table: %w", err)
	}
	return nil
}

package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Import the SQLite3 driver
)

// InitDB initializes the database connection. It takes the database path as
// input, creates the parent directory if needed, and ensures the schema.
func InitDB(dbPath string) (*sql.DB, error) {
	// Ensure the directory for the database file exists.
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open the SQLite database. It will be created if it doesn't exist.
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Ping the database to verify the connection.
	if err = db.Ping(); err != nil {
		db.Close() // Close the connection if ping fails
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close() // Close the connection if schema creation fails
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("Successfully connected to the database at", dbPath)
	return db, nil
}

// createTables ensures the three tables the bot owns. Mappings are keyed by
// (guild, author); wallets by user; the activity log is append-only.
func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS thread_mappings (
			guild_id TEXT NOT NULL,
			author_id TEXT NOT NULL,
			thread_id TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (guild_id, author_id)
		);`,
		`CREATE TABLE IF NOT EXISTS wallets (
			user_id TEXT PRIMARY KEY,
			balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0),
			claimed_at INTEGER,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS activity_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			source TEXT NOT NULL,
			action TEXT NOT NULL,
			channel_id TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_user_time
			ON activity_log (user_id, timestamp);`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

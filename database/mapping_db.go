package database

import (
	"database/sql"
	"fmt"
	"time"
)

// GetThreadMapping looks up the thread mapped to (guildID, authorID).
// The second return value reports whether a mapping exists.
func GetThreadMapping(db *sql.DB, guildID, authorID string) (string, bool, error) {
	var threadID string
	query := `SELECT thread_id FROM thread_mappings WHERE guild_id = ? AND author_id = ?`
	err := db.QueryRow(query, guildID, authorID).Scan(&threadID)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query thread mapping for %s/%s: %w", guildID, authorID, err)
	}
	return threadID, true, nil
}

// UpsertThreadMapping creates or replaces the mapping for (guildID, authorID).
// A stale mapping is superseded in place; rows are never deleted, so an old
// thread that becomes resolvable again cannot race a fresh creation.
func UpsertThreadMapping(db *sql.DB, guildID, authorID, threadID string) error {
	query := `INSERT OR REPLACE INTO thread_mappings (guild_id, author_id, thread_id, updated_at) VALUES (?, ?, ?, ?)`
	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for upserting thread mapping: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(guildID, authorID, threadID, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to upsert thread mapping for %s/%s: %w", guildID, authorID, err)
	}
	return nil
}

package database

import (
	"database/sql"
	"fmt"

	"community-bot/models"
)

// InsertActivity appends one activity record. The log is append-only; rows
// are never updated or deleted.
func InsertActivity(db *sql.DB, rec models.ActivityRecord) error {
	query := `INSERT INTO activity_log (user_id, source, action, channel_id, timestamp) VALUES (?, ?, ?, ?, ?)`
	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for inserting activity: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(rec.UserID, rec.Source, rec.Action, rec.ChannelID, rec.Timestamp); err != nil {
		return fmt.Errorf("failed to insert activity for %s: %w", rec.UserID, err)
	}
	return nil
}

// CountActivitySince counts a user's activity records with timestamp >= since.
func CountActivitySince(db *sql.DB, userID string, since int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM activity_log WHERE user_id = ? AND timestamp >= ?`
	if err := db.QueryRow(query, userID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count activity for %s: %w", userID, err)
	}
	return count, nil
}

// ActiveUserCounts returns the in-window activity count per user, for the
// scheduled participation summary.
func ActiveUserCounts(db *sql.DB, since int64) (map[string]int, error) {
	query := `SELECT user_id, COUNT(*) FROM activity_log WHERE timestamp >= ? GROUP BY user_id`
	rows, err := db.Query(query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query active user counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var userID string
		var count int
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan active user count: %w", err)
		}
		counts[userID] = count
	}
	return counts, rows.Err()
}

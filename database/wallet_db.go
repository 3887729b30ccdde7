package database

import (
	"database/sql"
	"fmt"
	"time"
)

// ClaimInitialGrant credits the one-time grant at most once per user. The
// claim is tracked by an explicit claimed_at marker rather than by a
// non-zero balance, so incremental credits neither block a legitimate claim
// nor allow a re-claim after a future debit to zero.
//
// Returns true when the grant was applied, false when the user had already
// claimed. The check and the credit are a single statement: the ON CONFLICT
// update only fires while claimed_at is still NULL, so two concurrent claims
// cannot both credit.
func ClaimInitialGrant(db *sql.DB, userID string, amount int64) (bool, error) {
	now := time.Now().Unix()
	query := `
	INSERT INTO wallets (user_id, balance, claimed_at, updated_at) VALUES (?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		balance = wallets.balance + excluded.balance,
		claimed_at = excluded.claimed_at,
		updated_at = excluded.updated_at
	WHERE wallets.claimed_at IS NULL`

	result, err := db.Exec(query, userID, amount, now, now)
	if err != nil {
		return false, fmt.Errorf("failed to claim initial grant for %s: %w", userID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected for %s: %w", userID, err)
	}
	return rows > 0, nil
}

// AddBalance unconditionally adds amount to the user's balance, creating the
// account if absent. Repeated calls are intentionally additive.
func AddBalance(db *sql.DB, userID string, amount int64) error {
	query := `
	INSERT INTO wallets (user_id, balance, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		balance = wallets.balance + excluded.balance,
		updated_at = excluded.updated_at`

	if _, err := db.Exec(query, userID, amount, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to add balance for %s: %w", userID, err)
	}
	return nil
}

// GetBalance returns the user's balance, or 0 if no account exists.
func GetBalance(db *sql.DB, userID string) (int64, error) {
	var balance int64
	err := db.QueryRow(`SELECT balance FROM wallets WHERE user_id = ?`, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query balance for %s: %w", userID, err)
	}
	return balance, nil
}

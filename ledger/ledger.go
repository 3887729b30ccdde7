// Package ledger tracks user participation and wallet grants. Activity is an
// append-only log counted over a trailing window; the one-time grant is
// idempotent per user, enforced by a compare-and-set at the store.
package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"community-bot/database"
	"community-bot/models"
	"community-bot/utils"
)

// Ledger executes participation and wallet operations against the store.
// The clock is injectable so window math is deterministic in tests.
type Ledger struct {
	db  *sql.DB
	cfg *models.Settings
	now func() time.Time
	mu  utils.KeyMutex
}

// New creates a Ledger using the wall clock.
func New(db *sql.DB, cfg *models.Settings) *Ledger {
	return &Ledger{db: db, cfg: cfg, now: time.Now}
}

// NewWithClock creates a Ledger with a fixed clock source for tests.
func NewWithClock(db *sql.DB, cfg *models.Settings, now func() time.Time) *Ledger {
	return &Ledger{db: db, cfg: cfg, now: now}
}

// RecordActivity appends an activity record when the channel is in the
// tester allow-list, and is a no-op otherwise. Failures are logged, never
// returned: recording participation must not block the feature that
// triggered it.
func (l *Ledger) RecordActivity(userID, source, action, channelID string) {
	if !contains(l.cfg.Activity.TesterChannels, channelID) {
		return
	}

	rec := models.ActivityRecord{
		UserID:    userID,
		Source:    source,
		Action:    action,
		ChannelID: channelID,
		Timestamp: l.now().Unix(),
	}
	if err := database.InsertActivity(l.db, rec); err != nil {
		utils.Warn("ledger", "record_activity", fmt.Sprintf("failed to record activity for %s: %v", userID, err))
	}
}

// ComputeTier derives the user's tier from the activity count inside the
// configured trailing window. Pure read, no mutation.
func (l *Ledger) ComputeTier(userID string) (models.Tier, error) {
	tier, _, err := l.TierWithCount(userID)
	return tier, err
}

// ComputeTierWindow derives the tier over an explicit trailing window of
// days instead of the configured one.
func (l *Ledger) ComputeTierWindow(userID string, days int) (models.Tier, error) {
	tier, _, err := l.tierWithCount(userID, days)
	return tier, err
}

// TierWithCount returns the tier along with the raw in-window count, for
// surfaces that show both.
func (l *Ledger) TierWithCount(userID string) (models.Tier, int, error) {
	return l.tierWithCount(userID, l.cfg.Activity.WindowDays)
}

func (l *Ledger) tierWithCount(userID string, days int) (models.Tier, int, error) {
	since := l.now().AddDate(0, 0, -days).Unix()
	count, err := database.CountActivitySince(l.db, userID, since)
	if err != nil {
		return models.TierNone, 0, fmt.Errorf("failed to compute tier for %s: %w", userID, err)
	}
	return TierForCount(count, l.cfg.Tiers), count, nil
}

// TierForCount maps an activity count to a tier, evaluating the thresholds
// highest-first.
func TierForCount(count int, t models.TierThresholds) models.Tier {
	switch {
	case count >= t.Elite:
		return models.TierElite
	case count >= t.Detective:
		return models.TierDetective
	case count >= t.Helper:
		return models.TierHelper
	default:
		return models.TierNone
	}
}

// ClaimOneTimeGrant credits the one-time grant at most once per user; a
// repeat claim gets AlreadyClaimed and no mutation. Claims for one user are
// serialized, and the store applies the credit with a single compare-and-set,
// so concurrent claims cannot both grant.
func (l *Ledger) ClaimOneTimeGrant(userID string, amount int64) (models.GrantResult, error) {
	unlock := l.mu.Lock(userID)
	defer unlock()

	granted, err := database.ClaimInitialGrant(l.db, userID, amount)
	if err != nil {
		return models.AlreadyClaimed, fmt.Errorf("failed to claim grant for %s: %w", userID, err)
	}
	if !granted {
		return models.AlreadyClaimed, nil
	}
	return models.Granted, nil
}

// GrantIncremental unconditionally adds amount to the user's balance,
// creating the account if absent. Repeated calls are additive.
func (l *Ledger) GrantIncremental(userID string, amount int64) error {
	if err := database.AddBalance(l.db, userID, amount); err != nil {
		return fmt.Errorf("failed to grant %d to %s: %w", amount, userID, err)
	}
	return nil
}

// Balance returns the user's current wallet balance.
func (l *Ledger) Balance(userID string) (int64, error) {
	return database.GetBalance(l.db, userID)
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

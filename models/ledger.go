package models

// Tier is the coarse participation classification derived from a trailing
// window of activity.
type Tier string

const (
	TierNone      Tier = "none"
	TierHelper    Tier = "helper"
	TierDetective Tier = "detective"
	TierElite     Tier = "elite"
)

// GrantResult is the outcome of a one-time grant claim. AlreadyClaimed is a
// normal result, not an error.
type GrantResult int

const (
	Granted GrantResult = iota
	AlreadyClaimed
)

// WalletAccount is a user's coin balance. Balances only increase here;
// debits are handled elsewhere. ClaimedAt marks the one-time grant and is
// zero until claimed.
type WalletAccount struct {
	UserID    string `json:"user_id"`
	Balance   int64  `json:"balance"`
	ClaimedAt int64  `json:"claimed_at,omitempty"`
	UpdatedAt int64  `json:"updated_at"`
}

// ActivityRecord is one append-only participation event. Records are never
// updated or deleted; they are only counted in aggregate.
type ActivityRecord struct {
	UserID    string `json:"user_id"`
	Source    string `json:"source"`
	Action    string `json:"action"`
	ChannelID string `json:"channel_id"`
	Timestamp int64  `json:"timestamp"`
}

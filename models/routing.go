package models

// Classification is the tag the classifier assigns to an incoming message.
type Classification int

const (
	// ClassNotApplicable means no special handling; the message falls through
	// to the persona reply path.
	ClassNotApplicable Classification = iota
	// ClassLinkViolation is a message in the links-only source channel that
	// carries no URL. It gets deleted, never routed.
	ClassLinkViolation
	// ClassCoinRequest is a message asking about coins or the faucet.
	ClassCoinRequest
	// ClassHelpRequest is a message asking for help.
	ClassHelpRequest
	// ClassRouteCandidate is a valid source-channel post to route into the
	// author's thread.
	ClassRouteCandidate
)

// String returns a readable tag name, mostly for log lines.
func (c Classification) String() string {
	switch c {
	case ClassLinkViolation:
		return "link_violation"
	case ClassCoinRequest:
		return "coin_request"
	case ClassHelpRequest:
		return "help_request"
	case ClassRouteCandidate:
		return "route_candidate"
	default:
		return "not_applicable"
	}
}

// ThreadMapping is the durable (guild, author) -> thread association. Stale
// mappings are superseded in place, never deleted.
type ThreadMapping struct {
	GuildID   string `json:"guild_id"`
	AuthorID  string `json:"author_id"`
	ThreadID  string `json:"thread_id"`
	UpdatedAt int64  `json:"updated_at"`
}

// RouteResult reports where a post ended up.
type RouteResult struct {
	ThreadID string
	Created  bool // true if a fresh thread was created for this post
}

// Package router routes each author's source-channel posts into exactly one
// live discussion thread, creating, reviving, or replacing threads as the
// platform-side state drifts from the stored mapping.
package router

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"community-bot/classifier"
	"community-bot/database"
	"community-bot/gateway"
	"community-bot/models"
	"community-bot/utils"
)

// ErrRoutingFailed reports that a post could not be placed into a thread.
// The caller must notify the author and preserve the post content.
var ErrRoutingFailed = errors.New("routing failed")

// maxThreadNameRunes keeps derived names under Discord's 100-char cap.
const maxThreadNameRunes = 96

// Router owns the (guild, author) -> thread mappings. All operations for one
// author are serialized through a keyed mutex, so two concurrent posts from
// the same author cannot both take the "mapping absent" branch and create
// duplicate threads.
type Router struct {
	db  *sql.DB
	gw  gateway.ChannelGateway
	cfg *models.Settings
	mu  utils.KeyMutex
}

// New creates a Router bound to the store and gateway.
func New(db *sql.DB, gw gateway.ChannelGateway, cfg *models.Settings) *Router {
	return &Router{db: db, gw: gw, cfg: cfg}
}

// RouteAuthorPost places a source-channel post into the author's thread.
//
// The mapped thread is reused when it still resolves, has the source channel
// as parent, and is not locked; an archived thread is revived first. In every
// other case a fresh thread is created and the mapping superseded. The post
// content and attachments are then reposted into the thread, a discovery
// embed is optionally dropped back into the source channel, and the original
// post is removed. The last two steps are best-effort: by then routing has
// already succeeded.
func (r *Router) RouteAuthorPost(guildID, authorID, authorDisplay, channelID, messageID, content string, attachments []string) (*models.RouteResult, error) {
	unlock := r.mu.Lock(guildID + ":" + authorID)
	defer unlock()

	threadID, exists, err := database.GetThreadMapping(r.db, guildID, authorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRoutingFailed, err)
	}

	if exists && !r.threadUsable(threadID) {
		exists = false
	}

	created := false
	if !exists {
		name := threadName(authorDisplay, classifier.FirstURLHost(content))
		ref, cerr := r.gw.CreateThread(r.cfg.Bot.SourceChannelID, name, r.cfg.Bot.AutoArchiveMinutes)
		if cerr != nil {
			return nil, fmt.Errorf("%w: %v", ErrRoutingFailed, cerr)
		}
		threadID = ref.ID
		created = true

		// The mapping is the source of truth; a failed write must surface
		// rather than leave a thread the store does not know about.
		if uerr := database.UpsertThreadMapping(r.db, guildID, authorID, threadID); uerr != nil {
			return nil, fmt.Errorf("%w: %v", ErrRoutingFailed, uerr)
		}
	}

	repost := buildRepost(authorID, content, attachments)
	if _, perr := r.gw.PostMessage(threadID, repost); perr != nil {
		// Without the repost the author's content would be lost once the
		// original is deleted, so this is not a cosmetic step.
		return nil, fmt.Errorf("%w: %v", ErrRoutingFailed, perr)
	}

	if r.cfg.Bot.DiscoveryEmbed {
		url := fmt.Sprintf("https://discord.com/channels/%s/%s", guildID, threadID)
		title := fmt.Sprintf("New post from %s", authorDisplay)
		if !created {
			title = fmt.Sprintf("%s posted again", authorDisplay)
		}
		if _, eerr := r.gw.PostEmbed(channelID, title, "Join the discussion in the thread.", url); eerr != nil {
			utils.Warn("router", "discovery_embed", fmt.Sprintf("failed to post discovery embed for thread %s: %v", threadID, eerr))
		}
	}

	if derr := r.gw.DeleteMessage(channelID, messageID); derr != nil {
		utils.Warn("router", "delete_original", fmt.Sprintf("failed to delete original message %s: %v", messageID, derr))
	}

	return &models.RouteResult{ThreadID: threadID, Created: created}, nil
}

// threadUsable reports whether the mapped thread can still receive the
// author's posts. A resolution failure, parent mismatch, or lock all mean
// the mapping must be superseded.
func (r *Router) threadUsable(threadID string) bool {
	ref, err := r.gw.FetchThread(threadID)
	if err != nil {
		if !errors.Is(err, gateway.ErrNotFound) {
			utils.Warn("router", "fetch_thread", fmt.Sprintf("failed to resolve thread %s, creating a new one: %v", threadID, err))
		}
		return false
	}
	if ref.ParentID != r.cfg.Bot.SourceChannelID || ref.Locked {
		return false
	}
	if ref.Archived {
		if err := r.gw.SetArchived(threadID, false); err != nil {
			utils.Warn("router", "unarchive", fmt.Sprintf("failed to unarchive thread %s: %v", threadID, err))
		}
	}
	return true
}

// HandleLinkViolation deletes a no-URL post from the links-only source
// channel and tells the author privately. It never touches the mapping
// table, and nothing here escalates: the post is gone either way.
func (r *Router) HandleLinkViolation(channelID, messageID, authorID, content string) {
	if err := r.gw.DeleteMessage(channelID, messageID); err != nil {
		utils.Warn("router", "link_violation_delete", fmt.Sprintf("failed to delete message %s: %v", messageID, err))
	}

	notice := "Your post was removed because the channel only accepts posts containing a link. Here is your original message:\n\n" + content
	if err := r.gw.SendDirect(authorID, notice); err != nil {
		utils.Warn("router", "link_violation_dm", fmt.Sprintf("failed to DM author %s: %v", authorID, err))
	}
}

// threadName derives a thread name from the author and, when present, the
// host of the first linked URL, truncated with an ellipsis.
func threadName(authorDisplay, host string) string {
	name := authorDisplay
	if host != "" {
		name = fmt.Sprintf("%s (%s)", authorDisplay, host)
	}
	runes := []rune(name)
	if len(runes) > maxThreadNameRunes {
		name = string(runes[:maxThreadNameRunes]) + "…"
	}
	return name
}

// buildRepost reassembles the original post, tagging the author and
// appending attachment URLs so nothing is lost when the original is deleted.
func buildRepost(authorID, content string, attachments []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From <@%s>:\n%s", authorID, content)
	for _, url := range attachments {
		b.WriteString("\n")
		b.WriteString(url)
	}
	return b.String()
}

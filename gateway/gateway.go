// Package gateway wraps the live chat platform behind a small contract so
// the router and ledger can be exercised against a fake in tests.
package gateway

import "errors"

// ErrNotFound is returned by FetchThread when the thread no longer exists.
var ErrNotFound = errors.New("thread not found")

// ThreadRef describes a thread as the platform currently sees it.
type ThreadRef struct {
	ID       string
	ParentID string
	Name     string
	Archived bool
	Locked   bool
}

// ChannelGateway is the live-channel collaborator. Every call may fail with
// a transport or permission error; callers decide per step whether that is
// fatal or logged-and-continued.
type ChannelGateway interface {
	// CreateThread starts a public thread under parentID.
	CreateThread(parentID, name string, autoArchiveMinutes int) (*ThreadRef, error)

	// FetchThread resolves a thread by ID, returning ErrNotFound if it was
	// deleted externally.
	FetchThread(id string) (*ThreadRef, error)

	// SetArchived toggles a thread's archived state.
	SetArchived(threadID string, archived bool) error

	// PostMessage sends plain content to a channel or thread and returns the
	// new message ID.
	PostMessage(channelID, content string) (string, error)

	// PostEmbed sends an embed to a channel and returns the new message ID.
	PostEmbed(channelID, title, description, targetURL string) (string, error)

	// DeleteMessage removes a message from a channel.
	DeleteMessage(channelID, messageID string) error

	// SendDirect delivers a private message to a user.
	SendDirect(userID, content string) error
}

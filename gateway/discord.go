package gateway

import (
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// Discord implements ChannelGateway on top of a discordgo session.
type Discord struct {
	s *discordgo.Session
}

// NewDiscord wraps an open discordgo session.
func NewDiscord(s *discordgo.Session) *Discord {
	return &Discord{s: s}
}

// CreateThread starts a public thread under the given channel.
func (d *Discord) CreateThread(parentID, name string, autoArchiveMinutes int) (*ThreadRef, error) {
	ch, err := d.s.ThreadStartComplex(parentID, &discordgo.ThreadStart{
		Name:                name,
		AutoArchiveDuration: autoArchiveMinutes,
		Type:                discordgo.ChannelTypeGuildPublicThread,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create thread under %s: %w", parentID, err)
	}
	return threadRef(ch), nil
}

// FetchThread resolves a thread channel by ID.
func (d *Discord) FetchThread(id string) (*ThreadRef, error) {
	ch, err := d.s.Channel(id)
	if err != nil {
		if restErr, ok := err.(*discordgo.RESTError); ok && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch thread %s: %w", id, err)
	}
	return threadRef(ch), nil
}

// SetArchived toggles a thread's archived flag.
func (d *Discord) SetArchived(threadID string, archived bool) error {
	_, err := d.s.ChannelEditComplex(threadID, &discordgo.ChannelEdit{
		Archived: &archived,
	})
	if err != nil {
		return fmt.Errorf("failed to set archived=%t on thread %s: %w", archived, threadID, err)
	}
	return nil
}

// PostMessage sends plain text content.
func (d *Discord) PostMessage(channelID, content string) (string, error) {
	msg, err := d.s.ChannelMessageSend(channelID, content)
	if err != nil {
		return "", fmt.Errorf("failed to post message to %s: %w", channelID, err)
	}
	return msg.ID, nil
}

// PostEmbed sends a lightweight pointer embed.
func (d *Discord) PostEmbed(channelID, title, description, targetURL string) (string, error) {
	msg, err := d.s.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		URL:         targetURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to post embed to %s: %w", channelID, err)
	}
	return msg.ID, nil
}

// DeleteMessage removes a message.
func (d *Discord) DeleteMessage(channelID, messageID string) error {
	if err := d.s.ChannelMessageDelete(channelID, messageID); err != nil {
		return fmt.Errorf("failed to delete message %s in %s: %w", messageID, channelID, err)
	}
	return nil
}

// SendDirect opens (or reuses) the user's DM channel and sends content.
func (d *Discord) SendDirect(userID, content string) error {
	ch, err := d.s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel for %s: %w", userID, err)
	}
	if _, err := d.s.ChannelMessageSend(ch.ID, content); err != nil {
		return fmt.Errorf("failed to send DM to %s: %w", userID, err)
	}
	return nil
}

func threadRef(ch *discordgo.Channel) *ThreadRef {
	ref := &ThreadRef{
		ID:       ch.ID,
		ParentID: ch.ParentID,
		Name:     ch.Name,
	}
	if ch.ThreadMetadata != nil {
		ref.Archived = ch.ThreadMetadata.Archived
		ref.Locked = ch.ThreadMetadata.Locked
	}
	return ref
}

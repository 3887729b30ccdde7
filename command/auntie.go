package command

import (
	"context"
	"fmt"
	"log"
	"time"

	"community-bot/replygen"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const replyTimeout = 30 * time.Second

// AuntieCommand defines the structure for the /auntie command, a direct line
// to the persona generator.
type AuntieCommand struct {
	Gen replygen.Generator
}

// Definition returns the application command definition.
func (c *AuntieCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "auntie",
		Description: "Ask Auntie Emz anything",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message",
				Description: "What you want to ask or tell her",
				Required:    true,
			},
		},
	}
}

// Handler defers the interaction while the reply is generated, then delivers
// it as a followup. Generation can take longer than the 3 second interaction
// window, hence the deferral.
func (c *AuntieCommand) Handler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil {
		return
	}

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	message := data.Options[0].StringValue()

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Printf("Failed to defer /auntie response: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()
	text := personaReply(ctx, c.Gen, commandDisplayName(i, user), commandChannelName(s, i.ChannelID), message)

	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: text}); err != nil {
		log.Printf("Failed to send /auntie followup: %v", err)
	}
}

// personaReply runs the generator and falls back to the fixed line when it
// fails or comes back empty. Generation failures are logged, never surfaced.
func personaReply(ctx context.Context, gen replygen.Generator, authorDisplay, channelName, content string) string {
	text, err := gen.Generate(ctx, authorDisplay, channelName, content)
	if err != nil {
		utils.Warn("command", "auntie", fmt.Sprintf("reply generation failed: %v", err))
	}
	if text == "" {
		text = replygen.Fallback
	}
	return text
}

func commandDisplayName(i *discordgo.InteractionCreate, user *discordgo.User) string {
	if i.Member != nil && i.Member.Nick != "" {
		return i.Member.Nick
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

func commandChannelName(s *discordgo.Session, channelID string) string {
	ch, err := s.Channel(channelID)
	if err != nil || ch.Name == "" {
		return "unknown-channel"
	}
	return ch.Name
}

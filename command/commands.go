// Package command holds the slash command definitions and their handlers.
// Each command carries its own dependencies; registration happens through
// the bot's command map.
package command

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// respondEphemeral answers an interaction with a message only the invoking
// user can see.
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Failed to respond to interaction: %v", err)
	}
}

// interactionUser returns the invoking user whether the command came from a
// guild or a DM.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

func channelIn(list []string, channelID string) bool {
	for _, id := range list {
		if id == channelID {
			return true
		}
	}
	return false
}

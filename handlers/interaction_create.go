package handlers

import (
	"community-bot/bot"

	"github.com/bwmarrin/discordgo"
)

// InteractionCreate handles slash command interactions by dispatching to the
// registered command.
func InteractionCreate(b *bot.Bot) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		cmd, ok := b.Commands[i.ApplicationCommandData().Name]
		if !ok {
			return
		}
		cmd.Handler(s, i)
	}
}

package command

import "github.com/bwmarrin/discordgo"

// PingCommand defines the structure for the /ping command.
type PingCommand struct{}

// Definition returns the application command definition.
func (c *PingCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check if the bot is awake",
	}
}

// Handler responds with a liveness message.
func (c *PingCommand) Handler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEphemeral(s, i, "Pong! Wide awake and watching.")
}

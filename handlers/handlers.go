package handlers

import (
	"log"

	"community-bot/bot"
	"community-bot/gateway"
	"community-bot/ledger"
	"community-bot/models"
	"community-bot/replygen"
	"community-bot/router"

	"github.com/bwmarrin/discordgo"
)

// Deps bundles the wired components the event handlers dispatch into. It is
// built once in main and passed explicitly; there is no package-level state.
type Deps struct {
	Router *router.Router
	Ledger *ledger.Ledger
	Gen    replygen.Generator
	Gw     gateway.ChannelGateway
	Cfg    *models.Settings
}

// Register all handlers to the bot.
func Register(b *bot.Bot, d *Deps) {
	b.Session.AddHandler(MessageCreate(d))
	b.Session.AddHandler(InteractionCreate(b))

	// Add a ready handler to log when the bot is connected.
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
}

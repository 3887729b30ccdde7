package bot

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
)

// Command defines the interface for a bot command.
type Command interface {
	Definition() *discordgo.ApplicationCommand
	Handler(s *discordgo.Session, i *discordgo.InteractionCreate)
}

// Bot encapsulates the bot's state.
type Bot struct {
	Session  *discordgo.Session
	Commands map[string]Command
	sched    *cron.Cron
}

// New creates and initializes a new Bot instance.
func New(token string) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsGuilds | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	return &Bot{
		Session:  dg,
		Commands: make(map[string]Command),
	}, nil
}

// RegisterCommands registers the provided commands.
func (b *Bot) RegisterCommands(commands []Command) {
	for _, cmd := range commands {
		b.Commands[cmd.Definition().Name] = cmd
	}
}

// Start opens the bot's session and registers handlers.
func (b *Bot) Start(registerHandlers func(*Bot)) error {
	registerHandlers(b)

	err := b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands
	for _, cmd := range b.Commands {
		_, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, "", cmd.Definition())
		if err != nil {
			log.Printf("Cannot create '%v' command: %v", cmd.Definition().Name, err)
		}
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully closes the bot's session.
func (b *Bot) Stop() {
	b.stopScheduler()
	if b.Session != nil {
		b.Session.Close()
	}
	fmt.Println("Bot stopped gracefully.")
}

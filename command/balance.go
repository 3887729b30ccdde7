package command

import (
	"fmt"

	"community-bot/ledger"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// BalanceCommand defines the structure for the /balance command.
type BalanceCommand struct {
	Ledger *ledger.Ledger
}

// Definition returns the application command definition.
func (c *BalanceCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "balance",
		Description: "Show your coin balance",
	}
}

// Handler looks up and reports the caller's balance.
func (c *BalanceCommand) Handler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil {
		return
	}

	balance, err := c.Ledger.Balance(user.ID)
	if err != nil {
		utils.Error("command", "balance", fmt.Sprintf("failed to read balance for %s: %v", user.ID, err))
		respondEphemeral(s, i, "The wallet is unavailable right now. Try again in a moment.")
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("You have %d coins.", balance))
}

package command

import (
	"fmt"

	"community-bot/ledger"
	"community-bot/models"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// FaucetCommand defines the structure for the /faucet command.
type FaucetCommand struct {
	Ledger *ledger.Ledger
	Cfg    *models.Settings
}

// Definition returns the application command definition.
func (c *FaucetCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "faucet",
		Description: "Claim your one-time coin grant",
	}
}

// Handler executes the claim. The channel gate lives here, not in the
// ledger: requests outside the faucet channels never reach the store.
func (c *FaucetCommand) Handler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil {
		return
	}

	if !channelIn(c.Cfg.Faucet.Channels, i.ChannelID) {
		respondEphemeral(s, i, "The faucet only runs in the faucet channel.")
		return
	}

	result, err := c.Ledger.ClaimOneTimeGrant(user.ID, c.Cfg.Faucet.Amount)
	if err != nil {
		utils.Error("command", "faucet", fmt.Sprintf("failed to claim grant for %s: %v", user.ID, err))
		respondEphemeral(s, i, "The wallet is unavailable right now. Try again in a moment.")
		return
	}

	if result == models.AlreadyClaimed {
		respondEphemeral(s, i, "You've already claimed your one-time grant.")
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Granted! %d coins are in your wallet.", c.Cfg.Faucet.Amount))
}

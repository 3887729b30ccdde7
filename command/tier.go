package command

import (
	"fmt"

	"community-bot/ledger"
	"community-bot/models"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// TierCommand defines the structure for the /tier command.
type TierCommand struct {
	Ledger *ledger.Ledger
	Cfg    *models.Settings
}

// Definition returns the application command definition.
func (c *TierCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "tier",
		Description: "Show your participation tier",
	}
}

// Handler reports the caller's tier and in-window activity count.
func (c *TierCommand) Handler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil {
		return
	}

	tier, count, err := c.Ledger.TierWithCount(user.ID)
	if err != nil {
		utils.Error("command", "tier", fmt.Sprintf("failed to compute tier for %s: %v", user.ID, err))
		respondEphemeral(s, i, "Participation data is unavailable right now. Try again in a moment.")
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Tier: %s (%d actions in the last %d days).", tier, count, c.Cfg.Activity.WindowDays))
}

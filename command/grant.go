package command

import (
	"fmt"

	"community-bot/ledger"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// GrantCommand defines the structure for the admin-only /grant command.
// Grants are intentionally additive; running the command twice credits twice.
type GrantCommand struct {
	Ledger *ledger.Ledger
	Auth   *utils.Auth
}

// Definition returns the application command definition.
func (c *GrantCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "grant",
		Description: "Credit coins to a user (admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "user",
				Description: "The user to credit",
				Type:        discordgo.ApplicationCommandOptionUser,
				Required:    true,
			},
			{
				Name:        "amount",
				Description: "How many coins to add",
				Type:        discordgo.ApplicationCommandOptionInteger,
				Required:    true,
			},
		},
	}
}

// Handler credits the target after an admin permission check.
func (c *GrantCommand) Handler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !c.Auth.CheckPermission(i, "admin") {
		respondEphemeral(s, i, "You don't have permission to grant coins.")
		return
	}

	data := i.ApplicationCommandData()
	if len(data.Options) < 2 {
		return
	}
	target := data.Options[0].UserValue(s)
	amount := data.Options[1].IntValue()
	if target == nil || amount <= 0 {
		respondEphemeral(s, i, "Pick a user and a positive amount.")
		return
	}

	if err := c.Ledger.GrantIncremental(target.ID, amount); err != nil {
		utils.Error("command", "grant", fmt.Sprintf("failed to grant %d to %s: %v", amount, target.ID, err))
		respondEphemeral(s, i, "The wallet is unavailable right now. Try again in a moment.")
		return
	}

	utils.Info("command", "grant", fmt.Sprintf("%s granted %d coins to %s", interactionUser(i).ID, amount, target.ID))
	respondEphemeral(s, i, fmt.Sprintf("Credited %d coins to %s.", amount, target.Username))
}

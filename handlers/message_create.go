package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"community-bot/classifier"
	"community-bot/models"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const replyTimeout = 30 * time.Second

// MessageCreate is the top-level dispatcher for every message the bot sees.
// It classifies the message and hands it to the router, the ledger, or the
// persona reply path.
func MessageCreate(d *Deps) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		// Ignore the bot itself and other bots.
		if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
			return
		}

		d.Ledger.RecordActivity(m.Author.ID, "discord", "message", m.ChannelID)

		isSource := m.ChannelID == d.Cfg.Bot.SourceChannelID
		switch classifier.Classify(m.Content, m.ChannelID, isSource) {
		case models.ClassLinkViolation:
			d.Router.HandleLinkViolation(m.ChannelID, m.ID, m.Author.ID, m.Content)
		case models.ClassRouteCandidate:
			routePost(d, m)
		case models.ClassCoinRequest:
			handleCoinRequest(s, d, m)
		default:
			maybeReply(s, d, m)
		}
	}
}

// routePost hands a source-channel post to the router. On failure the
// author's content must not be dropped, so it goes back to them in a DM.
func routePost(d *Deps, m *discordgo.MessageCreate) {
	var urls []string
	for _, a := range m.Attachments {
		urls = append(urls, a.URL)
	}

	res, err := d.Router.RouteAuthorPost(m.GuildID, m.Author.ID, displayName(m), m.ChannelID, m.ID, m.Content, urls)
	if err != nil {
		utils.Error("dispatcher", "route_post", fmt.Sprintf("failed to route post from %s: %v", m.Author.ID, err))
		notice := "I couldn't move your post into its thread just now, sweetheart. Here it is back so nothing is lost:\n\n" + m.Content
		if derr := d.Gw.SendDirect(m.Author.ID, notice); derr != nil {
			utils.Error("dispatcher", "route_post_dm", fmt.Sprintf("failed to DM author %s: %v", m.Author.ID, derr))
		}
		return
	}

	if res.Created {
		log.Printf("Created thread %s for author %s", res.ThreadID, m.Author.ID)
	}
}

// handleCoinRequest gates the faucet by channel before touching the ledger;
// the ledger itself does not know about channels.
func handleCoinRequest(s *discordgo.Session, d *Deps, m *discordgo.MessageCreate) {
	if !channelIn(d.Cfg.Faucet.Channels, m.ChannelID) {
		reply(s, m, "Coins are handled over in the faucet channel, love.")
		return
	}

	result, err := d.Ledger.ClaimOneTimeGrant(m.Author.ID, d.Cfg.Faucet.Amount)
	if err != nil {
		utils.Error("dispatcher", "coin_request", fmt.Sprintf("failed to claim grant for %s: %v", m.Author.ID, err))
		reply(s, m, "The wallet is being difficult right now. Try again in a moment.")
		return
	}

	if result == models.AlreadyClaimed {
		reply(s, m, "You've already had your one-time grant, sweetheart.")
		return
	}
	reply(s, m, fmt.Sprintf("There you go: %d coins, all yours.", d.Cfg.Faucet.Amount))
}

// maybeReply is the pass-through to the persona generator: only when the bot
// is mentioned or the message sits in a help channel.
func maybeReply(s *discordgo.Session, d *Deps, m *discordgo.MessageCreate) {
	mentioned := false
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			mentioned = true
			break
		}
	}
	if !mentioned && !channelIn(d.Cfg.Persona.HelpChannels, m.ChannelID) {
		return
	}

	// Typing indicator is cosmetic.
	if err := s.ChannelTyping(m.ChannelID); err != nil {
		log.Printf("Failed to send typing indicator in %s: %v", m.ChannelID, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	text, err := d.Gen.Generate(ctx, displayName(m), channelName(s, m.ChannelID), m.Content)
	if err != nil {
		// text already holds the fixed fallback.
		utils.Warn("dispatcher", "generate_reply", fmt.Sprintf("reply generation failed for %s: %v", m.Author.ID, err))
	}
	reply(s, m, text)
}

func reply(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		log.Printf("Failed to reply in %s: %v", m.ChannelID, err)
	}
}

func displayName(m *discordgo.MessageCreate) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	if m.Author.GlobalName != "" {
		return m.Author.GlobalName
	}
	return m.Author.Username
}

func channelName(s *discordgo.Session, channelID string) string {
	ch, err := s.Channel(channelID)
	if err != nil || ch.Name == "" {
		return "unknown-channel"
	}
	return ch.Name
}

func channelIn(list []string, channelID string) bool {
	for _, id := range list {
		if id == channelID {
			return true
		}
	}
	return false
}

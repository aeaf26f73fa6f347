package bot

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Darkgoatie/discord-auctions/internal/domain"
)

const (
	colorGreen  = 0x57F287
	colorBlue   = 0x5865F2
	colorYellow = 0xFEE75C
)

// noWinner is what an ended auction reports when nobody bid.
const noWinner = "NOBODY"

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func mention(userID string) string {
	if userID == "" {
		return "unknown"
	}
	return "<@" + userID + ">"
}

func startedEmbed(a *domain.Auction) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Auction started",
		Description: fmt.Sprintf("**%s** is up for auction!", a.Item),
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Starting price", Value: formatPrice(a.Price), Inline: true},
			{Name: "Hosted by", Value: mention(a.HostedBy), Inline: true},
		},
	}
}

func bidEmbed(a *domain.Auction) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Bid accepted",
		Description: fmt.Sprintf("%s leads the auction for **%s**.", mention(a.Winner), a.Item),
		Color:       colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Current price", Value: formatPrice(a.Price), Inline: true},
		},
	}
}

func endedEmbed(a *domain.Auction) *discordgo.MessageEmbed {
	winner := noWinner
	if a.Winner != "" {
		winner = mention(a.Winner)
	}
	return &discordgo.MessageEmbed{
		Title:       "Auction ended",
		Description: fmt.Sprintf("The auction for **%s** is over.", a.Item),
		Color:       colorYellow,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Final price", Value: formatPrice(a.Price), Inline: true},
			{Name: "Winner", Value: winner, Inline: true},
		},
	}
}

func infoEmbed(a *domain.Auction) *discordgo.MessageEmbed {
	winner := "none yet"
	if a.Winner != "" {
		winner = mention(a.Winner)
	}
	return &discordgo.MessageEmbed{
		Title:       "Current auction",
		Description: fmt.Sprintf("**%s**", a.Item),
		Color:       colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Price", Value: formatPrice(a.Price), Inline: true},
			{Name: "Leading bidder", Value: winner, Inline: true},
			{Name: "Bid limit", Value: formatPrice(a.BidLimit), Inline: true},
			{Name: "Hosted by", Value: mention(a.HostedBy), Inline: true},
			{Name: "Running for", Value: a.Elapsed().Round(time.Second).String(), Inline: true},
		},
	}
}

func listEmbed(auctions []*domain.Auction) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Running auctions",
		Color: colorBlue,
	}
	if len(auctions) == 0 {
		embed.Description = "No auctions are running in this server."
		return embed
	}
	for _, a := range auctions {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  a.Item,
			Value: fmt.Sprintf("<#%s> at %s", a.ChannelID, formatPrice(a.Price)),
		})
	}
	return embed
}

func limitEmbed(a *domain.Auction) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Bid limit updated",
		Description: fmt.Sprintf("New bids on **%s** must now exceed the price by more than %s.", a.Item, formatPrice(a.BidLimit)),
		Color:       colorBlue,
	}
}

// userErrorMessage translates expected command failures into the reply the
// member should see. The second return is false for internal errors.
func userErrorMessage(err error) (string, bool) {
	var validationErr *domain.ValidationError
	var tooLowErr *domain.BidTooLowError
	var belowLimitErr *domain.BidBelowLimitError

	switch {
	case errors.Is(err, errNoAuction):
		return "There is no auction running in this channel.", true
	case errors.Is(err, errAuctionExists):
		return "An auction is already running in this channel. Close it with `/auction end` first.", true
	case errors.Is(err, errMissingPermission):
		return "You need the **Manage Server** permission to do that.", true
	case errors.As(err, &tooLowErr):
		return fmt.Sprintf("Your bid of %s does not beat the current price of %s.",
			formatPrice(tooLowErr.Amount), formatPrice(tooLowErr.Current)), true
	case errors.As(err, &belowLimitErr):
		return fmt.Sprintf("Your bid of %s is too close to the current price. Bids must exceed %s (price %s plus the bid limit of %s).",
			formatPrice(belowLimitErr.Amount),
			formatPrice(belowLimitErr.Current+belowLimitErr.Limit),
			formatPrice(belowLimitErr.Current),
			formatPrice(belowLimitErr.Limit)), true
	case errors.As(err, &validationErr):
		return validationErr.Error(), true
	}
	return "", false
}

func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (b *Bot) replyError(s *discordgo.Session, i *discordgo.InteractionCreate, command string, err error) {
	msg, known := userErrorMessage(err)
	if !known {
		b.log.Error("command failed",
			"command", command,
			"guild_id", i.GuildID,
			"channel_id", i.ChannelID,
			"error", err)
		msg = "Something went wrong while handling that command."
	} else {
		b.log.Debug("command rejected", "command", command, "reason", err.Error())
	}

	rerr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if rerr != nil {
		b.log.Error("respond to interaction", "error", rerr)
	}
}

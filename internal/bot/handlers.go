package bot

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Darkgoatie/discord-auctions/internal/domain"
)

const commandTimeout = 10 * time.Second

var (
	errNoAuction         = errors.New("no auction running in this channel")
	errAuctionExists     = errors.New("auction already running in this channel")
	errMissingPermission = errors.New("missing manage server permission")
)

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != "auction" || len(data.Options) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	sub := data.Options[0]
	var err error
	switch sub.Name {
	case "start":
		err = b.handleStart(ctx, s, i, sub)
	case "bid":
		err = b.handleBid(ctx, s, i, sub)
	case "end":
		err = b.handleEnd(ctx, s, i)
	case "info":
		err = b.handleInfo(ctx, s, i)
	case "list":
		err = b.handleList(ctx, s, i)
	case "setlimit":
		err = b.handleSetLimit(ctx, s, i, sub)
	default:
		return
	}

	if err != nil {
		b.replyError(s, i, sub.Name, err)
	}
}

func (b *Bot) handleStart(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	if !hasManagePermission(i) {
		return errMissingPermission
	}
	opts := optionMap(sub.Options)

	unlock := b.manager.LockKey(i.GuildID, i.ChannelID)
	defer unlock()

	exists, err := b.manager.Exists(ctx, i.GuildID, i.ChannelID)
	if err != nil {
		return err
	}
	if exists {
		return errAuctionExists
	}

	auction, err := b.manager.Start(ctx, domain.Options{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Item:      opts["item"].StringValue(),
		Price:     opts["price"].FloatValue(),
		HostedBy:  interactionUserID(i),
	})
	if err != nil {
		return err
	}
	return b.respondEmbed(s, i, startedEmbed(auction))
}

func (b *Bot) handleBid(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	amount := optionMap(sub.Options)["amount"].FloatValue()

	unlock := b.manager.LockKey(i.GuildID, i.ChannelID)
	defer unlock()

	auction, err := b.manager.Fetch(ctx, i.GuildID, i.ChannelID)
	if err != nil {
		return err
	}
	if auction == nil {
		return errNoAuction
	}

	if err := auction.Bid(amount, interactionUserID(i)); err != nil {
		return err
	}
	if err := b.manager.Save(ctx, auction); err != nil {
		return err
	}
	return b.respondEmbed(s, i, bidEmbed(auction))
}

func (b *Bot) handleEnd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !hasManagePermission(i) {
		return errMissingPermission
	}

	unlock := b.manager.LockKey(i.GuildID, i.ChannelID)
	defer unlock()

	auction, err := b.manager.Fetch(ctx, i.GuildID, i.ChannelID)
	if err != nil {
		return err
	}
	if auction == nil {
		return errNoAuction
	}

	if err := b.manager.Delete(ctx, i.GuildID, i.ChannelID); err != nil {
		return err
	}
	return b.respondEmbed(s, i, endedEmbed(auction))
}

func (b *Bot) handleInfo(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	auction, err := b.manager.Fetch(ctx, i.GuildID, i.ChannelID)
	if err != nil {
		return err
	}
	if auction == nil {
		return errNoAuction
	}
	return b.respondEmbed(s, i, infoEmbed(auction))
}

func (b *Bot) handleList(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	auctions, err := b.manager.FetchAll(ctx)
	if err != nil {
		return err
	}

	var inGuild []*domain.Auction
	for _, auction := range auctions {
		if auction.GuildID == i.GuildID {
			inGuild = append(inGuild, auction)
		}
	}
	return b.respondEmbed(s, i, listEmbed(inGuild))
}

func (b *Bot) handleSetLimit(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	if !hasManagePermission(i) {
		return errMissingPermission
	}
	amount := optionMap(sub.Options)["amount"].FloatValue()
	if amount < 0 {
		return &domain.ValidationError{Field: "bidLimit", Reason: "must not be negative"}
	}

	unlock := b.manager.LockKey(i.GuildID, i.ChannelID)
	defer unlock()

	auction, err := b.manager.Fetch(ctx, i.GuildID, i.ChannelID)
	if err != nil {
		return err
	}
	if auction == nil {
		return errNoAuction
	}

	auction.SetBidLimit(amount)
	if err := b.manager.Save(ctx, auction); err != nil {
		return err
	}
	return b.respondEmbed(s, i, limitEmbed(auction))
}

func hasManagePermission(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	return i.Member.Permissions&(discordgo.PermissionManageServer|discordgo.PermissionAdministrator) != 0
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

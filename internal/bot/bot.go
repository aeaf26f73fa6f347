package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Darkgoatie/discord-auctions/internal/services"
	"github.com/Darkgoatie/discord-auctions/pkg/logger"
)

// Bot owns the Discord session and maps slash commands onto the
// AuctionManager. With a guild ID the commands are registered guild-scoped
// (instant, good for development) and removed on shutdown; without one they
// are registered globally and left in place.
type Bot struct {
	session *discordgo.Session
	manager *services.AuctionManager
	log     logger.Logger
	appID   string
	guildID string

	registered []*discordgo.ApplicationCommand
}

func New(token, appID, guildID string, manager *services.AuctionManager, log logger.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	b := &Bot{
		session: session,
		manager: manager,
		log:     log,
		appID:   appID,
		guildID: guildID,
	}

	session.Identify.Intents = discordgo.IntentsGuilds
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	return b.registerCommands()
}

func (b *Bot) Stop() error {
	b.unregisterCommands()
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("discord session ready",
		"user", r.User.String(),
		"guilds", len(r.Guilds))
}

// NotifyChannel implements domain.Notifier for the sweeper.
func (b *Bot) NotifyChannel(_ context.Context, channelID, message string) error {
	_, err := b.session.ChannelMessageSend(channelID, message)
	return err
}

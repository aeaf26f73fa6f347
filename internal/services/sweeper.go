package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Darkgoatie/discord-auctions/internal/domain"
	"github.com/Darkgoatie/discord-auctions/pkg/logger"
)

const sweepTimeout = 30 * time.Second

// Sweeper periodically reports auctions that have been running longer than
// the configured age. It never mutates records; closing an auction stays a
// human decision.
type Sweeper struct {
	manager  *AuctionManager
	notifier domain.Notifier
	maxAge   time.Duration
	log      logger.Logger
	cron     *cron.Cron
}

func NewSweeper(manager *AuctionManager, notifier domain.Notifier, maxAge time.Duration, log logger.Logger) *Sweeper {
	return &Sweeper{
		manager:  manager,
		notifier: notifier,
		maxAge:   maxAge,
		log:      log,
	}
}

// Start schedules the sweep. The schedule uses cron syntax, including the
// "@every 10m" form.
func (s *Sweeper) Start(schedule string) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	s.cron.Start()
	s.log.Info("sweeper started", "schedule", schedule, "max_age", s.maxAge.String())
	return nil
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	s.Sweep(ctx)
}

// Sweep performs one pass over every stored auction.
func (s *Sweeper) Sweep(ctx context.Context) {
	auctions, err := s.manager.FetchAll(ctx)
	if err != nil {
		s.log.Error("sweep failed", "error", err)
		return
	}

	for _, auction := range auctions {
		age := auction.Elapsed()
		if age <= s.maxAge {
			continue
		}

		s.log.Warn("stale auction",
			"guild_id", auction.GuildID,
			"channel_id", auction.ChannelID,
			"item", auction.Item,
			"age", age.String())

		if s.notifier == nil {
			continue
		}
		msg := fmt.Sprintf(
			"The auction for **%s** has been running for %s. A moderator can close it with `/auction end`.",
			auction.Item, age.Round(time.Minute))
		if err := s.notifier.NotifyChannel(ctx, auction.ChannelID, msg); err != nil {
			s.log.Error("notify channel", "channel_id", auction.ChannelID, "error", err)
		}
	}
}

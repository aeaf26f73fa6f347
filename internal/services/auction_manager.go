package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/Darkgoatie/discord-auctions/internal/domain"
	"github.com/Darkgoatie/discord-auctions/pkg/logger"
)

// Key builds the composite storage key addressing exactly one auction.
func Key(guildID, channelID string) string {
	return guildID + "/" + channelID
}

// AuctionManager is the sole gateway between auction values and the storage
// backend. Every operation is a single round trip; there is no shared
// in-process cache, so each Fetch returns a detached copy and mutations are
// invisible to storage until Save.
type AuctionManager struct {
	store domain.AuctionStore
	log   logger.Logger

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

func NewAuctionManager(store domain.AuctionStore, log logger.Logger) *AuctionManager {
	return &AuctionManager{
		store: store,
		log:   log,
		locks: make(map[string]*sync.Mutex),
	}
}

// Start constructs a new auction and persists it under its channel key.
// It does not check whether a record already exists; callers that care must
// call Exists first, otherwise the existing record is overwritten.
func (m *AuctionManager) Start(ctx context.Context, opts domain.Options) (*domain.Auction, error) {
	auction, err := domain.New(opts)
	if err != nil {
		return nil, err
	}

	if err := m.store.Set(ctx, Key(auction.GuildID, auction.ChannelID), auction.ToRecord()); err != nil {
		return nil, fmt.Errorf("persist auction: %w", err)
	}

	m.log.Info("auction started",
		"guild_id", auction.GuildID,
		"channel_id", auction.ChannelID,
		"item", auction.Item,
		"price", auction.Price)
	return auction, nil
}

// Fetch returns the auction stored for the key, or (nil, nil) when there is
// none. The returned value is detached from any previously fetched copy.
func (m *AuctionManager) Fetch(ctx context.Context, guildID, channelID string) (*domain.Auction, error) {
	rec, err := m.store.Get(ctx, Key(guildID, channelID))
	if err != nil {
		return nil, fmt.Errorf("fetch auction: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	return domain.FromRecord(rec), nil
}

// FetchAll reconstructs one detached auction per stored record.
func (m *AuctionManager) FetchAll(ctx context.Context) ([]*domain.Auction, error) {
	recs, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}

	auctions := make([]*domain.Auction, 0, len(recs))
	for _, rec := range recs {
		auctions = append(auctions, domain.FromRecord(rec))
	}
	return auctions, nil
}

func (m *AuctionManager) Exists(ctx context.Context, guildID, channelID string) (bool, error) {
	ok, err := m.store.Has(ctx, Key(guildID, channelID))
	if err != nil {
		return false, fmt.Errorf("check auction: %w", err)
	}
	return ok, nil
}

// Save overwrites the stored record with the auction's full current state.
// No partial update and no concurrency token: the last writer wins.
func (m *AuctionManager) Save(ctx context.Context, auction *domain.Auction) error {
	if err := m.store.Set(ctx, Key(auction.GuildID, auction.ChannelID), auction.ToRecord()); err != nil {
		return fmt.Errorf("save auction: %w", err)
	}
	return nil
}

// Delete removes the stored record. Deleting an absent key is not an error.
func (m *AuctionManager) Delete(ctx context.Context, guildID, channelID string) error {
	if err := m.store.Delete(ctx, Key(guildID, channelID)); err != nil {
		return fmt.Errorf("delete auction: %w", err)
	}
	m.log.Info("auction deleted", "guild_id", guildID, "channel_id", channelID)
	return nil
}

// LockKey serializes read-modify-write flows for one channel's auction
// within this process, closing the window where two concurrent bids both
// validate against a stale price. It returns the unlock func.
func (m *AuctionManager) LockKey(guildID, channelID string) func() {
	key := Key(guildID, channelID)

	m.lockMu.Lock()
	mu, ok := m.locks[key]
	if !ok {
		mu = &sync.Mutex{}
		m.locks[key] = mu
	}
	m.lockMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

package domain

import (
	"time"
)

// Options carries the caller-supplied fields for a new auction.
type Options struct {
	GuildID   string
	ChannelID string
	Item      string
	Price     float64
	HostedBy  string
	StartedAt time.Time
	BidLimit  float64
}

// Auction is one item-for-bid record scoped to a single text channel within
// one guild. It is a plain value: mutators change memory only, and callers
// commit through AuctionManager.Save. Every fetch from storage produces a
// fresh detached instance, so two independently fetched copies never see
// each other's mutations.
type Auction struct {
	GuildID   string
	ChannelID string
	Item      string
	Price     float64
	HostedBy  string
	StartedAt time.Time
	Winner    string
	BidLimit  float64
}

// New validates the supplied options and returns a new auction.
// GuildID, ChannelID and Item must be non-empty; Price and BidLimit must be
// non-negative. StartedAt defaults to now, Winner to "" (no winner yet).
func New(opts Options) (*Auction, error) {
	if opts.GuildID == "" {
		return nil, &ValidationError{Field: "guildId", Reason: "must be a non-empty string"}
	}
	if opts.ChannelID == "" {
		return nil, &ValidationError{Field: "channelId", Reason: "must be a non-empty string"}
	}
	if opts.Item == "" {
		return nil, &ValidationError{Field: "item", Reason: "must be a non-empty string"}
	}
	if opts.Price < 0 {
		return nil, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if opts.BidLimit < 0 {
		return nil, &ValidationError{Field: "bidLimit", Reason: "must not be negative"}
	}

	startedAt := opts.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	return &Auction{
		GuildID:   opts.GuildID,
		ChannelID: opts.ChannelID,
		Item:      opts.Item,
		Price:     opts.Price,
		HostedBy:  opts.HostedBy,
		StartedAt: startedAt,
		Winner:    "",
		BidLimit:  opts.BidLimit,
	}, nil
}

// Bid places a bid. The amount must beat the current price and clear the
// bid limit on top of it, otherwise the auction is left unchanged and a
// typed error is returned. The mutation is in-memory only.
func (a *Auction) Bid(amount float64, bidder string) error {
	if amount <= a.Price {
		return &BidTooLowError{Current: a.Price, Amount: amount}
	}
	if amount <= a.Price+a.BidLimit {
		return &BidBelowLimitError{Current: a.Price, Limit: a.BidLimit, Amount: amount}
	}

	a.Price = amount
	a.Winner = bidder
	return nil
}

func (a *Auction) SetWinner(bidder string) {
	a.Winner = bidder
}

func (a *Auction) SetPrice(price float64) {
	a.Price = price
}

func (a *Auction) SetBidLimit(limit float64) {
	a.BidLimit = limit
}

func (a *Auction) SetItem(item string) {
	a.Item = item
}

// Elapsed returns how long the auction has been running.
func (a *Auction) Elapsed() time.Duration {
	return time.Since(a.StartedAt)
}

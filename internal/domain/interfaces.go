package domain

import "context"

// AuctionStore is the storage contract the manager is written against.
// The production backends (Redis, MongoDB, MySQL) and the in-memory fake
// all satisfy it. Get returns (nil, nil) when no record exists for the key;
// Delete is idempotent.
type AuctionStore interface {
	Get(ctx context.Context, key string) (*Record, error)
	Set(ctx context.Context, key string, rec *Record) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	List(ctx context.Context) ([]*Record, error)
}

// Notifier pushes an out-of-band message into a text channel. Implemented
// by the bot layer and consumed by the stale-auction sweeper.
type Notifier interface {
	NotifyChannel(ctx context.Context, channelID, message string) error
}

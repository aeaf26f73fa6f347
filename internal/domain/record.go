package domain

import "time"

// Record is the flat storage representation of an auction. StartedAt is
// kept as epoch milliseconds so every backend round-trips the same shape.
type Record struct {
	GuildID   string  `json:"guild_id" bson:"guild_id"`
	ChannelID string  `json:"channel_id" bson:"channel_id"`
	Item      string  `json:"item" bson:"item"`
	Price     float64 `json:"price" bson:"price"`
	HostedBy  string  `json:"hosted_by" bson:"hosted_by"`
	StartedAt int64   `json:"started_at" bson:"started_at"`
	Winner    string  `json:"winner" bson:"winner"`
	BidLimit  float64 `json:"bid_limit" bson:"bid_limit"`
}

func (a *Auction) ToRecord() *Record {
	return &Record{
		GuildID:   a.GuildID,
		ChannelID: a.ChannelID,
		Item:      a.Item,
		Price:     a.Price,
		HostedBy:  a.HostedBy,
		StartedAt: a.StartedAt.UnixMilli(),
		Winner:    a.Winner,
		BidLimit:  a.BidLimit,
	}
}

// FromRecord reconstructs an auction from a stored record. It skips
// constructor validation: a record only exists because a validated auction
// was saved under it.
func FromRecord(rec *Record) *Auction {
	return &Auction{
		GuildID:   rec.GuildID,
		ChannelID: rec.ChannelID,
		Item:      rec.Item,
		Price:     rec.Price,
		HostedBy:  rec.HostedBy,
		StartedAt: time.UnixMilli(rec.StartedAt),
		Winner:    rec.Winner,
		BidLimit:  rec.BidLimit,
	}
}

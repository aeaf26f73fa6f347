package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOptions() Options {
	return Options{
		GuildID:   "g1",
		ChannelID: "c1",
		Item:      "Sword",
		Price:     100,
		HostedBy:  "u1",
	}
}

func TestNewDefaults(t *testing.T) {
	before := time.Now()
	auction, err := New(validOptions())
	require.NoError(t, err)

	assert.Equal(t, "g1", auction.GuildID)
	assert.Equal(t, "c1", auction.ChannelID)
	assert.Equal(t, "Sword", auction.Item)
	assert.Equal(t, 100.0, auction.Price)
	assert.Equal(t, "u1", auction.HostedBy)
	assert.Empty(t, auction.Winner)
	assert.Zero(t, auction.BidLimit)
	assert.False(t, auction.StartedAt.Before(before))
	assert.False(t, auction.StartedAt.After(time.Now()))
}

func TestNewHonorsSuppliedFields(t *testing.T) {
	startedAt := time.Now().Add(-2 * time.Hour)

	opts := validOptions()
	opts.StartedAt = startedAt
	opts.BidLimit = 25

	auction, err := New(opts)
	require.NoError(t, err)

	assert.True(t, auction.StartedAt.Equal(startedAt))
	assert.Equal(t, 25.0, auction.BidLimit)
	assert.GreaterOrEqual(t, auction.Elapsed(), 2*time.Hour)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		field  string
	}{
		{"empty guild", func(o *Options) { o.GuildID = "" }, "guildId"},
		{"empty channel", func(o *Options) { o.ChannelID = "" }, "channelId"},
		{"empty item", func(o *Options) { o.Item = "" }, "item"},
		{"negative price", func(o *Options) { o.Price = -1 }, "price"},
		{"negative bid limit", func(o *Options) { o.BidLimit = -5 }, "bidLimit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)

			auction, err := New(opts)
			assert.Nil(t, auction)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestBidTooLowLeavesStateUnchanged(t *testing.T) {
	auction, err := New(validOptions())
	require.NoError(t, err)

	err = auction.Bid(100, "u2") // equal to the price is not enough
	var tooLow *BidTooLowError
	require.True(t, errors.As(err, &tooLow))
	assert.Equal(t, 100.0, tooLow.Current)
	assert.Equal(t, 100.0, tooLow.Amount)

	assert.Equal(t, 100.0, auction.Price)
	assert.Empty(t, auction.Winner)
}

func TestBidBelowLimitLeavesStateUnchanged(t *testing.T) {
	opts := validOptions()
	opts.BidLimit = 50
	auction, err := New(opts)
	require.NoError(t, err)

	err = auction.Bid(150, "u2") // beats the price but not price+limit
	var belowLimit *BidBelowLimitError
	require.True(t, errors.As(err, &belowLimit))
	assert.Equal(t, 100.0, belowLimit.Current)
	assert.Equal(t, 50.0, belowLimit.Limit)

	assert.Equal(t, 100.0, auction.Price)
	assert.Empty(t, auction.Winner)
}

func TestBidAboveLimitSucceeds(t *testing.T) {
	opts := validOptions()
	opts.BidLimit = 50
	auction, err := New(opts)
	require.NoError(t, err)

	require.NoError(t, auction.Bid(151, "u2"))
	assert.Equal(t, 151.0, auction.Price)
	assert.Equal(t, "u2", auction.Winner)
}

func TestBidScenario(t *testing.T) {
	auction, err := New(validOptions())
	require.NoError(t, err)
	assert.Empty(t, auction.Winner)
	assert.Zero(t, auction.BidLimit)

	require.NoError(t, auction.Bid(150, "u2"))
	assert.Equal(t, 150.0, auction.Price)
	assert.Equal(t, "u2", auction.Winner)

	err = auction.Bid(140, "u3")
	var tooLow *BidTooLowError
	require.True(t, errors.As(err, &tooLow))
	assert.Equal(t, 150.0, auction.Price)
	assert.Equal(t, "u2", auction.Winner)
}

func TestSetters(t *testing.T) {
	auction, err := New(validOptions())
	require.NoError(t, err)

	auction.SetWinner("u9")
	auction.SetPrice(500)
	auction.SetBidLimit(10)
	auction.SetItem("Shield")

	assert.Equal(t, "u9", auction.Winner)
	assert.Equal(t, 500.0, auction.Price)
	assert.Equal(t, 10.0, auction.BidLimit)
	assert.Equal(t, "Shield", auction.Item)
}

func TestRecordRoundTrip(t *testing.T) {
	opts := validOptions()
	opts.BidLimit = 25
	auction, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, auction.Bid(200, "u2"))

	restored := FromRecord(auction.ToRecord())

	assert.Equal(t, auction.GuildID, restored.GuildID)
	assert.Equal(t, auction.ChannelID, restored.ChannelID)
	assert.Equal(t, auction.Item, restored.Item)
	assert.Equal(t, auction.Price, restored.Price)
	assert.Equal(t, auction.HostedBy, restored.HostedBy)
	assert.Equal(t, auction.Winner, restored.Winner)
	assert.Equal(t, auction.BidLimit, restored.BidLimit)
	assert.Equal(t, auction.StartedAt.UnixMilli(), restored.StartedAt.UnixMilli())
}

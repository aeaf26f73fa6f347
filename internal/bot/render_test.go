package bot

import (
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darkgoatie/discord-auctions/internal/domain"
)

func testAuction(t *testing.T) *domain.Auction {
	t.Helper()
	auction, err := domain.New(domain.Options{
		GuildID:   "g1",
		ChannelID: "c1",
		Item:      "Sword",
		Price:     100,
		HostedBy:  "u1",
		StartedAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	return auction
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "100", formatPrice(100))
	assert.Equal(t, "100.5", formatPrice(100.5))
	assert.Equal(t, "0", formatPrice(0))
}

func TestMention(t *testing.T) {
	assert.Equal(t, "<@u1>", mention("u1"))
	assert.Equal(t, "unknown", mention(""))
}

func TestStartedEmbed(t *testing.T) {
	embed := startedEmbed(testAuction(t))

	assert.Equal(t, "Auction started", embed.Title)
	assert.Contains(t, embed.Description, "Sword")
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "100", embed.Fields[0].Value)
	assert.Equal(t, "<@u1>", embed.Fields[1].Value)
}

func TestEndedEmbedWithWinner(t *testing.T) {
	auction := testAuction(t)
	require.NoError(t, auction.Bid(150, "u2"))

	embed := endedEmbed(auction)

	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "150", embed.Fields[0].Value)
	assert.Equal(t, "<@u2>", embed.Fields[1].Value)
}

func TestEndedEmbedWithoutWinner(t *testing.T) {
	embed := endedEmbed(testAuction(t))

	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "NOBODY", embed.Fields[1].Value)
}

func TestListEmbedEmpty(t *testing.T) {
	embed := listEmbed(nil)
	assert.Contains(t, embed.Description, "No auctions")
	assert.Empty(t, embed.Fields)
}

func TestListEmbed(t *testing.T) {
	embed := listEmbed([]*domain.Auction{testAuction(t)})

	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "Sword", embed.Fields[0].Name)
	assert.Contains(t, embed.Fields[0].Value, "<#c1>")
}

func TestUserErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		known    bool
		contains string
	}{
		{"no auction", errNoAuction, true, "no auction"},
		{"auction exists", errAuctionExists, true, "already running"},
		{"missing permission", errMissingPermission, true, "Manage Server"},
		{"bid too low", &domain.BidTooLowError{Current: 100, Amount: 90}, true, "does not beat"},
		{"bid below limit", &domain.BidBelowLimitError{Current: 100, Limit: 50, Amount: 120}, true, "bid limit"},
		{"validation", &domain.ValidationError{Field: "price", Reason: "must not be negative"}, true, "price"},
		{"internal", fmt.Errorf("redis: connection refused"), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, known := userErrorMessage(tt.err)
			assert.Equal(t, tt.known, known)
			if tt.known {
				assert.Contains(t, msg, tt.contains)
			}
		})
	}
}

func TestOptionMap(t *testing.T) {
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "price", Type: discordgo.ApplicationCommandOptionNumber, Value: 100.0},
		{Name: "item", Type: discordgo.ApplicationCommandOptionString, Value: "Sword"},
	}

	m := optionMap(opts)
	require.Contains(t, m, "price")
	require.Contains(t, m, "item")
	assert.Equal(t, 100.0, m["price"].FloatValue())
	assert.Equal(t, "Sword", m["item"].StringValue())
}

func TestHasManagePermission(t *testing.T) {
	assert.False(t, hasManagePermission(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}))

	member := &discordgo.Member{Permissions: discordgo.PermissionManageServer}
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{Member: member}}
	assert.True(t, hasManagePermission(i))

	member.Permissions = discordgo.PermissionSendMessages
	assert.False(t, hasManagePermission(i))
}

func TestInteractionUserID(t *testing.T) {
	member := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "u1"}},
	}}
	assert.Equal(t, "u1", interactionUserID(member))

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "u2"},
	}}
	assert.Equal(t, "u2", interactionUserID(dm))

	assert.Empty(t, interactionUserID(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}))
}

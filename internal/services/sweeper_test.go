package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darkgoatie/discord-auctions/internal/domain"
	"github.com/Darkgoatie/discord-auctions/pkg/logger"
)

type recordingNotifier struct {
	mu       sync.Mutex
	channels []string
}

func (n *recordingNotifier) NotifyChannel(_ context.Context, channelID, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.channels = append(n.channels, channelID)
	return nil
}

func TestSweepNotifiesOnlyStaleAuctions(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	stale := startOptions("g1", "c-stale")
	stale.StartedAt = time.Now().Add(-2 * time.Hour)
	_, err := m.Start(ctx, stale)
	require.NoError(t, err)

	_, err = m.Start(ctx, startOptions("g1", "c-fresh"))
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	sweeper := NewSweeper(m, notifier, time.Hour, logger.NewNop())
	sweeper.Sweep(ctx)

	assert.Equal(t, []string{"c-stale"}, notifier.channels)
}

func TestSweepDoesNotMutateRecords(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	stale := startOptions("g1", "c1")
	stale.StartedAt = time.Now().Add(-2 * time.Hour)
	_, err := m.Start(ctx, stale)
	require.NoError(t, err)

	sweeper := NewSweeper(m, &recordingNotifier{}, time.Hour, logger.NewNop())
	sweeper.Sweep(ctx)

	auction, err := m.Fetch(ctx, "g1", "c1")
	require.NoError(t, err)
	require.NotNil(t, auction)
	assert.Equal(t, 100.0, auction.Price)
}

func TestSweepWithoutNotifier(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	stale := startOptions("g1", "c1")
	stale.StartedAt = time.Now().Add(-2 * time.Hour)
	_, err := m.Start(ctx, stale)
	require.NoError(t, err)

	sweeper := NewSweeper(m, nil, time.Hour, logger.NewNop())
	assert.NotPanics(t, func() { sweeper.Sweep(ctx) })
}

func TestSweeperRejectsBadSchedule(t *testing.T) {
	sweeper := NewSweeper(newTestManager(), nil, time.Hour, logger.NewNop())
	assert.Error(t, sweeper.Start("not a schedule"))
}

var _ domain.Notifier = (*recordingNotifier)(nil)

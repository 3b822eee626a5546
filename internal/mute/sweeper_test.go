package mute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeperRunsImmediatelyAndStops(t *testing.T) {
	svc, _, store := newTestService(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	rec, err := svc.CreateMute(CreateRequest{
		GuildID: "g1", ModeratorID: "mod", Target: user("u1"), DurationText: "1s",
	})
	require.NoError(t, err)
	require.NotNil(t, rec.ExpiresAt)

	sweeper := NewSweeper(svc, time.Hour, svc.log) // cadence too long to tick in-test

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = sweeper.Run(ctx)
		close(done)
	}()

	// the startup pass should retire the record without waiting for a tick
	require.Eventually(t, func() bool {
		active, err := store.FindActive("u1", "g1")
		return err == nil && active == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}

func TestSweeperDefaultInterval(t *testing.T) {
	svc, _, _ := newTestService(t)
	sweeper := NewSweeper(svc, 0, svc.log)
	assert.Equal(t, DefaultSweepInterval, sweeper.interval)
}

package jobmgr

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockUntilCancelled(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestStartAndStop(t *testing.T) {
	m := New(zerolog.Nop())

	require.NoError(t, m.Start(context.Background(), "worker", blockUntilCancelled))
	assert.Equal(t, []string{"worker"}, m.List())

	require.NoError(t, m.Stop("worker"))
	assert.Empty(t, m.List())
}

func TestDuplicateName(t *testing.T) {
	m := New(zerolog.Nop())

	require.NoError(t, m.Start(context.Background(), "worker", blockUntilCancelled))
	defer m.StopAll()

	assert.Error(t, m.Start(context.Background(), "worker", blockUntilCancelled))
}

func TestStopUnknown(t *testing.T) {
	m := New(zerolog.Nop())
	assert.Error(t, m.Stop("ghost"))
}

func TestJobRemovedOnCompletion(t *testing.T) {
	m := New(zerolog.Nop())

	require.NoError(t, m.Start(context.Background(), "quick", func(ctx context.Context) error {
		return nil
	}))

	require.Eventually(t, func() bool {
		return len(m.List()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestParentContextCancelsJob(t *testing.T) {
	m := New(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	require.NoError(t, m.Start(ctx, "worker", func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return nil
	}))

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("job did not observe parent cancellation")
	}
}

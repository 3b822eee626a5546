package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownCheck(t *testing.T) {
	tracker := NewCooldownTracker()
	now := time.Now()

	_, ok := tracker.Check("u1", "mute", 3*time.Second, now)
	assert.True(t, ok, "first invocation passes")

	remaining, ok := tracker.Check("u1", "mute", 3*time.Second, now.Add(time.Second))
	assert.False(t, ok, "second invocation inside the window is blocked")
	assert.Equal(t, 2*time.Second, remaining)

	// other users and other commands are independent
	_, ok = tracker.Check("u2", "mute", 3*time.Second, now)
	assert.True(t, ok)
	_, ok = tracker.Check("u1", "unmute", 3*time.Second, now)
	assert.True(t, ok)

	_, ok = tracker.Check("u1", "mute", 3*time.Second, now.Add(4*time.Second))
	assert.True(t, ok, "window has elapsed")
}

func TestCooldownSweep(t *testing.T) {
	tracker := NewCooldownTracker()
	now := time.Now()

	tracker.Check("u1", "mute", time.Second, now.Add(-time.Hour))
	tracker.Check("u2", "mute", time.Second, now)

	assert.Equal(t, 1, tracker.Sweep(10*time.Minute, now))
	assert.Equal(t, 0, tracker.Sweep(10*time.Minute, now))
}

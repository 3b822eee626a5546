package command

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCooldown applies to commands that opt into cooldowns without
// setting their own window.
const DefaultCooldown = 3 * time.Second

// CooldownTracker keeps the last invocation time per (user, command).
type CooldownTracker struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{last: make(map[string]time.Time)}
}

// Check reports whether the user may run the command now. When allowed, the
// invocation is recorded; otherwise the remaining wait is returned.
func (t *CooldownTracker) Check(userID, command string, window time.Duration, now time.Time) (time.Duration, bool) {
	key := userID + ":" + command

	t.mu.Lock()
	defer t.mu.Unlock()

	if last, ok := t.last[key]; ok {
		if remaining := window - now.Sub(last); remaining > 0 {
			return remaining, false
		}
	}
	t.last[key] = now
	return 0, true
}

// Sweep drops entries older than maxAge and returns how many were removed.
func (t *CooldownTracker) Sweep(maxAge time.Duration, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for key, last := range t.last {
		if now.Sub(last) > maxAge {
			delete(t.last, key)
			removed++
		}
	}
	return removed
}

// RunCooldownCleaner clears stale cooldown entries every minute until ctx is
// done. Call from main or app lifecycle.
func RunCooldownCleaner(ctx context.Context, tracker *CooldownTracker, log zerolog.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := tracker.Sweep(10*time.Minute, time.Now()); n > 0 {
				log.Debug().Int("entries", n).Msg("Cleared stale cooldowns")
			}
		}
	}
}

package mute

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSweepInterval is the cadence of the expiry sweep.
const DefaultSweepInterval = 60 * time.Second

// Sweeper drives SweepExpired: one pass at startup, then one per tick until
// the context is cancelled. Overlapping passes are harmless since a record is
// excluded from the next fetch once deactivated.
type Sweeper struct {
	svc      *Service
	interval time.Duration
	log      zerolog.Logger
}

func NewSweeper(svc *Service, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		svc:      svc,
		interval: interval,
		log:      log.With().Str("component", "sweeper").Logger(),
	}
}

// Run blocks until ctx is done. Meant to run as a managed background job.
func (w *Sweeper) Run(ctx context.Context) error {
	w.pass()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.pass()
		}
	}
}

func (w *Sweeper) pass() {
	n, err := w.svc.SweepExpired(time.Now().UTC())
	if err != nil {
		w.log.Error().Err(err).Msg("Sweep failed")
		return
	}
	if n > 0 {
		w.log.Info().Int("records", n).Msg("Processed expired mutes")
	}
}

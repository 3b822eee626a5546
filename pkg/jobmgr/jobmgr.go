// Package jobmgr runs named background jobs with cancellation and in-memory
// tracking. Jobs run in their own goroutines and are removed automatically on
// completion.
//
//	jm := jobmgr.New(log)
//	_ = jm.Start(ctx, "mute-sweeper", sweeper.Run)
//	// later...
//	_ = jm.Stop("mute-sweeper")
package jobmgr

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

type job struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager orchestrates starting, stopping and tracking jobs.
// Safe for concurrent use.
type Manager struct {
	mu   sync.Mutex
	jobs map[string]*job
	log  zerolog.Logger
}

func New(log zerolog.Logger) *Manager {
	return &Manager{
		jobs: make(map[string]*job),
		log:  log.With().Str("component", "jobmgr").Logger(),
	}
}

// Start runs a job in a separate goroutine and returns immediately. The
// runner's context is cancelled by Stop, StopAll, or the parent context.
// Starting a name that is already running is an error.
func (m *Manager) Start(ctx context.Context, name string, runner func(ctx context.Context) error) error {
	jobCtx, cancel := context.WithCancel(ctx)
	j := &job{name: name, cancel: cancel, done: make(chan struct{})}

	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		cancel()
		return fmt.Errorf("job '%s' is already running", name)
	}
	m.jobs[name] = j
	m.mu.Unlock()

	go func() {
		m.log.Debug().Str("job", name).Msg("Job started")

		if err := runner(jobCtx); err != nil && jobCtx.Err() == nil {
			m.log.Error().Err(err).Str("job", name).Msg("Job failed")
		} else {
			m.log.Debug().Str("job", name).Msg("Job finished")
		}

		m.mu.Lock()
		delete(m.jobs, name)
		m.mu.Unlock()
		cancel()
		close(j.done)
	}()

	return nil
}

// Stop cancels a running job by name and waits for it to return.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	j, ok := m.jobs[name]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("job '%s' not running", name)
	}

	j.cancel()
	<-j.done
	return nil
}

// StopAll cancels every running job and waits for them to return.
func (m *Manager) StopAll() {
	m.mu.Lock()
	running := make([]*job, 0, len(m.jobs))
	for _, j := range m.jobs {
		running = append(running, j)
	}
	m.mu.Unlock()

	for _, j := range running {
		j.cancel()
		<-j.done
	}
}

// List returns the names of active jobs.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for name := range m.jobs {
		out = append(out, name)
	}
	return out
}

package ratelimit

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSweepInterval is the cadence of the background eviction sweep.
const DefaultSweepInterval = 5 * time.Minute

// Sweeper periodically evicts stale limiter state in the background.
// It is started once at process initialization and runs for the life of
// the process; Stop waits for an in-flight sweep to finish.
type Sweeper struct {
	limiter  *Limiter
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger

	// OnSweep, if set before Start, is invoked after every sweep with the
	// number of identities removed and the number still tracked.
	OnSweep func(removed, tracked int)

	mu      sync.Mutex
	running bool
}

// NewSweeper creates a sweeper for the given limiter. A non-positive
// interval falls back to DefaultSweepInterval.
func NewSweeper(limiter *Limiter, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		limiter:  limiter,
		interval: interval,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "ratelimit.sweeper"),
	}
}

// Start schedules the sweep and begins running it on the configured
// interval. Starting an already running sweeper is an error.
func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("sweeper already running")
	}

	schedule := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(schedule, s.runSweep); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("rate limit sweeper started", "interval", s.interval.String())
	return nil
}

// runSweep executes one eviction pass.
func (s *Sweeper) runSweep() {
	removed := s.limiter.Sweep()
	tracked := s.limiter.Identities()

	if removed > 0 {
		s.logger.Debug("sweep completed",
			"removed_identities", removed,
			"tracked_identities", tracked,
		)
	}

	if s.OnSweep != nil {
		s.OnSweep(removed, tracked)
	}
}

// Stop stops the sweeper and waits for a running sweep to complete.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false

	s.logger.Info("rate limit sweeper stopped")
}

// IsRunning returns true if the sweeper has been started and not stopped.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

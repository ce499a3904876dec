package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	SessionPruneJob = "session_prune"
	CacheSweepJob   = "cache_sweep"

	maintenanceTimeout = time.Minute
)

// SessionPruner removes expired sessions.
type SessionPruner interface {
	Prune(ctx context.Context) (int, error)
}

// Sweeper drops idle in-memory state and reports how much it removed.
type Sweeper interface {
	Sweep() int
}

type SweepFunc func() int

func (f SweepFunc) Sweep() int { return f() }

// MaintenanceJobs names what the maintenance jobs act on and when.
type MaintenanceJobs struct {
	Sessions    SessionPruner
	SessionCron string
	// Sweepers run together on SweepCron.
	Sweepers  map[string]Sweeper
	SweepCron string
}

// RegisterMaintenanceJobs adds the session prune and sweep jobs to s.
func RegisterMaintenanceJobs(s *Service, jobs MaintenanceJobs) error {
	if jobs.Sessions == nil {
		return fmt.Errorf("maintenance jobs require a session pruner")
	}

	pruneLogger := log.With().Str("component", "session_prune_job").Logger()
	if _, err := s.AddJob(SessionPruneJob, jobs.SessionCron, func() {
		pruneSessions(jobs.Sessions, pruneLogger)
	}); err != nil {
		return fmt.Errorf("register %s: %w", SessionPruneJob, err)
	}

	sweepLogger := log.With().Str("component", "cache_sweep_job").Logger()
	if _, err := s.AddJob(CacheSweepJob, jobs.SweepCron, func() {
		sweepAll(jobs.Sweepers, sweepLogger)
	}); err != nil {
		return fmt.Errorf("register %s: %w", CacheSweepJob, err)
	}
	return nil
}

func pruneSessions(pruner SessionPruner, logger zerolog.Logger) int {
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx)

	removed, err := pruner.Prune(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to prune expired sessions")
		return 0
	}
	if removed > 0 {
		logger.Info().Int("removed", removed).Msg("Pruned expired sessions")
	}
	return removed
}

func sweepAll(sweepers map[string]Sweeper, logger zerolog.Logger) int {
	total := 0
	for name, sweeper := range sweepers {
		removed := sweeper.Sweep()
		if removed > 0 {
			logger.Debug().Str("target", name).Int("removed", removed).Msg("Swept idle entries")
		}
		total += removed
	}
	return total
}

// Package task runs the scheduled maintenance jobs of the backend.
package task

import (
	"time"

	"github.com/givehub/backend/internal/models"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// Manager owns the job scheduler.
type Manager struct {
	scheduler     gocron.Scheduler
	retentionDays int
}

// NewManager creates the scheduler and registers all jobs.
func NewManager(retentionDays int) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		scheduler:     s,
		retentionDays: retentionDays,
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(m.pruneAuditEvents),
		gocron.WithName("audit-retention"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Start runs the scheduler in the background.
func (m *Manager) Start() {
	m.scheduler.Start()
	log.Info().Int("retentionDays", m.retentionDays).Msg("task manager started")
}

// Stop shuts the scheduler down, waiting for running jobs.
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("task manager shutdown failed")
		return
	}

	log.Info().Msg("task manager stopped")
}

// pruneAuditEvents deletes audit events older than the retention
// period. A retention of 0 or less keeps events forever.
func (m *Manager) pruneAuditEvents() {
	if m.retentionDays <= 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -m.retentionDays)

	count, err := models.PruneAuditEvents(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("audit event pruning failed")
		return
	}

	log.Info().Int64("count", count).Time("cutoff", cutoff).Msg("audit events pruned")
}

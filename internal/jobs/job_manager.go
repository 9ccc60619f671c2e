package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates the scheduled jobs of the service.
type JobManager struct {
	staleOrderRebroadcastJob *StaleOrderRebroadcastJob
}

// NewJobManager creates a job manager wired to the given handlers.
func NewJobManager(
	rebroadcastHandler commands.RebroadcastStaleOrdersCommandHandler,
	rebroadcastSchedule string,
	rebroadcastWindow time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleOrderRebroadcastJob: NewStaleOrderRebroadcastJob(
			rebroadcastHandler, rebroadcastSchedule, rebroadcastWindow, logger,
		),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.staleOrderRebroadcastJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale order re-broadcast job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleOrderRebroadcastJob.Stop()
}

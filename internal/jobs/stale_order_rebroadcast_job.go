package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"dispatch/internal/core/application/usecases/commands"
)

// StaleOrderRebroadcastJob periodically re-announces orders that are still
// unassigned, so couriers who came online after the original fan-out get a
// chance to claim them.
type StaleOrderRebroadcastJob struct {
	handler  commands.RebroadcastStaleOrdersCommandHandler
	cron     *cron.Cron
	schedule string
	window   time.Duration
	logger   *slog.Logger
}

// NewStaleOrderRebroadcastJob creates the re-broadcast job. The schedule is a
// standard 5-field cron expression; window bounds how old an unclaimed order
// may be and still get re-announced.
func NewStaleOrderRebroadcastJob(
	handler commands.RebroadcastStaleOrdersCommandHandler,
	schedule string,
	window time.Duration,
	logger *slog.Logger,
) *StaleOrderRebroadcastJob {
	return &StaleOrderRebroadcastJob{
		handler:  handler,
		cron:     cron.New(),
		schedule: schedule,
		window:   window,
		logger:   logger.With("component", "stale_order_rebroadcast_job"),
	}
}

// Start schedules the job.
func (j *StaleOrderRebroadcastJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewRebroadcastStaleOrdersCommand(j.window)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale order re-broadcast misconfigured", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Stale order re-broadcast failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order re-broadcast job started",
		"schedule", j.schedule, "window", j.window.String())
	return nil
}

// Stop stops the job.
func (j *StaleOrderRebroadcastJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order re-broadcast job stopped")
}

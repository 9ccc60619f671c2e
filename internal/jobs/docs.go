// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// The single job, StaleOrderRebroadcastJob, periodically re-runs the courier
// fan-out for orders that are still unassigned, so couriers who came online
// after an order was created still see it. Jobs are managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(rebroadcastHandler, "*/5 * * * *", 5*time.Hour, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs

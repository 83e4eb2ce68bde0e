// Package jobs provides scheduled background tasks for the matching engine.
//
// Jobs are built on github.com/robfig/cron/v3 with the seconds field enabled.
//
// # Available Jobs
//
// 1. OfferExpirationJob - expires offers whose response window elapsed,
// penalises the silent workers and re-offers the jobs
//
// # Usage
//
//	job := jobs.NewOfferExpirationJob(sweepHandler, clock, cfg.SweepSchedule, logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. Per-offer failures
// are reported inside the sweep itself and never stop the schedule.
package jobs

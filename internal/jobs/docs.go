// Package jobs provides scheduled background tasks for the field service system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the status workflow.
//
// # Available Jobs
//
// 1. NotificationRelayJob - Runs every second to drain buffered completion
// events and deliver them to the configured notification endpoint
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(queue, sender, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Notification delivery is best-effort: a failed event is logged and
// dropped rather than retried, and a full buffer drops new events instead
// of blocking workflow transactions.
package jobs

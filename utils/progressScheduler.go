package utils

import (
	"lms/database"
	"lms/progress"
	"log"

	"github.com/robfig/cron/v3"
)

// InitializeProgressScheduler starts the hourly refresh of the denormalized
// enrollment progress percentages. The cached values are a display hint for
// listings; every analytics read path recomputes from module-progress rows,
// so a missed run only makes the hint staler.
func InitializeProgressScheduler() {
	log.Println("[PROGRESS-SCHEDULER] Initializing progress cache scheduler...")

	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		log.Println("[PROGRESS-SCHEDULER] Refreshing enrollment progress cache...")
		svc := progress.NewService(database.Database.Db)
		if err := svc.RefreshEnrollmentProgressCache(); err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Refresh failed: %v", err)
			return
		}
		log.Println("[PROGRESS-SCHEDULER] Enrollment progress cache refreshed")
	})
	if err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Failed to schedule refresh job: %v", err)
		return
	}

	c.Start()
	log.Println("[PROGRESS-SCHEDULER] Progress cache scheduler started - runs hourly")
}

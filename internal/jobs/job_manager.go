package jobs

import (
	"fmt"
)

// JobManager starts and stops every scheduled job of the process.
type JobManager struct {
	offerExpirationJob *OfferExpirationJob
}

func NewJobManager(offerExpirationJob *OfferExpirationJob) *JobManager {
	return &JobManager{
		offerExpirationJob: offerExpirationJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.offerExpirationJob.Start(); err != nil {
		return fmt.Errorf("failed to start offer expiration job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.offerExpirationJob.Stop()
}

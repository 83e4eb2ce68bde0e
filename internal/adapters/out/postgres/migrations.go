package postgres

import (
	"context"
	"fmt"

	"jobmatch/internal/adapters/out/postgres/assignmentrepo"
	"jobmatch/internal/adapters/out/postgres/jobrepo"
	"jobmatch/internal/adapters/out/postgres/workerrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema, including the partial unique index
// on Pending offers.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&jobrepo.JobDTO{},
		&workerrepo.WorkerDTO{},
		&workerrepo.AvailabilityDTO{},
		&assignmentrepo.AssignmentDTO{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	if err := db.Exec(assignmentrepo.PendingPairIndexSQL).Error; err != nil {
		return fmt.Errorf("create %s: %w", assignmentrepo.PendingPairIndex, err)
	}
	return nil
}

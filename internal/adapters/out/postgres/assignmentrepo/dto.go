// Package assignmentrepo persists offers. Status moves are conditional
// UPDATEs so that concurrent accepts, rejects and sweeps resolve in the
// database.
package assignmentrepo

import (
	"fmt"
	"time"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// PendingPairIndex is the partial unique index that allows one Pending offer
// per job and worker.
const PendingPairIndex = "uniq_assignments_pending_pair"

// PendingPairIndexSQL creates PendingPairIndex. AutoMigrate cannot express it.
var PendingPairIndexSQL = fmt.Sprintf(
	"CREATE UNIQUE INDEX IF NOT EXISTS %s ON assignments (job_id, worker_id) WHERE status = %d",
	PendingPairIndex, int(assignment.Pending),
)

type AssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID      uuid.UUID `gorm:"type:uuid;not null;index"`
	WorkerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     int       `gorm:"type:smallint;not null;index:idx_assignments_status_expires,priority:1"`
	MatchScore float64   `gorm:"type:double precision;not null"`
	ExpiresAt  time.Time `gorm:"not null;index:idx_assignments_status_expires,priority:2"`
	AcceptedAt *time.Time
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         a.ID().Bytes(),
		JobID:      a.JobID().Bytes(),
		WorkerID:   a.WorkerID().Bytes(),
		Status:     int(a.Status()),
		MatchScore: a.MatchScore(),
		ExpiresAt:  a.ExpiresAt(),
		AcceptedAt: a.AcceptedAt(),
		CreatedAt:  a.CreatedAt(),
		UpdatedAt:  a.UpdatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	jobID, err := kernel.UUIDFromBytes(dto.JobID[:])
	if err != nil {
		return nil, err
	}
	workerID, err := kernel.UUIDFromBytes(dto.WorkerID[:])
	if err != nil {
		return nil, err
	}

	var acceptedAt *time.Time
	if dto.AcceptedAt != nil {
		at := dto.AcceptedAt.UTC()
		acceptedAt = &at
	}

	return assignment.RestoreAssignment(
		id, jobID, workerID,
		assignment.Status(dto.Status),
		dto.MatchScore,
		dto.ExpiresAt.UTC(),
		acceptedAt,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}

func toDomainAll(dtos []AssignmentDTO) ([]*assignment.Assignment, error) {
	offers := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		offers = append(offers, a)
	}
	return offers, nil
}

package queries

import (
	"context"
	"time"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetJobOffersQueryHandler reads the offers of a job straight from the
// database, oldest first. An unknown job is an errs.ObjectNotFoundError; a
// job nobody was offered yet yields an empty slice.
type GetJobOffersQueryHandler struct {
	db *gorm.DB
}

func NewGetJobOffersQueryHandler(db *gorm.DB) GetJobOffersQueryHandler {
	return GetJobOffersQueryHandler{db: db}
}

func (h GetJobOffersQueryHandler) Handle(ctx context.Context, query GetJobOffersQuery) ([]GetJobOffersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var exists bool
	if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM jobs WHERE id = ?)`, query.JobID().Bytes()).
		Scan(&exists).Error; err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("job", query.JobID())
	}

	rows, err := db.Raw(`
		SELECT
			a.id,
			a.worker_id,
			w.name,
			a.status,
			a.match_score,
			a.expires_at,
			a.accepted_at,
			a.created_at
		FROM assignments a
		JOIN workers w ON w.id = a.worker_id
		WHERE a.job_id = ?
		ORDER BY a.created_at, a.id
	`, query.JobID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]GetJobOffersQueryResponse, 0)
	for rows.Next() {
		var (
			offer              GetJobOffersQueryResponse
			id, workerID       uuid.UUID
			status             int
			acceptedAt         *time.Time
			expiresAt, created time.Time
		)

		if err = rows.Scan(
			&id,
			&workerID,
			&offer.WorkerName,
			&status,
			&offer.MatchScore,
			&expiresAt,
			&acceptedAt,
			&created,
		); err != nil {
			return nil, err
		}

		if offer.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if offer.WorkerID, err = kernel.UUIDFromBytes(workerID[:]); err != nil {
			return nil, err
		}

		offer.Status = assignment.Status(status)
		if err = offer.Status.Validate(); err != nil {
			return nil, err
		}

		offer.ExpiresAt = expiresAt.UTC()
		offer.CreatedAt = created.UTC()
		if acceptedAt != nil {
			at := acceptedAt.UTC()
			offer.AcceptedAt = &at
		}
		offers = append(offers, offer)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}

package jobrepo

import (
	"context"
	"errors"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormJobRepository implements ports.JobRepository using GORM.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CompareAndSwapStatus issues a single UPDATE guarded by the expected
// statuses. Concurrent callers serialise on the row lock and the loser sees
// zero affected rows.
func (r *GormJobRepository) CompareAndSwapStatus(
	ctx context.Context,
	id kernel.UUID,
	next job.Status,
	expected ...job.Status,
) (bool, error) {
	if err := errors.Join(id.Validate(), next.Validate()); err != nil {
		return false, err
	}
	if len(expected) == 0 {
		return false, errs.NewValueIsRequiredError("expected")
	}

	codes := make([]int, 0, len(expected))
	for _, s := range expected {
		codes = append(codes, int(s))
	}

	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND status IN ?", id.Bytes(), codes).
		Update("status", int(next))
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// ListStranded finds Assigned jobs without a Pending offer in one
// anti-join against the assignments table.
func (r *GormJobRepository) ListStranded(ctx context.Context) ([]kernel.UUID, error) {
	var rows []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("status = ?", int(job.Assigned)).
		Where("NOT EXISTS (SELECT 1 FROM assignments a WHERE a.job_id = jobs.id AND a.status = ?)",
			int(assignment.Pending)).
		Order("id").
		Pluck("id", &rows).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

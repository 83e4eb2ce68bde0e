package assignmentrepo

import (
	"context"
	"errors"
	"time"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new offer. A second Pending offer for the same pair violates
// PendingPairIndex and is reported as errs.ErrInvalidState.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewInvalidStateErrorWithCause("offer", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CompareAndSwapStatus writes the in-memory transition of aggregate with
// UPDATE ... WHERE id = ? AND status = expected.
func (r *GormAssignmentRepository) CompareAndSwapStatus(
	ctx context.Context,
	aggregate *assignment.Assignment,
	expected assignment.Status,
) (bool, error) {
	if err := errors.Join(aggregate.Validate(), expected.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), int(expected)).
		Updates(map[string]any{
			"status":      int(aggregate.Status()),
			"accepted_at": aggregate.AcceptedAt(),
			"updated_at":  aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return true, nil
}

func (r *GormAssignmentRepository) ListByJob(ctx context.Context, jobID kernel.UUID) ([]*assignment.Assignment, error) {
	if err := jobID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func (r *GormAssignmentRepository) ListExpiredBefore(ctx context.Context, now time.Time) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", int(assignment.Pending), now).
		Order("expires_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// CancelPendingForJob cancels the remaining Pending offers of a job in one
// statement and returns the rows it changed.
func (r *GormAssignmentRepository) CancelPendingForJob(
	ctx context.Context,
	jobID, exceptID kernel.UUID,
	now time.Time,
) ([]*assignment.Assignment, error) {
	if err := errors.Join(jobID.Validate(), exceptID.Validate()); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Model(&dtos).
		Clauses(clause.Returning{}).
		Where("job_id = ? AND status = ? AND id <> ?", jobID.Bytes(), int(assignment.Pending), exceptID.Bytes()).
		Updates(map[string]any{
			"status":     int(assignment.Cancelled),
			"updated_at": now,
		}).Error; err != nil {
		return nil, err
	}

	cancelled, err := toDomainAll(dtos)
	if err != nil {
		return nil, err
	}
	for _, a := range cancelled {
		r.tracker.TrackAggregate(a.ID(), a)
	}
	return cancelled, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

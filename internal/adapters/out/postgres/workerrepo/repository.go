package workerrepo

import (
	"context"
	"errors"
	"math"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/worker"
	"jobmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkerRepository implements ports.WorkerRepository using GORM.
// Reputation counters are changed with SQL expressions so concurrent
// sweeps and accepts never overwrite each other.
type GormWorkerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormWorkerRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkerRepository {
	return &GormWorkerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves the worker together with its availability slots.
func (r *GormWorkerRepository) Add(ctx context.Context, aggregate *worker.Worker) error {
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

func (r *GormWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkerDTO
	if err := r.db.WithContext(ctx).Preload("Availability").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("worker", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormWorkerRepository) ListActiveWithAvailability(ctx context.Context) ([]*worker.Worker, error) {
	var dtos []WorkerDTO
	if err := r.db.WithContext(ctx).
		Preload("Availability").
		Where("status = ? AND account_active = ?", int(worker.Active), true).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	workers := make([]*worker.Worker, 0, len(dtos))
	for _, dto := range dtos {
		w, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}

	return workers, nil
}

// AdjustAcceptanceRate adds delta to the stored rate and clamps the result to [0,1].
func (r *GormWorkerRepository) AdjustAcceptanceRate(ctx context.Context, id kernel.UUID, delta float64) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return errs.NewValueIsInvalidError("delta")
	}

	return r.updateInPlace(ctx, id, "acceptance_rate",
		gorm.Expr("GREATEST(0, LEAST(1, acceptance_rate + ?))", delta))
}

func (r *GormWorkerRepository) IncrementAcceptedJobs(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.updateInPlace(ctx, id, "accepted_jobs", gorm.Expr("accepted_jobs + 1"))
}

func (r *GormWorkerRepository) updateInPlace(ctx context.Context, id kernel.UUID, column string, expr any) error {
	result := r.db.WithContext(ctx).
		Model(&WorkerDTO{}).
		Where("id = ?", id.Bytes()).
		Update(column, expr)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("worker", id.String())
	}
	return nil
}

// Package workerrepo persists worker profiles and their weekly availability.
package workerrepo

import (
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

type WorkerDTO struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name            string            `gorm:"type:varchar(255);not null"`
	Status          int               `gorm:"type:smallint;not null;index"`
	AccountActive   bool              `gorm:"not null"`
	Home            LocationDTO       `gorm:"embedded;embeddedPrefix:home_"`
	ServiceRadiusKm float64           `gorm:"type:double precision;not null"`
	Rating          float64           `gorm:"type:double precision;not null"`
	AcceptanceRate  float64           `gorm:"type:double precision;not null"`
	PunctualityRate float64           `gorm:"type:double precision;not null"`
	AcceptedJobs    int               `gorm:"type:int;not null;default:0"`
	Availability    []AvailabilityDTO `gorm:"foreignKey:WorkerID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (WorkerDTO) TableName() string {
	return "workers"
}

type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

// AvailabilityDTO is one weekday slot; a worker has at most one per day.
type AvailabilityDTO struct {
	WorkerID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day         int       `gorm:"type:smallint;primaryKey"`
	WindowStart int       `gorm:"type:smallint;not null"`
	WindowEnd   int       `gorm:"type:smallint;not null"`
	Active      bool      `gorm:"not null"`
}

func (AvailabilityDTO) TableName() string {
	return "worker_availability"
}

func fromDomain(w *worker.Worker) WorkerDTO {
	workerID := w.ID().Bytes()
	slots := w.Availability().Slots()
	availability := make([]AvailabilityDTO, 0, len(slots))

	for _, s := range slots {
		availability = append(availability, AvailabilityDTO{
			WorkerID:    workerID,
			Day:         int(s.Day()),
			WindowStart: int(s.Window().Start()),
			WindowEnd:   int(s.Window().End()),
			Active:      s.IsActive(),
		})
	}

	rep := w.Reputation()
	return WorkerDTO{
		ID:            workerID,
		Name:          w.Name(),
		Status:        int(w.Status()),
		AccountActive: w.AccountActive(),
		Home: LocationDTO{
			Latitude:  w.Home().Latitude(),
			Longitude: w.Home().Longitude(),
		},
		ServiceRadiusKm: w.ServiceRadiusKm(),
		Rating:          rep.Rating(),
		AcceptanceRate:  rep.AcceptanceRate(),
		PunctualityRate: rep.PunctualityRate(),
		AcceptedJobs:    rep.AcceptedJobs(),
		Availability:    availability,
	}
}

func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	home, err := kernel.NewLocation(dto.Home.Latitude, dto.Home.Longitude)
	if err != nil {
		return nil, err
	}

	rep, err := worker.NewReputation(dto.Rating, dto.AcceptanceRate, dto.PunctualityRate, dto.AcceptedJobs)
	if err != nil {
		return nil, err
	}

	slots := make([]*worker.AvailabilitySlot, 0, len(dto.Availability))
	for _, a := range dto.Availability {
		slot, slotErr := availabilityToDomain(a)
		if slotErr != nil {
			return nil, slotErr
		}
		slots = append(slots, slot)
	}

	availability, err := worker.NewAvailability(slots...)
	if err != nil {
		return nil, err
	}

	return worker.RestoreWorker(id, dto.Name, worker.OperationalStatus(dto.Status), dto.AccountActive,
		home, dto.ServiceRadiusKm, rep, availability)
}

func availabilityToDomain(dto AvailabilityDTO) (*worker.AvailabilitySlot, error) {
	window, err := kernel.NewTimeWindow(kernel.ClockTime(dto.WindowStart), kernel.ClockTime(dto.WindowEnd))
	if err != nil {
		return nil, err
	}
	return worker.NewAvailabilitySlot(kernel.Weekday(dto.Day), window, dto.Active)
}

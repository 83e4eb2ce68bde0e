// Package jobrepo persists job aggregates with GORM.
package jobrepo

import (
	"time"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO is the row shape of the jobs table. The time window is stored as
// minutes since midnight.
type JobDTO struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Location      LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	ScheduledDate time.Time   `gorm:"type:date;not null"`
	WindowStart   int         `gorm:"type:smallint;not null"`
	WindowEnd     int         `gorm:"type:smallint;not null"`
	Status        int         `gorm:"type:smallint;not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (JobDTO) TableName() string {
	return "jobs"
}

type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

func fromDomain(j *job.Job) JobDTO {
	return JobDTO{
		ID: j.ID().Bytes(),
		Location: LocationDTO{
			Latitude:  j.Location().Latitude(),
			Longitude: j.Location().Longitude(),
		},
		ScheduledDate: j.ScheduledDate(),
		WindowStart:   int(j.TimeWindow().Start()),
		WindowEnd:     int(j.TimeWindow().End()),
		Status:        int(j.Status()),
	}
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	window, err := kernel.NewTimeWindow(kernel.ClockTime(dto.WindowStart), kernel.ClockTime(dto.WindowEnd))
	if err != nil {
		return nil, err
	}

	y, m, d := dto.ScheduledDate.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return job.RestoreJob(id, loc, date, window, job.Status(dto.Status))
}

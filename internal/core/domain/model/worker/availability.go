package worker

import (
	"fmt"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
)

// AvailabilitySlot is a worker's open window for one day of the week.
type AvailabilitySlot struct {
	day    kernel.Weekday
	window kernel.TimeWindow
	active bool
}

func NewAvailabilitySlot(day kernel.Weekday, window kernel.TimeWindow, active bool) (*AvailabilitySlot, error) {
	if !day.IsValid() {
		return nil, errs.NewValueIsOutOfRangeError("day", int(day), int(kernel.Sunday), int(kernel.Saturday))
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}
	return &AvailabilitySlot{day: day, window: window, active: active}, nil
}

func (s *AvailabilitySlot) Day() kernel.Weekday       { return s.day }
func (s *AvailabilitySlot) Window() kernel.TimeWindow { return s.window }
func (s *AvailabilitySlot) IsActive() bool            { return s.active }

// Availability holds at most one slot per weekday, indexed by kernel.Weekday.
// A nil entry means the worker is closed that day.
type Availability [kernel.DaysInWeek]*AvailabilitySlot

// NewAvailability indexes slots by day. Two slots for the same day are rejected.
func NewAvailability(slots ...*AvailabilitySlot) (Availability, error) {
	var a Availability
	for _, slot := range slots {
		if slot == nil {
			continue
		}
		if a[slot.day] != nil {
			return Availability{}, errs.NewValueIsInvalidErrorWithCause("availability",
				fmt.Errorf("more than one slot for %s", slot.day))
		}
		a[slot.day] = slot
	}
	return a, nil
}

// SlotFor returns the slot for day, or nil.
func (a Availability) SlotFor(day kernel.Weekday) *AvailabilitySlot {
	if !day.IsValid() {
		return nil
	}
	return a[day]
}

// IsAvailableOn reports whether an active slot exists for day.
func (a Availability) IsAvailableOn(day kernel.Weekday) bool {
	slot := a.SlotFor(day)
	return slot != nil && slot.active
}

// Covers reports whether the active slot for day fully contains window.
func (a Availability) Covers(day kernel.Weekday, window kernel.TimeWindow) bool {
	if !a.IsAvailableOn(day) {
		return false
	}
	return a[day].window.Contains(window)
}

// Slots lists the configured slots, Sunday first.
func (a Availability) Slots() []*AvailabilitySlot {
	slots := make([]*AvailabilitySlot, 0, kernel.DaysInWeek)
	for _, slot := range a {
		if slot != nil {
			slots = append(slots, slot)
		}
	}
	return slots
}

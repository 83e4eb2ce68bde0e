package kernel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

const minutesPerDay = 24 * 60

// ClockTime is a time of day with minute precision, stored as minutes since midnight.
type ClockTime int

// ParseClockTime parses "HH:MM" in 24-hour notation.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("clockTime", err)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// NewClockTime builds a ClockTime from hour and minute.
func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 {
		return 0, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return 0, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59)
	}
	return ClockTime(hour*60 + minute), nil
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Duration is the offset from midnight.
func (c ClockTime) Duration() time.Duration {
	return time.Duration(c) * time.Minute
}

var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow or ParseTimeWindow")

// TimeWindow is a same-day interval [start, end) with start strictly before end.
type TimeWindow struct { //nolint:recvcheck //using for validation
	start ClockTime
	end   ClockTime
	guard guard.ConstructorGuard
}

// NewTimeWindow fails with a validation error when start is not before end.
func NewTimeWindow(start, end ClockTime) (TimeWindow, error) {
	w := TimeWindow{guard: guard.NewConstructorGuard()}
	if err := w.setBounds(start, end); err != nil {
		return TimeWindow{}, err
	}
	return w, nil
}

// ParseTimeWindow parses "HH:MM-HH:MM", e.g. "09:00-12:00".
func ParseTimeWindow(s string) (TimeWindow, error) {
	startRaw, endRaw, ok := strings.Cut(s, "-")
	if !ok {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("timeWindow",
			fmt.Errorf("%q is not in HH:MM-HH:MM form", s))
	}

	start, startErr := ParseClockTime(startRaw)
	end, endErr := ParseClockTime(endRaw)
	if err := errors.Join(startErr, endErr); err != nil {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("timeWindow", err)
	}

	return NewTimeWindow(start, end)
}

func (w *TimeWindow) setBounds(start, end ClockTime) error {
	if start < 0 || end > minutesPerDay || start >= end {
		return errs.NewValueIsInvalidErrorWithCause("timeWindow",
			fmt.Errorf("start %s must be before end %s", start, end))
	}
	w.start = start
	w.end = end
	return nil
}

func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

func (w TimeWindow) Start() ClockTime { return w.start }
func (w TimeWindow) End() ClockTime   { return w.end }

// String renders the window in the form accepted by ParseTimeWindow.
func (w TimeWindow) String() string {
	return w.start.String() + "-" + w.end.String()
}

// Contains reports whether other lies entirely within w.
func (w TimeWindow) Contains(other TimeWindow) bool {
	return w.start <= other.start && other.end <= w.end
}

// Overlaps reports whether the two windows share any minute.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start < other.end && other.start < w.end
}

// On anchors the window start to the calendar day of date.
func (w TimeWindow) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(w.start.Duration())
}

package kernel

import (
	"strings"
	"time"

	"jobmatch/internal/pkg/errs"
)

// Weekday is a closed enumeration of the seven days. Values line up with
// time.Weekday so the zero value is Sunday.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DaysInWeek bounds arrays keyed by Weekday.
const DaysInWeek = 7

var weekdayNames = [DaysInWeek]string{
	"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY",
}

// WeekdayOf returns the day of the week of t in t's location.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

// ParseWeekday accepts full or three-letter English day names, case-insensitive.
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, full := range weekdayNames {
		if name == full || (len(name) == 3 && strings.HasPrefix(full, name)) {
			return Weekday(i), nil
		}
	}
	return 0, errs.NewValueIsInvalidError("weekday")
}

func (d Weekday) String() string {
	if !d.IsValid() {
		return "UNKNOWN"
	}
	return weekdayNames[d]
}

// IsValid reports whether d is one of the seven days.
func (d Weekday) IsValid() bool {
	return d >= Sunday && d <= Saturday
}

// AllWeekdays lists days Sunday first.
func AllWeekdays() []Weekday {
	return []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

package slot

import (
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
)

// TimeOfDay is a clock time within a day ("15:04"), used for slot windows.
// It deliberately carries no date or timezone; the delivery date comes from
// the availability row.
type TimeOfDay struct {
	hour   int
	minute int
}

// ParseTimeOfDay parses an "HH:MM" string into a TimeOfDay.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", raw)
	if err != nil {
		return TimeOfDay{}, errs.NewValueIsInvalidErrorWithCause(
			"timeOfDay", fmt.Errorf("%q is not in HH:MM format", raw))
	}
	return TimeOfDay{hour: parsed.Hour(), minute: parsed.Minute()}, nil
}

// NewTimeOfDay creates a TimeOfDay from hour and minute components.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59)
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

// Validate checks the components are within clock bounds.
func (t TimeOfDay) Validate() error {
	_, err := NewTimeOfDay(t.hour, t.minute)
	return err
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int {
	return t.hour
}

// Minute returns the minute component.
func (t TimeOfDay) Minute() int {
	return t.minute
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.hour != other.hour {
		return t.hour < other.hour
	}
	return t.minute < other.minute
}

// String returns the "HH:MM" representation.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

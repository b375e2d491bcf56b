package domain

import (
	"fmt"
	"time"
)

// ClockTime is a wall-clock time of day expressed as minutes since midnight.
// Time entries always fall within a single day, so a minute-of-day value is
// enough to describe their start and end.
type ClockTime int

// NewClockTime creates a ClockTime from an hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ClockTimeOf extracts the ClockTime from a full timestamp.
func ClockTimeOf(t time.Time) ClockTime {
	return NewClockTime(t.Hour(), t.Minute())
}

// Hour returns the hour component (0-23).
func (c ClockTime) Hour() int {
	return int(c) / 60
}

// Minute returns the minute component (0-59).
func (c ClockTime) Minute() int {
	return int(c) % 60
}

// IsValid reports whether the value lies within a single day.
func (c ClockTime) IsValid() bool {
	return c >= 0 && c < 24*60
}

// String formats the time as "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Compact formats the time as "HHMM", the form used inside entry descriptions.
func (c ClockTime) Compact() string {
	return fmt.Sprintf("%02d%02d", c.Hour(), c.Minute())
}

// Sub returns the duration between two clock times.
func (c ClockTime) Sub(other ClockTime) time.Duration {
	return time.Duration(int(c)-int(other)) * time.Minute
}

// Add returns the clock time advanced by the given duration.
// The result may exceed the day boundary; callers check IsValid.
func (c ClockTime) Add(d time.Duration) ClockTime {
	return c + ClockTime(d/time.Minute)
}

// At combines the clock time with a calendar date in the date's location.
func (c ClockTime) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, date.Location())
}

package validation

import (
	"math"
	"strconv"
	"strings"
	"time"

	"synk/internal/domain"
)

// ParseClockInput parses a time-of-day entered as bare digits in (h)hmm
// form, e.g. "800" or "1730". Anything else is a validation error.
func ParseClockInput(input string) (domain.ClockTime, error) {
	trimmed := strings.TrimSpace(input)

	if len(trimmed) < 3 || len(trimmed) > 4 || !isDigits(trimmed) {
		return 0, invalidClockError(input)
	}
	if len(trimmed) == 3 {
		trimmed = "0" + trimmed
	}

	hour, _ := strconv.Atoi(trimmed[:2])
	minute, _ := strconv.Atoi(trimmed[2:])
	if hour > 23 || minute > 59 {
		return 0, invalidClockError(input)
	}

	return domain.NewClockTime(hour, minute), nil
}

// ParseEndInput resolves the end-of-entry input, which is either a clock
// time in (h)hmm form or a positive decimal duration in hours ("1.5").
// The resulting end must lie after start and within the same day.
func ParseEndInput(start domain.ClockTime, input string) (domain.ClockTime, error) {
	trimmed := strings.TrimSpace(input)

	if end, err := ParseClockInput(trimmed); err == nil {
		if end <= start {
			ve := NewValidationError()
			ve.AddInvalidRangeError("end_time", input, "end time must be after start time")
			return 0, ve
		}
		return end, nil
	}

	hours, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		ve := NewValidationError()
		ve.AddInvalidFormatError("end_time", input, "(h)hmm or a decimal number of hours (e.g. 1.5)")
		return 0, ve
	}
	if hours <= 0 {
		ve := NewValidationError()
		ve.AddInvalidValueError("end_time", input, "duration must be positive")
		return 0, ve
	}

	end := start.Add(durationFromHours(hours))
	if !end.IsValid() {
		ve := NewValidationError()
		ve.AddInvalidRangeError("end_time", input, "entry must end within the same day")
		return 0, ve
	}
	return end, nil
}

func invalidClockError(value string) *ValidationError {
	ve := NewValidationError()
	ve.AddInvalidFormatError("clock_time", value, "(h)hmm, e.g. 800 or 1730")
	return ve
}

// durationFromHours converts decimal hours to a duration with minute
// granularity, matching the resolution of ClockTime.
func durationFromHours(hours float64) time.Duration {
	return time.Duration(math.Round(hours*60)) * time.Minute
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

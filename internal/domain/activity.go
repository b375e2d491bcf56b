package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// timeSuffixPattern matches the "(HHMM-HHMM)" marker this tool appends to
// activity descriptions.
var timeSuffixPattern = regexp.MustCompile(`\((\d{2})(\d{2})-(\d{2})(\d{2})\)`)

// ActivityRef identifies the project or task an activity was booked on.
type ActivityRef struct {
	ID   int64
	Name string
}

// Activity is a time entry as returned by the Moco activities endpoint.
type Activity struct {
	ID          int64
	Date        string
	Hours       float64
	Description string
	Project     ActivityRef
	Task        ActivityRef
}

// TimeWindow parses the start and end clock times out of the activity
// description. Activities created outside this tool carry no marker; for
// those ok is false.
func (a Activity) TimeWindow() (start, end ClockTime, ok bool) {
	m := timeSuffixPattern.FindStringSubmatch(a.Description)
	if m == nil {
		return 0, 0, false
	}
	start = NewClockTime(atoi(m[1]), atoi(m[2]))
	end = NewClockTime(atoi(m[3]), atoi(m[4]))
	return start, end, true
}

// CleanDescription returns the description with the time marker removed.
func (a Activity) CleanDescription() string {
	return strings.TrimSpace(timeSuffixPattern.ReplaceAllString(a.Description, ""))
}

// atoi converts a string of digits already matched by the pattern.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

package domain

import (
	"math"
	"strings"
	"time"
)

// EntryDraft is a time entry under construction during the interactive flow.
// It is only ever held in memory; a successful submission turns it into a
// Moco activity and, when an issue is linked, a JIRA worklog.
type EntryDraft struct {
	Project  Project
	Task     Task
	Date     time.Time
	Start    ClockTime
	End      ClockTime
	Comment  string
	IssueKey string
}

// Duration returns the length of the drafted entry.
func (d EntryDraft) Duration() time.Duration {
	return d.End.Sub(d.Start)
}

// Hours returns the entry length in decimal hours, rounded to four places
// as expected by the Moco activities endpoint.
func (d EntryDraft) Hours() float64 {
	hours := d.Duration().Hours()
	return math.Round(hours*10000) / 10000
}

// TimeSuffix returns the "(HHMM-HHMM)" marker appended to descriptions.
func (d EntryDraft) TimeSuffix() string {
	return "(" + d.Start.Compact() + "-" + d.End.Compact() + ")"
}

// Description builds the entry description: issue key, comment and time
// suffix, with empty parts omitted.
func (d EntryDraft) Description() string {
	parts := make([]string, 0, 3)
	if d.IssueKey != "" {
		parts = append(parts, d.IssueKey)
	}
	if d.Comment != "" {
		parts = append(parts, d.Comment)
	}
	parts = append(parts, d.TimeSuffix())
	return strings.Join(parts, " ")
}

// HasIssue reports whether the draft links a JIRA issue.
func (d EntryDraft) HasIssue() bool {
	return d.IssueKey != ""
}

// EndTimestamp returns the full timestamp at which the drafted entry ends.
func (d EntryDraft) EndTimestamp() time.Time {
	return d.End.At(d.Date)
}

// Worklog builds the JIRA worklog paired with the draft. Only meaningful
// when HasIssue is true.
func (d EntryDraft) Worklog() Worklog {
	comment := strings.TrimSpace(d.Comment + " " + d.TimeSuffix())
	return Worklog{
		IssueKey: d.IssueKey,
		Duration: d.Duration(),
		Comment:  comment,
		Started:  d.Start.At(d.Date),
	}
}

// Worklog is a duration-and-comment record attached to a JIRA issue.
type Worklog struct {
	IssueKey string
	Duration time.Duration
	Comment  string
	Started  time.Time
}

// Seconds returns the worklog duration in whole seconds.
func (w Worklog) Seconds() int {
	return int(w.Duration / time.Second)
}

// Issue is a JIRA issue as far as this tool cares about it.
type Issue struct {
	Key     string
	Summary string
}

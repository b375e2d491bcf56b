package tracker

import (
	"context"
	"time"

	"synk/internal/domain"
)

// TimeBackend is the time-tracking capability the flow depends on.
// The Moco client satisfies it through the MocoBackend adapter.
type TimeBackend interface {
	AssignedProjects(ctx context.Context) ([]domain.Project, error)
	Activities(ctx context.Context, from, to time.Time) ([]domain.Activity, error)
	CreateActivity(ctx context.Context, draft domain.EntryDraft) (domain.Activity, error)
}

// IssueBackend is the issue-tracker capability the flow depends on.
// It is optional; a nil backend disables the issue-linking step.
type IssueBackend interface {
	FindIssue(ctx context.Context, key string) (domain.Issue, error)
	RecentIssues(ctx context.Context, max int) ([]domain.Issue, error)
	AddWorklog(ctx context.Context, worklog domain.Worklog) error
}

// StateStore persists the end timestamp of the last submitted entry.
type StateStore interface {
	Read() (time.Time, bool, error)
	Write(stamp time.Time) error
}

// SubmitResult reports which halves of a submission were written.
// WorklogErr is set when the time entry was created but the worklog
// could not be added; the flow can retry that half alone.
type SubmitResult struct {
	Activity         domain.Activity
	TimeEntryCreated bool
	WorklogErr       error
}

// Service implements the business rules of the interactive entry flow.
type Service interface {
	// ProjectChoices returns the selectable projects: active, with at
	// least one active task, sorted by customer then name. The project
	// matching lastProjectID is moved to the front as the default.
	ProjectChoices(ctx context.Context, lastProjectID int64) ([]domain.Project, error)

	// TaskChoices returns the selectable tasks of a project, with the
	// index of the task to pre-select (-1 when none matches the
	// configured default pattern).
	TaskChoices(project domain.Project) ([]domain.Task, int)

	// StartSuggestion returns the end time of the last submitted entry
	// when it falls on the given work date. It never fabricates a value.
	StartSuggestion(date time.Time) (domain.ClockTime, bool)

	// ResolveEnd interprets end-of-entry input as either a clock time
	// or a decimal duration in hours added to start.
	ResolveEnd(start domain.ClockTime, input string) (domain.ClockTime, error)

	// IssuesEnabled reports whether an issue backend is configured.
	IssuesEnabled() bool

	// FindIssue validates an issue key against the issue tracker.
	FindIssue(ctx context.Context, key string) (domain.Issue, error)

	// RecentIssues lists recently touched issues assigned to the user.
	RecentIssues(ctx context.Context, max int) ([]domain.Issue, error)

	// Submit creates the time entry and, when an issue is linked, the
	// worklog. The last-entry store is updated only after the time
	// entry is created.
	Submit(ctx context.Context, draft domain.EntryDraft) (SubmitResult, error)

	// RetryWorklog retries only the worklog half of a failed submission.
	RetryWorklog(ctx context.Context, worklog domain.Worklog) error

	// DailyActivities returns the day's entries ordered by their time
	// window, untimed entries last.
	DailyActivities(ctx context.Context, date time.Time) ([]domain.Activity, error)
}

package tracker

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"synk/internal/config"
	"synk/internal/domain"
	"synk/internal/errors"
	"synk/internal/validation"
)

// issueKeyPattern matches JIRA-style issue keys such as PROJ-123.
var issueKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*-[0-9]+$`)

// trackerService implements the Service interface
type trackerService struct {
	timeBackend  TimeBackend
	issueBackend IssueBackend
	store        StateStore
	flow         config.FlowSettings
	validator    *validation.DraftValidator
	logger       *slog.Logger
}

// NewService creates a new Service instance. issueBackend may be nil when
// no issue tracker is configured.
func NewService(timeBackend TimeBackend, issueBackend IssueBackend, store StateStore, flow config.FlowSettings, logger *slog.Logger) Service {
	return &trackerService{
		timeBackend:  timeBackend,
		issueBackend: issueBackend,
		store:        store,
		flow:         flow,
		validator:    validation.NewDraftValidator(),
		logger:       logger,
	}
}

// ProjectChoices returns the selectable projects for the project step.
func (s *trackerService) ProjectChoices(ctx context.Context, lastProjectID int64) ([]domain.Project, error) {
	projects, err := s.timeBackend.AssignedProjects(ctx)
	if err != nil {
		return nil, err
	}

	choices := make([]domain.Project, 0, len(projects))
	for _, project := range projects {
		if !project.Active {
			continue
		}
		active := activeTasks(project.Tasks)
		if len(active) == 0 {
			continue
		}
		project.Tasks = active
		choices = append(choices, project)
	}

	sort.SliceStable(choices, func(i, j int) bool {
		if choices[i].Customer != choices[j].Customer {
			return choices[i].Customer < choices[j].Customer
		}
		return choices[i].Name < choices[j].Name
	})

	// The previously used project becomes the default by moving to the front.
	if lastProjectID > 0 {
		for i, project := range choices {
			if project.ID != lastProjectID {
				continue
			}
			if i > 0 {
				choices = append(choices[:i], choices[i+1:]...)
				choices = append([]domain.Project{project}, choices...)
			}
			break
		}
	}

	return choices, nil
}

// TaskChoices returns the selectable tasks of a project together with the
// index of the pre-selected default, or -1 when no task matches the
// configured default pattern.
func (s *trackerService) TaskChoices(project domain.Project) ([]domain.Task, int) {
	tasks := make([]domain.Task, 0, len(project.Tasks))
	for _, task := range project.Tasks {
		if !task.Active {
			continue
		}
		if s.flow.TaskFilterPattern != nil && s.flow.TaskFilterPattern.MatchString(task.Name) {
			continue
		}
		tasks = append(tasks, task)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Billable != tasks[j].Billable {
			return tasks[i].Billable
		}
		return tasks[i].Name < tasks[j].Name
	})

	defaultIndex := -1
	if s.flow.DefaultTaskPattern != nil {
		for i, task := range tasks {
			if s.flow.DefaultTaskPattern.MatchString(task.Name) {
				defaultIndex = i
				break
			}
		}
	}

	return tasks, defaultIndex
}

// StartSuggestion returns the stored last-entry end time when it falls on
// the given work date.
func (s *trackerService) StartSuggestion(date time.Time) (domain.ClockTime, bool) {
	stamp, ok, err := s.store.Read()
	if err != nil {
		s.logger.Debug("could not read last-entry state", "error", err)
		return 0, false
	}
	if !ok {
		return 0, false
	}

	stamp = stamp.In(time.Local)
	if !sameDay(stamp, date) {
		return 0, false
	}
	return domain.ClockTimeOf(stamp), true
}

// ResolveEnd interprets end input as a clock time or a decimal duration.
func (s *trackerService) ResolveEnd(start domain.ClockTime, input string) (domain.ClockTime, error) {
	return validation.ParseEndInput(start, input)
}

// IssuesEnabled reports whether an issue backend is configured.
func (s *trackerService) IssuesEnabled() bool {
	return s.issueBackend != nil
}

// FindIssue validates the issue key format and looks the issue up.
func (s *trackerService) FindIssue(ctx context.Context, key string) (domain.Issue, error) {
	if s.issueBackend == nil {
		return domain.Issue{}, errors.NewConfigError("no issue tracker configured", nil)
	}

	key = strings.ToUpper(strings.TrimSpace(key))
	if !issueKeyPattern.MatchString(key) {
		validationErr := validation.NewValidationError()
		validationErr.AddInvalidFormatError("issue_key", key, "PROJECT-123")
		return domain.Issue{}, errors.NewValidationError("invalid issue key", validationErr)
	}

	return s.issueBackend.FindIssue(ctx, key)
}

// RecentIssues lists recently touched issues assigned to the user.
func (s *trackerService) RecentIssues(ctx context.Context, max int) ([]domain.Issue, error) {
	if s.issueBackend == nil {
		return nil, errors.NewConfigError("no issue tracker configured", nil)
	}
	return s.issueBackend.RecentIssues(ctx, max)
}

// Submit creates the Moco time entry, updates the last-entry store and,
// when an issue is linked, adds the worklog. A worklog failure after a
// successful time entry is reported in the result, not as an error, so
// the caller can retry that half alone.
func (s *trackerService) Submit(ctx context.Context, draft domain.EntryDraft) (SubmitResult, error) {
	if err := s.validator.ValidateDraft(draft); err != nil {
		return SubmitResult{}, errors.WrapError(err, errors.ErrorTypeValidation, "invalid time entry")
	}

	activity, err := s.timeBackend.CreateActivity(ctx, draft)
	if err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{Activity: activity, TimeEntryCreated: true}

	// The record is overwritten after every successful submission, back-dated
	// or not, so the next entry of the session chains from this one.
	if err := s.store.Write(draft.EndTimestamp()); err != nil {
		s.logger.Warn("could not update last-entry state", "error", err)
	}

	if draft.HasIssue() && s.issueBackend != nil {
		if err := s.issueBackend.AddWorklog(ctx, draft.Worklog()); err != nil {
			result.WorklogErr = err
		}
	}

	return result, nil
}

// RetryWorklog retries only the worklog half of a failed submission.
func (s *trackerService) RetryWorklog(ctx context.Context, worklog domain.Worklog) error {
	if s.issueBackend == nil {
		return errors.NewConfigError("no issue tracker configured", nil)
	}
	return s.issueBackend.AddWorklog(ctx, worklog)
}

// DailyActivities returns the day's entries ordered by their time window.
func (s *trackerService) DailyActivities(ctx context.Context, date time.Time) ([]domain.Activity, error) {
	activities, err := s.timeBackend.Activities(ctx, date, date)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(activities, func(i, j int) bool {
		startI, _, okI := activities[i].TimeWindow()
		startJ, _, okJ := activities[j].TimeWindow()
		if okI != okJ {
			return okI // untimed entries sort last
		}
		return startI < startJ
	})

	return activities, nil
}

func activeTasks(tasks []domain.Task) []domain.Task {
	active := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Active {
			active = append(active, task)
		}
	}
	return active
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

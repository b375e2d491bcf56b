package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synk/internal/domain"
	"synk/internal/errors"
	"synk/internal/tracker"
	"synk/internal/ui"
	"synk/internal/validation"
)

// fakeService implements tracker.Service for flow tests
type fakeService struct {
	projects        []domain.Project
	projectsErr     error
	lastProjectIDs  []int64
	issues          map[string]domain.Issue
	recent          []domain.Issue
	enabled         bool
	suggestion      domain.ClockTime
	hasSuggestion   bool
	daily           []domain.Activity
	submitted       []domain.EntryDraft
	submitResult    tracker.SubmitResult
	submitErr       error
	retriedWorklogs []domain.Worklog
	retryErr        error
}

func (f *fakeService) ProjectChoices(ctx context.Context, lastProjectID int64) ([]domain.Project, error) {
	f.lastProjectIDs = append(f.lastProjectIDs, lastProjectID)
	return f.projects, f.projectsErr
}

func (f *fakeService) TaskChoices(project domain.Project) ([]domain.Task, int) {
	return project.Tasks, -1
}

func (f *fakeService) StartSuggestion(date time.Time) (domain.ClockTime, bool) {
	return f.suggestion, f.hasSuggestion
}

func (f *fakeService) ResolveEnd(start domain.ClockTime, input string) (domain.ClockTime, error) {
	return validation.ParseEndInput(start, input)
}

func (f *fakeService) IssuesEnabled() bool {
	return f.enabled
}

func (f *fakeService) FindIssue(ctx context.Context, key string) (domain.Issue, error) {
	issue, ok := f.issues[strings.ToUpper(strings.TrimSpace(key))]
	if !ok {
		return domain.Issue{}, errors.NewNotFoundError("issue", key)
	}
	return issue, nil
}

func (f *fakeService) RecentIssues(ctx context.Context, max int) ([]domain.Issue, error) {
	return f.recent, nil
}

func (f *fakeService) Submit(ctx context.Context, draft domain.EntryDraft) (tracker.SubmitResult, error) {
	if f.submitErr != nil {
		return tracker.SubmitResult{}, f.submitErr
	}
	f.submitted = append(f.submitted, draft)
	return f.submitResult, nil
}

func (f *fakeService) RetryWorklog(ctx context.Context, worklog domain.Worklog) error {
	if f.retryErr != nil {
		return f.retryErr
	}
	f.retriedWorklogs = append(f.retriedWorklogs, worklog)
	return nil
}

func (f *fakeService) DailyActivities(ctx context.Context, date time.Time) ([]domain.Activity, error) {
	return f.daily, nil
}

// scriptedSelector returns pre-recorded selection results in order
type scriptedSelector struct {
	choices []int
	errs    []error
	calls   int
	titles  []string
}

func (s *scriptedSelector) selectFunc(title string, items []ui.SelectItem, defaultIndex int) (int, error) {
	s.titles = append(s.titles, title)
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return -1, s.errs[i]
	}
	if i >= len(s.choices) {
		return -1, ui.ErrAborted
	}
	return s.choices[i], nil
}

func setupFlow(service tracker.Service, input string, selector *scriptedSelector) (*trackFlow, *bytes.Buffer) {
	var out bytes.Buffer
	flow := newTrackFlow(service, strings.NewReader(input), &out, slog.New(slog.DiscardHandler))
	flow.selector = selector.selectFunc
	flow.now = func() time.Time {
		return time.Date(2024, 3, 15, 18, 0, 0, 0, time.Local)
	}
	return flow, &out
}

func sampleService() *fakeService {
	return &fakeService{
		projects: []domain.Project{
			{ID: 1, Name: "App", Customer: "Acme", Active: true, Tasks: []domain.Task{
				{ID: 10, Name: "Development", Active: true, Billable: true},
			}},
		},
		submitResult: tracker.SubmitResult{Activity: domain.Activity{ID: 42}, TimeEntryCreated: true},
	}
}

func TestTrackFlow_SubmitsASingleEntry(t *testing.T) {
	// Arrange
	service := sampleService()
	service.suggestion = domain.NewClockTime(17, 0)
	service.hasSuggestion = true

	// date (default), start (default 1700), end, comment, add another (no)
	input := "\n\n1730\nstandup\n\n"
	selector := &scriptedSelector{choices: []int{0, 0, 0}} // project, task, confirm: submit
	flow, out := setupFlow(service, input, selector)

	// Act
	err := flow.Run(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, service.submitted, 1)

	draft := service.submitted[0]
	assert.Equal(t, int64(1), draft.Project.ID)
	assert.Equal(t, int64(10), draft.Task.ID)
	assert.Equal(t, domain.NewClockTime(17, 0), draft.Start)
	assert.Equal(t, domain.NewClockTime(17, 30), draft.End)
	assert.Equal(t, "standup", draft.Comment)
	assert.Empty(t, draft.IssueKey)
	assert.Equal(t, 15, draft.Date.Day())

	assert.Contains(t, out.String(), "Booked 0.50h")
}

func TestTrackFlow_SeedsTheProjectDefaultFromTheDay(t *testing.T) {
	// Arrange
	service := sampleService()
	service.daily = []domain.Activity{
		{ID: 1, Description: "standup (0900-0915)", Project: domain.ActivityRef{ID: 3, Name: "Ops"}},
		{ID: 2, Description: "review (1300-1400)", Project: domain.ActivityRef{ID: 7, Name: "App"}},
		{ID: 3, Description: "imported entry", Project: domain.ActivityRef{ID: 9, Name: "Misc"}},
	}

	input := "\n0900\n1000\nwork\n\n"
	selector := &scriptedSelector{choices: []int{0, 0, 0}}
	flow, _ := setupFlow(service, input, selector)

	// Act
	err := flow.Run(context.Background())

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, service.lastProjectIDs)
	assert.Equal(t, int64(7), service.lastProjectIDs[0],
		"first project prompt defaults to the day's most recent timed entry")
}

func TestTrackFlow_LinksAnIssueWhenConfigured(t *testing.T) {
	// Arrange
	service := sampleService()
	service.enabled = true
	service.issues = map[string]domain.Issue{
		"PROJ-123": {Key: "PROJ-123", Summary: "Fix the login flow"},
	}

	// date, issue key, start, end, comment, add another (no)
	input := "\nproj-123\n0900\n1.5\nreview\n\n"
	selector := &scriptedSelector{choices: []int{0, 0, 0}}
	flow, out := setupFlow(service, input, selector)

	// Act
	err := flow.Run(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, service.submitted, 1)

	draft := service.submitted[0]
	assert.Equal(t, "PROJ-123", draft.IssueKey)
	assert.Equal(t, domain.NewClockTime(10, 30), draft.End, "1.5 hours after 09:00")
	assert.Contains(t, out.String(), "Fix the login flow")
}

func TestTrackFlow_ReAsksAfterUnknownIssueKey(t *testing.T) {
	// Arrange
	service := sampleService()
	service.enabled = true
	service.issues = map[string]domain.Issue{
		"PROJ-123": {Key: "PROJ-123", Summary: "Fix the login flow"},
	}

	// unknown key first, then a valid one
	input := "\nPROJ-999\nPROJ-123\n0900\n1000\n\n\n"
	selector := &scriptedSelector{choices: []int{0, 0, 0}}
	flow, _ := setupFlow(service, input, selector)

	// Act
	err := flow.Run(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, service.submitted, 1)
	assert.Equal(t, "PROJ-123", service.submitted[0].IssueKey)
}

func TestTrackFlow_PicksARecentIssue(t *testing.T) {
	// Arrange
	service := sampleService()
	service.enabled = true
	service.recent = []domain.Issue{
		{Key: "PROJ-1", Summary: "First"},
		{Key: "PROJ-2", Summary: "Second"},
	}

	input := "\n?\n0900\n1000\n\n\n"
	selector := &scriptedSelector{choices: []int{0, 0, 1, 0}} // project, task, issue pick, confirm
	flow, _ := setupFlow(service, input, selector)

	// Act
	err := flow.Run(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, service.submitted, 1)
	assert.Equal(t, "PROJ-2", service.submitted[0].IssueKey)
}

func TestTrackFlow_RevisesTheCommentFromConfirmation(t *testing.T) {
	// Arrange
	service := sampleService()

	// date, start, end, first comment, revised comment (default keeps old), add another
	input := "\n0900\n1000\nfirst draft\nfinal comment\n\n"
	selector := &scriptedSelector{choices: []int{0, 0, 5, 0}} // confirm: change comment, then submit
	flow, _ := setupFlow(service, input, selector)

	// Act
	err := flow.Run(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, service.submitted, 1)
	assert.Equal(t, "final comment", service.submitted[0].Comment)
}

func TestTrackFlow_DiscardsTheEntry(t *testing.T) {
	// Arrange
	service := sampleService()

	input := "\n0900\n1000\nwork\n\n"
	selector := &scriptedSelector{choices: []int{0, 0, 6}} // confirm: discard
	flow, out := setupFlow(service, input, selector)

	// Act
	err := flow.Run(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, service.submitted)
	assert.Contains(t, out.String(), "discarded")
}

func TestTrackFlow_CancelsOnAbortedSelection(t *testing.T) {
	// Arrange
	service := sampleService()

	input := "\n"
	selector := &scriptedSelector{choices: []int{-1}, errs: []error{ui.ErrAborted}}
	flow, out := setupFlow(service, input, selector)

	// Act
	err := flow.Run(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, service.submitted)
	assert.Contains(t, out.String(), "Cancelled")
}

func TestTrackFlow_RetriesTheWorklogHalf(t *testing.T) {
	// Arrange
	service := sampleService()
	service.enabled = true
	service.issues = map[string]domain.Issue{
		"PROJ-123": {Key: "PROJ-123", Summary: "Fix the login flow"},
	}
	service.submitResult = tracker.SubmitResult{
		Activity:         domain.Activity{ID: 42},
		TimeEntryCreated: true,
		WorklogErr:       errors.NewRemoteError("jira", "add worklog", 500, nil),
	}

	// date, issue, start, end, comment, retry worklog (yes), add another (no)
	input := "\nPROJ-123\n0900\n1000\nreview\ny\n\n"
	selector := &scriptedSelector{choices: []int{0, 0, 0}}
	flow, out := setupFlow(service, input, selector)

	// Act
	err := flow.Run(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, service.submitted, 1)
	require.Len(t, service.retriedWorklogs, 1)
	assert.Equal(t, "PROJ-123", service.retriedWorklogs[0].IssueKey)
	assert.Contains(t, out.String(), "Worklog added to PROJ-123")
}

func TestTrackFlow_OffersRetryOnRemoteFailure(t *testing.T) {
	// Arrange
	service := sampleService()
	service.projectsErr = errors.NewRemoteError("moco", "GET projects/assigned", 502, nil)

	// date, retry? no
	input := "\nn\n"
	selector := &scriptedSelector{}
	flow, _ := setupFlow(service, input, selector)

	// Act
	err := flow.Run(context.Background())

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load projects")
	assert.Empty(t, service.submitted)
}

func TestTrackFlow_ReAsksAnInvalidWorkDate(t *testing.T) {
	// Arrange
	service := sampleService()

	input := "not-a-date\n2024-03-14\n0900\n1000\nwork\n\n"
	selector := &scriptedSelector{choices: []int{0, 0, 0}}
	flow, out := setupFlow(service, input, selector)

	// Act
	err := flow.Run(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, service.submitted, 1)
	assert.Equal(t, 14, service.submitted[0].Date.Day())
	assert.Contains(t, out.String(), "YYYY-MM-DD")
}

// Package jira wraps the go-jira cloud client with the three operations
// the flow needs: issue lookup, recent-issue search and worklog creation.
package jira

import (
	"context"
	"net/http"

	jira "github.com/andygrunwald/go-jira/v2/cloud"

	"synk/internal/domain"
	"synk/internal/errors"
)

const backendName = "jira"

// recentIssuesJQL selects the issues offered when the user asks for a list
// instead of typing a key: own issues that are in progress or recently
// touched, newest first.
const recentIssuesJQL = `assignee = currentUser() AND (status = "In Progress" OR updated >= -14d) ORDER BY updated DESC`

// Client is an authenticated JIRA API client.
type Client struct {
	jc *jira.Client
}

// New creates a client for the given JIRA server using basic auth with
// an account email and API token.
func New(server, email, token string) (*Client, error) {
	tp := jira.BasicAuthTransport{
		Username: email,
		APIToken: token,
	}
	jc, err := jira.NewClient(server, tp.Client())
	if err != nil {
		return nil, errors.NewConfigError("invalid JIRA server URL", err)
	}
	return &Client{jc: jc}, nil
}

// Verify checks the credentials by fetching the current user.
func (c *Client) Verify(ctx context.Context) error {
	_, resp, err := c.jc.User.GetCurrentUser(ctx)
	if err != nil {
		return errors.NewRemoteError(backendName, "verify credentials", statusOf(resp), err)
	}
	return nil
}

// FindIssue fetches the issue with the given key. An unknown key yields
// a not-found error so the flow can re-prompt instead of aborting.
func (c *Client) FindIssue(ctx context.Context, key string) (domain.Issue, error) {
	issue, resp, err := c.jc.Issue.Get(ctx, key, nil)
	if err != nil {
		if statusOf(resp) == http.StatusNotFound {
			return domain.Issue{}, errors.NewNotFoundError("issue", key)
		}
		return domain.Issue{}, errors.NewRemoteError(backendName, "fetch issue "+key, statusOf(resp), err)
	}

	found := domain.Issue{Key: issue.Key}
	if issue.Fields != nil {
		found.Summary = issue.Fields.Summary
	}
	return found, nil
}

// RecentIssues returns the user's in-progress and recently updated issues.
func (c *Client) RecentIssues(ctx context.Context, max int) ([]domain.Issue, error) {
	if max <= 0 {
		max = 5
	}

	issues, resp, err := c.jc.Issue.Search(ctx, recentIssuesJQL, &jira.SearchOptions{MaxResults: max})
	if err != nil {
		return nil, errors.NewRemoteError(backendName, "search recent issues", statusOf(resp), err)
	}

	found := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		item := domain.Issue{Key: issue.Key}
		if issue.Fields != nil {
			item.Summary = issue.Fields.Summary
		}
		found = append(found, item)
	}
	return found, nil
}

// AddWorklog records the given worklog on its issue.
func (c *Client) AddWorklog(ctx context.Context, worklog domain.Worklog) error {
	started := jira.Time(worklog.Started)
	record := &jira.WorklogRecord{
		TimeSpentSeconds: worklog.Seconds(),
		Comment:          worklog.Comment,
		Started:          &started,
	}

	_, resp, err := c.jc.Issue.AddWorklogRecord(ctx, worklog.IssueKey, record)
	if err != nil {
		return errors.NewRemoteError(backendName, "add worklog to "+worklog.IssueKey, statusOf(resp), err)
	}
	return nil
}

func statusOf(resp *jira.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

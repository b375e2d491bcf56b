// Package moco is a client for the Moco time-tracking API
// (https://<subdomain>.mocoapp.com/api/v1). It covers the handful of
// endpoints the interactive flow needs: session lookup, assigned
// projects, activity listing and activity creation.
package moco

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"synk/internal/domain"
	"synk/internal/errors"
)

const backendName = "moco"

// Client is an authenticated Moco API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a client for the given account subdomain. Authentication is
// a static bearer token carried by the underlying oauth2 transport.
func New(ctx context.Context, subdomain, apiKey string) *Client {
	return &Client{
		httpClient: oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})),
		baseURL:    fmt.Sprintf("https://%s.mocoapp.com/api/v1", subdomain),
	}
}

// NewWithBaseURL creates a client against an explicit base URL.
// Used by tests to point the client at a local server.
func NewWithBaseURL(ctx context.Context, baseURL, apiKey string) *Client {
	return &Client{
		httpClient: oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})),
		baseURL:    baseURL,
	}
}

// sessionResponse is the Moco session endpoint payload, reduced to the
// fields this tool reads.
type sessionResponse struct {
	ID int64 `json:"id"`
}

// projectResponse mirrors the Moco projects/assigned payload.
type projectResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	Customer struct {
		Name string `json:"name"`
	} `json:"customer"`
	Tasks []struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Active   bool   `json:"active"`
		Billable bool   `json:"billable"`
	} `json:"tasks"`
}

// activityResponse mirrors the Moco activities payload.
type activityResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	Project     struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"project"`
	Task struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"task"`
}

// activityPayload is the body of the activity creation call.
type activityPayload struct {
	Date        string  `json:"date"`
	ProjectID   int64   `json:"project_id"`
	TaskID      int64   `json:"task_id"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
}

// Session verifies the credentials and returns the authenticated user's id.
func (c *Client) Session(ctx context.Context) (int64, error) {
	var session sessionResponse
	if err := c.get(ctx, "session", nil, &session); err != nil {
		return 0, err
	}
	return session.ID, nil
}

// AssignedProjects fetches all projects the user is assigned to, including
// their task lists. No filtering happens here; the service layer decides
// which projects and tasks are selectable.
func (c *Client) AssignedProjects(ctx context.Context) ([]domain.Project, error) {
	var payload []projectResponse
	if err := c.get(ctx, "projects/assigned", nil, &payload); err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(payload))
	for _, p := range payload {
		project := domain.Project{
			ID:       p.ID,
			Name:     p.Name,
			Customer: p.Customer.Name,
			Active:   p.Active,
		}
		for _, t := range p.Tasks {
			project.Tasks = append(project.Tasks, domain.Task{
				ID:       t.ID,
				Name:     t.Name,
				Active:   t.Active,
				Billable: t.Billable,
			})
		}
		projects = append(projects, project)
	}
	return projects, nil
}

// Activities fetches the user's time entries in [from, to], both inclusive.
func (c *Client) Activities(ctx context.Context, userID int64, from, to time.Time) ([]domain.Activity, error) {
	params := url.Values{}
	params.Set("user_id", fmt.Sprintf("%d", userID))
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	var payload []activityResponse
	if err := c.get(ctx, "activities", params, &payload); err != nil {
		return nil, err
	}

	activities := make([]domain.Activity, 0, len(payload))
	for _, a := range payload {
		activities = append(activities, toActivity(a))
	}
	return activities, nil
}

// CreateActivity submits a new time entry built from the draft.
func (c *Client) CreateActivity(ctx context.Context, draft domain.EntryDraft) (domain.Activity, error) {
	payload := activityPayload{
		Date:        draft.Date.Format("2006-01-02"),
		ProjectID:   draft.Project.ID,
		TaskID:      draft.Task.ID,
		Hours:       draft.Hours(),
		Description: draft.Description(),
	}

	var created activityResponse
	if err := c.post(ctx, "activities", payload, &created); err != nil {
		return domain.Activity{}, err
	}
	return toActivity(created), nil
}

func toActivity(a activityResponse) domain.Activity {
	return domain.Activity{
		ID:          a.ID,
		Date:        a.Date,
		Hours:       a.Hours,
		Description: a.Description,
		Project:     domain.ActivityRef{ID: a.Project.ID, Name: a.Project.Name},
		Task:        domain.ActivityRef{ID: a.Task.ID, Name: a.Task.Name},
	}
}

// get performs a GET request against the given endpoint and decodes the
// JSON response into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	target := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.NewRemoteError(backendName, "GET "+endpoint, 0, err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, endpoint, out)
}

// post performs a POST request with a JSON body against the given endpoint.
func (c *Client) post(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.NewRemoteError(backendName, "POST "+endpoint, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.NewRemoteError(backendName, "POST "+endpoint, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, endpoint, out)
}

func (c *Client) do(req *http.Request, endpoint string, out interface{}) error {
	operation := req.Method + " " + endpoint

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewRemoteError(backendName, operation, 0, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return errors.NewRemoteError(backendName, operation, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewRemoteError(backendName, operation, resp.StatusCode,
			fmt.Errorf("%s", truncate(string(body), 200)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewRemoteError(backendName, operation, resp.StatusCode, err)
	}
	return nil
}

// truncate shortens API error bodies for display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

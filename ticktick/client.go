package ticktick

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const apiPrefix = "/open/v1"

// Client calls the TickTick Open API with a bearer access token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

func New(token string, options ...Option) *Client {
	c := &Client{
		baseURL:    "https://api.ticktick.com",
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// request performs one API call and decodes the JSON response into out
// when out is non-nil. Empty and 204 responses are treated as success.
func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[Client request] encode body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("[Client request] build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("[Client request] %s %s: %w", method, path, err)
	}
	defer res.Body.Close() //nolint:errcheck

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("[Client request] read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("TickTick API error %d: %s", res.StatusCode, string(responseBody))
	}

	if out == nil || len(responseBody) == 0 || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("[Client request] decode response: %w", err)
	}
	return nil
}

func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.request(ctx, http.MethodGet, "/project", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	if err := c.request(ctx, http.MethodGet, "/project/"+projectID, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjectData returns a project together with its undone tasks.
func (c *Client) GetProjectData(ctx context.Context, projectID string) (*ProjectData, error) {
	var data ProjectData
	if err := c.request(ctx, http.MethodGet, "/project/"+projectID+"/data", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error) {
	var project Project
	if err := c.request(ctx, http.MethodPost, "/project", input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.request(ctx, http.MethodDelete, "/project/"+projectID, nil, nil)
}

func (c *Client) GetTask(ctx context.Context, projectID, taskID string) (*Task, error) {
	var task Task
	if err := c.request(ctx, http.MethodGet, "/project/"+projectID+"/task/"+taskID, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	var task Task
	if err := c.request(ctx, http.MethodPost, "/task", input, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, input UpdateTaskInput) (*Task, error) {
	var task Task
	if err := c.request(ctx, http.MethodPost, "/task/"+input.TaskID, input, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) CompleteTask(ctx context.Context, projectID, taskID string) error {
	return c.request(ctx, http.MethodPost, "/project/"+projectID+"/task/"+taskID+"/complete", nil, nil)
}

func (c *Client) DeleteTask(ctx context.Context, projectID, taskID string) error {
	return c.request(ctx, http.MethodDelete, "/project/"+projectID+"/task/"+taskID, nil, nil)
}

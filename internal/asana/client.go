// Package asana is a minimal client for the Asana REST API, covering
// the three operations the rollover commands need: listing a project's
// tasks, listing a task's subtasks, and partially updating a task.
package asana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/finance-automation/rollover/internal/util"
)

// DefaultBaseURL is the production Asana API endpoint.
const DefaultBaseURL = "https://app.asana.com/api/1.0"

// DefaultPageDelay is the pause between paginated list requests, kept
// to stay under Asana's rate limits.
const DefaultPageDelay = 200 * time.Millisecond

const requestTimeout = 30 * time.Second

// Client talks to the Asana API with a personal access token.
type Client struct {
	baseURL   string
	token     string
	httpc     *http.Client
	pageDelay time.Duration
}

// New creates a Client using the default endpoint and rate-limit delay.
func New(token string) *Client {
	return &Client{
		baseURL:   DefaultBaseURL,
		token:     token,
		httpc:     &http.Client{Timeout: requestTimeout},
		pageDelay: DefaultPageDelay,
	}
}

// WithBaseURL overrides the API endpoint (useful for testing).
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimSuffix(u, "/")
	return c
}

// WithHTTPClient overrides the underlying HTTP client.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.httpc = h
	return c
}

// WithPageDelay overrides the pause between paginated requests.
func (c *Client) WithPageDelay(d time.Duration) *Client {
	c.pageDelay = d
	return c
}

// listResponse is the envelope Asana wraps around list results.
type listResponse struct {
	Data     []Task `json:"data"`
	NextPage *struct {
		URI string `json:"uri"`
	} `json:"next_page"`
}

// errorResponse is the envelope Asana wraps around API errors.
type errorResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// ListTasks retrieves every task of a project, following pagination
// until the last page. fields selects the opt_fields to request.
func (c *Client) ListTasks(ctx context.Context, projectID string, fields []string) ([]Task, error) {
	q := url.Values{}
	q.Set("project", projectID)
	q.Set("opt_fields", strings.Join(fields, ","))
	next := c.baseURL + "/tasks?" + q.Encode()

	var all []Task
	for next != "" {
		page, nextURI, err := c.listPage(ctx, next)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		next = nextURI
		if next != "" {
			if err := util.Sleep(ctx, c.pageDelay); err != nil {
				return nil, err
			}
		}
	}
	return all, nil
}

// ListSubtasks retrieves the subtasks of a task. Subtask lists are small
// enough that Asana returns them in a single page.
func (c *Client) ListSubtasks(ctx context.Context, taskID string, fields []string) ([]Task, error) {
	q := url.Values{}
	q.Set("opt_fields", strings.Join(fields, ","))
	u := fmt.Sprintf("%s/tasks/%s/subtasks?%s", c.baseURL, url.PathEscape(taskID), q.Encode())

	tasks, _, err := c.listPage(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("subtasks of %s: %w", taskID, err)
	}
	return tasks, nil
}

// UpdateTask applies a partial update to a task. Nil fields in the
// update are not sent and remain untouched.
func (c *Client) UpdateTask(ctx context.Context, taskID string, fields UpdateFields) error {
	body, err := json.Marshal(struct {
		Data UpdateFields `json:"data"`
	}{Data: fields})
	if err != nil {
		return fmt.Errorf("marshal update: %w", err)
	}

	u := fmt.Sprintf("%s/tasks/%s", c.baseURL, url.PathEscape(taskID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.send(req)
	if err != nil {
		return fmt.Errorf("update task %s: %w", taskID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("update task %s: %w", taskID, apiError(resp))
	}
	return nil
}

func (c *Client) listPage(ctx context.Context, u string) ([]Task, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", apiError(resp)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, "", fmt.Errorf("decode response: %w", err)
	}

	next := ""
	if list.NextPage != nil {
		next = list.NextPage.URI
	}
	return list.Data, next, nil
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	return c.httpc.Do(req)
}

// apiError turns a non-200 response into an error carrying Asana's own
// message when the error envelope can be decoded.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		return fmt.Errorf("asana: %s (HTTP %d)", envelope.Errors[0].Message, resp.StatusCode)
	}
	return fmt.Errorf("asana: HTTP %d", resp.StatusCode)
}

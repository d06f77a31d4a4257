// Package api is the HTTP client for the remote task-management backend.
//
// One method per (resource, verb) pair. Every call attaches the stored bearer
// token when a session is present, except login/signup which are always
// unauthenticated. Failures are surfaced once, untranslated: a non-2xx status
// becomes an *HTTPError carrying the response body text, a transport failure
// is wrapped generically, and nothing is retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/session"
)

// Client issues authenticated requests against the backend.
type Client struct {
	base    string
	hc      *http.Client
	session session.Store
}

// New returns a client for the backend at base. timeout bounds each request;
// zero leaves requests unbounded, like the original browser client.
func New(base string, timeout time.Duration, s session.Store) *Client {
	return &Client{
		base:    strings.TrimRight(base, "/"),
		hc:      &http.Client{Timeout: timeout},
		session: s,
	}
}

// ---- Auth

// Login exchanges credentials for a bearer token. It does not store the
// session; that is the caller's decision.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.LoginResult, error) {
	var out model.LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, &out, false); err != nil {
		return model.LoginResult{}, err
	}
	return out, nil
}

// Signup registers a new user. It does not log the user in.
func (c *Client) Signup(ctx context.Context, draft model.SignupDraft) error {
	return c.do(ctx, http.MethodPost, "/api/auth/signup", draft, nil, false)
}

// ---- Tasks (user surface)

// Tasks fetches the current user's tasks. The backend paginates; only the
// page it returns for the bare request is consumed.
func (c *Client) Tasks(ctx context.Context) (model.TaskPage, error) {
	var out model.TaskPage
	if err := c.do(ctx, http.MethodGet, "/api/task/get-all-tasks", nil, &out, true); err != nil {
		return model.TaskPage{}, err
	}
	return out, nil
}

// CreateTask creates a task and returns the server's copy (with its assigned
// id). The endpoint has been observed returning non-JSON success bodies, so
// the response is read as text first and then parsed; a parse failure is a
// *DecodeError.
func (c *Client) CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/task/create", draft, true)
	if err != nil {
		return model.Task{}, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Task{}, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var created model.Task
	if err := json.Unmarshal(body, &created); err != nil {
		return model.Task{}, &DecodeError{Body: string(body), Err: err}
	}
	return created, nil
}

// UpdateTaskStatus sends only the new status for the task.
func (c *Client) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/task/update/%d", id), body, nil, true)
}

// UpdateTask sends the full task record.
func (c *Client) UpdateTask(ctx context.Context, t model.Task) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/task/update/%d", t.ID), t, nil, true)
}

// DeleteTask deletes the task by id.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/task/delete-task/%d", id), nil, nil, true)
}

// ---- Admin surface

// AdminUsers fetches all users (privileged).
func (c *Client) AdminUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminUpdateUser replaces the whole user record.
func (c *Client) AdminUpdateUser(ctx context.Context, u model.User) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", u.ID), u, nil, true)
}

// AdminTasks fetches all tasks across users (privileged).
func (c *Client) AdminTasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, http.MethodGet, "/api/admin/tasks", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminUpdateTask replaces the whole task record.
func (c *Client) AdminUpdateTask(ctx context.Context, t model.Task) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/admin/tasks/%d", t.ID), t, nil, true)
}

// ---- plumbing

func (c *Client) newRequest(ctx context.Context, method, path string, body any, authed bool) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		// The token is read fresh for every call and trusted until the
		// backend rejects it. With no session the request simply goes out
		// unauthenticated and fails server-side.
		if s, ok := c.session.Current(); ok {
			req.Header.Set("Authorization", "Bearer "+s.Token)
		}
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, authed bool) error {
	req, err := c.newRequest(ctx, method, path, body, authed)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Body: string(raw), Err: err}
	}
	return nil
}

// Package api is the HTTP client for the task-management REST API.
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

	"github.com/google/uuid"

	"taskdeck/internal/session"
	"taskdeck/internal/tasks"
)

// Client talks to the task API. The bearer token is read fresh from the
// injected session store on every call; nothing is cached between calls.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Store
}

// New creates a Client for the given base URL.
func New(baseURL string, timeout time.Duration, sessions *session.Store) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token. The token is returned,
// not stored: writing the session store is the auth flow's decision.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp, false); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates an account and returns the session token.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp, false); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Logout notifies the server that the session is over. Best-effort: the
// caller clears local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/user/logout", map[string]string{}, nil, true)
}

// ListTasks fetches the full task collection.
func (c *Client) ListTasks(ctx context.Context) ([]tasks.Task, error) {
	var out []tasks.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCategories fetches the category list. The deployed API serves this
// without authorization, so no bearer token is attached.
func (c *Client) ListCategories(ctx context.Context) ([]tasks.Category, error) {
	var out []tasks.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask creates a task and returns the server copy (with its id).
func (c *Client) CreateTask(ctx context.Context, t tasks.Task) (tasks.Task, error) {
	var out tasks.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", t, &out, true); err != nil {
		return tasks.Task{}, err
	}
	return out, nil
}

// UpdateTask replaces the task with the given id.
func (c *Client) UpdateTask(ctx context.Context, id string, t tasks.Task) (tasks.Task, error) {
	var out tasks.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, t, &out, true); err != nil {
		return tasks.Task{}, err
	}
	return out, nil
}

// DeleteTask deletes the task with the given id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil, true)
}

// do issues one request. Non-2xx responses become *Error with the
// server's message when the body carries one; transport failures are
// returned wrapped and carry no status.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token, ok := c.sessions.Get(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeError turns a non-2xx response into *Error, keeping the server's
// {"message": ...} when present.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}

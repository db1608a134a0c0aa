// Package api is the HTTP client for the OneDay server. For logged-in
// sessions it backs the task store abstraction, so the rest of the client
// cannot tell it apart from the on-device store.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/model"
	"github.com/Saba3939/oneday-todo/internal/store"
)

// Session holds the persisted login state.
type Session struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
}

// Client talks to the API server.
type Client struct {
	session     *Session
	sessionPath string
	httpClient  *http.Client
}

// NewClient creates a client, loading any saved session from
// ~/.oneday/session.json.
func NewClient(serverURL string) (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		sessionPath: filepath.Join(home, ".oneday", "session.json"),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	c.loadSession(serverURL)
	return c, nil
}

func (c *Client) loadSession(serverURL string) {
	c.session = &Session{ServerURL: serverURL}
	data, err := os.ReadFile(c.sessionPath)
	if err != nil {
		return
	}
	json.Unmarshal(data, c.session)
	if serverURL != "" {
		c.session.ServerURL = serverURL
	}
}

func (c *Client) saveSession() error {
	if err := os.MkdirAll(filepath.Dir(c.sessionPath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.sessionPath, data, 0600)
}

// IsLoggedIn returns true if a session token is present.
func (c *Client) IsLoggedIn() bool {
	return c.session.Token != ""
}

// UserID returns the logged-in user's id, empty for guests.
func (c *Client) UserID() string {
	return c.session.UserID
}

// apiError is the server's error envelope.
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Limit int    `json:"limit,omitempty"`
	Count int    `json:"count,omitempty"`
}

// do sends an authenticated JSON request and decodes the response into out
// (when non-nil). Server error envelopes are mapped back onto the store's
// error taxonomy so callers keep a single code path.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.session.ServerURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		var apiErr apiError
		json.Unmarshal(respBody, &apiErr)
		switch apiErr.Code {
		case "quota_exceeded":
			limit := apiErr.Limit
			if limit == 0 {
				limit = store.FreeDailyLimit
			}
			return &store.QuotaError{Limit: limit, Count: apiErr.Count}
		case "empty_content":
			return store.ErrEmptyContent
		case "not_found":
			return store.ErrNotFound
		}
		if resp.StatusCode == http.StatusNotFound {
			return store.ErrNotFound
		}
		if apiErr.Error != "" {
			return fmt.Errorf("server error: %s", apiErr.Error)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

var _ store.Store = (*Client)(nil)

// ListDay returns the tasks created on day.
func (c *Client) ListDay(ctx context.Context, day clock.Day) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks?date="+day.String(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListBefore returns the tasks created strictly before day.
func (c *Client) ListBefore(ctx context.Context, day clock.Day) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks?before="+day.String(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Add creates a task with the given content.
func (c *Client) Add(ctx context.Context, content string) (model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks", map[string]string{"content": content}, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Toggle flips the task's completion state.
func (c *Client) Toggle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/tasks/%d/toggle", id), nil, nil)
}

// UpdateContent replaces the task's content.
func (c *Client) UpdateContent(ctx context.Context, id int64, content string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/tasks/%d", id),
		map[string]string{"content": content}, nil)
}

// Delete removes the task.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", id), nil, nil)
}

// Reorder submits the full desired ordering of today's tasks.
func (c *Client) Reorder(ctx context.Context, ids []int64) error {
	return c.do(ctx, http.MethodPut, "/api/v1/tasks/order", map[string][]int64{"ids": ids}, nil)
}

type profileResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsPremium  bool   `json:"is_premium"`
	LastAccess string `json:"last_access"`
}

// LastAccess returns the carry-over marker from the user's profile.
func (c *Client) LastAccess(ctx context.Context) (clock.Day, bool, error) {
	var profile profileResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/profile", nil, &profile); err != nil {
		return "", false, err
	}
	if profile.LastAccess == "" {
		return "", false, nil
	}
	day, err := clock.ParseDay(profile.LastAccess)
	if err != nil {
		return "", false, err
	}
	return day, true, nil
}

// SetLastAccess records the carry-over marker on the user's profile.
func (c *Client) SetLastAccess(ctx context.Context, day clock.Day) error {
	return c.do(ctx, http.MethodPut, "/api/v1/profile/last-access",
		map[string]string{"date": day.String()}, nil)
}

// Statistics returns the day-by-day aggregates for the requested window.
// The server caps the window by subscription tier.
func (c *Client) Statistics(ctx context.Context, days int) ([]model.DailyStatistics, error) {
	var resp struct {
		Days []model.DailyStatistics `json:"days"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/statistics?days=%d", days), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Days, nil
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type authResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

func (c *Client) authRequest(path string, payload map[string]string) error {
	body, _ := json.Marshal(payload)

	resp, err := c.httpClient.Post(
		c.session.ServerURL+path,
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		var apiErr apiError
		json.Unmarshal(respBody, &apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var result authResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	c.session.Token = result.Token
	c.session.UserID = result.UserID
	return c.saveSession()
}

// Register creates a new account and stores the session.
func (c *Client) Register(username, email, password string) error {
	return c.authRequest("/api/v1/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

// Login authenticates with username and password.
func (c *Client) Login(username, password string) error {
	return c.authRequest("/api/v1/login", map[string]string{
		"username": username,
		"password": password,
	})
}

// Logout invalidates the server session (best effort) and clears the local
// one.
func (c *Client) Logout() error {
	if c.session.Token != "" {
		req, err := http.NewRequest(http.MethodPost, c.session.ServerURL+"/api/v1/logout", nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+c.session.Token)
			if resp, err := c.httpClient.Do(req); err == nil {
				resp.Body.Close()
			}
		}
	}
	c.session.Token = ""
	c.session.UserID = ""
	return c.saveSession()
}

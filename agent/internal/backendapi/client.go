package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"safesurf/agent/internal/policy"
	"safesurf/agent/internal/state"
)

// Client talks to the SafeSurf backend over HTTP/JSON, authorizing every
// request with the token held in state.
type Client struct {
	BaseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}

// Whitelist is the backend's whitelist document.
type Whitelist struct {
	UserID    string   `json:"user_id"`
	Sites     []string `json:"sites"`
	UpdatedAt int64    `json:"updated_at"`
}

// ActivityEntry is one block report posted upstream.
type ActivityEntry struct {
	URL       string `json:"url"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := state.GetToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", loginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("invalid login response")
	}
	return &out, nil
}

func (c *Client) FetchSettings(ctx context.Context) (*policy.PolicySettings, error) {
	var out policy.PolicySettings
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchWhitelist(ctx context.Context) (*Whitelist, error) {
	var out Whitelist
	if err := c.do(ctx, http.MethodGet, "/api/whitelist", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PostActivity(ctx context.Context, entry ActivityEntry) error {
	return c.do(ctx, http.MethodPost, "/api/activity", entry, nil)
}

func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/ping", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping: status %d", resp.StatusCode)
	}
	return nil
}

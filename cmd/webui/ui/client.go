package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"safesurf/backend/app/dto"

	tea "github.com/charmbracelet/bubbletea"
)

// Session holds the authenticated connection to the backend for the lifetime
// of the TUI.
type Session struct {
	BaseURL string
	Token   string
	UserID  string
	http    *http.Client
}

func NewSession() *Session {
	return &Session{http: &http.Client{Timeout: 10 * time.Second}}
}

func (s *Session) do(method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("%s", e.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *Session) Login(host string, port int, username, password string) error {
	s.BaseURL = fmt.Sprintf("http://%s:%d", host, port)
	var out dto.LoginResponse
	if err := s.do(http.MethodPost, "/login", dto.LoginRequest{Username: username, Password: password}, &out); err != nil {
		return err
	}
	s.Token = out.AccessToken
	s.UserID = out.UserID
	return nil
}

func (s *Session) GetSettings() (*dto.SettingsResponse, error) {
	var out dto.SettingsResponse
	if err := s.do(http.MethodGet, "/api/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) PutSettings(req dto.SettingsRequest) (*dto.SettingsResponse, error) {
	var out dto.SettingsResponse
	if err := s.do(http.MethodPut, "/api/settings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetWhitelist() (*dto.WhitelistResponse, error) {
	var out dto.WhitelistResponse
	if err := s.do(http.MethodGet, "/api/whitelist", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) PutWhitelist(sites []string) (*dto.WhitelistResponse, error) {
	var out dto.WhitelistResponse
	if err := s.do(http.MethodPut, "/api/whitelist", dto.WhitelistRequest{Sites: sites}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetActivity(limit int) ([]dto.ActivityResponse, error) {
	var out []dto.ActivityResponse
	if err := s.do(http.MethodGet, fmt.Sprintf("/api/activity?limit=%d", limit), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Messages produced by session commands.

type LoginDoneMsg struct{ Err error }

type ActivityLoadedMsg struct {
	Logs []dto.ActivityResponse
	Err  error
}

type SettingsLoadedMsg struct {
	Settings *dto.SettingsResponse
	Err      error
}

type WhitelistLoadedMsg struct {
	Whitelist *dto.WhitelistResponse
	Err       error
}

type SavedMsg struct{ Err error }

func (s *Session) LoadActivityCmd(limit int) tea.Cmd {
	return func() tea.Msg {
		logs, err := s.GetActivity(limit)
		return ActivityLoadedMsg{Logs: logs, Err: err}
	}
}

func (s *Session) LoadSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := s.GetSettings()
		return SettingsLoadedMsg{Settings: st, Err: err}
	}
}

func (s *Session) LoadWhitelistCmd() tea.Cmd {
	return func() tea.Msg {
		wl, err := s.GetWhitelist()
		return WhitelistLoadedMsg{Whitelist: wl, Err: err}
	}
}

package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"safesurf/agent/internal/backendapi"
	"safesurf/agent/internal/config"
	"safesurf/agent/internal/db"
	"safesurf/agent/internal/logger"
	"safesurf/agent/internal/state"
)

// Login authenticates against the backend and persists the token to disk and
// the local store, so the agent can start filtering offline next time.
func Login(ctx context.Context, api *backendapi.Client, username, password string) (string, error) {
	resp, err := api.Login(ctx, username, password)
	if err != nil {
		return "", err
	}
	if adb := db.Get(); adb != nil {
		_ = adb.Create(&db.Token{Value: resp.AccessToken}).Error
	}
	if err := saveToken(resp.AccessToken); err != nil {
		return "", err
	}
	state.SetToken(resp.AccessToken)
	state.SetUserID(resp.UserID)
	logger.Infof("logged in as %s", username)
	return resp.AccessToken, nil
}

func saveToken(token string) error {
	path := config.TokenFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir token dir: %w", err)
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

// LoadToken restores a previously saved token, preferring the token file and
// falling back to the local store.
func LoadToken() string {
	if b, err := os.ReadFile(config.TokenFilePath()); err == nil && len(b) > 0 {
		return string(b)
	}
	if adb := db.Get(); adb != nil {
		var t db.Token
		if err := adb.Order("id DESC").First(&t).Error; err == nil {
			return t.Value
		}
	}
	return ""
}

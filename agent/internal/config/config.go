package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	BackendHost       string
	BackendPort       int
	TokenPath         string
	LogPath           string
	DBPath            string
	BlockedPageURL    string
	SafeBrowsingURL   string
	SafeBrowsingKey   string
	ReputationTimeout time.Duration
	RefreshInterval   time.Duration
	Retry             Retry
}

type Retry struct {
	Attempts  int
	BaseDelay time.Duration
}

var cfg AppConfig

func Init(path string) AppConfig {
	defaultDir := filepath.Join(os.TempDir(), "safesurf")

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// defaults
	v.SetDefault("agent.backend.host", "127.0.0.1")
	v.SetDefault("agent.backend.port", 9400)
	v.SetDefault("agent.token_path", filepath.Join(defaultDir, "agent.token"))
	v.SetDefault("agent.db_path", filepath.Join(defaultDir, "agent.db"))
	v.SetDefault("agent.blocked_page_url", "safesurf://blocked.html")
	v.SetDefault("agent.safebrowsing.url", "https://safebrowsing.googleapis.com/v4/threatMatches:find")
	v.SetDefault("agent.safebrowsing.timeout", "3s")
	v.SetDefault("agent.refresh_interval", "5m")
	v.SetDefault("agent.retry.attempts", 3)
	v.SetDefault("agent.retry.base_delay", "1s")
	_ = v.ReadInConfig()

	cfg = AppConfig{
		BackendHost:       v.GetString("agent.backend.host"),
		BackendPort:       v.GetInt("agent.backend.port"),
		TokenPath:         v.GetString("agent.token_path"),
		LogPath:           v.GetString("agent.log_path"),
		DBPath:            v.GetString("agent.db_path"),
		BlockedPageURL:    v.GetString("agent.blocked_page_url"),
		SafeBrowsingURL:   v.GetString("agent.safebrowsing.url"),
		SafeBrowsingKey:   v.GetString("agent.safebrowsing.key"),
		ReputationTimeout: v.GetDuration("agent.safebrowsing.timeout"),
		RefreshInterval:   v.GetDuration("agent.refresh_interval"),
		Retry: Retry{
			Attempts:  v.GetInt("agent.retry.attempts"),
			BaseDelay: v.GetDuration("agent.retry.base_delay"),
		},
	}
	return cfg
}

func Get() AppConfig { return cfg }

func TokenFilePath() string {
	if cfg.TokenPath == "" {
		return filepath.Join(os.TempDir(), "safesurf", "agent.token")
	}
	return cfg.TokenPath
}

func BackendBaseURL() string {
	return fmt.Sprintf("http://%s:%d", cfg.BackendHost, cfg.BackendPort)
}

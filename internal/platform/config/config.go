package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Client captures everything the API client and console need at startup.
type Client struct {
	APIBaseURL      string
	RequestTimeout  time.Duration
	SessionFile     string
	Theme           string
	DashboardPoll   time.Duration
	DownloadDir     string
}

// DefaultAPIBaseURL mirrors the backend's development address.
const DefaultAPIBaseURL = "http://localhost:5001/api"

// FromEnv builds a Client config from environment variables so main stays
// lean. A .env file next to the binary is loaded first when present; real
// environment variables win over .env entries.
func FromEnv() Client {
	_ = godotenv.Load()

	baseURL := os.Getenv("KAMPO_API_URL")
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}

	timeout := 30 * time.Second
	if raw := os.Getenv("KAMPO_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			timeout = d
		}
	}

	poll := 30 * time.Second
	if raw := os.Getenv("KAMPO_DASHBOARD_POLL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			poll = d
		}
	}

	sessionFile := os.Getenv("KAMPO_SESSION_FILE")
	if sessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		sessionFile = filepath.Join(home, ".kampomido", "session.json")
	}

	theme := os.Getenv("KAMPO_THEME")
	if theme != "light" && theme != "dark" {
		theme = "light"
	}

	downloadDir := os.Getenv("KAMPO_DOWNLOAD_DIR")
	if downloadDir == "" {
		downloadDir = "."
	}

	return Client{
		APIBaseURL:     baseURL,
		RequestTimeout: timeout,
		SessionFile:    sessionFile,
		Theme:          theme,
		DashboardPoll:  poll,
		DownloadDir:    downloadDir,
	}
}

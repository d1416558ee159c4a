package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds environment-driven configuration.
type Config struct {
	Toggl struct {
		APIToken    string
		WorkspaceID int64
		BaseURL     string // default: https://api.track.toggl.com
	}
	DB         string // sqlite file; default under XDG data dir
	AllowHosts string // comma-separated tab allowlist
	Timezone   string // e.g., UTC (default), Europe/Berlin
}

// Load reads configuration from environment variables. Credentials may be
// absent; commands that need Toggl call RequireToggl before doing work.
func Load() (Config, error) {
	var cfg Config

	cfg.Toggl.APIToken = os.Getenv("TOGGL_API_TOKEN")
	if ws := os.Getenv("TOGGL_WORKSPACE_ID"); ws != "" {
		v, err := strconv.ParseInt(ws, 10, 64)
		if err != nil {
			return cfg, errors.New("TOGGL_WORKSPACE_ID must be an integer")
		}
		cfg.Toggl.WorkspaceID = v
	}
	cfg.Toggl.BaseURL = os.Getenv("TOGGL_BASE_URL")
	if cfg.Toggl.BaseURL == "" {
		cfg.Toggl.BaseURL = "https://api.track.toggl.com"
	}

	cfg.DB = os.Getenv("SHERPA_DB")
	if cfg.DB == "" {
		cfg.DB = DefaultDBPath()
	}
	cfg.AllowHosts = os.Getenv("SHERPA_ALLOW_HOSTS")

	cfg.Timezone = os.Getenv("SHERPA_TZ")
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}

	return cfg, nil
}

// RequireToggl fails fast when the remote call is not configured. Called
// before any apply item is attempted so a run never partially applies for
// configuration reasons.
func (c Config) RequireToggl() error {
	if c.Toggl.APIToken == "" {
		return errors.New("missing TOGGL_API_TOKEN")
	}
	if c.Toggl.WorkspaceID == 0 {
		return errors.New("missing TOGGL_WORKSPACE_ID")
	}
	return nil
}

func xdgDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share")
}

func xdgCacheHome() string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache")
}

func xdgConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// DefaultDBPath is the sqlite file shared by the collector, the tab server
// and the batch pipeline.
func DefaultDBPath() string {
	return filepath.Join(xdgDataHome(), "toggl-sherpa", "toggl-sherpa.sqlite3")
}

// PidfilePath is where the background collector records its pid.
func PidfilePath() string {
	return filepath.Join(xdgCacheHome(), "toggl-sherpa", "logger.pid")
}

// DefaultMappingPath is the JSON file holding apply mappings.
func DefaultMappingPath() string {
	return filepath.Join(xdgConfigHome(), "toggl-sherpa", "config.json")
}

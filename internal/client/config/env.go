package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by the client.
const (
	envAPIBaseURL     = "PHOENIX_API_URL"
	envTokenFile      = "PHOENIX_TOKEN_FILE"
	envRequestTimeout = "PHOENIX_REQUEST_TIMEOUT"
	envRefreshTimeout = "PHOENIX_REFRESH_TIMEOUT"
)

// parseEnv overlays Config with values from the process environment.
// An optional .env file in the working directory is loaded first; a missing
// file is not an error. Duration variables use time.ParseDuration syntax
// ("10s", "1m30s"); unparsable values are ignored.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envTokenFile); v != "" {
		cfg.TokenFile = v
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv(envRefreshTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RefreshTimeout = d
		}
	}
}

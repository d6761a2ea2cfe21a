package config

import "time"

// Config holds runtime settings for the Phoenix client.
//
// Fields:
//   - APIBaseURL: base URL of the Phoenix authentication API.
//   - TokenFile: path of the persisted token record; empty means
//     $HOME/.phoenix/tokens.json (resolved by the CLI at startup).
//   - RequestTimeout: overall timeout for ordinary API calls.
//   - RefreshTimeout: budget for a token refresh call.
//   - ReadBuffer: minimum remaining lifetime for an access token to be
//     handed out to callers.
//   - SetSafetyMargin: subtracted from the server-reported lifetime when
//     computing the local expiry.
//   - FallbackLifetime: assumed access-token lifetime when neither the
//     server response nor the token itself carries an expiry.
type Config struct {
	APIBaseURL       string
	TokenFile        string
	RequestTimeout   time.Duration
	RefreshTimeout   time.Duration
	ReadBuffer       time.Duration
	SetSafetyMargin  time.Duration
	FallbackLifetime time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.TokenFile = ""
	c.RequestTimeout = 30 * time.Second
	c.RefreshTimeout = 10 * time.Second
	c.ReadBuffer = 60 * time.Second
	c.SetSafetyMargin = 30 * time.Second
	c.FallbackLifetime = 14 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including an optional .env file), a JSON config file (if
// one was named with -c/-config), and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}

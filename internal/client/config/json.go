package config

import (
	"encoding/json"
	"os"

	"github.com/phoenix-letters/phoenix-go/internal/flagx"
	"github.com/phoenix-letters/phoenix-go/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can specify intervals either as strings like
// "10s" or as integer nanoseconds. After parsing, non-zero values are copied
// into the runtime Config.
type JSONConfig struct {
	APIBaseURL       string         `json:"api_base_url"`
	TokenFile        string         `json:"token_file"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	RefreshTimeout   timex.Duration `json:"refresh_timeout"`
	ReadBuffer       timex.Duration `json:"read_buffer"`
	SetSafetyMargin  timex.Duration `json:"set_safety_margin"`
	FallbackLifetime timex.Duration `json:"fallback_lifetime"`
}

// parseJSON overlays Config with values loaded from a JSON file named via the
// -c/-config flags. If no file was named, nothing happens. Read or unmarshal
// errors panic; the intended usage is defaults -> env -> parseJSON ->
// parseFlags, where later stages override earlier ones.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RefreshTimeout.Duration != 0 {
		cfg.RefreshTimeout = jc.RefreshTimeout.Duration
	}
	if jc.ReadBuffer.Duration != 0 {
		cfg.ReadBuffer = jc.ReadBuffer.Duration
	}
	if jc.SetSafetyMargin.Duration != 0 {
		cfg.SetSafetyMargin = jc.SetSafetyMargin.Duration
	}
	if jc.FallbackLifetime.Duration != 0 {
		cfg.FallbackLifetime = jc.FallbackLifetime.Duration
	}
}

package config

import (
	"encoding/json"
	"os"

	"github.com/dbarbosa/libanac/internal/flagx"
	"github.com/dbarbosa/libanac/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "5s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	BaseURL           string         `json:"base_url"`
	CACertPath        string         `json:"ca_cert_path"`
	Username          string         `json:"username"`
	KeepAliveInterval timex.Duration `json:"keep_alive_interval"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file selected
// via the -c or -config flags. Absent fields keep their current values.
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.CACertPath != "" {
		cfg.CACertPath = jc.CACertPath
	}
	if jc.Username != "" {
		cfg.Username = jc.Username
	}
	if jc.KeepAliveInterval.Duration > 0 {
		cfg.KeepAliveInterval = jc.KeepAliveInterval.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

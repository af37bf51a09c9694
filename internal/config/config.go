package config

import "time"

// Config holds runtime settings for the SINTAC CLI.
//
// Fields:
//   - BaseURL: root URL of the portal; every request path resolves against it.
//   - CACertPath: PEM bundle the portal's TLS chain verifies against.
//   - Username: portal login; the password is never held in configuration.
//   - KeepAliveInterval: cadence of the background session probe.
//   - RequestTimeout: per-request deadline.
type Config struct {
	BaseURL           string
	CACertPath        string
	Username          string
	KeepAliveInterval time.Duration
	RequestTimeout    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://sistemas.anac.gov.br/"
	c.KeepAliveInterval = 5 * time.Second
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with SINTAC_* environment variables. A .env file
// in the working directory is loaded first, if present; real environment
// variables win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SINTAC_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SINTAC_CA_BUNDLE"); v != "" {
		cfg.CACertPath = v
	}
	if v := os.Getenv("SINTAC_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("SINTAC_KEEPALIVE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.KeepAliveInterval = d
		}
	}
	if v := os.Getenv("SINTAC_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dbarbosa/libanac/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string    portal base URL (default from Config)
//	-u string    portal username
//	-ca string   path to the PEM CA bundle
//	-k int       keep-alive probe interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-ca", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "portal base URL")
	fs.StringVar(&cfg.Username, "u", cfg.Username, "portal username")
	fs.StringVar(&cfg.CACertPath, "ca", cfg.CACertPath, "path to PEM CA bundle")
	keepAlive := fs.Int("k", int(cfg.KeepAliveInterval.Seconds()), "keep-alive interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.KeepAliveInterval = time.Duration(*keepAlive) * time.Second
}

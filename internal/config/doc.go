// Package config loads runtime configuration for the SINTAC CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment: a .env file if present, then SINTAC_* variables.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string    portal base URL
//	-u string    portal username
//	-ca string   path to the PEM CA bundle
//	-k int       keep-alive probe interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be
// either strings like "5s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://sistemas.anac.gov.br/",
//	  "ca_cert_path": "icp-brasil.pem",
//	  "username": "jsilva",
//	  "keep_alive_interval": "5s",
//	  "request_timeout": "30s"
//	}
//
// Environment variables
//
//	SINTAC_BASE_URL, SINTAC_CA_BUNDLE, SINTAC_USERNAME,
//	SINTAC_KEEPALIVE_INTERVAL, SINTAC_REQUEST_TIMEOUT
//
// The password is deliberately not part of Config; the CLI takes it from
// SINTAC_PASSWORD or an interactive prompt.
package config

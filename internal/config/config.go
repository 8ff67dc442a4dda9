// Package config builds runtime configuration from the environment.
package config

import (
	"os"
	"strconv"
)

// Environment variables read at startup.
const (
	// EnvMailto is the contact address attached to Crossref requests.
	// Setting it routes requests through the polite priority pool.
	EnvMailto = "CROSSREF_MAILTO"

	// EnvWorkers overrides the lookup worker pool size.
	EnvWorkers = "FIXBIBTEX_WORKERS"
)

// DefaultWorkers is the worker pool size when EnvWorkers is unset.
const DefaultWorkers = 5

// Config is the explicit runtime configuration, passed into the
// components that need it rather than read ambiently.
type Config struct {
	Mailto  string
	Workers int
}

// FromEnv reads configuration from the process environment. Invalid
// or non-positive worker counts fall back to the default.
func FromEnv() Config {
	cfg := Config{
		Mailto:  os.Getenv(EnvMailto),
		Workers: DefaultWorkers,
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	return cfg
}

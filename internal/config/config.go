// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server settings. Every field has an environment default so
// the binary runs with no configuration at all when the stub source is on.
type Config struct {
	Addr            string        // LISTEN_ADDR
	ProviderBaseURL string        // PROVIDER_BASE_URL
	ProviderTimeout time.Duration // PROVIDER_TIMEOUT
	CatalogPath     string        // CATALOG_PATH, empty means built-in catalog
	UseStub         bool          // USE_STUB_SOURCE
	LogLevel        string        // LOG_LEVEL
}

// Load reads the environment. A .env file in the working directory is
// merged in first; a missing file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:            envString("LISTEN_ADDR", ":8002"),
		ProviderBaseURL: envString("PROVIDER_BASE_URL", ""),
		ProviderTimeout: envDuration("PROVIDER_TIMEOUT", 10*time.Second),
		CatalogPath:     envString("CATALOG_PATH", ""),
		UseStub:         envBool("USE_STUB_SOURCE", false),
		LogLevel:        envString("LOG_LEVEL", "info"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

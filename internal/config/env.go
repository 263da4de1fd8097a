package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read after .env is loaded.
const (
	EnvProfileDir  = "ORCID_PROFILE_DIR"
	EnvStyle       = "ORCID_CV_STYLE"
	EnvLogMode     = "ORCID_CV_LOG_MODE"
	EnvHTTPTimeout = "ORCID_CV_HTTP_TIMEOUT"
)

// FromEnv builds a partial configuration from environment variables.
// ORCID_CV_HTTP_TIMEOUT is in seconds.
func FromEnv() (Config, error) {
	cfg := Config{
		ProfileDir: os.Getenv(EnvProfileDir),
		Style:      os.Getenv(EnvStyle),
		LogMode:    os.Getenv(EnvLogMode),
	}

	if timeoutStr := os.Getenv(EnvHTTPTimeout); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %v", EnvHTTPTimeout, err)
		}
		if seconds < 1 {
			return Config{}, fmt.Errorf("%s must be at least 1 second, got: %d", EnvHTTPTimeout, seconds)
		}
		cfg.HTTPTimeoutSeconds = seconds
	}

	return cfg, nil
}

// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/orcid-cv/internal/rendering"
	"github.com/jonathan/orcid-cv/internal/style"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	ProfileDir string `json:"profile_dir,omitempty"` // ORCID export directory
	Output     string `json:"output,omitempty"`      // PDF to write
	StyleFile  string `json:"style_file,omitempty"`  // YAML file with extra styles
	Edits      string `json:"edits,omitempty"`       // YAML edits file
	IconDir    string `json:"icon_dir,omitempty"`    // Directory of <label>.png link icons

	// Document
	Style      string              `json:"style,omitempty"`
	Plan       string              `json:"plan,omitempty" validate:"omitempty,oneof=quick full"`
	Sections   []rendering.Section `json:"sections,omitempty" validate:"dive"` // Overrides Plan when set
	SinglePass bool                `json:"single_pass,omitempty"`              // Footers without page totals
	Compress   bool                `json:"compress,omitempty"`

	// Enrichment
	HTTPTimeoutSeconds int    `json:"http_timeout_seconds,omitempty" validate:"gte=0"`
	UserAgent          string `json:"user_agent,omitempty"`
	UseBrowser         bool   `json:"use_browser,omitempty"` // Render ISSN pages in headless Chrome as a last resort

	// Behavior
	LogMode string `json:"log_mode,omitempty" validate:"omitempty,oneof=dev development prod production"`
	Verbose bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the values used when neither a flag, the config file nor
// the environment sets a field.
func Defaults() Config {
	return Config{
		ProfileDir:         ".",
		Output:             "cv.pdf",
		Style:              style.DefaultName,
		Plan:               "quick",
		HTTPTimeoutSeconds: 30,
		LogMode:            "dev",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	for _, f := range []struct{ name, path string }{
		{"style file", c.StyleFile},
		{"edits file", c.Edits},
		{"icon directory", c.IconDir},
	} {
		if f.path == "" {
			continue
		}
		if _, err := os.Stat(f.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s not found: %s", f.name, f.path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ProfileDir == "" {
		result.ProfileDir = defaults.ProfileDir
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.StyleFile == "" {
		result.StyleFile = defaults.StyleFile
	}
	if result.Edits == "" {
		result.Edits = defaults.Edits
	}
	if result.IconDir == "" {
		result.IconDir = defaults.IconDir
	}
	if result.Style == "" {
		result.Style = defaults.Style
	}
	if result.Plan == "" {
		result.Plan = defaults.Plan
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}

	if len(result.Sections) == 0 {
		result.Sections = defaults.Sections
	}

	// Int fields: use default if zero
	if result.HTTPTimeoutSeconds == 0 {
		result.HTTPTimeoutSeconds = defaults.HTTPTimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// HTTPTimeout returns the enrichment request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// DocumentPlan returns the explicit sections, or the named built-in plan.
func (c *Config) DocumentPlan() (rendering.Plan, error) {
	if len(c.Sections) > 0 {
		return rendering.Plan(c.Sections), nil
	}
	return rendering.PlanByName(c.Plan)
}

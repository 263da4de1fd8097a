package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/orcid-cv/internal/rendering"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"profile_dir": "exports/orcid",
		"output": "out/cv.pdf",
		"style": "greenspon-default",
		"plan": "full",
		"http_timeout_seconds": 10,
		"sections": [
			{"kind": "person"},
			{"kind": "work", "heading": "Research Publications", "types": ["journal-article", "preprint"], "required": true}
		],
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "exports/orcid", cfg.ProfileDir)
	assert.Equal(t, "out/cv.pdf", cfg.Output)
	assert.Equal(t, "full", cfg.Plan)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout())
	assert.True(t, cfg.Verbose)
	require.Len(t, cfg.Sections, 2)
	assert.Equal(t, []string{"journal-article", "preprint"}, cfg.Sections[1].Types)
	assert.True(t, cfg.Sections[1].Required)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_UnknownPlan(t *testing.T) {
	cfg := &Config{Plan: "tiny"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Plan")
}

func TestValidate_UnknownSectionKind(t *testing.T) {
	cfg := &Config{Sections: []rendering.Section{{Kind: "patents"}}}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Kind")
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := &Config{HTTPTimeoutSeconds: -1}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HTTPTimeoutSeconds")
}

func TestValidate_MissingEditsFile(t *testing.T) {
	cfg := &Config{Edits: filepath.Join(t.TempDir(), "edits.yaml")}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "edits file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Defaults()
	cfg.IconDir = t.TempDir()

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		ProfileDir: "exports/orcid",
		Style:      "compact",
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, "exports/orcid", merged.ProfileDir)
	assert.Equal(t, "compact", merged.Style)

	// Default values should fill in empty fields
	assert.Equal(t, "cv.pdf", merged.Output)
	assert.Equal(t, "quick", merged.Plan)
	assert.Equal(t, 30, merged.HTTPTimeoutSeconds)
	assert.Equal(t, "dev", merged.LogMode)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Output: "cv.pdf"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "cv.pdf", merged.Output)
	assert.Empty(t, merged.ProfileDir)
}

func TestDocumentPlan(t *testing.T) {
	cfg := Defaults()
	plan, err := cfg.DocumentPlan()
	require.NoError(t, err)
	assert.Equal(t, rendering.QuickBuildPlan(), plan)

	cfg.Sections = []rendering.Section{{Kind: rendering.SectionFunding, Heading: "Funding"}}
	plan, err = cfg.DocumentPlan()
	require.NoError(t, err)
	assert.Equal(t, rendering.Plan{{Kind: rendering.SectionFunding, Heading: "Funding"}}, plan)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvProfileDir, "/data/orcid")
	t.Setenv(EnvStyle, "greenspon-default")
	t.Setenv(EnvLogMode, "prod")
	t.Setenv(EnvHTTPTimeout, "5")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/data/orcid", cfg.ProfileDir)
	assert.Equal(t, "greenspon-default", cfg.Style)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, 5, cfg.HTTPTimeoutSeconds)
}

func TestFromEnv_InvalidTimeout(t *testing.T) {
	t.Setenv(EnvHTTPTimeout, "soon")
	_, err := FromEnv()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ORCID_CV_HTTP_TIMEOUT")

	t.Setenv(EnvHTTPTimeout, "0")
	_, err = FromEnv()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1 second")
}

func TestFromEnv_Unset(t *testing.T) {
	t.Setenv(EnvProfileDir, "")
	t.Setenv(EnvHTTPTimeout, "")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.ProfileDir)
	assert.Zero(t, cfg.HTTPTimeoutSeconds)
}

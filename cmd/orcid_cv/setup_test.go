package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/orcid-cv/internal/config"
)

func newFlagCommand(flags *config.Config) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVarP(&flags.ProfileDir, "profile", "p", "", "")
	cmd.Flags().StringVar(&flags.Style, "style", "", "")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "")
	cmd.Flags().BoolVar(&flags.Compress, "compress", false, "")
	return cmd
}

func TestResolveConfig_Precedence(t *testing.T) {
	t.Setenv(config.EnvProfileDir, "/from/env")
	t.Setenv(config.EnvStyle, "")
	t.Setenv(config.EnvLogMode, "prod")
	t.Setenv(config.EnvHTTPTimeout, "")

	cfgPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"output": "file.pdf", "profile_dir": "/from/file", "compress": true, "verbose": true}`), 0o644))

	var flags config.Config
	cmd := newFlagCommand(&flags)
	require.NoError(t, cmd.Flags().Parse([]string{"--profile", "/from/flag", "--verbose=false"}))

	cfg, err := resolveConfig(cmd, cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.ProfileDir)
	assert.Equal(t, "file.pdf", cfg.Output)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, "quick", cfg.Plan)
	assert.Equal(t, 30, cfg.HTTPTimeoutSeconds)
	assert.True(t, cfg.Compress, "unset bool flag falls back to the config file")
	assert.False(t, cfg.Verbose, "explicit bool flag wins")
}

func TestResolveConfig_EnvFillsProfileDir(t *testing.T) {
	t.Setenv(config.EnvProfileDir, "/from/env")
	t.Setenv(config.EnvHTTPTimeout, "5")

	var flags config.Config
	cmd := newFlagCommand(&flags)
	require.NoError(t, cmd.Flags().Parse(nil))

	cfg, err := resolveConfig(cmd, "", flags)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.ProfileDir)
	assert.Equal(t, 5, cfg.HTTPTimeoutSeconds)
}

func TestResolveConfig_InvalidEnv(t *testing.T) {
	t.Setenv(config.EnvHTTPTimeout, "soon")

	var flags config.Config
	cmd := newFlagCommand(&flags)

	_, err := resolveConfig(cmd, "", flags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvHTTPTimeout)
}

func TestResolveConfig_MissingEditsFile(t *testing.T) {
	t.Setenv(config.EnvHTTPTimeout, "")

	flags := config.Config{Edits: filepath.Join(t.TempDir(), "missing.yaml")}
	cmd := newFlagCommand(&flags)

	_, err := resolveConfig(cmd, "", flags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edits file not found")
}

func TestBuilderWatchPaths(t *testing.T) {
	b := &builder{cfg: config.Config{ProfileDir: "export", Edits: "edits.yaml"}}
	assert.Equal(t, []string{"export", "edits.yaml"}, b.watchPaths())
}

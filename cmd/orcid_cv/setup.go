package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/orcid-cv/internal/config"
	"github.com/jonathan/orcid-cv/internal/enrich"
	"github.com/jonathan/orcid-cv/internal/fetch"
	"github.com/jonathan/orcid-cv/internal/logger"
	"github.com/jonathan/orcid-cv/internal/orcid"
)

// resolveConfig layers flags over the config file over the environment
// over built-in defaults. Bool flags only win when set explicitly.
func resolveConfig(cmd *cobra.Command, configPath string, flags config.Config) (config.Config, error) {
	env, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	base := env.MergeWithDefaults(config.Defaults())

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		base = fileCfg.MergeWithDefaults(base)
	}

	cfg := flags.MergeWithDefaults(base)
	cfg.Verbose = pickBool(cmd, "verbose", flags.Verbose, base.Verbose)
	cfg.UseBrowser = pickBool(cmd, "browser", flags.UseBrowser, base.UseBrowser)
	cfg.Compress = pickBool(cmd, "compress", flags.Compress, base.Compress)
	cfg.SinglePass = pickBool(cmd, "single-pass", flags.SinglePass, base.SinglePass)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func pickBool(cmd *cobra.Command, name string, flagValue, fallback bool) bool {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return flagValue
	}
	return fallback
}

func newLogger(cfg config.Config) (*logger.Logger, error) {
	log, err := logger.New(cfg.LogMode, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// newLoader wires the enrichment resolvers into a profile loader.
func newLoader(cfg config.Config, log *logger.Logger) *orcid.Loader {
	fetchOpts := fetch.DefaultOptions()
	fetchOpts.Timeout = cfg.HTTPTimeout()
	if cfg.UserAgent != "" {
		fetchOpts.UserAgent = cfg.UserAgent
	}

	var browser enrich.PageRenderer
	if cfg.UseBrowser {
		browser = &fetch.Browser{Timeout: cfg.HTTPTimeout(), Log: log}
	}

	return orcid.NewLoader(
		enrich.NewDOIResolver(fetchOpts, log),
		enrich.NewISSNResolver(fetchOpts, browser, log),
		log,
	)
}

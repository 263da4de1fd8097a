package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/orcid-cv/internal/config"
	"github.com/jonathan/orcid-cv/internal/observability"
	"github.com/jonathan/orcid-cv/internal/orcid"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Parse an ORCID export and write the profile cache",
	Long:  "Parses the XML export, resolves repositories and journal names, and writes ORCID.json (or --out) without rendering anything.",
	RunE:  runLoad,
}

var (
	loadFlags      config.Config
	loadConfigFile string
	loadCachePath  string
)

func init() {
	loadCmd.Flags().StringVarP(&loadFlags.ProfileDir, "profile", "p", "", "Path to the ORCID export directory (default: $ORCID_PROFILE_DIR or .)")
	loadCmd.Flags().StringVarP(&loadCachePath, "out", "o", "", "Path to write the profile cache (default: <profile>/ORCID.json)")
	loadCmd.Flags().BoolVar(&loadFlags.UseBrowser, "browser", false, "Render ISSN portal pages in headless Chrome when the static page has no title")
	loadCmd.Flags().StringVarP(&loadConfigFile, "config", "c", "", "Path to JSON config file")
	loadCmd.Flags().BoolVarP(&loadFlags.Verbose, "verbose", "v", false, "Print a profile summary")

	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, loadConfigFile, loadFlags)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	profile, err := newLoader(cfg, log).Load(cmd.Context(), cfg.ProfileDir, orcid.Options{
		Refresh:   true,
		CachePath: loadCachePath,
	})
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintProfile(profile)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cached %s (%d works)\n", profile.Personal.FullName, len(profile.Works))
	return nil
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/orcid-cv/internal/config"
	"github.com/jonathan/orcid-cv/internal/orcid"
	"github.com/jonathan/orcid-cv/internal/schemas"
	schemadefs "github.com/jonathan/orcid-cv/schemas"
)

var validateCacheCmd = &cobra.Command{
	Use:   "validate-cache",
	Short: "Check a profile cache against its JSON schema",
	RunE:  runValidateCache,
}

var (
	validateProfileDir string
	validateFile       string
)

func init() {
	validateCacheCmd.Flags().StringVarP(&validateProfileDir, "profile", "p", "", "Path to the ORCID export directory (default: $ORCID_PROFILE_DIR or .)")
	validateCacheCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Cache file to check (default: <profile>/ORCID.json)")

	rootCmd.AddCommand(validateCacheCmd)
}

func runValidateCache(cmd *cobra.Command, _ []string) error {
	path := validateFile
	if path == "" {
		dir := validateProfileDir
		if dir == "" {
			env, err := config.FromEnv()
			if err != nil {
				return err
			}
			dir = env.ProfileDir
		}
		if dir == "" {
			dir = config.Defaults().ProfileDir
		}
		path = filepath.Join(dir, orcid.CacheFile)
	}

	if err := schemas.ValidateJSONFile(schemadefs.ProfileCache, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is valid\n", path)
	return nil
}

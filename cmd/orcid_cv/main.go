// Package main provides the entry point for the orcid_cv command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "orcid_cv",
	Short: "Build a CV from an ORCID export",
	Long:  "orcid_cv turns a locally exported ORCID profile into a paginated CV PDF, applying manual edits from a YAML file on every run.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

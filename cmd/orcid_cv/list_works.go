package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/orcid-cv/internal/config"
	"github.com/jonathan/orcid-cv/internal/orcid"
)

var listWorksCmd = &cobra.Command{
	Use:   "list-works",
	Short: "List the works in an ORCID export",
	Long:  "Prints each work file as \"index: title (put-code)\" so edits can reference entries by id.",
	RunE:  runListWorks,
}

var (
	listWorksFlags config.Config
	listWorksIDs   bool
)

func init() {
	listWorksCmd.Flags().StringVarP(&listWorksFlags.ProfileDir, "profile", "p", "", "Path to the ORCID export directory (default: $ORCID_PROFILE_DIR or .)")
	listWorksCmd.Flags().BoolVar(&listWorksIDs, "ids", false, "Also print the file id of each work")
	listWorksCmd.Flags().BoolVarP(&listWorksFlags.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listWorksCmd)
}

func runListWorks(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, "", listWorksFlags)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	works, err := orcid.ListWorks(cmd.Context(), cfg.ProfileDir, log)
	if err != nil {
		return fmt.Errorf("failed to list works: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, w := range works {
		if listWorksIDs {
			fmt.Fprintf(out, "%s\t%s\n", w.ID, w)
			continue
		}
		fmt.Fprintln(out, w)
	}
	return nil
}

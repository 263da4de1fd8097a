package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/orcid-cv/internal/rendering"
	"github.com/jonathan/orcid-cv/internal/style"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List available styles and section plans",
	RunE:  runStyles,
}

var stylesFile string

func init() {
	stylesCmd.Flags().StringVar(&stylesFile, "style-file", "", "YAML file defining additional styles")

	rootCmd.AddCommand(stylesCmd)
}

func runStyles(cmd *cobra.Command, _ []string) error {
	registry := style.NewRegistry()
	if stylesFile != "" {
		if _, err := registry.LoadFile(stylesFile); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Styles:")
	for _, name := range registry.Names() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintln(out, "Plans:")
	for _, name := range rendering.PlanNames() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}

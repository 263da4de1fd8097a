package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/orcid-cv/internal/config"
	"github.com/jonathan/orcid-cv/internal/editing"
	"github.com/jonathan/orcid-cv/internal/icons"
	"github.com/jonathan/orcid-cv/internal/layout"
	"github.com/jonathan/orcid-cv/internal/logger"
	"github.com/jonathan/orcid-cv/internal/observability"
	"github.com/jonathan/orcid-cv/internal/orcid"
	"github.com/jonathan/orcid-cv/internal/rendering"
	"github.com/jonathan/orcid-cv/internal/style"
	"github.com/jonathan/orcid-cv/internal/watch"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the CV PDF",
	Long:  "Loads the ORCID export (using ORCID.json when present), applies the edits file, lays out the configured sections and writes a paginated PDF.",
	RunE:  runBuild,
}

var (
	buildFlags      config.Config
	buildConfigFile string
	buildTwoPass    bool
	buildRefresh    bool
	buildNoCache    bool
	buildWatch      bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildFlags.ProfileDir, "profile", "p", "", "Path to the ORCID export directory (default: $ORCID_PROFILE_DIR or .)")
	buildCmd.Flags().StringVarP(&buildFlags.Output, "out", "o", "", "Path to output PDF file (default: cv.pdf)")
	buildCmd.Flags().StringVarP(&buildFlags.Style, "style", "s", "", "Style name (default: greenspon-default)")
	buildCmd.Flags().StringVar(&buildFlags.StyleFile, "style-file", "", "YAML file defining additional styles")
	buildCmd.Flags().StringVarP(&buildFlags.Edits, "edits", "e", "", "YAML file of profile edits to apply")
	buildCmd.Flags().StringVar(&buildFlags.Plan, "plan", "", "Built-in section plan: quick or full (default: quick)")
	buildCmd.Flags().StringVar(&buildFlags.IconDir, "icons", "", "Directory of <label>.png link icons")
	buildCmd.Flags().BoolVar(&buildTwoPass, "two-pass", true, "Lay out every page first so footers show the page total")
	buildCmd.Flags().BoolVar(&buildFlags.SinglePass, "single-pass", false, "Stamp footers without the page total")
	buildCmd.Flags().BoolVar(&buildFlags.Compress, "compress", false, "Compress PDF content streams")
	buildCmd.Flags().BoolVar(&buildRefresh, "refresh", false, "Re-parse the XML export and rewrite ORCID.json")
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "Neither read nor write ORCID.json")
	buildCmd.Flags().BoolVar(&buildFlags.UseBrowser, "browser", false, "Render ISSN portal pages in headless Chrome when the static page has no title")
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "Rebuild whenever the export, edits or style file changes")
	buildCmd.Flags().StringVarP(&buildConfigFile, "config", "c", "", "Path to JSON config file")
	buildCmd.Flags().BoolVarP(&buildFlags.Verbose, "verbose", "v", false, "Print detailed summaries")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("two-pass") && !buildTwoPass {
		buildFlags.SinglePass = true
		_ = cmd.Flags().Set("single-pass", "true")
	}

	cfg, err := resolveConfig(cmd, buildConfigFile, buildFlags)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := &builder{
		cfg:     cfg,
		opts:    orcid.Options{Refresh: buildRefresh, NoCache: buildNoCache},
		log:     log,
		printer: observability.NewPrinter(os.Stdout),
	}
	if err := b.build(ctx); err != nil {
		if !buildWatch {
			return err
		}
		log.Error("initial build failed", "error", err)
	}
	if !buildWatch {
		return nil
	}

	// later rebuilds reuse the cache the first build wrote
	b.opts.Refresh = false
	return watch.Watch(ctx, watch.Options{
		Paths:  b.watchPaths(),
		Ignore: []string{orcid.CacheFile, filepath.Base(cfg.Output)},
		Log:    log,
	}, b.build)
}

type builder struct {
	cfg     config.Config
	opts    orcid.Options
	log     *logger.Logger
	printer *observability.Printer
}

func (b *builder) watchPaths() []string {
	paths := []string{b.cfg.ProfileDir}
	for _, p := range []string{b.cfg.Edits, b.cfg.StyleFile, b.cfg.IconDir} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// build runs one complete load, edit and render cycle from scratch.
func (b *builder) build(ctx context.Context) error {
	cfg := b.cfg

	registry := style.NewRegistry()
	if cfg.StyleFile != "" {
		names, err := registry.LoadFile(cfg.StyleFile)
		if err != nil {
			return err
		}
		b.log.Debug("loaded styles", "path", cfg.StyleFile, "names", names)
	}
	styleCfg, err := registry.Lookup(cfg.Style)
	if err != nil {
		return err
	}

	profile, err := newLoader(cfg, b.log).Load(ctx, cfg.ProfileDir, b.opts)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	if cfg.Edits != "" {
		edits, err := editing.LoadEdits(cfg.Edits)
		if err != nil {
			return err
		}
		if err := edits.Apply(profile, b.log); err != nil {
			return err
		}
		if cfg.Verbose {
			b.printer.PrintEdits(edits)
		}
	}
	if cfg.Verbose {
		b.printer.PrintProfile(profile)
	}

	iconSource, err := icons.NewSource(cfg.IconDir, b.log)
	if err != nil {
		return err
	}
	plan, err := cfg.DocumentPlan()
	if err != nil {
		return err
	}

	mode := layout.TwoPass
	if cfg.SinglePass {
		mode = layout.SinglePass
	}
	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	result, err := rendering.New(styleCfg, iconSource, b.log).Build(profile, plan, rendering.BuildOptions{
		Output:   cfg.Output,
		Mode:     mode,
		Compress: cfg.Compress,
	})
	if err != nil {
		return err
	}

	if cfg.Verbose {
		b.printer.PrintSections(result.Sections)
		b.printer.PrintBuild(result)
	} else {
		fmt.Printf("Wrote %s (%d pages)\n", result.Output, result.Pages)
	}
	return nil
}

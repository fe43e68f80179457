package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jonathan/cv-site/internal/logging"
	"github.com/jonathan/cv-site/internal/pdf"
	"github.com/jonathan/cv-site/internal/site"
	"github.com/spf13/cobra"
)

// PDFFile is written next to the default page when --pdf is set.
const PDFFile = "cv.pdf"

var (
	buildOutDir string
	buildWatch  bool
	buildPDF    bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Pre-render every theme to a static site",
	Long: `Render the résumé once per theme into the output directory: index.html in the
default theme and themes/<key>/index.html for the others, with cv.json and img/ copied
alongside. The theme picker links between the pages.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "", "Output directory (default dist)")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "Rebuild when files in the data directory change")
	buildCmd.Flags().BoolVar(&buildPDF, "pdf", false, "Also print the default page to cv.pdf (requires Chrome)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg := settings
	if cmd.Flags().Changed("out") {
		cfg.OutDir = buildOutDir
	}

	source, err := documentSource(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := site.Options{
		DataDir: cfg.DataDir,
		OutDir:  cfg.OutDir,
		Source:  source,
		Logger:  logging.Component(logger, "site"),
	}

	if buildWatch {
		logger.Info().Str("dir", cfg.DataDir).Msg("watching for changes")
		return site.Watch(ctx, opts, func(result *site.Result, err error) {
			if err != nil {
				logger.Error().Err(err).Msg("build failed")
				return
			}
			reportBuild(cmd, cfg.OutDir, result)
			if buildPDF {
				if err := printPDF(ctx, cfg.OutDir); err != nil {
					logger.Error().Err(err).Msg("pdf export failed")
				}
			}
		})
	}

	result, err := site.Build(ctx, opts)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	reportBuild(cmd, cfg.OutDir, result)

	if buildPDF {
		return printPDF(ctx, cfg.OutDir)
	}
	return nil
}

func reportBuild(cmd *cobra.Command, outDir string, result *site.Result) {
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d pages and copied %d assets into %s\n", len(result.Pages), result.Assets, outDir)
}

func printPDF(ctx context.Context, outDir string) error {
	dst := filepath.Join(outDir, PDFFile)
	if err := pdf.PrintFile(ctx, filepath.Join(outDir, site.IndexFile), dst, pdf.DefaultOptions()); err != nil {
		return err
	}
	logger.Info().Str("file", dst).Msg("pdf written")
	return nil
}

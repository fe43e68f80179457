// Package main provides the entry point for the cv_site server and static builder.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jonathan/cv-site/internal/config"
	"github.com/jonathan/cv-site/internal/fetch"
	"github.com/jonathan/cv-site/internal/loader"
	"github.com/jonathan/cv-site/internal/logging"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "cv_site",
	Short:             "Themeable single-page résumé",
	Long:              "cv_site serves a single-page résumé rendered from cv.json with a switchable visual theme, or pre-renders every theme to a static site.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

var (
	configPath    string
	flagLogLevel  string
	flagLogFormat string
	flagDataDir   string
	flagCVURL     string
)

// Resolved by loadSettings before any subcommand runs.
var (
	settings config.Config
	logger   zerolog.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory holding cv.json and img/")
	rootCmd.PersistentFlags().StringVar(&flagCVURL, "cv-url", "", "Base URL to fetch cv.json from instead of the data directory")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings layers flags over env over the config file over defaults.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = flagLogFormat
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}
	if flags.Changed("cv-url") {
		cfg.CVURL = flagCVURL
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logging.New(logging.Config{
		Level:  logging.Level(cfg.LogLevel),
		Format: logging.Format(cfg.LogFormat),
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	settings = cfg
	logger = l
	return nil
}

// documentSource picks the remote URL when configured, else the data directory.
func documentSource(cfg config.Config) (loader.Source, error) {
	if cfg.CVURL == "" {
		return loader.FileSource{Dir: cfg.DataDir}, nil
	}
	opts := fetch.DefaultOptions()
	if cfg.FetchTimeout > 0 {
		opts.Timeout = time.Duration(cfg.FetchTimeout)
	}
	src, err := fetch.NewSource(cfg.CVURL, loader.DocumentName, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid cv url: %w", err)
	}
	return src, nil
}

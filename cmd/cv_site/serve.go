package main

import (
	"fmt"
	"time"

	"github.com/jonathan/cv-site/internal/config"
	"github.com/jonathan/cv-site/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveBasePath   string
	serveSessionTTL time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the résumé over HTTP",
	Long:  `Start an HTTP server that renders the résumé page, remembers each viewer's theme and exposes the document and theme list as JSON.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveBasePath, "base-path", "", "URL prefix the site is mounted under (default /)")
	serveCmd.Flags().DurationVar(&serveSessionTTL, "session-ttl", 0, "Idle time after which a viewer's theme is forgotten (default 24h)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := settings
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("base-path") {
		cfg.BasePath = config.NormalizeBasePath(serveBasePath)
	}
	if cmd.Flags().Changed("session-ttl") {
		cfg.SessionTTL = config.Duration(serveSessionTTL)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	source, err := documentSource(cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		BasePath:   cfg.BasePath,
		DataDir:    cfg.DataDir,
		Source:     source,
		SessionTTL: time.Duration(cfg.SessionTTL),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

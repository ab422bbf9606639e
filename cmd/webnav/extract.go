package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deepnav/webnav/internal/config"
	"github.com/deepnav/webnav/internal/extractor"
	"github.com/deepnav/webnav/internal/fetcher"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [url]",
		Short: "Fetch and extract structured content from a single page",
		Long: `Extract fetches one page and prints its structured content as JSON:
title, cleaned text, summary, keywords, detected language, links, images,
metadata, and a content quality score.

Examples:
  # Print structured content for a page
  webnav extract https://example.org/article

  # With a site configuration for authenticated pages
  webnav extract -c .webnav https://example.org/private/article`,
		Args: cobra.ExactArgs(1),
		RunE: runExtractCmd,
	}

	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for the request")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .webnav in current or home directory)")

	return cmd
}

// runExtractCmd executes the extract command.
func runExtractCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()
	cfg.ApplyEnv()

	var err error
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
		if err != nil {
			return err
		}
	}
	cfg.SiteConfigPath, err = cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if err := loadSiteFile(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	f := fetcher.New(cfg.Timeout,
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
		fetcher.WithSites(cfg.Sites),
		fetcher.WithLogger(logger),
	)
	e := extractor.New(extractor.WithLogger(logger))

	raw, fetchErr := f.Fetch(ctx, args[0])
	if fetchErr != nil {
		return fetchErr
	}

	page := e.Extract(raw.Body, raw.URL)

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize page: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

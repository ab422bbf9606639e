package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deepnav/webnav/internal/config"
	"github.com/deepnav/webnav/internal/crawler"
	"github.com/deepnav/webnav/internal/model"
	"github.com/deepnav/webnav/internal/persist"
	"github.com/deepnav/webnav/internal/report"
)

// NewNavigateCmd creates the navigate command.
func NewNavigateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "navigate [start-url...]",
		Short: "Navigate a website in depth from one or more start URLs",
		Long: `Navigate crawls a website starting from the given URL(s).

Each page is fetched with a browser identity, its content extracted and
scored, and the most promising same-site links are followed until the depth
or page budget is reached. A politeness delay is applied between fetches.

Examples:
  # Navigate with defaults (depth 3, 10 pages, breadth-first)
  webnav navigate https://example.org/docs

  # Prefer high-quality URLs first
  webnav navigate --strategy quality_first https://example.org

  # Navigate several sites concurrently
  webnav navigate https://a.example https://b.example

  # Full JSON output to a file
  webnav navigate --json --output result.json https://example.org

Configuration file (.webnav) example:
  sites:
    example.org:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"
      depth: 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: runNavigateCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum navigation depth from the start URL")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to accept per navigation")
	cmd.Flags().StringP("strategy", "s", string(model.StrategyBreadthFirst),
		"Frontier strategy: breadth_first, depth_first, or quality_first")
	cmd.Flags().Duration("delay", config.DefaultCrawlDelay,
		"Politeness delay between fetches")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().Int("links-per-page", config.DefaultLinksPerPage,
		"Maximum links followed from each page")
	cmd.Flags().StringSlice("blacklist", nil,
		"URL substrings to never follow (repeatable)")
	cmd.Flags().Bool("retry-failed", true,
		"Allow a failed URL discovered via another page to be retried")
	cmd.Flags().Int("min-content", 0,
		"Skip pages whose cleaned text is at most this many characters (0 keeps every page)")

	// Batch navigation flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchConcurrency,
		"Number of concurrent navigations for multiple start URLs")

	// Persistence flags
	cmd.Flags().String("data-dir", "",
		"Directory for JSON artifacts (default: XDG data directory)")
	cmd.Flags().Bool("no-save", false,
		"Do not write JSON artifacts or history")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .webnav in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output the full navigation path as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output a Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file path (creates directories if needed)")

	return cmd
}

// runNavigateCmd executes the navigate command.
func runNavigateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runNavigate(ctx, cmd, cfg, args, logger)
}

// buildConfig creates a Config from environment variables and command
// flags. Flags win over the environment, but only when the user actually
// set them.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.ApplyEnv()

	flags := cmd.Flags()

	if flags.Changed("depth") {
		v, err := flags.GetInt("depth")
		if err != nil {
			return nil, err
		}
		cfg.MaxDepth = v
	}
	if flags.Changed("max-pages") {
		v, err := flags.GetInt("max-pages")
		if err != nil {
			return nil, err
		}
		cfg.MaxPages = v
	}
	if flags.Changed("strategy") {
		v, err := flags.GetString("strategy")
		if err != nil {
			return nil, err
		}
		cfg.Strategy = model.Strategy(v)
	}
	if flags.Changed("delay") {
		v, err := flags.GetDuration("delay")
		if err != nil {
			return nil, err
		}
		cfg.CrawlDelay = v
	}
	if flags.Changed("timeout") {
		v, err := flags.GetDuration("timeout")
		if err != nil {
			return nil, err
		}
		cfg.Timeout = v
	}
	if flags.Changed("links-per-page") {
		v, err := flags.GetInt("links-per-page")
		if err != nil {
			return nil, err
		}
		cfg.LinksPerPage = v
	}
	if flags.Changed("blacklist") {
		v, err := flags.GetStringSlice("blacklist")
		if err != nil {
			return nil, err
		}
		cfg.URLBlacklist = append(cfg.URLBlacklist, v...)
	}
	if flags.Changed("retry-failed") {
		v, err := flags.GetBool("retry-failed")
		if err != nil {
			return nil, err
		}
		cfg.MarkVisitedOnFailure = !v
	}
	if flags.Changed("batch") {
		v, err := flags.GetInt("batch")
		if err != nil {
			return nil, err
		}
		cfg.BatchConcurrency = v
	}

	noSave, err := flags.GetBool("no-save")
	if err != nil {
		return nil, err
	}
	if noSave {
		cfg.DataDir = ""
		cfg.HistoryDBDir = ""
	} else {
		if flags.Changed("data-dir") {
			v, err := flags.GetString("data-dir")
			if err != nil {
				return nil, err
			}
			cfg.DataDir = v
		}
		if cfg.DataDir == "" {
			cfg.DataDir = config.XDGDataDir()
		}
		if cfg.HistoryDBDir == "" {
			cfg.HistoryDBDir = config.XDGDataDir()
		}
	}

	cfg.SiteConfigPath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if err := loadSiteFile(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadSiteFile loads per-host overrides into the config. An explicitly
// specified file must exist; an implicit one is optional.
func loadSiteFile(cfg *config.Config) error {
	explicit := cfg.SiteConfigPath != ""
	path := config.FindSiteConfigFile(cfg.SiteConfigPath)

	if path == "" {
		if explicit {
			return fmt.Errorf("configuration file not found: %s", cfg.SiteConfigPath)
		}
		cfg.Sites = &config.SiteFile{Sites: make(map[string]config.SiteConfig)}
		return nil
	}

	sites, err := config.LoadSiteFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	cfg.Sites = sites
	return nil
}

// buildSink assembles the persistence backends. The returned closer must
// be called after the crawl.
func buildSink(cfg *config.Config, logger *slog.Logger) (crawler.Sink, func(), error) {
	var sinks []persist.Sink

	if cfg.DataDir != "" {
		fileSink, err := persist.NewFileSink(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to prepare data directory: %w", err)
		}
		sinks = append(sinks, fileSink)
		logger.Info("saving artifacts", "dir", cfg.DataDir)
	}

	closer := func() {}
	if cfg.HistoryDBDir != "" {
		history, err := persist.OpenHistory(cfg.HistoryDBDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open history database: %w", err)
		}
		sinks = append(sinks, history)
		closer = func() {
			if err := history.Close(); err != nil {
				logger.Warn("failed to close history database", "error", err)
			}
		}
	}

	if len(sinks) == 0 {
		return nil, closer, nil
	}
	return persist.NewMultiSink(sinks...), closer, nil
}

// runNavigate executes the navigation and emits the report.
func runNavigate(ctx context.Context, cmd *cobra.Command, cfg *config.Config, seeds []string, logger *slog.Logger) error {
	sink, closeSink, err := buildSink(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	opts := []crawler.Option{crawler.WithLogger(logger)}
	if sink != nil {
		opts = append(opts, crawler.WithSink(sink))
	}
	minContent, err := cmd.Flags().GetInt("min-content")
	if err != nil {
		return err
	}
	if minContent > 0 {
		opts = append(opts, crawler.WithContentFilter(crawler.MinContentFilter(minContent)))
	}

	start := time.Now()
	var paths []*model.NavigationPath
	var navErr error

	if len(seeds) == 1 {
		nav := crawler.New(cfg, opts...)
		var path *model.NavigationPath
		path, navErr = nav.NavigateDeep(ctx, seeds[0])
		if path != nil {
			paths = append(paths, path)
		}
	} else {
		paths, navErr = crawler.NavigateBatch(ctx, cfg, seeds, opts...)
	}

	logger.Info("navigation complete",
		"seeds", len(seeds),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if err := writeReports(cmd, paths); err != nil {
		return err
	}
	if navErr != nil && errors.Is(navErr, context.Canceled) {
		return errors.New("navigation interrupted; partial results were saved")
	}
	return navErr
}

// writeReports renders the crawl results per the report flags.
func writeReports(cmd *cobra.Command, paths []*model.NavigationPath) error {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	mdOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOut && mdOut {
		return errors.New("--json and --markdown are mutually exclusive")
	}

	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		if err := os.MkdirAll(filepath.Dir(outPath), 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close() //nolint:errcheck // Close error after successful writes is not actionable
		out = f
	}

	writer := newReportWriter(out, jsonOut, mdOut)
	for _, path := range paths {
		if path == nil {
			continue
		}
		if err := writePath(writer, path, jsonOut || mdOut); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// newReportWriter picks the writer for the requested format. The default
// is a pretty-printed JSON session summary.
func newReportWriter(out io.Writer, jsonOut, mdOut bool) report.Writer {
	if mdOut {
		return report.NewMarkdownWriter(out)
	}
	return report.NewJSONWriter(out, report.WithPrettyPrint())
}

// writePath emits either the full path or just its summary.
func writePath(w report.Writer, path *model.NavigationPath, full bool) error {
	if full {
		_, err := w.Write(path)
		return err
	}
	_, err := w.WriteSummary(path.Summary())
	return err
}

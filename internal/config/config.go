package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/deepnav/webnav/internal/model"
)

// Default configuration values. Where a value mirrors observed behavior of
// the systems webnav replaces, the rationale is noted.
const (
	// DefaultTimeout is the per-request HTTP timeout. Ordinary web servers
	// answer well within this; anything slower is treated as a failed fetch.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxDepth limits how deep navigation recurses from the seed URL.
	// Depth 0 means only the seed page.
	DefaultMaxDepth = 3

	// DefaultMaxPages caps the number of accepted pages per navigation.
	// This prevents runaway crawling on large or infinitely-generating sites.
	DefaultMaxPages = 10

	// DefaultCrawlDelay is the politeness delay between fetch attempts.
	// It applies after every frontier pop, on success and failure alike.
	DefaultCrawlDelay = 500 * time.Millisecond

	// DefaultLinksPerPage is how many selected links are enqueued from each
	// accepted page.
	DefaultLinksPerPage = 5

	// DefaultBatchConcurrency is the number of seeds navigated concurrently
	// when a batch of start URLs is given.
	DefaultBatchConcurrency = 3

	// DefaultUserAgent impersonates a desktop browser. Several sites serve
	// reduced or blocked content to obvious bot agents, and the reference
	// behavior this tool preserves always fetched with a browser identity.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// DefaultMaxBodySize limits the response body size to read. 5MB covers
	// any realistic HTML document while bounding memory per fetch.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// AppName is the application name used for XDG directory paths.
	AppName = "webnav"
)

// Config holds all options for a navigation run.
//
// Design decision: We use a single flat struct instead of nested sub-structs.
// The number of options is manageable, and nesting would add complexity
// without significant benefit.
type Config struct {
	// Timeout is the HTTP timeout for each fetch.
	Timeout time.Duration

	// MaxDepth is the maximum frontier depth. Pages enqueued beyond this
	// depth are skipped without consuming the page budget.
	MaxDepth int

	// MaxPages is the hard ceiling on accepted pages per navigation.
	MaxPages int

	// Strategy selects the frontier ordering.
	Strategy model.Strategy

	// CrawlDelay is the politeness delay between fetch iterations.
	CrawlDelay time.Duration

	// LinksPerPage is the per-page cap on enqueued outgoing links.
	LinksPerPage int

	// UserAgent is the User-Agent header sent with every fetch.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Larger bodies are truncated.
	MaxBodySize int64

	// MarkVisitedOnFailure controls whether a failed fetch marks its URL
	// visited. The historical behavior is false, which allows a failing URL
	// discovered via two different parent pages to be retried within one
	// crawl. Set to true to fetch every URL at most once per crawl.
	MarkVisitedOnFailure bool

	// DataDir is where per-page and per-session JSON artifacts are written.
	// Empty disables file persistence.
	DataDir string

	// HistoryDBDir is the directory for the SQLite session history database.
	// Empty disables history recording.
	HistoryDBDir string

	// URLBlacklist contains substrings; URLs containing any of them are
	// never enqueued.
	URLBlacklist []string

	// BatchConcurrency is the number of concurrent navigations when multiple
	// seed URLs are given.
	BatchConcurrency int

	// Verbose enables debug-level log output.
	Verbose bool

	// SiteConfigPath is the path to the YAML site-config file. Empty means
	// search the standard locations.
	SiteConfigPath string

	// Sites holds per-host overrides loaded from the site-config file.
	Sites *SiteFile
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero values
// because most defaults are non-zero. It also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:          DefaultTimeout,
		MaxDepth:         DefaultMaxDepth,
		MaxPages:         DefaultMaxPages,
		Strategy:         model.StrategyBreadthFirst,
		CrawlDelay:       DefaultCrawlDelay,
		LinksPerPage:     DefaultLinksPerPage,
		UserAgent:        DefaultUserAgent,
		MaxBodySize:      DefaultMaxBodySize,
		BatchConcurrency: DefaultBatchConcurrency,
	}
}

// XDGDataDir returns the XDG data directory for webnav.
// On Linux: ~/.local/share/webnav
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for webnav.
// On Linux: ~/.cache/webnav
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once after flag parsing, before any navigation begins, so
// invalid values fail fast with a clear message.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	if c.MaxPages < 1 {
		return ErrInvalidMaxPages
	}
	if !c.Strategy.Valid() {
		return ErrInvalidStrategy
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.BatchConcurrency < 1 {
		return ErrInvalidConcurrency
	}
	return nil
}

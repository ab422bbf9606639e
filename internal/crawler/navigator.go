package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/deepnav/webnav/internal/config"
	"github.com/deepnav/webnav/internal/extractor"
	"github.com/deepnav/webnav/internal/fetcher"
	"github.com/deepnav/webnav/internal/model"
)

// ContentFilter decides whether a successfully extracted page joins the
// navigation path. Rejected pages are still marked visited and still cost a
// politeness delay; they just never count against the page budget.
type ContentFilter func(page *model.PageRecord) bool

// MinContentFilter returns a ContentFilter that accepts pages whose cleaned
// text is longer than min runes. Near-empty pages (redirect stubs, soft
// 404s) fail it.
func MinContentFilter(min int) ContentFilter {
	return func(page *model.PageRecord) bool {
		return utf8.RuneCountInString(page.CleanedText) > min
	}
}

// sessionCounter disambiguates session IDs created within the same second.
var sessionCounter atomic.Int64

// newSessionID returns a unique session identifier.
func newSessionID() string {
	return fmt.Sprintf("nav_%d_%d", time.Now().Unix(), sessionCounter.Add(1))
}

// Sink receives crawl artifacts as they are produced. Implementations must
// tolerate being called once per accepted page and once per finished crawl.
type Sink interface {
	// SavePage persists one accepted page for the given session.
	SavePage(sessionID string, page *model.PageRecord) error

	// SavePath persists the finished navigation path.
	SavePath(path *model.NavigationPath) error
}

// queueItem is one frontier entry.
type queueItem struct {
	url   string
	depth int
}

// Navigator runs deep navigation crawls. One Navigator serves one seed at a
// time; its page cache persists across NavigateDeep calls so repeated
// navigations over the same site reuse fetched pages.
type Navigator struct {
	cfg       *config.Config
	fetcher   *fetcher.Fetcher
	extractor *extractor.Extractor
	sink      Sink
	filter    ContentFilter
	logger    *slog.Logger
	limiter   *rate.Limiter

	mu    sync.Mutex
	cache map[string]*model.PageRecord
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithFetcher replaces the fetcher built from the configuration.
func WithFetcher(f *fetcher.Fetcher) Option {
	return func(n *Navigator) { n.fetcher = f }
}

// WithExtractor replaces the default extractor.
func WithExtractor(e *extractor.Extractor) Option {
	return func(n *Navigator) { n.extractor = e }
}

// WithSink sets the persistence sink. Without one, crawl results exist only
// in the returned NavigationPath.
func WithSink(s Sink) Option {
	return func(n *Navigator) { n.sink = s }
}

// WithContentFilter sets the acceptance predicate for extracted pages.
// Without one, every page that fetched and extracted successfully is
// accepted.
func WithContentFilter(filter ContentFilter) Option {
	return func(n *Navigator) { n.filter = filter }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) { n.logger = logger }
}

// New creates a Navigator for the given configuration.
func New(cfg *config.Config, opts ...Option) *Navigator {
	n := &Navigator{
		cfg:   cfg,
		cache: make(map[string]*model.PageRecord),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.fetcher == nil {
		n.fetcher = fetcher.New(cfg.Timeout,
			fetcher.WithUserAgent(cfg.UserAgent),
			fetcher.WithMaxBodySize(cfg.MaxBodySize),
			fetcher.WithSites(cfg.Sites),
		)
	}
	if n.extractor == nil {
		n.extractor = extractor.New()
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}

	if cfg.CrawlDelay > 0 {
		n.limiter = rate.NewLimiter(rate.Every(cfg.CrawlDelay), 1)
	} else {
		n.limiter = rate.NewLimiter(rate.Inf, 1)
	}

	return n
}

// NavigateDeep crawls from startURL until the frontier empties, the page
// budget is spent, or ctx is canceled. It always returns the path built so
// far; the error is non-nil only when the context ended the crawl early.
func (n *Navigator) NavigateDeep(ctx context.Context, startURL string) (*model.NavigationPath, error) {
	path := model.NewNavigationPath(startURL, newSessionID(), n.cfg.Strategy)
	visited := make(map[string]struct{})
	queue := []queueItem{{url: startURL, depth: 0}}

	n.logger.Info("navigation started",
		"session", path.SessionID,
		"start_url", startURL,
		"strategy", string(n.cfg.Strategy),
		"max_depth", n.cfg.MaxDepth,
		"max_pages", n.cfg.MaxPages,
	)

	for len(queue) > 0 && len(path.VisitedPages) < n.cfg.MaxPages {
		if n.cfg.Strategy == model.StrategyQualityFirst {
			// The whole frontier is re-sorted before every pop because new
			// links arrive between pops. Stable sort keeps insertion order
			// among equal estimates, which makes crawls reproducible.
			sort.SliceStable(queue, func(i, j int) bool {
				return EstimateURLQuality(queue[i].url) > EstimateURLQuality(queue[j].url)
			})
		}

		item := queue[0]
		queue = queue[1:]

		if _, ok := visited[item.url]; ok {
			continue
		}
		if item.depth > n.cfg.MaxDepth {
			continue
		}

		if err := n.limiter.Wait(ctx); err != nil {
			n.logger.Warn("navigation canceled", "session", path.SessionID, "visited", len(path.VisitedPages))
			return path, fmt.Errorf("navigation canceled: %w", err)
		}

		page := n.ExtractPageContent(ctx, item.url)
		if !page.Success {
			n.logger.Warn("extraction failed",
				"url", item.url,
				"depth", item.depth,
				"error", page.ErrorMessage,
			)
			if n.cfg.MarkVisitedOnFailure {
				visited[item.url] = struct{}{}
			}
			continue
		}

		// A successful fetch settles the URL even when the filter turns
		// the page away; re-encounters must not spend another delay on it.
		visited[item.url] = struct{}{}

		if n.filter != nil && !n.filter(page) {
			n.logger.Debug("page filtered", "url", item.url, "depth", item.depth)
			continue
		}

		path.AddPage(page, item.depth)
		n.persistPage(path.SessionID, page)

		n.logger.Info("page accepted",
			"url", item.url,
			"depth", item.depth,
			"quality", page.ContentQualityScore,
			"visited", len(path.VisitedPages),
		)

		for _, link := range n.nextLinks(page, visited) {
			queue = append(queue, queueItem{url: link.URL, depth: item.depth + 1})
		}
	}

	n.persistPath(path)
	n.logger.Info("navigation finished",
		"session", path.SessionID,
		"pages", len(path.VisitedPages),
		"depth", path.NavigationDepth,
		"content_bytes", path.TotalContentExtracted,
	)
	return path, nil
}

// ExtractPageContent fetches and extracts a single page, consulting the
// cache first. Fetch failures produce a failed PageRecord rather than an
// error; only successful extractions are cached, so a URL that failed once
// is retried on its next encounter.
func (n *Navigator) ExtractPageContent(ctx context.Context, pageURL string) *model.PageRecord {
	n.mu.Lock()
	if page, ok := n.cache[pageURL]; ok {
		n.mu.Unlock()
		return page
	}
	n.mu.Unlock()

	raw, fetchErr := n.fetcher.Fetch(ctx, pageURL)
	if fetchErr != nil {
		return model.NewFailedPageRecord(pageURL, fetchErr.Error())
	}

	page := n.extractor.Extract(raw.Body, raw.URL)
	if page.Success {
		n.mu.Lock()
		n.cache[pageURL] = page
		n.mu.Unlock()
	}
	return page
}

// nextLinks selects the links to enqueue from an accepted page.
func (n *Navigator) nextLinks(page *model.PageRecord, visited map[string]struct{}) []model.Link {
	links := SelectNavigationLinks(page.Links, page.URL, n.cfg.URLBlacklist, visited)
	if len(links) > n.cfg.LinksPerPage {
		links = links[:n.cfg.LinksPerPage]
	}
	return links
}

// persistPage hands a page to the sink. Persistence failures are logged and
// swallowed: losing an artifact must not abort a crawl in progress.
func (n *Navigator) persistPage(sessionID string, page *model.PageRecord) {
	if n.sink == nil {
		return
	}
	if err := n.sink.SavePage(sessionID, page); err != nil {
		n.logger.Warn("failed to persist page", "url", page.URL, "error", err)
	}
}

// persistPath hands the finished path to the sink.
func (n *Navigator) persistPath(path *model.NavigationPath) {
	if n.sink == nil {
		return
	}
	if err := n.sink.SavePath(path); err != nil {
		n.logger.Warn("failed to persist navigation path", "session", path.SessionID, "error", err)
	}
}

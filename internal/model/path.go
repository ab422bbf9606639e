package model

import "time"

// Strategy selects how the navigator orders its frontier.
type Strategy string

const (
	// StrategyBreadthFirst processes the frontier as a FIFO queue.
	StrategyBreadthFirst Strategy = "breadth_first"

	// StrategyDepthFirst is accepted for compatibility but behaves exactly
	// like StrategyBreadthFirst: the frontier stays FIFO. True LIFO ordering
	// would change crawl output for existing callers, so it is deliberately
	// not implemented.
	StrategyDepthFirst Strategy = "depth_first"

	// StrategyQualityFirst re-sorts the entire frontier by a URL-only quality
	// estimate before every pop.
	StrategyQualityFirst Strategy = "quality_first"
)

// Valid reports whether s is one of the known strategies.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyBreadthFirst, StrategyDepthFirst, StrategyQualityFirst:
		return true
	}
	return false
}

// NavigationPath is the aggregate result of one navigate_deep invocation.
//
// It is created empty at crawl start, mutated only through AddPage while the
// crawl loop runs, and frozen once the loop terminates. VisitedPages holds
// accepted pages in acceptance order, which follows frontier pop order, not
// URL order.
type NavigationPath struct {
	// StartURL is the seed URL of the crawl.
	StartURL string `json:"start_url"`

	// VisitedPages are the accepted page records in acceptance order.
	VisitedPages []*PageRecord `json:"visited_pages"`

	// NavigationDepth is the maximum depth among accepted pages.
	// It is a running maximum and never decreases during a crawl.
	NavigationDepth int `json:"navigation_depth"`

	// TotalContentExtracted is the running sum of len(CleanedText) over
	// accepted pages.
	TotalContentExtracted int `json:"total_content_extracted"`

	// NavigationStrategy is the frontier ordering used for this crawl.
	NavigationStrategy Strategy `json:"navigation_strategy"`

	// SessionID uniquely identifies this crawl for persistence.
	SessionID string `json:"session_id"`

	// CreatedAt is when the crawl started.
	CreatedAt time.Time `json:"created_at"`
}

// NewNavigationPath creates an empty path for a crawl starting at startURL.
func NewNavigationPath(startURL, sessionID string, strategy Strategy) *NavigationPath {
	return &NavigationPath{
		StartURL:           startURL,
		VisitedPages:       make([]*PageRecord, 0),
		NavigationStrategy: strategy,
		SessionID:          sessionID,
		CreatedAt:          time.Now(),
	}
}

// AddPage appends an accepted page and updates the running statistics.
// depth is the frontier depth the page was dequeued at.
func (p *NavigationPath) AddPage(page *PageRecord, depth int) {
	p.VisitedPages = append(p.VisitedPages, page)
	p.TotalContentExtracted += len(page.CleanedText)
	if depth > p.NavigationDepth {
		p.NavigationDepth = depth
	}
}

// VisitedURLs returns the URLs of accepted pages in acceptance order.
func (p *NavigationPath) VisitedURLs() []string {
	urls := make([]string, 0, len(p.VisitedPages))
	for _, page := range p.VisitedPages {
		urls = append(urls, page.URL)
	}
	return urls
}

// PathSummary is the persisted per-session artifact. It carries aggregate
// statistics and the ordered list of visited URLs, not full page bodies.
type PathSummary struct {
	StartURL              string   `json:"start_url"`
	NavigationDepth       int      `json:"navigation_depth"`
	TotalContentExtracted int      `json:"total_content_extracted"`
	NavigationStrategy    Strategy `json:"navigation_strategy"`
	SessionID             string   `json:"session_id"`
	CreatedAt             string   `json:"created_at"`
	VisitedPagesCount     int      `json:"visited_pages_count"`
	VisitedURLs           []string `json:"visited_urls"`
}

// Summary builds the persisted summary form of the path.
func (p *NavigationPath) Summary() *PathSummary {
	return &PathSummary{
		StartURL:              p.StartURL,
		NavigationDepth:       p.NavigationDepth,
		TotalContentExtracted: p.TotalContentExtracted,
		NavigationStrategy:    p.NavigationStrategy,
		SessionID:             p.SessionID,
		CreatedAt:             p.CreatedAt.Format(time.RFC3339),
		VisitedPagesCount:     len(p.VisitedPages),
		VisitedURLs:           p.VisitedURLs(),
	}
}

// Package crawler implements frontier-based deep navigation.
//
// The Navigator owns a crawl: it pops URLs from a frontier queue, fetches
// and extracts each page, accepts pages that carry substantial content, and
// enqueues a scored selection of their outgoing links. Three strategies
// order the frontier; breadth_first and depth_first are both FIFO, while
// quality_first re-sorts the whole frontier before every pop using a
// URL-only quality estimate.
//
// Design decision: The Navigator keeps an unbounded in-memory page cache
// keyed by URL. Crawls are bounded by the page budget, so the cache can
// never outgrow max_pages entries per session by much, and eviction logic
// would only add failure modes. The cache is what makes re-encountering a
// URL through a second parent page free.
package crawler

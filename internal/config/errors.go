package config

import "errors"

// Sentinel errors returned by Validate. Callers can match them with
// errors.Is to distinguish configuration problems.
var (
	// ErrInvalidMaxDepth is returned when the crawl depth is negative.
	ErrInvalidMaxDepth = errors.New("max depth must be zero or positive")

	// ErrInvalidMaxPages is returned when the page budget is below one.
	ErrInvalidMaxPages = errors.New("max pages must be at least 1")

	// ErrInvalidStrategy is returned for an unknown navigation strategy.
	ErrInvalidStrategy = errors.New("strategy must be breadth_first, depth_first, or quality_first")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrInvalidCrawlDelay is returned when the politeness delay is negative.
	ErrInvalidCrawlDelay = errors.New("crawl delay must be zero or positive")

	// ErrInvalidMaxBodySize is returned when the body size limit is negative.
	ErrInvalidMaxBodySize = errors.New("max body size must be zero or positive")

	// ErrInvalidConcurrency is returned when batch concurrency is below one.
	ErrInvalidConcurrency = errors.New("batch concurrency must be at least 1")

	// ErrSiteConfigNotFound is returned when the site-config file does not exist.
	ErrSiteConfigNotFound = errors.New("site configuration file not found")
)

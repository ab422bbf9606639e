// Package extractor turns one raw HTML document into a structured PageRecord.
//
// # Pipeline
//
// Extraction runs a fixed sequence over the parsed document: noise removal,
// metadata, title, main content, text cleaning, summary, links, images,
// navigation elements, heading sections, keywords, language detection, and
// a content quality score. Every step is best-effort: a step that finds
// nothing degrades to an empty or default value, and the whole extraction is
// guarded so a failure produces a PageRecord with Success=false rather than
// an error to the caller.
//
// Design decision: We use goquery for CSS-selector queries because the
// selector tables driving noise removal and main-content detection are
// expressed as CSS selectors; reimplementing selector matching over
// x/net/html nodes would be most of goquery anyway. Sibling traversal for
// heading sections still works on the underlying x/net/html nodes, which
// goquery exposes.
//
// # Heuristics
//
// All keyword tables (stopwords, language indicators, summary importance
// words) are named package-level variables so they can be inspected and the
// pure functions over them tested in isolation.
package extractor

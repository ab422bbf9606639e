package model

import "time"

// SchemaOrgKey is the reserved metadata key under which parsed JSON-LD
// (schema.org) data is stored. Regular meta tags cannot collide with it
// because meta tag names are stored as-is and "schema_org" is not a valid
// meta tag name in practice.
const SchemaOrgKey = "schema_org"

// PageRecord represents one fetched and extracted web page.
//
// A PageRecord is created exactly once per fetch attempt and never mutated
// afterward. Re-fetching the same URL produces a new record; the navigator's
// cache may substitute a previously built one.
//
// Design decision: We keep both Content (raw visible text) and CleanedText
// because:
//  1. CleanedText feeds quality scoring, keywords, and summaries
//  2. Content preserves the original spacing for downstream consumers
//  3. The two diverge on pages with heavy whitespace or control characters
type PageRecord struct {
	// URL is the effective URL of the page after redirects.
	URL string `json:"url"`

	// Title is the page title. Sources are tried in order: <title>, <h1>,
	// og:title, twitter:title. "Page sans titre" when none yields text.
	Title string `json:"title"`

	// Content is all visible text of the page, space-joined.
	Content string `json:"content"`

	// CleanedText is Content with whitespace runs collapsed and control
	// characters stripped.
	CleanedText string `json:"cleaned_text"`

	// Summary is at most three extracted sentences, or a truncated slice of
	// CleanedText when the page has too few usable sentences.
	Summary string `json:"summary"`

	// MainContent is the best-guess primary content block of the page.
	MainContent string `json:"main_content"`

	// Metadata maps meta tag names (name, property, or http-equiv) to their
	// content values. Parsed JSON-LD, if present, is stored under SchemaOrgKey.
	Metadata map[string]any `json:"metadata"`

	// Links are all http(s) anchors of the page in document order.
	Links []Link `json:"links"`

	// Images are all <img src> elements of the page in document order.
	Images []Image `json:"images"`

	// NavigationElements are links found inside nav-like containers.
	NavigationElements []NavElement `json:"navigation_elements"`

	// ContentSections are heading-delimited sections in heading order.
	ContentSections []Section `json:"content_sections"`

	// Keywords are the up-to-10 most frequent non-stopword tokens.
	Keywords []string `json:"keywords"`

	// Language is "fr", "en", or "unknown".
	Language string `json:"language"`

	// ContentQualityScore is the additive heuristic score in [0, 10].
	ContentQualityScore float64 `json:"content_quality_score"`

	// ExtractionTimestamp is when the record was built.
	ExtractionTimestamp time.Time `json:"extraction_timestamp"`

	// Success reports whether fetch and extraction both succeeded.
	// When false, all content fields are empty and ErrorMessage is set.
	Success bool `json:"success"`

	// ErrorMessage carries the fetch or extraction error text. Empty on success.
	ErrorMessage string `json:"error_message"`
}

// NewFailedPageRecord builds the record for a failed fetch or extraction.
// It enforces the failure invariant: every content field at its zero value
// and a non-empty error message.
func NewFailedPageRecord(url, errMsg string) *PageRecord {
	if errMsg == "" {
		errMsg = "unknown error"
	}
	return &PageRecord{
		URL:                 url,
		Metadata:            map[string]any{},
		Links:               []Link{},
		Images:              []Image{},
		NavigationElements:  []NavElement{},
		ContentSections:     []Section{},
		Keywords:            []string{},
		ExtractionTimestamp: time.Now(),
		Success:             false,
		ErrorMessage:        errMsg,
	}
}

// Link represents one anchor element with an http(s) target.
type Link struct {
	// URL is the absolute target URL, resolved against the page URL.
	URL string `json:"url"`

	// Text is the anchor's trimmed inner text.
	Text string `json:"text"`

	// Title is the anchor's title attribute.
	Title string `json:"title,omitempty"`

	// Rel is the anchor's rel attribute.
	Rel string `json:"rel,omitempty"`

	// Target is the anchor's target attribute.
	Target string `json:"target,omitempty"`
}

// Image represents one <img> element.
type Image struct {
	// URL is the absolute image URL, resolved against the page URL.
	URL string `json:"url"`

	// Alt is the alt text.
	Alt string `json:"alt,omitempty"`

	// Title is the title attribute.
	Title string `json:"title,omitempty"`

	// Width is the width attribute as written in the HTML.
	Width string `json:"width,omitempty"`

	// Height is the height attribute as written in the HTML.
	Height string `json:"height,omitempty"`
}

// NavElement is a link discovered inside a nav-like container.
type NavElement struct {
	// URL is the absolute target URL.
	URL string `json:"url"`

	// Text is the link's trimmed inner text.
	Text string `json:"text"`

	// Type is always "navigation"; kept for artifact compatibility.
	Type string `json:"type"`
}

// Section is a heading-delimited slice of page content.
type Section struct {
	// Title is the heading text.
	Title string `json:"title"`

	// Content is the accumulated text of the heading's following siblings,
	// up to the next heading of equal or higher level.
	Content string `json:"content"`

	// Level is the heading level tag, "h1" through "h6".
	Level string `json:"level"`
}

package extractor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/deepnav/webnav/internal/model"
)

// noTitlePlaceholder is used when no title source yields text. The literal
// is part of the persisted artifact format and must not change.
const noTitlePlaceholder = "Page sans titre"

// Extractor builds PageRecords from raw HTML. It is stateless and safe for
// concurrent use.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Extract parses one HTML document and returns its structured record.
// It never returns an error: any failure yields a record with Success=false
// and the failure text in ErrorMessage.
func (e *Extractor) Extract(rawHTML, pageURL string) (rec *model.PageRecord) {
	// The individual steps degrade gracefully, but a malformed document can
	// still surprise a selector engine. The recover keeps the contract:
	// extraction failure is reported, never thrown.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extraction panicked", "url", pageURL, "panic", fmt.Sprint(r))
			rec = model.NewFailedPageRecord(pageURL, fmt.Sprintf("extraction failed: %v", r))
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return model.NewFailedPageRecord(pageURL, fmt.Sprintf("parse HTML: %v", err))
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return model.NewFailedPageRecord(pageURL, fmt.Sprintf("parse URL: %v", err))
	}

	// JSON-LD lives in script elements, which the noise pass removes.
	// Capture the bodies first.
	jsonLD := extractJSONLD(doc)

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	metadata := extractMetadata(doc)
	if jsonLD != nil {
		metadata[model.SchemaOrgKey] = jsonLD
	}

	title := extractTitle(doc)
	mainContent := e.extractMainContent(doc)

	allText := joinedText(doc.Selection)
	cleaned := CleanText(allText)
	summary := Summarize(cleaned)

	links := extractLinks(doc, base)
	images := extractImages(doc, base)
	navElements := extractNavigationElements(doc, base)
	sections := extractContentSections(doc)

	keywords := Keywords(cleaned, maxKeywords)
	language := DetectLanguage(cleaned)
	quality := QualityScore(cleaned, title, links)

	return &model.PageRecord{
		URL:                 pageURL,
		Title:               title,
		Content:             allText,
		CleanedText:         cleaned,
		Summary:             summary,
		MainContent:         mainContent,
		Metadata:            metadata,
		Links:               links,
		Images:              images,
		NavigationElements:  navElements,
		ContentSections:     sections,
		Keywords:            keywords,
		Language:            language,
		ContentQualityScore: quality,
		ExtractionTimestamp: time.Now(),
		Success:             true,
	}
}

// extractJSONLD parses the first well-formed application/ld+json script body.
func extractJSONLD(doc *goquery.Document) any {
	var data any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		body := strings.TrimSpace(s.Text())
		if body == "" {
			return true
		}
		if err := json.Unmarshal([]byte(body), &data); err != nil {
			data = nil
			return true
		}
		return false
	})
	return data
}

// extractMetadata collects every meta tag keyed by name, property, or
// http-equiv, in that priority order.
func extractMetadata(doc *goquery.Document) map[string]any {
	metadata := make(map[string]any)

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		if name == "" {
			name, _ = s.Attr("property")
		}
		if name == "" {
			name, _ = s.Attr("http-equiv")
		}
		content, _ := s.Attr("content")
		if name != "" && content != "" {
			metadata[name] = content
		}
	})

	return metadata
}

// extractTitle tries title sources in order and returns the first non-empty:
// <title>, <h1>, og:title, twitter:title. Falls back to a fixed placeholder.
func extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[name="twitter:title"]`).First().Attr("content"); ok && t != "" {
		return t
	}
	return noTitlePlaceholder
}

// extractMainContent returns the text of the best main-content candidate.
//
// The first selector with any match wins; among its matches the one with the
// longest text is kept. With no match at all, the fallback clones the
// document, strips nav/sidebar/footer containers, and uses the remainder.
func (e *Extractor) extractMainContent(doc *goquery.Document) string {
	for _, sel := range mainContentSelectors {
		matches := doc.Find(sel)
		if matches.Length() == 0 {
			continue
		}

		var best *goquery.Selection
		bestLen := -1
		matches.Each(func(_ int, s *goquery.Selection) {
			if l := len(s.Text()); l > bestLen {
				best = s
				bestLen = l
			}
		})
		return joinedText(best)
	}

	clone := doc.Selection.Clone()
	for _, group := range [][]string{navigationSelectors, sidebarSelectors, footerSelectors} {
		for _, sel := range group {
			clone.Find(sel).Remove()
		}
	}
	return joinedText(clone)
}

// extractLinks returns every anchor with an http(s) target, resolved against
// the page URL, in document order.
func extractLinks(doc *goquery.Document, base *url.URL) []model.Link {
	links := make([]model.Link, 0)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		resolved, ok := resolveHTTP(base, href)
		if !ok {
			return
		}

		title, _ := s.Attr("title")
		rel, _ := s.Attr("rel")
		target, _ := s.Attr("target")

		links = append(links, model.Link{
			URL:    resolved,
			Text:   strings.TrimSpace(s.Text()),
			Title:  title,
			Rel:    rel,
			Target: target,
		})
	})

	return links
}

// extractImages returns every img with a src, resolved against the page URL.
func extractImages(doc *goquery.Document, base *url.URL) []model.Image {
	images := make([]model.Image, 0)

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		resolved := resolveAny(base, src)
		if resolved == "" {
			return
		}

		alt, _ := s.Attr("alt")
		title, _ := s.Attr("title")
		width, _ := s.Attr("width")
		height, _ := s.Attr("height")

		images = append(images, model.Image{
			URL:    resolved,
			Alt:    alt,
			Title:  title,
			Width:  width,
			Height: height,
		})
	})

	return images
}

// extractNavigationElements returns links found inside nav-like containers.
// A link under two matching containers appears once per container, matching
// the historical artifact format.
func extractNavigationElements(doc *goquery.Document, base *url.URL) []model.NavElement {
	elements := make([]model.NavElement, 0)

	for _, sel := range navigationSelectors {
		doc.Find(sel).Each(func(_ int, nav *goquery.Selection) {
			nav.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
				href, _ := s.Attr("href")
				resolved := resolveAny(base, href)
				if resolved == "" {
					return
				}
				elements = append(elements, model.NavElement{
					URL:  resolved,
					Text: strings.TrimSpace(s.Text()),
					Type: "navigation",
				})
			})
		})
	}

	return elements
}

// extractContentSections builds one section per heading element: the heading
// text plus the accumulated text of its following siblings, stopping at the
// next heading of equal or higher level.
func extractContentSections(doc *goquery.Document) []model.Section {
	sections := make([]model.Section, 0)

	for level := 1; level <= 6; level++ {
		tag := fmt.Sprintf("h%d", level)
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			if len(s.Nodes) == 0 {
				return
			}

			var content strings.Builder
			for n := s.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
				if n.Type == html.ElementNode && headingLevel(n.Data) != 0 && headingLevel(n.Data) <= level {
					break
				}
				if text := joinedTextNode(n); text != "" {
					content.WriteString(text)
					content.WriteString(" ")
				}
			}

			body := strings.TrimSpace(content.String())
			if body == "" {
				return
			}
			sections = append(sections, model.Section{
				Title:   strings.TrimSpace(s.Text()),
				Content: body,
				Level:   tag,
			})
		})
	}

	return sections
}

// headingLevel returns 1-6 for h1-h6 element names, 0 otherwise.
func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}

// resolveHTTP resolves href against base and accepts only http(s) results.
func resolveHTTP(base *url.URL, href string) (string, bool) {
	resolved := resolveAny(base, href)
	if resolved == "" {
		return "", false
	}
	u, err := url.Parse(resolved)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return resolved, true
}

// resolveAny resolves a possibly-relative reference against base.
func resolveAny(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// joinedText returns the visible text of a selection: every text node
// trimmed, empties dropped, the rest joined with single spaces.
func joinedText(s *goquery.Selection) string {
	if s == nil {
		return ""
	}
	var parts []string
	for _, n := range s.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, " ")
}

// joinedTextNode is joinedText over a single node.
func joinedTextNode(n *html.Node) string {
	var parts []string
	collectText(n, &parts)
	return strings.Join(parts, " ")
}

// collectText appends trimmed non-empty text node contents in document order.
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	if n.Type != html.ElementNode && n.Type != html.DocumentNode {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

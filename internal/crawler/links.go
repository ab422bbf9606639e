package crawler

import (
	"net/url"
	"strings"

	"github.com/deepnav/webnav/internal/model"
)

// maxLinkCandidates caps how many scored links SelectNavigationLinks
// returns. The navigator then enqueues its own per-page slice of these.
const maxLinkCandidates = 10

// interestingKeywords raise a link's score by one each when they appear in
// its anchor text. The list is bilingual because the tool's primary corpus
// mixes French and English sites.
var interestingKeywords = []string{
	"détail", "plus", "voir", "lire", "article", "page", "section",
	"chapitre", "guide", "tutoriel", "formation", "cours",
	"about", "contact", "service", "produit", "information",
}

// genericKeywords lower a link's score by two when any of them appears in
// the anchor text. They mark chrome links (home, menu, search) that rarely
// lead to new content.
var genericKeywords = []string{
	"accueil", "home", "menu", "recherche", "search",
}

// skippedExtensions are binary or media resources the extractor cannot use.
var skippedExtensions = []string{".pdf", ".jpg", ".png", ".gif"}

// SelectNavigationLinks scores a page's outgoing links and returns the
// candidates worth following, in document order.
//
// A link qualifies when it has not been visited yet, stays on the same host
// as base, is not a media or document download, is not a fragment jump, and
// does not match any blacklist substring. Qualifying links are scored on
// their anchor text; only links with a positive score survive, and at most
// maxLinkCandidates are returned. The result keeps document order rather
// than score order: on a well-structured page the author's ordering is
// itself a relevance signal.
func SelectNavigationLinks(links []model.Link, baseURL string, blacklist []string, visited map[string]struct{}) []model.Link {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	selected := make([]model.Link, 0, maxLinkCandidates)
	for _, link := range links {
		if len(selected) >= maxLinkCandidates {
			break
		}
		if _, ok := visited[link.URL]; ok {
			continue
		}
		if !eligible(link, base, blacklist) {
			continue
		}
		if scoreLink(link) > 0 {
			selected = append(selected, link)
		}
	}
	return selected
}

// eligible applies the hard filters that disqualify a link outright.
func eligible(link model.Link, base *url.URL, blacklist []string) bool {
	u, err := url.Parse(link.URL)
	if err != nil {
		return false
	}
	if u.Hostname() != base.Hostname() {
		return false
	}
	if u.Fragment != "" {
		return false
	}

	lowerPath := strings.ToLower(u.Path)
	for _, ext := range skippedExtensions {
		if strings.HasSuffix(lowerPath, ext) {
			return false
		}
	}

	for _, bad := range blacklist {
		if bad != "" && strings.Contains(link.URL, bad) {
			return false
		}
	}
	return true
}

// scoreLink rates a link by keyword presence in its anchor text. The URL
// itself never contributes: link text is what the site's author chose to
// show, URLs are full of incidental path noise. One generic keyword is
// enough to flag the anchor as chrome, so that penalty applies at most
// once.
func scoreLink(link model.Link) int {
	text := strings.ToLower(link.Text)

	score := 0
	for _, kw := range interestingKeywords {
		if strings.Contains(text, kw) {
			score++
		}
	}
	for _, kw := range genericKeywords {
		if strings.Contains(text, kw) {
			score -= 2
			break
		}
	}
	return score
}
